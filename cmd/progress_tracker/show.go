package main

import (
	"context"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [category]",
	Short: "Load a category and show progress",
	Long: `Fetches every course page of the category, extracts and deduplicates the assignments,
and prints overall progress, the countdown to the last day of class, the pace needed
to finish, and each course's checklist. Without an argument the remembered category
is shown. Showing a category makes it the remembered one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

var showSummaryOnly bool

func init() {
	showCmd.Flags().BoolVarP(&showSummaryOnly, "summary", "s", false, "Print only the progress summary, not the checklists")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	id := ""
	if len(args) == 1 {
		id = args[0]
	}
	return a.show(cmd.Context(), id, showSummaryOnly)
}

func (a *app) show(ctx context.Context, id string, summaryOnly bool) error {
	if id == "" {
		category, err := a.session.Restore(ctx)
		if err != nil {
			return err
		}
		id = category.ID
	}

	result, err := a.session.Select(ctx, id)
	if err != nil {
		return err
	}
	summary, err := a.session.Summary(ctx)
	if err != nil {
		return err
	}

	a.printer.PrintSummary(a.session.Current(), summary)
	if summaryOnly {
		return nil
	}

	record, err := a.session.Record(ctx)
	if err != nil {
		return err
	}
	_, _ = a.out.Write([]byte("\n"))
	a.printer.PrintAssignments(result, record)
	return nil
}
