package main

import (
	"context"

	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <category> <course-url> <href>",
	Short: "Mark an assignment complete, or incomplete if it already is",
	Long:  "Flips the completion state of an assignment href within a course of the category. The href is stored as given; run show to see the hrefs of each course.",
	Args:  cobra.ExactArgs(3),
	RunE:  runToggle,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

func runToggle(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.toggle(cmd.Context(), args[0], args[1], args[2])
}

func (a *app) toggle(ctx context.Context, categoryID, courseURL, href string) error {
	if _, err := a.session.Use(ctx, categoryID); err != nil {
		return err
	}
	completed, err := a.session.Toggle(ctx, courseURL, href)
	if err != nil {
		return err
	}
	a.printer.PrintToggle(href, completed)
	return nil
}
