package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear <category>",
	Short: "Clear all progress for a category",
	Long:  "Removes every completed assignment recorded for the category. Asks for confirmation unless --yes is given.",
	Args:  cobra.ExactArgs(1),
	RunE:  runClear,
}

var clearYes bool

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.clear(cmd.Context(), args[0], clearYes, cmd.InOrStdin())
}

func (a *app) clear(ctx context.Context, categoryID string, yes bool, in io.Reader) error {
	category, err := a.catalog.Get(categoryID)
	if err != nil {
		return err
	}

	if !yes {
		_, _ = fmt.Fprintf(a.out, "Are you sure you want to clear all progress for %s? This cannot be undone. [y/N]: ", category.Name)
		if !confirmed(in) {
			_, _ = fmt.Fprintln(a.out, "Cancelled.")
			return nil
		}
	}

	if _, err := a.session.Use(ctx, categoryID); err != nil {
		return err
	}
	if err := a.session.Clear(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.out, "Cleared progress for %s\n", category.Name)
	return nil
}

func confirmed(in io.Reader) bool {
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
