package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var selectCmd = &cobra.Command{
	Use:   "select <category>",
	Short: "Remember a category as the default for show",
	Args:  cobra.ExactArgs(1),
	RunE:  runSelect,
}

func init() {
	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.selectCategory(cmd.Context(), args[0])
}

func (a *app) selectCategory(ctx context.Context, id string) error {
	category, err := a.session.Use(ctx, id)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.out, "Selected %s\n", category.Name)
	return nil
}
