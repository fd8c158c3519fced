package main

import (
	"context"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the available categories",
	Long:  "Lists every category in the catalog with its course count. The remembered category is marked with *.",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.listCategories(cmd.Context())
}

func (a *app) listCategories(ctx context.Context) error {
	selected, err := a.progress.SelectedCategory(ctx)
	if err != nil {
		return err
	}
	a.printer.PrintCategories(a.catalog, selected)
	return nil
}
