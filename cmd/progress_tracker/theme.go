package main

import (
	"context"
	"fmt"

	"github.com/jonathan/course-progress/internal/progress"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme [dark|light]",
	Short:     "Show or set the display theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(progress.ThemeDark), string(progress.ThemeLight)},
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	return a.theme(cmd.Context(), name)
}

func (a *app) theme(ctx context.Context, name string) error {
	if name == "" {
		current, err := a.progress.Theme(ctx)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(a.out, "Theme: %s\n", current)
		return nil
	}

	theme, err := progress.ParseTheme(name)
	if err != nil {
		return err
	}
	if err := a.progress.SetTheme(ctx, theme); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.out, "Theme set to %s\n", theme)
	return nil
}
