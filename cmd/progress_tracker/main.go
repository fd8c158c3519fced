// Package main provides the entry point for the course progress tracker CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "progress_tracker",
	Short:        "Course Progress Tracker",
	Long:         "Course Progress Tracker scrapes assignment links from course pages, records which ones you have completed, and shows your pace against the last day of class.",
	SilenceUsage: true,
}

var (
	rootConfigPath   string
	rootStoreBackend string
	rootStorePath    string
	rootCatalogPath  string
	rootUseBrowser   bool
	rootNoCache      bool
	rootVerbose      bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&rootConfigPath, "config", "c", "", "Path to a JSON config file")
	flags.StringVar(&rootStoreBackend, "store", "", "Progress store backend: memory, file, redis or postgres (default: file)")
	flags.StringVar(&rootStorePath, "store-path", "", "Progress file for the file backend")
	flags.StringVar(&rootCatalogPath, "catalog", "", "JSON or YAML catalog replacing the built-in categories")
	flags.BoolVar(&rootUseBrowser, "use-browser", false, "Render course pages without links in headless Chrome")
	flags.BoolVar(&rootNoCache, "no-cache", false, "Always fetch course pages instead of using the page cache")
	flags.BoolVarP(&rootVerbose, "verbose", "v", false, "Print debug logs")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
