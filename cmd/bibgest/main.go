// Package main provides the bibgest CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bibgest",
	Short: "Research paper ingestion and summarization",
	Long: `bibgest ingests bibliographies and papers into a local repository.

It parses real-world .bib files (tolerating malformed entries), extracts
text from PDFs, stores validated paper records in SQLite, and generates
AI summaries of stored papers. Commands output JSON by default for easy
scripting; pass --human for readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// getRepoRoot returns the starting directory for repository discovery.
func getRepoRoot() (string, int) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}

	// Check BIBGEST_ROOT environment variable first
	if root := os.Getenv("BIBGEST_ROOT"); root != "" {
		cwd = root
	}

	return cwd, 0
}
