package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ndowell/bibgest/internal/config"
	"github.com/ndowell/bibgest/internal/storage"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new bibgest repository",
	Long: `Initialize a new bibgest repository in the current directory.

Creates:
  .bibgest/
  ├── config.yml   # Default config
  └── papers.db    # Empty SQLite database`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, exitCode := getRepoRoot()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	if config.IsRepository(root) {
		exitWithError(ExitError, "directory already contains a bibgest repository")
	}

	bgDir := config.BibgestPath(root)
	if err := os.MkdirAll(bgDir, 0755); err != nil {
		exitWithError(ExitError, "creating .bibgest directory: %v", err)
	}

	cfg := config.Default()
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "writing config: %v", err)
	}

	// Opening the database creates the schema.
	db, err := storage.Open(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "creating database: %v", err)
	}
	db.Close()

	if humanOutput {
		outputHuman("Initialized bibgest repository in %s\n", bgDir)
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: bgDir})
	}

	return nil
}
