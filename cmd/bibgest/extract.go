package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ndowell/bibgest/internal/bibtex"
	"github.com/ndowell/bibgest/internal/config"
	"github.com/ndowell/bibgest/internal/pdfextract"
	"github.com/ndowell/bibgest/internal/storage"
)

var extractKey string

func init() {
	extractCmd.Flags().StringVar(&extractKey, "key", "", "Citation key for the stored record (default: derived from filename)")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract <file.pdf>",
	Short: "Extract a paper record from a PDF",
	Long: `Extract a paper record from a PDF and store it.

Reads text from the PDF, derives a title, abstract, and DOI where
possible, and stores the record under a key derived from the filename
(or --key).

Examples:
  bibgest extract papers/smith2020.pdf
  bibgest extract papers/smith2020.pdf --key Smith_2020`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	cfg, err := config.Load(repoRoot)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	path := args[0]
	key := extractKey
	if key == "" {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		key = bibtex.SanitizeKey(base, 1)
	}

	f, err := os.Open(path)
	if err != nil {
		exitWithError(ExitError, "opening %s: %v", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		exitWithError(ExitError, "stat %s: %v", path, err)
	}

	p, err := pdfextract.BuildPaper(key, f, info.Size(), cfg.PDFMaxPages)
	if err != nil {
		exitWithError(ExitDataError, "extracting from %s: %v", path, err)
	}

	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	if err := db.AddPaper(p); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			exitWithError(ExitError, "paper already stored: %s", key)
		}
		exitWithError(ExitError, "storing %s: %v", key, err)
	}

	if humanOutput {
		outputHuman("Stored %s: %s\n", p.Key, truncateString(p.Title, ListTitleMaxLen))
	} else {
		outputJSON(p)
	}
	return nil
}
