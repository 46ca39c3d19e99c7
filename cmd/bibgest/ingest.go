package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndowell/bibgest/internal/bibtex"
	"github.com/ndowell/bibgest/internal/storage"
)

var ingestDryRun bool

func init() {
	ingestCmd.Flags().BoolVar(&ingestDryRun, "dry-run", false, "Parse and report without writing to the database")
	rootCmd.AddCommand(ingestCmd)
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <file.bib>",
	Short: "Ingest a BibTeX bibliography into the repository",
	Long: `Ingest a BibTeX bibliography into the repository.

Parses the .bib file, normalizes entries, and stores the resulting
paper records. Malformed entries are skipped and reported as
diagnostics; the rest of the file is still ingested. Entries whose
key already exists in the database are skipped.

Examples:
  bibgest ingest refs.bib
  bibgest ingest refs.bib --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

// IngestResult reports what an ingest run did.
type IngestResult struct {
	Ingested    int                 `json:"ingested"`
	Skipped     int                 `json:"skipped"`
	Diagnostics []bibtex.Diagnostic `json:"diagnostics"`
}

// IngestDryRunResult reports what an ingest run would do.
type IngestDryRunResult struct {
	WouldIngest int                 `json:"would_ingest"`
	WouldSkip   int                 `json:"would_skip"`
	Previews    []string            `json:"previews,omitempty"`
	Diagnostics []bibtex.Diagnostic `json:"diagnostics"`
}

func runIngest(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	data, err := os.ReadFile(args[0])
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", args[0], err)
	}

	papers, diags := bibtex.Parse(string(data))
	if diags == nil {
		diags = []bibtex.Diagnostic{}
	}

	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	if ingestDryRun {
		result := IngestDryRunResult{Diagnostics: diags}
		for i := range papers {
			has, err := db.HasPaper(papers[i].Key)
			if err != nil {
				exitWithError(ExitError, "checking %s: %v", papers[i].Key, err)
			}
			if has {
				result.WouldSkip++
			} else {
				result.WouldIngest++
				result.Previews = append(result.Previews, papers[i].Preview())
			}
		}
		reportIngest(result.WouldIngest, result.WouldSkip, diags, result, true)
		if len(papers) == 0 {
			os.Exit(ExitDataError)
		}
		return nil
	}

	result := IngestResult{Diagnostics: diags}
	for i := range papers {
		err := db.AddPaper(&papers[i])
		if errors.Is(err, storage.ErrDuplicateKey) {
			result.Skipped++
			continue
		}
		if err != nil {
			exitWithError(ExitError, "storing %s: %v", papers[i].Key, err)
		}
		result.Ingested++
	}

	reportIngest(result.Ingested, result.Skipped, diags, result, false)
	if len(papers) == 0 {
		os.Exit(ExitDataError)
	}
	return nil
}

func reportIngest(stored, skipped int, diags []bibtex.Diagnostic, result interface{}, dryRun bool) {
	if !humanOutput {
		outputJSON(result)
		return
	}

	verb := "Ingested"
	if dryRun {
		verb = "Would ingest"
	}
	outputHuman("%s %d papers (%d skipped)\n", verb, stored, skipped)
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "warning: %s\n", d.String())
	}
}
