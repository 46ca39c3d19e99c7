package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndowell/bibgest/internal/paper"
	"github.com/ndowell/bibgest/internal/storage"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Show a stored paper with its summaries and scores",
	Long: `Show a paper's full record, its stored summaries, and evaluation scores.

Examples:
  bibgest show Smith_2020
  bibgest show Smith_2020 --human`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

// ShowResponse bundles a paper with its summaries and evaluation scores.
type ShowResponse struct {
	Paper     *paper.Paper      `json:"paper"`
	Summaries []storage.Summary `json:"summaries"`
	Scores    storage.Scores    `json:"scores"`
}

func runShow(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	key := args[0]
	p, err := db.GetPaper(key)
	if err != nil {
		exitWithError(ExitError, "loading %s: %v", key, err)
	}
	if p == nil {
		exitWithError(ExitDataError, "paper not found: %s", key)
	}

	summaries, err := db.ListSummaries(key)
	if err != nil {
		exitWithError(ExitError, "loading summaries: %v", err)
	}
	if summaries == nil {
		summaries = []storage.Summary{}
	}

	scores, err := db.PaperScores(key)
	if err != nil {
		exitWithError(ExitError, "loading scores: %v", err)
	}

	if !humanOutput {
		outputJSON(ShowResponse{Paper: p, Summaries: summaries, Scores: scores})
		return nil
	}

	fmt.Printf("%s (%s)\n", p.Key, p.EntryType)
	fmt.Printf("  Title:    %s\n", p.Title)
	if len(p.Authors) > 0 {
		fmt.Printf("  Authors:  %s\n", formatAuthors(p.Authors, 5))
	}
	if p.Year > 0 {
		fmt.Printf("  Year:     %d\n", p.Year)
	}
	if v := p.Venue(); v != "" {
		fmt.Printf("  Venue:    %s\n", v)
	}
	if p.DOI != "" {
		fmt.Printf("  DOI:      %s\n", p.DOI)
	}
	if p.Abstract != "" {
		fmt.Printf("  Abstract: %s\n", truncateString(p.Abstract, 200))
	}

	if len(summaries) > 0 {
		fmt.Printf("\nSummaries:\n")
		for _, s := range summaries {
			label := s.Style
			if s.Language != "" {
				label += ", " + s.Language
			}
			fmt.Printf("  [%d] %s (%s, %s)\n", s.ID, truncateString(s.Content, 80), label, s.Model)
		}
	}
	if scores.Count > 0 {
		fmt.Printf("\nEvaluations: %d (factuality %.1f, readability %.1f)\n",
			scores.Count, scores.AvgFactuality, scores.AvgReadability)
	}

	return nil
}
