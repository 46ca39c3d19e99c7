package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndowell/bibgest/internal/paper"
)

var listLimit int

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum results to return (0 = all)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored papers",
	Long: `List all papers in the repository.

Examples:
  bibgest list
  bibgest list --limit 20`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	papers, err := db.ListPapers()
	if err != nil {
		exitWithError(ExitError, "listing papers: %v", err)
	}

	total := len(papers)
	if listLimit > 0 && listLimit < len(papers) {
		papers = papers[:listLimit]
	}

	if humanOutput {
		if len(papers) == 0 {
			fmt.Println("No papers in repository")
			return nil
		}
		if len(papers) < total {
			fmt.Printf("%d papers (showing first %d):\n\n", total, len(papers))
		} else {
			fmt.Printf("%d papers in repository:\n\n", total)
		}
		for _, p := range papers {
			title := truncateString(p.Title, ListTitleMaxLen)
			fmt.Printf("  %-24s %s\n", p.Key, title)
		}
		return nil
	}

	if papers == nil {
		papers = []paper.Paper{}
	}
	outputJSON(papers)
	return nil
}
