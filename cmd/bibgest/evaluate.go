package main

import (
	"github.com/spf13/cobra"

	"github.com/ndowell/bibgest/internal/storage"
)

var (
	evalSummaryID   int64
	evalFactuality  int
	evalReadability int
	evalComments    string
)

func init() {
	evaluateCmd.Flags().Int64Var(&evalSummaryID, "summary", 0, "Summary id to evaluate")
	evaluateCmd.Flags().IntVar(&evalFactuality, "factuality", 0, "Factuality score, 1-5")
	evaluateCmd.Flags().IntVar(&evalReadability, "readability", 0, "Readability score, 1-5")
	evaluateCmd.Flags().StringVar(&evalComments, "comments", "", "Free-form comments")
	evaluateCmd.MarkFlagRequired("summary")
	evaluateCmd.MarkFlagRequired("factuality")
	evaluateCmd.MarkFlagRequired("readability")
	rootCmd.AddCommand(evaluateCmd)
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <key>",
	Short: "Record a human evaluation of a summary",
	Long: `Record factuality and readability scores for a stored summary.

Scores are on a 1-5 scale.

Examples:
  bibgest evaluate Smith_2020 --summary 3 --factuality 4 --readability 5
  bibgest evaluate Smith_2020 --summary 3 --factuality 2 --readability 3 --comments "misses the main result"`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	key := args[0]
	summary, err := db.GetSummary(evalSummaryID)
	if err != nil {
		exitWithError(ExitError, "loading summary %d: %v", evalSummaryID, err)
	}
	if summary == nil {
		exitWithError(ExitDataError, "summary not found: %d", evalSummaryID)
	}
	if summary.PaperKey != key {
		exitWithError(ExitDataError, "summary %d belongs to %s, not %s", evalSummaryID, summary.PaperKey, key)
	}

	eval := &storage.Evaluation{
		PaperKey:    key,
		SummaryID:   evalSummaryID,
		Factuality:  evalFactuality,
		Readability: evalReadability,
		Comments:    evalComments,
	}
	id, err := db.AddEvaluation(eval)
	if err != nil {
		exitWithError(ExitError, "storing evaluation: %v", err)
	}
	eval.ID = id

	if humanOutput {
		outputHuman("Recorded evaluation %d for summary %d (factuality %d, readability %d)\n",
			id, evalSummaryID, evalFactuality, evalReadability)
	} else {
		outputJSON(eval)
	}
	return nil
}
