package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ndowell/bibgest/internal/config"
	"github.com/ndowell/bibgest/internal/storage"
	"github.com/ndowell/bibgest/internal/summarize"
)

var (
	summarizeStyle    string
	summarizeLanguage string
)

func init() {
	summarizeCmd.Flags().StringVar(&summarizeStyle, "style", "", "Summary style: layman, technical, executive, educational (default: configured style)")
	summarizeCmd.Flags().StringVar(&summarizeLanguage, "language", "", "Translate the summary into this language")
	rootCmd.AddCommand(summarizeCmd)
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize <key>",
	Short: "Generate and store an AI summary of a paper",
	Long: `Generate a summary of a stored paper's abstract and save it.

Requires ABACUSAI_API_KEY in the environment or a .env file.

Examples:
  bibgest summarize Smith_2020
  bibgest summarize Smith_2020 --style technical
  bibgest summarize Smith_2020 --language Spanish`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func runSummarize(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	repoRoot := mustFindRepository()

	cfg, err := config.Load(repoRoot)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	style := summarizeStyle
	if style == "" {
		style = cfg.SummaryStyle
	}
	if err := config.ValidateSummaryStyle(style); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	prompt, err := summarize.PromptForStyle(style)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

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
	if p.Abstract == "" {
		exitWithError(ExitDataError, "paper %s has no abstract to summarize", key)
	}

	client, err := summarize.NewClient(summarize.WithModel(cfg.Model))
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	ctx := cmd.Context()
	text := fmt.Sprintf("Title: %s\n\n%s", p.Title, p.Abstract)
	content, err := client.Summarize(ctx, text, prompt, cfg.Temperature)
	if err != nil {
		exitWithError(ExitError, "summarizing %s: %v", key, err)
	}

	if summarizeLanguage != "" {
		content, err = client.Summarize(ctx, content, summarize.TranslatePrompt(summarizeLanguage), cfg.Temperature)
		if err != nil {
			exitWithError(ExitError, "translating summary: %v", err)
		}
	}

	summary := &storage.Summary{
		PaperKey:    key,
		Content:     content,
		Model:       cfg.Model,
		Style:       style,
		Temperature: cfg.Temperature,
		Language:    summarizeLanguage,
	}
	id, err := db.AddSummary(summary)
	if err != nil {
		exitWithError(ExitError, "storing summary: %v", err)
	}
	summary.ID = id

	if humanOutput {
		outputHuman("Summary %d for %s (%s):\n\n%s\n", id, key, style, content)
	} else {
		outputJSON(summary)
	}
	return nil
}
