package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"roga/config"
	"roga/internal/llm"
	"roga/models"
	"roga/services"
)

// NewScoreCommand creates 'rogactl score', a manual check against the live
// model.
func NewScoreCommand() *cobra.Command {
	var (
		configPath string
		title      string
		scenario   string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "score [question]",
		Short: "Score a question with the configured LLM",
		RunE: func(cmd *cobra.Command, args []string) error {
			question, err := inputText(cmd, args)
			if err != nil {
				return err
			}
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			gen, err := llm.New(ctx, llm.Config{
				Provider:    cfg.LLM.Provider,
				Model:       cfg.LLM.Model,
				GeminiKey:   cfg.Gemini.ApiKey,
				OpenAIKey:   cfg.Openai.GptApiKey,
				OpenAIBase:  cfg.Openai.BaseURL,
				TimeoutSecs: cfg.LLM.TimeoutSeconds,
			})
			if err != nil {
				return err
			}

			resp, err := services.NewScorer(gen, nil).Score(ctx, models.ScoreRequest{
				Question:      question,
				ScenarioTitle: title,
				ScenarioText:  scenario,
			})
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			printScorecard(cmd, resp)
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.Flags().StringVar(&title, "title", "", "Scenario title")
	cmd.Flags().StringVar(&scenario, "scenario", "", "Scenario text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw response")

	return cmd
}

func printScorecard(cmd *cobra.Command, resp *models.ScoreResponse) {
	out := cmd.OutOrStdout()
	statusColor := map[string]*color.Color{
		models.StatusGood: color.New(color.FgGreen),
		models.StatusWarn: color.New(color.FgYellow),
		models.StatusBad:  color.New(color.FgRed),
	}

	color.New(color.FgCyan, color.Bold).Fprintf(out, "%s: %d/100\n", resp.Scenario.Title, resp.Score)
	for _, item := range resp.Rubric {
		fmt.Fprintf(out, "  %-9s %s  %s\n", item.Label, statusColor[item.Status].Sprint(item.Status), item.Note)
	}
	if resp.ProTip != "" {
		fmt.Fprintf(out, "Pro tip: %s\n", resp.ProTip)
	}
	if resp.SuggestedUpgrade != "" {
		fmt.Fprintf(out, "Try: %s\n", resp.SuggestedUpgrade)
	}
	if resp.Badge != nil {
		fmt.Fprintf(out, "Badge: %s\n", resp.Badge.Name)
	}
}
