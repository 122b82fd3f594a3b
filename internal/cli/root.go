// Package cli implements rogactl, the operator tool for the question checks,
// knowledge base and dev tokens.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates the rogactl root command.
func NewRootCommand() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "rogactl",
		Short: "Operator tool for the Roga question-scoring backend",
		Long: `rogactl runs Roga's deterministic question checks locally, validates
question-intelligence knowledge bases, mints development JWTs and can score
a question against the configured LLM.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(NewSanitizeCommand())
	cmd.AddCommand(NewAssessCommand())
	cmd.AddCommand(NewTokenCommand())
	cmd.AddCommand(NewKBCommand())
	cmd.AddCommand(NewScoreCommand())

	return cmd
}

// inputText joins args, or reads stdin when there are none.
func inputText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("no text given")
	}
	return text, nil
}
