package cli

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"roga/internal/qikb"
)

// NewKBCommand creates 'rogactl kb'.
func NewKBCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kb [file]",
		Short: "Validate a question-intelligence knowledge base",
		Long: `Parse and validate a knowledge-base YAML file, or the embedded one when
no file is given, and summarize its contents.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				kb     *qikb.KB
				err    error
				source = "embedded"
			)
			if len(args) == 1 {
				source = args[0]
				kb, err = qikb.LoadFile(source)
			} else {
				kb, err = qikb.Load()
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", color.New(color.FgGreen).Sprint("valid"), source)
			fmt.Fprintf(out, "  personas:         %d\n", len(kb.Personas))
			fmt.Fprintf(out, "  coaching nuggets: %d skills\n", len(kb.Nuggets))
			fmt.Fprintf(out, "  example upgrades: %d skills\n", len(kb.ExampleUpgrades))
			fmt.Fprintf(out, "  banned terms:     %d\n", len(kb.BannedContent))

			caps := kb.StrictCaps()
			issues := make([]string, 0, len(caps))
			for issue := range caps {
				issues = append(issues, issue)
			}
			sort.Strings(issues)
			for _, issue := range issues {
				fmt.Fprintf(out, "  cap %-16s %v\n", issue, caps[issue])
			}
			return nil
		},
	}
}
