package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"roga/internal/qi"
	"roga/internal/qikb"
)

// NewCheckCommand creates 'rogactl check'.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [text]",
		Short: "Report whether text reads as a question",
		Long: `Run the question detector over text (arguments, or stdin when none are
given). Exits non-zero when the text is flagged as a question.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if qi.NewDetector(nil).IsQuestion(text) {
				fmt.Fprintln(out, color.New(color.FgRed, color.Bold).Sprint("question"))
				return fmt.Errorf("text reads as a question")
			}
			fmt.Fprintln(out, color.New(color.FgGreen).Sprint("statement"))
			return nil
		},
	}
}

// NewSanitizeCommand creates 'rogactl sanitize'.
func NewSanitizeCommand() *cobra.Command {
	var (
		maxSentences int
		fallback     string
	)

	cmd := &cobra.Command{
		Use:   "sanitize [text]",
		Short: "Rewrite text into a question-free statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd, args)
			if err != nil {
				return err
			}
			st := qi.NewDetector(nil).EnsureStatement(text, maxSentences, fallback)
			fmt.Fprintln(cmd.OutOrStdout(), st.Text)
			if st.UsedFallback {
				fmt.Fprintln(cmd.ErrOrStderr(), color.New(color.FgYellow).Sprint("fallback used: sanitized text still read as a question"))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&maxSentences, "max-sentences", "n", qi.DefaultMaxSentences, "Maximum sentences to keep")
	cmd.Flags().StringVar(&fallback, "fallback", "", "Statement to use when sanitizing fails")

	return cmd
}

// NewAssessCommand creates 'rogactl assess'.
func NewAssessCommand() *cobra.Command {
	var issues []string

	cmd := &cobra.Command{
		Use:   "assess [question]",
		Short: "Run the admissibility heuristic and preview score ceilings",
		RunE: func(cmd *cobra.Command, args []string) error {
			question, err := inputText(cmd, args)
			if err != nil {
				return err
			}
			kb, err := qikb.Load()
			if err != nil {
				return err
			}
			policy := kb.Policy(qi.QIPolicy)

			a := policy.Rules.Assess(question)
			set := qi.NewIssueSet(append(a.Issues(), issues...)...)

			top := map[string]int{}
			for _, dim := range qi.QIScale.Dimensions {
				top[dim] = qi.QIScale.Max
			}
			ceilings := kb.ApplyStrictCaps(policy.Apply(qi.QIScale.Normalize(top), set, question), set)

			printAssessment(cmd, a, set, ceilings)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&issues, "issue", nil, "Extra issue tags to apply (repeatable)")

	return cmd
}

func printAssessment(cmd *cobra.Command, a qi.Assessment, set qi.IssueSet, ceilings qi.Scores) {
	out := cmd.OutOrStdout()
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	verdict := green.Sprint("admissible")
	if a.Flagged() {
		verdict = red.Sprint("capped")
	}
	cyan.Fprintln(out, "Assessment")
	fmt.Fprintf(out, "  verdict: %s\n", verdict)
	fmt.Fprintf(out, "  vague:   %t\n", a.Vague)
	fmt.Fprintf(out, "  closed:  %t\n", a.Closed)
	for _, r := range a.Reasons {
		fmt.Fprintf(out, "  - %s\n", yellow.Sprint(r))
	}

	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	if len(tags) > 0 {
		fmt.Fprintf(out, "  issues:  %s\n", strings.Join(tags, ", "))
	}

	cyan.Fprintln(out, "Ceilings")
	for _, dim := range qi.QIScale.Dimensions {
		v := ceilings[dim]
		c := green
		if v < qi.QIScale.Max {
			c = red
		}
		fmt.Fprintf(out, "  %-10s %s\n", dim, c.Sprint(v))
	}
}
