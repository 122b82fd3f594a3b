package qi

import (
	"strings"
	"unicode/utf8"
)

// Assessment is the verdict of the admissibility heuristic.
type Assessment struct {
	Vague   bool     `json:"vague"`
	Closed  bool     `json:"closed"`
	Reasons []string `json:"reasons,omitempty"`
}

// Flagged reports whether the question is too vague or closed to score well.
func (a Assessment) Flagged() bool {
	return a.Vague || a.Closed
}

// Issues maps the verdict onto the issue vocabulary.
func (a Assessment) Issues() []string {
	var out []string
	if a.Vague {
		out = append(out, IssueTooVague)
	}
	if a.Closed {
		out = append(out, IssueClosedQuestion)
	}
	return out
}

// Assess applies the heuristic to a raw question. It looks only at the text,
// never at what a model said about it.
func (r Rules) Assess(question string) Assessment {
	r = r.withDefaults()

	var a Assessment
	trimmed := strings.TrimSpace(question)
	lower := strings.ToLower(trimmed)

	if n := utf8.RuneCountInString(trimmed); n < r.MinLength {
		a.Vague = true
		a.Reasons = append(a.Reasons, "shorter than minimum length")
	}
	for _, p := range r.VaguePhrases {
		if strings.Contains(lower, strings.ToLower(p)) {
			a.Vague = true
			a.Reasons = append(a.Reasons, "vague phrase: "+p)
			break
		}
	}
	for _, p := range r.ClosedLeadIns {
		if strings.Contains(lower, strings.ToLower(p)) {
			a.Closed = true
			a.Reasons = append(a.Reasons, "closed lead-in: "+p)
			break
		}
	}
	if len(strings.Fields(trimmed)) <= r.MaxVagueTokens {
		a.Vague = true
		a.Reasons = append(a.Reasons, "too few words")
	}
	return a
}

// Assess runs the heuristic with DefaultRules.
func Assess(question string) Assessment {
	return DefaultRules().Assess(question)
}

// IsVagueOrClosed is shorthand for Assess(question).Flagged().
func IsVagueOrClosed(question string) bool {
	return Assess(question).Flagged()
}
