package qi

import (
	"math"
	"strings"
)

// Scores maps a dimension name to its integer score.
type Scores map[string]int

// Clone returns an independent copy.
func (s Scores) Clone() Scores {
	out := make(Scores, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// IssueSet is a set of issue tags.
type IssueSet map[string]struct{}

// NewIssueSet builds a set from tags, ignoring blanks and case.
func NewIssueSet(tags ...string) IssueSet {
	s := make(IssueSet, len(tags))
	for _, t := range tags {
		s.Add(t)
	}
	return s
}

func (s IssueSet) Add(tag string) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag != "" {
		s[tag] = struct{}{}
	}
}

func (s IssueSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Scale describes a fixed-shape score mapping.
type Scale struct {
	Min, Max, Default int
	Dimensions        []string
}

var (
	// QIScale is the 1-5 classifier scale.
	QIScale = Scale{Min: 1, Max: 5, Default: 3, Dimensions: []string{"clarity", "depth", "relevance", "empathy", "overall"}}
	// RubricScale is the legacy 0-100 scorecard scale.
	RubricScale = Scale{Min: 0, Max: 100, Default: 0, Dimensions: []string{"clarity", "depth", "insight", "openness", "overall"}}
)

// Normalize returns a mapping holding every dimension exactly once, clamped
// to the scale. Missing dimensions take the default; unknown keys are dropped.
func (sc Scale) Normalize(raw map[string]int) Scores {
	out := make(Scores, len(sc.Dimensions))
	for _, dim := range sc.Dimensions {
		v, ok := raw[dim]
		if !ok {
			v = sc.Default
		}
		out[dim] = sc.Clamp(v)
	}
	return out
}

// Clamp bounds v to [Min, Max].
func (sc Scale) Clamp(v int) int {
	return max(sc.Min, min(sc.Max, v))
}

// ClampFloat bounds a model-supplied number before converting it, so huge
// values cannot wrap around. NaN takes the default; fractions truncate.
func (sc Scale) ClampFloat(v float64) int {
	switch {
	case math.IsNaN(v):
		return sc.Default
	case v <= float64(sc.Min):
		return sc.Min
	case v >= float64(sc.Max):
		return sc.Max
	}
	return int(v)
}

// CapPolicy bounds scores from above when quality issues are detected.
type CapPolicy struct {
	DimensionCeiling int
	AggregateCeiling int
	AggregateKey     string
	// IssueCaps names the dimensions each issue caps, independently of the
	// vagueness heuristic.
	IssueCaps map[string][]string
	Rules     Rules
}

// DefaultIssueCaps ties named issues to the dimensions they cap.
func DefaultIssueCaps() map[string][]string {
	return map[string][]string{
		IssueOffTopic:       {"relevance"},
		IssueLowEmpathy:     {"empathy"},
		IssueTooVague:       {"clarity", "overall"},
		IssueClosedQuestion: {"depth", "overall"},
		IssueTooBroad:       {"clarity", "overall"},
		IssueNoContext:      {"relevance"},
	}
}

var (
	// QIPolicy caps the 1-5 scale at the weak band.
	QIPolicy = CapPolicy{DimensionCeiling: 2, AggregateCeiling: 2, AggregateKey: "overall", IssueCaps: DefaultIssueCaps(), Rules: DefaultRules()}
	// RubricPolicy caps the 0-100 scale.
	RubricPolicy = CapPolicy{DimensionCeiling: 40, AggregateCeiling: 40, AggregateKey: "overall", IssueCaps: DefaultIssueCaps(), Rules: DefaultRules()}
)

func (p CapPolicy) ceiling(dim string) int {
	if dim == p.AggregateKey {
		return p.AggregateCeiling
	}
	return p.DimensionCeiling
}

// Apply caps scores for question and issues. The result has the same keys as
// scores; values only ever go down, and applying twice changes nothing.
// scores itself is not modified.
func (p CapPolicy) Apply(scores Scores, issues IssueSet, question string) Scores {
	out := scores.Clone()
	if len(out) == 0 {
		return out
	}

	if p.Rules.Assess(question).Flagged() {
		for dim, v := range out {
			out[dim] = min(v, p.ceiling(dim))
		}
	}
	for issue := range issues {
		for _, dim := range p.IssueCaps[issue] {
			if v, ok := out[dim]; ok {
				out[dim] = min(v, p.ceiling(dim))
			}
		}
	}
	return out
}

// CapScores applies QIPolicy.
func CapScores(scores Scores, issues IssueSet, question string) Scores {
	return QIPolicy.Apply(scores, issues, question)
}
