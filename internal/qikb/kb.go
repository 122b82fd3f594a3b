// Package qikb loads the question-intelligence knowledge base: the coaching
// copy, example upgrades and strict score caps used by the v3 coach.
package qikb

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"roga/internal/qi"
)

//go:embed qi_kb.yaml
var embedded []byte

// Examples holds example question upgrades by difficulty.
type Examples struct {
	Easy   []string `yaml:"easy"`
	Medium []string `yaml:"medium"`
}

// KB is the parsed knowledge base. Maps keyed by score use the 1-5 QI scale.
type KB struct {
	Personas            map[string]string         `yaml:"personas"`
	SkillLabels         map[string]string         `yaml:"skill_labels"`
	QualityRatings      map[int]string            `yaml:"quality_ratings"`
	StrengthsStarters   []string                  `yaml:"strengths_starters"`
	ImprovementStarters []string                  `yaml:"improvement_starters"`
	Caps                map[string]map[string]int `yaml:"strict_caps"`
	ScoreMeanings       map[int]string            `yaml:"score_meanings"`
	Feedback            map[string]map[int]string `yaml:"skill_feedback"`
	Nuggets             map[string][]string       `yaml:"coaching_nuggets"`
	ExampleUpgrades     map[string]Examples       `yaml:"example_upgrades"`
	ProgressNotes       map[string][]string       `yaml:"progress_notes"`
	BannedContent       []string                  `yaml:"banned_content"`
}

// Skills are the scored coaching dimensions, in display order.
var Skills = []string{"clarity", "depth", "relevance", "empathy"}

// Load parses the embedded knowledge base.
func Load() (*KB, error) {
	return Parse(embedded)
}

// MustLoad is Load for package initialisation and tests.
func MustLoad() *KB {
	kb, err := Load()
	if err != nil {
		panic(err)
	}
	return kb
}

// LoadFile parses a knowledge base from disk.
func LoadFile(path string) (*KB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge base: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML knowledge base.
func Parse(data []byte) (*KB, error) {
	var kb KB
	if err := yaml.Unmarshal(data, &kb); err != nil {
		return nil, fmt.Errorf("failed to unmarshal knowledge base: %w", err)
	}
	if err := kb.Validate(); err != nil {
		return nil, err
	}
	return &kb, nil
}

// Validate checks the caps reference known issues and stay on the QI scale.
// Missing copy is allowed; accessors fall back to built-in text.
func (kb *KB) Validate() error {
	for issue, dims := range kb.Caps {
		if !knownIssue(issue) {
			return fmt.Errorf("strict_caps: unknown issue %q", issue)
		}
		for dim, ceiling := range dims {
			if ceiling < qi.QIScale.Min || ceiling > qi.QIScale.Max {
				return fmt.Errorf("strict_caps.%s.%s: %d outside %d-%d", issue, dim, ceiling, qi.QIScale.Min, qi.QIScale.Max)
			}
		}
	}
	for level := range kb.ScoreMeanings {
		if level < qi.QIScale.Min || level > qi.QIScale.Max {
			return fmt.Errorf("score_meanings: level %d outside %d-%d", level, qi.QIScale.Min, qi.QIScale.Max)
		}
	}
	for skill, levels := range kb.Feedback {
		for level := range levels {
			if level < qi.QIScale.Min || level > qi.QIScale.Max {
				return fmt.Errorf("skill_feedback.%s: level %d outside %d-%d", skill, level, qi.QIScale.Min, qi.QIScale.Max)
			}
		}
	}
	return nil
}

func knownIssue(tag string) bool {
	for _, k := range qi.KnownIssues {
		if k == tag {
			return true
		}
	}
	return false
}

// Persona returns the system prompt for a persona and whether it exists.
func (kb *KB) Persona(name string) (string, bool) {
	p, ok := kb.Personas[name]
	return p, ok && p != ""
}

// Label is the display name of a detected skill.
func (kb *KB) Label(skill string) string {
	if l, ok := kb.SkillLabels[skill]; ok {
		return l
	}
	return titleCase(strings.ReplaceAll(skill, "_", " "))
}

// QualityRating describes an overall QI score in words.
func (kb *KB) QualityRating(overall int) string {
	if r, ok := kb.QualityRatings[overall]; ok {
		return r
	}
	return "attempted, needs focus"
}

// SkillFeedback returns the feedback line for a skill at a score level.
func (kb *KB) SkillFeedback(skill string, score int) string {
	if f, ok := kb.Feedback[skill][score]; ok {
		return f
	}
	return fmt.Sprintf("Your %s shows room for improvement.", skill)
}

// Nugget returns the first coaching nugget for a skill.
func (kb *KB) Nugget(skill string) string {
	if n := kb.Nuggets[skill]; len(n) > 0 {
		return n[0]
	}
	return fmt.Sprintf("Strong %s questions are specific and actionable.", skill)
}

// Examples returns up to three example upgrades for a skill, easy first.
func (kb *KB) Examples(skill string) []string {
	ex := kb.ExampleUpgrades[skill]
	all := append(append([]string{}, ex.Easy...), ex.Medium...)
	if len(all) == 0 {
		return []string{"What exactly needs clarification?", "Which step is unclear?", "What should happen first?"}
	}
	if len(all) > 3 {
		all = all[:3]
	}
	return all
}

// ProgressNote returns the first progress note for a skill.
func (kb *KB) ProgressNote(skill string) string {
	if n := kb.ProgressNotes[skill]; len(n) > 0 {
		return n[0]
	}
	return fmt.Sprintf("🌟 %s Level 1 → Keep practicing to level up!", kb.Label(skill))
}

var defaultScoreMeanings = map[int]string{
	1: "Weak (vague, closed, trivial)",
	2: "Below average (has issues but some merit)",
	3: "Okay (surface-level but workable)",
	4: "Strong (clear, specific, open-ended)",
	5: "Excellent (precise, layered, invites deep insight)",
}

// ScoreLegend renders score_meanings as "1 = ..., 2 = ..." in scale order.
// Missing levels use the built-in wording; a nil KB gives the defaults.
func (kb *KB) ScoreLegend() string {
	var meanings map[int]string
	if kb != nil {
		meanings = kb.ScoreMeanings
	}
	parts := make([]string, 0, qi.QIScale.Max-qi.QIScale.Min+1)
	for level := qi.QIScale.Min; level <= qi.QIScale.Max; level++ {
		m := strings.TrimSpace(meanings[level])
		if m == "" {
			m = defaultScoreMeanings[level]
		}
		parts = append(parts, fmt.Sprintf("%d = %s", level, m))
	}
	return strings.Join(parts, ", ")
}

// StrengthsStarter and ImprovementStarter return the lead phrase used when no
// skill-specific template applies.
func (kb *KB) StrengthsStarter() string {
	if len(kb.StrengthsStarters) > 0 {
		return kb.StrengthsStarters[0]
	}
	return "You showed curiosity by"
}

func (kb *KB) ImprovementStarter() string {
	if len(kb.ImprovementStarters) > 0 {
		return kb.ImprovementStarters[0]
	}
	return "To strengthen this"
}

// StrictCaps returns the issue-to-dimension map for a qi.CapPolicy. Each
// listed dimension is capped at the policy ceiling when the issue is present.
func (kb *KB) StrictCaps() map[string][]string {
	out := make(map[string][]string, len(kb.Caps))
	for issue, dims := range kb.Caps {
		names := make([]string, 0, len(dims))
		for dim := range dims {
			names = append(names, dim)
		}
		sort.Strings(names)
		out[issue] = names
	}
	return out
}

// ApplyStrictCaps lowers scores to the exact per-dimension ceilings listed
// for each present issue. Keys are never added and values never raised.
func (kb *KB) ApplyStrictCaps(scores qi.Scores, issues qi.IssueSet) qi.Scores {
	out := scores.Clone()
	for issue := range issues {
		for dim, ceiling := range kb.Caps[issue] {
			if v, ok := out[dim]; ok {
				out[dim] = min(v, ceiling)
			}
		}
	}
	return out
}

// Policy returns base with the strict-cap dimensions merged into its issue map.
func (kb *KB) Policy(base qi.CapPolicy) qi.CapPolicy {
	merged := make(map[string][]string, len(base.IssueCaps)+len(kb.Caps))
	for issue, dims := range base.IssueCaps {
		merged[issue] = append([]string(nil), dims...)
	}
	for issue, dims := range kb.StrictCaps() {
		for _, d := range dims {
			if !contains(merged[issue], d) {
				merged[issue] = append(merged[issue], d)
			}
		}
	}
	base.IssueCaps = merged
	return base
}

// BannedIn returns the banned terms found in text, case-insensitively, in
// knowledge-base order.
func (kb *KB) BannedIn(text string) []string {
	lower := strings.ToLower(text)
	found := []string{}
	for _, term := range kb.BannedContent {
		if term != "" && strings.Contains(lower, strings.ToLower(term)) {
			found = append(found, term)
		}
	}
	return found
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
