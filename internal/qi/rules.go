// Package qi holds the deterministic question-intelligence checks that run
// around every LLM call: question detection, statement sanitizing and score
// capping. Nothing here performs I/O or keeps state between calls.
package qi

// Issue tags understood by the capping rules.
const (
	IssueTooVague       = "too_vague"
	IssueClosedQuestion = "closed_question"
	IssueOffTopic       = "off_topic"
	IssueLowEmpathy     = "low_empathy"
	IssueTooBroad       = "too_broad"
	IssueNoContext      = "no_context"
)

// KnownIssues is the issue vocabulary accepted from classifiers.
var KnownIssues = []string{
	IssueTooVague,
	IssueClosedQuestion,
	IssueOffTopic,
	IssueLowEmpathy,
	IssueTooBroad,
	IssueNoContext,
}

// Rules is the declarative vocabulary behind the detector and the
// admissibility heuristic. Extend it through configuration rather than code.
type Rules struct {
	LeadInWords    []string `yaml:"lead_in_words" json:"leadInWords"`
	VaguePhrases   []string `yaml:"vague_phrases" json:"vaguePhrases"`
	ClosedLeadIns  []string `yaml:"closed_lead_ins" json:"closedLeadIns"`
	MinLength      int      `yaml:"min_length" json:"minLength"`
	MaxVagueTokens int      `yaml:"max_vague_tokens" json:"maxVagueTokens"`
}

// DefaultRules returns the production vocabulary.
func DefaultRules() Rules {
	return Rules{
		LeadInWords: []string{
			"who", "what", "when", "where", "why", "how", "which",
			"could", "would", "should", "did", "do", "does", "are", "is", "can",
		},
		VaguePhrases: []string{
			"what about", "how about", "what's up with", "tell me about",
			"wait, what", "huh", "what do you mean", "i don't get it",
			"explain this", "what is this", "help me understand",
		},
		ClosedLeadIns: []string{
			"is this", "are these", "can i", "should i", "will this",
			"do you think", "would you", "could you", "did i",
		},
		MinLength:      15,
		MaxVagueTokens: 2,
	}
}

// withDefaults fills zero-valued fields from DefaultRules so a partially
// configured rule set still behaves.
func (r Rules) withDefaults() Rules {
	d := DefaultRules()
	if len(r.LeadInWords) == 0 {
		r.LeadInWords = d.LeadInWords
	}
	if len(r.VaguePhrases) == 0 {
		r.VaguePhrases = d.VaguePhrases
	}
	if len(r.ClosedLeadIns) == 0 {
		r.ClosedLeadIns = d.ClosedLeadIns
	}
	if r.MinLength <= 0 {
		r.MinLength = d.MinLength
	}
	if r.MaxVagueTokens <= 0 {
		r.MaxVagueTokens = d.MaxVagueTokens
	}
	return r
}
