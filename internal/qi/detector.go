package qi

import (
	"regexp"
	"strings"
)

// Detector reports whether text reads as, or contains, a question.
// A Detector is immutable and safe for concurrent use.
type Detector struct {
	pattern *regexp.Regexp
}

// NewDetector compiles a detector for the given interrogative lead-in words.
// An empty list falls back to the default vocabulary.
func NewDetector(leadIns []string) *Detector {
	if len(leadIns) == 0 {
		leadIns = DefaultRules().LeadInWords
	}
	quoted := make([]string, 0, len(leadIns))
	for _, w := range leadIns {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	// A literal '?' anywhere, or a line holding a lead-in word that ends in
	// terminal punctuation. (?m) makes '$' bind per line, '.' never crosses one.
	expr := `(?im)(\?|(?:^|\b)(` + strings.Join(quoted, "|") + `)\b.*[.?!]$)`
	return &Detector{pattern: regexp.MustCompile(expr)}
}

var defaultDetector = NewDetector(nil)

// IsQuestion reports whether text contains a question.
func (d *Detector) IsQuestion(text string) bool {
	if text == "" {
		return false
	}
	return d.pattern.MatchString(text)
}

// IsQuestion runs the default detector.
func IsQuestion(text string) bool {
	return defaultDetector.IsQuestion(text)
}
