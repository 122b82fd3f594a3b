package qi

import (
	"regexp"
	"strings"
)

// DefaultMaxSentences bounds sanitized statements when no limit is given.
const DefaultMaxSentences = 4

var (
	lineBreak     = regexp.MustCompile(`\r\n|\r|\n`)
	sentenceBreak = regexp.MustCompile(`[.!?]\s+`)
	markRun       = regexp.MustCompile(`([.!?])[.!?]+`)
)

// Statement is the outcome of EnsureStatement.
type Statement struct {
	Text string
	// Sanitized is set when the input was flagged and rewritten.
	Sanitized bool
	// UsedFallback is set when sanitizing still left a question (or nothing)
	// and the caller's fallback was substituted.
	UsedFallback bool
}

// Sanitize strips questions from text and bounds it to maxSentences
// sentences. It is a best-effort, single-pass filter: the result is not
// re-verified, so truncating at the first '?' can leave an interrogative
// fragment that IsQuestion still flags once a period is appended.
//
// Question lines are dropped whole; a question sharing a line with
// statements is only removed by the '?' truncation.
//
// The result carries at most maxSentences terminal marks. A run such as
// "!!!" or "..." counts as one mark and is collapsed to its first character;
// marks inside abbreviations or numbers count too, so "e.g." can cut early.
func (d *Detector) Sanitize(text string, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}

	if i := strings.IndexByte(text, '?'); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}

	lines := lineBreak.Split(text, -1)
	kept := lines[:0]
	for _, ln := range lines {
		if !d.IsQuestion(ln) {
			kept = append(kept, ln)
		}
	}
	text = strings.TrimSpace(strings.Join(kept, " "))

	sentences := splitSentences(text)
	if len(sentences) > maxSentences {
		sentences = sentences[:maxSentences]
	}
	text = strings.TrimSpace(strings.Join(sentences, " "))

	return terminate(boundMarks(text, maxSentences))
}

// EnsureStatement returns text unchanged when it holds no question.
// Otherwise it sanitizes once, re-checks, and substitutes fallback when the
// sanitized text is empty or still flagged.
func (d *Detector) EnsureStatement(text string, maxSentences int, fallback string) Statement {
	if !d.IsQuestion(text) {
		return Statement{Text: text}
	}
	clean := d.Sanitize(text, maxSentences)
	if clean == "" || d.IsQuestion(clean) {
		return Statement{Text: fallback, Sanitized: true, UsedFallback: true}
	}
	return Statement{Text: clean, Sanitized: true}
}

// SanitizeToStatement runs Sanitize with the default detector.
func SanitizeToStatement(text string, maxSentences int) string {
	return defaultDetector.Sanitize(text, maxSentences)
}

// EnsureStatement runs the default detector's EnsureStatement.
func EnsureStatement(text string, maxSentences int, fallback string) Statement {
	return defaultDetector.EnsureStatement(text, maxSentences, fallback)
}

// LimitSentences keeps the first maxSentences sentences and terminates the
// result with a period when it does not already end in '.' or '!'.
func LimitSentences(text string, maxSentences int) string {
	sentences := splitSentences(text)
	if len(sentences) <= maxSentences {
		return text
	}
	return terminate(strings.TrimSpace(strings.Join(sentences[:maxSentences], " ")))
}

// SentenceCount counts sentences the way Sanitize splits them.
func SentenceCount(text string) int {
	n := 0
	for _, s := range splitSentences(strings.TrimSpace(text)) {
		if s != "" {
			n++
		}
	}
	return n
}

// splitSentences splits after '.', '!' or '?' when whitespace follows,
// consuming the whitespace.
func splitSentences(text string) []string {
	var out []string
	start := 0
	for _, m := range sentenceBreak.FindAllStringIndex(text, -1) {
		out = append(out, text[start:m[0]+1])
		start = m[1]
	}
	return append(out, text[start:])
}

// boundMarks collapses mark runs and cuts text right after its nth mark.
func boundMarks(text string, n int) string {
	text = markRun.ReplaceAllString(text, "$1")
	seen := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			if seen++; seen == n {
				return text[:i+1]
			}
		}
	}
	return text
}

func terminate(text string) string {
	if text == "" {
		return text
	}
	if last := text[len(text)-1]; last != '.' && last != '!' {
		text += "."
	}
	return text
}
