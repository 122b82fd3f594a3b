package qi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsQuestion(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"question mark", "Is this due tomorrow?", true},
		{"question mark mid text", "Fine? Sure, go ahead", true},
		{"bare question mark", "?", true},
		{"lead-in without terminal punctuation", "Where do we start", false},
		{"lead-in with period", "Tell me where we start.", true},
		{"lead-in with exclamation", "How wonderful!", true},
		{"case insensitive", "WHY NOT.", true},
		{"copula counts as lead-in", "I think the plan is solid.", true},
		{"plain statement", "Focus on fundamentals.", false},
		{"exclamation statement", "Great work today!", false},
		{"lead-in inside a word", "Whatever works.", false},
		{"is inside discuss", "Discuss the budget.", false},
		{"lead-in line without punctuation then plain line", "What a day\nGreat.", false},
		{"second line is a question", "Focus on fundamentals.\nWhat matters most is practice.", true},
		{"rule b evaluated per line", "Why it matters\nFocus on fundamentals.", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsQuestion(tt.text))
		})
	}
}

func TestIsQuestion_AnyQuestionMarkIsAQuestion(t *testing.T) {
	for _, text := range []string{"?", "a?b", "no lead-ins here?", "line one\nline two ? trailing", "   ?   "} {
		assert.True(t, IsQuestion(text), text)
	}
}

func TestNewDetector_CustomVocabulary(t *testing.T) {
	d := NewDetector([]string{"pourquoi", " "})

	assert.True(t, d.IsQuestion("pourquoi pas."))
	assert.False(t, d.IsQuestion("why not."))
	assert.True(t, d.IsQuestion("why not?"))
}

func TestNewDetector_EmptyVocabularyUsesDefaults(t *testing.T) {
	d := NewDetector(nil)
	assert.True(t, d.IsQuestion("Which one works best."))
}
