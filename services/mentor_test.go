package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roga/internal/llm"
	"roga/internal/qi"
	"roga/internal/qikb"
	"roga/models"
)

func newTestMentor(gen llm.Generator) *Mentor {
	return NewMentor(gen, qikb.MustLoad(), nil, 4)
}

var mentorPrompt = MentorPrompt{
	Persona:     models.PersonaBusinessCoach,
	Scene:       "Quarterly planning",
	Round:       2,
	TargetSkill: "probing",
	Question:    goodQuestion,
}

func TestReply_CleanFirstAttempt(t *testing.T) {
	clean := "Start with the smallest experiment available this week. Track the result and adjust."
	gen := &fakeGenerator{replies: []string{clean}}

	r := newTestMentor(gen).Reply(context.Background(), mentorPrompt)

	assert.Equal(t, clean, r.Text)
	assert.False(t, r.Retried)
	assert.False(t, r.Sanitized)
	assert.False(t, r.UsedFallback)

	calls := gen.Calls()
	require.Len(t, calls, 1)
	assert.InDelta(t, 0.4, calls[0].Temperature, 1e-6)
	assert.Contains(t, calls[0].System, "experienced business coach")
	assert.Contains(t, calls[0].System, "Never ask questions")
	assert.Contains(t, calls[0].Prompt, "Conversation Round: 2")
}

func TestReply_RetriesWithCorrection(t *testing.T) {
	gen := &fakeGenerator{replies: []string{
		"What would you change first?",
		"Focus on one change at a time. Measure it before moving on.",
	}}

	r := newTestMentor(gen).Reply(context.Background(), mentorPrompt)

	assert.Equal(t, "Focus on one change at a time. Measure it before moving on.", r.Text)
	assert.True(t, r.Retried)
	assert.False(t, r.Sanitized)

	calls := gen.Calls()
	require.Len(t, calls, 2)
	assert.InDelta(t, 0.3, calls[1].Temperature, 1e-6)
	assert.True(t, strings.HasSuffix(calls[1].Prompt, mentorCorrection))
}

func TestReply_SanitizesQuestionLines(t *testing.T) {
	flagged := "Focus on the customer first.\nWhy that matters becomes clear quickly.\nKeep notes daily."
	gen := &fakeGenerator{replies: []string{flagged, flagged}}

	r := newTestMentor(gen).Reply(context.Background(), mentorPrompt)

	assert.Equal(t, "Focus on the customer first. Keep notes daily.", r.Text)
	assert.True(t, r.Sanitized)
	assert.False(t, r.UsedFallback)
	assert.False(t, qi.IsQuestion(r.Text))
}

func TestReply_FallbackWhenSanitizingFails(t *testing.T) {
	gen := &fakeGenerator{replies: []string{"Why not?", "Why not?"}}

	r := newTestMentor(gen).Reply(context.Background(), mentorPrompt)

	assert.True(t, r.UsedFallback)
	assert.Contains(t, r.Text, "important point about probing")
	assert.False(t, qi.IsQuestion(r.Text))
}

func TestReply_GeneratorDown(t *testing.T) {
	r := newTestMentor(nil).Reply(context.Background(), MentorPrompt{Persona: models.PersonaTeacherMentor, Question: "Anything"})

	assert.Contains(t, r.Text, "important aspect of clarifying")
	assert.False(t, r.UsedFallback)
	assert.False(t, qi.IsQuestion(r.Text))
}

func TestReply_LengthGuard(t *testing.T) {
	gen := &fakeGenerator{replies: []string{"One. Two. Three. Four. Five. Six."}}

	r := newTestMentor(gen).Reply(context.Background(), mentorPrompt)

	assert.Equal(t, "One. Two. Three. Four.", r.Text)
	assert.LessOrEqual(t, qi.SentenceCount(r.Text), 4)
}

func TestReply_NeverQuestion(t *testing.T) {
	inputs := []string{
		"",
		"?",
		"Is it?\nWhat now?",
		"How does it work.",
		"Good point. Which option wins?",
		"This is the key. Practice daily. Reflect often. Adjust plans. Keep going",
	}
	for _, in := range inputs {
		gen := &fakeGenerator{replies: []string{in, in}}
		r := newTestMentor(gen).Reply(context.Background(), mentorPrompt)
		assert.NotEmpty(t, r.Text, "input %q", in)
		assert.False(t, qi.IsQuestion(r.Text), "input %q gave %q", in, r.Text)
		assert.LessOrEqual(t, qi.SentenceCount(r.Text), 4)
	}
}

func TestReply_LengthGuardCanExposeQuestion(t *testing.T) {
	// Unflagged as generated: the last line ends without punctuation.
	reply := "This is the key. Practice daily. Reflect often. Adjust plans. Keep going"
	require.False(t, qi.IsQuestion(reply))
	gen := &fakeGenerator{replies: []string{reply}}

	r := newTestMentor(gen).Reply(context.Background(), mentorPrompt)

	assert.False(t, r.Retried)
	assert.True(t, r.UsedFallback)
	assert.Contains(t, r.Text, "important point about probing")
	assert.False(t, qi.IsQuestion(r.Text))
}

func TestFallback_GuardsAgainstQuestionSkill(t *testing.T) {
	m := newTestMentor(nil)
	assert.Equal(t, safeFallback, m.fallback("what comes next"))
	assert.False(t, qi.IsQuestion(safeFallback))
}
