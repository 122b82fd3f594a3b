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

func newTestCoach(gen llm.Generator, maxWords int) *Coach {
	return NewCoach(qikb.MustLoad(), NewClassifier(gen, qikb.MustLoad(), qi.QIPolicy), qi.QIPolicy, maxWords)
}

func TestCoachV3_CapsClosedQuestion(t *testing.T) {
	c := newTestCoach(nil, 0)

	fb, err := c.CoachV3(models.CoachRequest{
		UserQuestion: goodQuestion,
		Classification: models.Classification{
			Scores:         models.QIScores{Clarity: 5, Depth: 5, Relevance: 5, Empathy: 5, Overall: 5},
			Issues:         []string{"closed_question"},
			DetectedSkills: []string{"probing"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.QIScores{Clarity: 5, Depth: 2, Relevance: 5, Empathy: 5, Overall: 2}, fb.QIScore)
	assert.Equal(t, "Probing (attempted, but needs work)", fb.SkillDetected)
	assert.Equal(t, "You showed curiosity by asking a probing question.", fb.Strengths)
	assert.Equal(t, "This limits responses - try opening it up to invite more expansive thinking.", fb.ImprovementArea)
	assert.True(t, strings.HasPrefix(fb.SkillFeedback.Depth, "Shallow"))
	assert.True(t, strings.HasPrefix(fb.SkillFeedback.Clarity, "Crystal clear"))
	assert.Len(t, fb.ExampleUpgrades, 3)
	assert.NotEmpty(t, fb.CoachingNugget)
	assert.NotEmpty(t, fb.ProgressNote)
}

func TestCoachV3_GoodTier(t *testing.T) {
	fb, err := newTestCoach(nil, 0).CoachV3(models.CoachRequest{
		UserQuestion: goodQuestion,
		Classification: models.Classification{
			Scores: models.QIScores{Clarity: 4, Depth: 4, Relevance: 4, Empathy: 4, Overall: 4},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Clarifying (strong attempt)", fb.SkillDetected)
	assert.Contains(t, fb.Strengths, "focused clarifying question")
	assert.True(t, strings.HasPrefix(fb.ImprovementArea, "To push further"))
}

func TestCoachV3_MissingScoresDefault(t *testing.T) {
	fb, err := newTestCoach(nil, 0).CoachV3(models.CoachRequest{UserQuestion: goodQuestion})
	require.NoError(t, err)
	assert.Equal(t, models.QIScores{Clarity: 3, Depth: 3, Relevance: 3, Empathy: 3, Overall: 3}, fb.QIScore)
	assert.Equal(t, "Clarifying (decent effort)", fb.SkillDetected)
}

func TestCoachV3_VagueQuestionCapped(t *testing.T) {
	fb, err := newTestCoach(nil, 0).CoachV3(models.CoachRequest{
		UserQuestion: "Wait, what?",
		Classification: models.Classification{
			Scores: models.QIScores{Clarity: 5, Depth: 5, Relevance: 5, Empathy: 5, Overall: 5},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.QIScores{Clarity: 2, Depth: 2, Relevance: 2, Empathy: 2, Overall: 2}, fb.QIScore)
}

func TestCoachV3_MissingQuestion(t *testing.T) {
	_, err := newTestCoach(nil, 0).CoachV3(models.CoachRequest{})
	assert.ErrorIs(t, err, ErrMissingQuestion)
}

func TestDailyChallengeV3(t *testing.T) {
	gen := &fakeGenerator{replies: []string{`{
		"scores": {"clarity": 4, "depth": 4, "relevance": 5, "empathy": 3, "overall": 4},
		"issues": [],
		"detected_skills": ["probing"]
	}`}}
	id := 7

	out, err := newTestCoach(gen, 0).DailyChallengeV3(context.Background(), models.ClassifyRequest{
		ScenarioID:   &id,
		ScenarioText: "Churn doubled after the pricing change.",
		UserQuestion: " " + goodQuestion,
	})
	require.NoError(t, err)

	assert.Equal(t, "roga.daily_challenge.v3_enhanced", out.Schema)
	assert.Equal(t, &id, out.ScenarioID)
	assert.Equal(t, goodQuestion, out.UserQuestion)
	assert.Equal(t, 4, out.Feedback.QIScore.Overall)
	assert.Equal(t, "Probing (strong attempt)", out.Feedback.SkillDetected)

	assert.True(t, out.Meta.BrandCheck)
	assert.True(t, out.Meta.LengthOK)
	assert.Empty(t, out.Meta.BannedContent)
	assert.Len(t, out.Meta.Hash, 16)
	content := out.Feedback.Strengths + " " + out.Feedback.ImprovementArea + " " + out.Feedback.CoachingNugget
	assert.Equal(t, len(strings.Fields(content)), out.Meta.WordCount)
}

func TestMeta_FlagsBannedAndLongContent(t *testing.T) {
	c := newTestCoach(nil, 3)

	meta := c.Meta(models.CoachFeedbackV3{Strengths: "Obviously a dumb question."})
	assert.False(t, meta.BrandCheck)
	assert.Equal(t, []string{"dumb question", "obviously"}, meta.BannedContent)
	assert.Equal(t, 4, meta.WordCount)
	assert.False(t, meta.LengthOK)

	again := c.Meta(models.CoachFeedbackV3{Strengths: "Obviously a dumb question."})
	assert.Equal(t, meta.Hash, again.Hash)
}
