package qikb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roga/internal/qi"
)

func TestLoad_Embedded(t *testing.T) {
	kb, err := Load()
	require.NoError(t, err)

	for _, skill := range Skills {
		for level := 1; level <= 5; level++ {
			assert.NotContains(t, kb.SkillFeedback(skill, level), "room for improvement", "%s/%d", skill, level)
		}
	}
	assert.Equal(t, "attempted, but very basic", kb.QualityRating(1))
	assert.Equal(t, "excellent execution", kb.QualityRating(5))

	for _, p := range []string{"generic_philosopher", "business_coach", "teacher_mentor"} {
		prompt, ok := kb.Persona(p)
		assert.True(t, ok, p)
		assert.Contains(t, prompt, "2-6 sentences")
	}
	_, ok := kb.Persona("pirate")
	assert.False(t, ok)
}

func TestScoreLegend(t *testing.T) {
	want := "1 = Weak (vague, closed, trivial), 2 = Below average (has issues but some merit), " +
		"3 = Okay (surface-level but workable), 4 = Strong (clear, specific, open-ended), " +
		"5 = Excellent (precise, layered, invites deep insight)"
	assert.Equal(t, want, MustLoad().ScoreLegend())

	var missing *KB
	assert.Equal(t, want, missing.ScoreLegend())

	partial := &KB{ScoreMeanings: map[int]string{3: "  Fine  "}}
	assert.Contains(t, partial.ScoreLegend(), "2 = Below average (has issues but some merit), 3 = Fine, 4 = Strong")
}

func TestParse_RejectsScoreMeaningOffScale(t *testing.T) {
	_, err := Parse([]byte("score_meanings:\n  7: Legendary\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "score_meanings")
}

func TestAccessors_Fallbacks(t *testing.T) {
	kb := &KB{}

	assert.Equal(t, "attempted, needs focus", kb.QualityRating(3))
	assert.Equal(t, "Your empathy shows room for improvement.", kb.SkillFeedback("empathy", 9))
	assert.Equal(t, "Strong probing questions are specific and actionable.", kb.Nugget("probing"))
	assert.Len(t, kb.Examples("probing"), 3)
	assert.Equal(t, "🌟 Follow Up Level 1 → Keep practicing to level up!", kb.ProgressNote("follow_up"))
	assert.Equal(t, "You showed curiosity by", kb.StrengthsStarter())
	assert.Equal(t, "To strengthen this", kb.ImprovementStarter())
}

func TestExamples_EasyFirstAndBounded(t *testing.T) {
	kb := MustLoad()

	ex := kb.Examples("probing")
	require.Len(t, ex, 3)
	assert.Equal(t, "Why does this step come before the others?", ex[0])

	assert.Len(t, kb.Examples("clarifying"), 3)
}

func TestLabel(t *testing.T) {
	kb := MustLoad()
	assert.Equal(t, "Follow-up", kb.Label("follow_up"))
	assert.Equal(t, "Devils Advocate", kb.Label("devils_advocate"))
}

func TestStrictCaps(t *testing.T) {
	kb := MustLoad()

	caps := kb.StrictCaps()
	assert.Equal(t, []string{"clarity", "overall"}, caps[qi.IssueTooVague])
	assert.Equal(t, []string{"relevance"}, caps[qi.IssueNoContext])

	scores := qi.Scores{"clarity": 5, "depth": 4, "relevance": 4, "empathy": 3, "overall": 5}
	capped := kb.ApplyStrictCaps(scores, qi.NewIssueSet(qi.IssueClosedQuestion))
	assert.Equal(t, qi.Scores{"clarity": 5, "depth": 2, "relevance": 4, "empathy": 3, "overall": 2}, capped)
	assert.Equal(t, 5, scores["overall"], "input untouched")

	again := kb.ApplyStrictCaps(capped, qi.NewIssueSet(qi.IssueClosedQuestion))
	assert.Equal(t, capped, again)
}

func TestPolicy_MergesIssueCaps(t *testing.T) {
	kb := &KB{Caps: map[string]map[string]int{qi.IssueOffTopic: {"overall": 2}}}

	p := kb.Policy(qi.QIPolicy)
	assert.ElementsMatch(t, []string{"relevance", "overall"}, p.IssueCaps[qi.IssueOffTopic])
	assert.Equal(t, []string{"relevance"}, qi.QIPolicy.IssueCaps[qi.IssueOffTopic], "base policy untouched")
}

func TestBannedIn(t *testing.T) {
	kb := MustLoad()
	assert.Equal(t, []string{"language model", "obviously"}, kb.BannedIn("As a Language Model I think this is OBVIOUSLY fine."))
	assert.Empty(t, kb.BannedIn("You asked a focused question about the deadline."))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "kb.yaml")
	require.NoError(t, os.WriteFile(good, []byte("quality_ratings:\n  3: fine\nstrict_caps:\n  too_vague: {overall: 1}\n"), 0o600))
	kb, err := LoadFile(good)
	require.NoError(t, err)
	assert.Equal(t, "fine", kb.QualityRating(3))

	badIssue := filepath.Join(dir, "bad_issue.yaml")
	require.NoError(t, os.WriteFile(badIssue, []byte("strict_caps:\n  rude: {overall: 1}\n"), 0o600))
	_, err = LoadFile(badIssue)
	assert.ErrorContains(t, err, "unknown issue")

	badCap := filepath.Join(dir, "bad_cap.yaml")
	require.NoError(t, os.WriteFile(badCap, []byte("strict_caps:\n  too_vague: {overall: 9}\n"), 0o600))
	_, err = LoadFile(badCap)
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
