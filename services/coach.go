package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"roga/internal/qi"
	"roga/internal/qikb"
	"roga/models"
)

const (
	defaultSkill       = "clarifying"
	tierGood           = "good"
	tierNeedsWork      = "needs_work"
	maxProgressNoteLen = 140
)

// Coach turns a classification into the six-part v3 coaching feedback.
type Coach struct {
	kb         *qikb.KB
	classifier *Classifier
	policy     qi.CapPolicy
	maxWords   int
}

// NewCoach creates a Coach. The knowledge base's strict caps are merged into
// policy.
func NewCoach(kb *qikb.KB, classifier *Classifier, policy qi.CapPolicy, maxWords int) *Coach {
	if maxWords <= 0 {
		maxWords = 120
	}
	return &Coach{kb: kb, classifier: classifier, policy: kb.Policy(policy), maxWords: maxWords}
}

// CoachV3 builds coaching feedback for an already classified question.
func (c *Coach) CoachV3(req models.CoachRequest) (models.CoachFeedbackV3, error) {
	question := strings.TrimSpace(req.UserQuestion)
	if question == "" {
		return models.CoachFeedbackV3{}, ErrMissingQuestion
	}

	issues := qi.NewIssueSet(req.Classification.Issues...)
	scores := c.policy.Apply(qi.QIScale.Normalize(presentScores(req.Classification.Scores)), issues, question)
	scores = c.kb.ApplyStrictCaps(scores, issues)

	skill := defaultSkill
	if len(req.Classification.DetectedSkills) > 0 && req.Classification.DetectedSkills[0] != "" {
		skill = req.Classification.DetectedSkills[0]
	}
	tier := tierNeedsWork
	if scores["overall"] >= 4 {
		tier = tierGood
	}

	return models.CoachFeedbackV3{
		QIScore: models.QIScoresFrom(scores),
		SkillFeedback: models.SkillFeedback{
			Clarity:   c.kb.SkillFeedback("clarity", scores["clarity"]),
			Depth:     c.kb.SkillFeedback("depth", scores["depth"]),
			Relevance: c.kb.SkillFeedback("relevance", scores["relevance"]),
			Empathy:   c.kb.SkillFeedback("empathy", scores["empathy"]),
		},
		SkillDetected:   fmt.Sprintf("%s (%s)", c.kb.Label(skill), c.kb.QualityRating(scores["overall"])),
		Strengths:       c.strengths(skill, tier),
		ImprovementArea: c.improvementArea(issues, tier),
		CoachingNugget:  c.kb.Nugget(skill),
		ExampleUpgrades: c.kb.Examples(skill),
		ProgressNote:    truncateRunes(c.kb.ProgressNote(skill), maxProgressNoteLen),
	}, nil
}

// DailyChallengeV3 classifies, coaches and attaches content checks.
func (c *Coach) DailyChallengeV3(ctx context.Context, req models.ClassifyRequest) (*models.DailyChallengeFeedbackV3, error) {
	classification, err := c.classifier.Classify(ctx, req)
	if err != nil {
		return nil, err
	}
	feedback, err := c.CoachV3(models.CoachRequest{
		ScenarioText:   req.ScenarioText,
		UserQuestion:   req.UserQuestion,
		Classification: classification,
	})
	if err != nil {
		return nil, err
	}

	return &models.DailyChallengeFeedbackV3{
		Schema:         models.DailyChallengeSchemaV3,
		ScenarioID:     req.ScenarioID,
		UserQuestion:   strings.TrimSpace(req.UserQuestion),
		Classification: classification,
		Feedback:       feedback,
		Meta:           c.Meta(feedback),
	}, nil
}

// Meta runs the brand and length checks over the prose parts of feedback.
func (c *Coach) Meta(feedback models.CoachFeedbackV3) models.CoachMeta {
	content := strings.Join([]string{feedback.Strengths, feedback.ImprovementArea, feedback.CoachingNugget}, " ")
	words := len(strings.Fields(content))
	banned := c.kb.BannedIn(content)
	return models.CoachMeta{
		BrandCheck:    len(banned) == 0,
		LengthOK:      words <= c.maxWords,
		WordCount:     words,
		BannedContent: banned,
		Hash:          contentHash(content),
	}
}

func (c *Coach) strengths(skill, tier string) string {
	kind := strings.ToLower(c.kb.Label(skill))
	if tier == tierGood {
		return fmt.Sprintf("You asked a focused %s question that gives the other person a clear place to start.", kind)
	}
	return fmt.Sprintf("%s asking a %s question.", c.kb.StrengthsStarter(), kind)
}

func (c *Coach) improvementArea(issues qi.IssueSet, tier string) string {
	switch {
	case issues.Has(qi.IssueTooVague):
		return "Your question is too vague - point to the exact part that needs explanation."
	case issues.Has(qi.IssueClosedQuestion):
		return "This limits responses - try opening it up to invite more expansive thinking."
	case issues.Has(qi.IssueOffTopic), issues.Has(qi.IssueNoContext):
		return "Tie your question to the scenario so the answer helps with the actual situation."
	case issues.Has(qi.IssueTooBroad):
		return "Narrow the scope to one decision or detail so the answer can go deep."
	case issues.Has(qi.IssueLowEmpathy):
		return "Acknowledge the other person's position to invite a more candid answer."
	case tier == tierGood:
		return "To push further, connect your question to the stakes or tradeoffs in this scenario."
	}
	return c.kb.ImprovementStarter() + ", add more specificity to guide a helpful response."
}

// presentScores drops zero values so Normalize treats them as missing.
func presentScores(s models.QIScores) map[string]int {
	out := map[string]int{}
	for k, v := range s.Map() {
		if v != 0 {
			out[k] = v
		}
	}
	return out
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n-1])) + "…"
}
