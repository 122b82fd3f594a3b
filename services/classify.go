package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"roga/internal/llm"
	"roga/internal/logger"
	"roga/internal/qi"
	"roga/internal/qikb"
	"roga/models"
)

const (
	classificationSchemaName = "roga_qi_classification_v1"
	classifyTemperature      = 0.2
)

// Classifier scores a question on the 1-5 QI scale and tags its issues and
// question types.
type Classifier struct {
	gen    llm.Generator
	rules  qi.Rules
	policy qi.CapPolicy
	system string
	log    *logrus.Logger
}

// NewClassifier creates a Classifier. A nil generator classifies with the
// local heuristic only. The system prompt takes its 1-5 legend from kb, which
// may be nil.
func NewClassifier(gen llm.Generator, kb *qikb.KB, policy qi.CapPolicy) *Classifier {
	return &Classifier{
		gen:    gen,
		rules:  policy.Rules,
		policy: policy,
		system: buildClassifierSystem(kb.ScoreLegend()),
		log:    logger.Get("services"),
	}
}

type rawClassification struct {
	Scores         map[string]int `json:"scores"`
	Issues         []string       `json:"issues"`
	DetectedSkills []string       `json:"detected_skills"`
}

// Classify returns a normalized classification. Generator failures fall back
// to heuristic-only scoring; only a missing question is an error.
func (c *Classifier) Classify(ctx context.Context, req models.ClassifyRequest) (models.Classification, error) {
	question := strings.TrimSpace(req.UserQuestion)
	if question == "" {
		return models.Classification{}, ErrMissingQuestion
	}

	raw, err := c.generate(ctx, req.ScenarioText, question)
	if err != nil {
		c.log.WithError(err).Warn("classifier unavailable, using heuristic classification")
		raw = rawClassification{}
	}

	assessment := c.rules.Assess(question)

	issues := qi.NewIssueSet()
	for _, tag := range raw.Issues {
		if known(qi.KnownIssues, strings.ToLower(strings.TrimSpace(tag))) {
			issues.Add(tag)
		}
	}
	for _, tag := range assessment.Issues() {
		issues.Add(tag)
	}

	scores := c.policy.Apply(qi.QIScale.Normalize(raw.Scores), issues, question)

	return models.Classification{
		Scores:         models.QIScoresFrom(scores),
		Issues:         orderedIssues(issues),
		DetectedSkills: detectedSkills(raw.DetectedSkills, assessment),
	}, nil
}

func (c *Classifier) generate(ctx context.Context, scenario, question string) (rawClassification, error) {
	var raw rawClassification
	if c.gen == nil {
		return raw, llm.ErrNotConfigured
	}
	out, err := c.gen.Generate(ctx, llm.Request{
		System:      c.system,
		Prompt:      buildClassifierPrompt(scenario, question),
		Temperature: classifyTemperature,
		Seed:        llm.Seed(scoreSeed),
		SchemaName:  classificationSchemaName,
		Schema:      models.ClassificationSchema(),
	})
	if err != nil {
		return raw, err
	}
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return raw, fmt.Errorf("invalid classification format: %w", err)
	}
	return raw, nil
}

// orderedIssues lists the set in vocabulary order.
func orderedIssues(set qi.IssueSet) []string {
	out := []string{}
	for _, tag := range qi.KnownIssues {
		if set.Has(tag) {
			out = append(out, tag)
		}
	}
	return out
}

// detectedSkills keeps known skills in model order, deduplicated. With none
// left it infers one from the heuristic.
func detectedSkills(raw []string, a qi.Assessment) []string {
	out := []string{}
	for _, s := range raw {
		s = strings.ToLower(strings.TrimSpace(s))
		if known(models.DetectedSkills, s) && !known(out, s) {
			out = append(out, s)
		}
	}
	if len(out) > 0 {
		return out
	}
	if a.Closed {
		return []string{"closed_question"}
	}
	return []string{"clarifying"}
}

func known(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
