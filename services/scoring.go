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
	"roga/models"
)

const (
	scorecardSchemaName = "roga_scorecard_v1"
	scoreTemperature    = 0.4
	scoreSeed           = 42
	defaultScenario     = "Today's Scenario"
)

// Cache stores JSON-serializable values by key. A miss is (false, nil).
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
}

// Scorer grades questions on the 0-100 rubric.
type Scorer struct {
	gen   llm.Generator
	cache Cache
	log   *logrus.Logger
}

// NewScorer creates a Scorer. cache may be nil.
func NewScorer(gen llm.Generator, cache Cache) *Scorer {
	return &Scorer{gen: gen, cache: cache, log: logger.Get("services")}
}

// rawScorecard is the model output before normalization.
type rawScorecard struct {
	Score            float64       `json:"score"`
	Rubric           []rubricWire  `json:"rubric"`
	ProTip           string        `json:"proTip"`
	SuggestedUpgrade string        `json:"suggestedUpgrade"`
	Badge            *models.Badge `json:"badge"`
}

type rubricWire struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Status string `json:"status"`
	Note   string `json:"note"`
}

// Score grades a daily challenge or session-mode question.
func (s *Scorer) Score(ctx context.Context, req models.ScoreRequest) (*models.ScoreResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrMissingQuestion
	}

	title := firstNonEmpty(req.ScenarioTitle, req.SessionTitle, defaultScenario)
	text := firstNonEmpty(req.ScenarioText, req.SessionScene)

	cacheKey := ""
	if s.cache != nil {
		if h, err := FeedbackHash(req); err == nil {
			cacheKey = "score:" + strings.TrimPrefix(h, hashPrefix)
			var cached models.ScoreResponse
			if ok, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
				s.log.WithError(err).Warn("score cache read failed")
			} else if ok {
				return &cached, nil
			}
		}
	}

	raw, err := s.generate(ctx, buildScorePrompt(req, question, title, text))
	if err != nil {
		return nil, fmt.Errorf("scoring failed: %w", err)
	}

	resp := &models.ScoreResponse{
		Scenario:  models.ScenarioInfo{Title: title, Text: text},
		Question:  question,
		Scorecard: normalizeScorecard(raw, question),
	}

	if cacheKey != "" {
		if err := s.cache.Set(ctx, cacheKey, resp); err != nil {
			s.log.WithError(err).Warn("score cache write failed")
		}
	}
	return resp, nil
}

// Evaluate grades a session question in light of the mentor's reply. A
// generator failure yields a neutral scorecard instead of an error.
func (s *Scorer) Evaluate(ctx context.Context, question, characterReply string) models.Scorecard {
	raw, err := s.generate(ctx, buildEvaluatorPrompt(question, characterReply))
	if err != nil {
		s.log.WithError(err).Warn("evaluator failed, using fallback scorecard")
		fb := fallbackScorecard()
		fb.Score = qi.RubricPolicy.Apply(qi.Scores{"overall": fb.Score}, nil, question)["overall"]
		return fb
	}
	return normalizeScorecard(raw, question)
}

func (s *Scorer) generate(ctx context.Context, prompt string) (rawScorecard, error) {
	var raw rawScorecard
	if s.gen == nil {
		return raw, llm.ErrNotConfigured
	}
	out, err := s.gen.Generate(ctx, llm.Request{
		System:      scorerSystemPrompt,
		Prompt:      prompt,
		Temperature: scoreTemperature,
		Seed:        llm.Seed(scoreSeed),
		SchemaName:  scorecardSchemaName,
		Schema:      models.ScorecardSchema(),
	})
	if err != nil {
		return raw, err
	}
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return raw, fmt.Errorf("invalid scorecard format: %w", err)
	}
	return raw, nil
}

// normalizeScorecard clamps the score, fixes the rubric to the four known
// keys in order, caps inadmissible questions and assigns a server badge when
// the model gave none.
func normalizeScorecard(raw rawScorecard, question string) models.Scorecard {
	score := qi.RubricScale.ClampFloat(raw.Score)

	rubric := make([]models.RubricItem, 0, len(models.RubricKeys))
	for _, key := range models.RubricKeys {
		item := models.RubricItem{Key: key, Label: models.RubricLabels[key], Status: models.StatusWarn}
		for _, r := range raw.Rubric {
			if r.Key != key {
				continue
			}
			item.Note = r.Note
			switch r.Status {
			case models.StatusGood, models.StatusWarn, models.StatusBad:
				item.Status = r.Status
			}
			break
		}
		rubric = append(rubric, item)
	}

	badge := raw.Badge
	if badge != nil && strings.TrimSpace(badge.Name) == "" {
		badge = nil
	}

	capped := qi.RubricPolicy.Apply(qi.Scores{"overall": score}, nil, question)["overall"]
	if capped < score {
		score = capped
		badge = nil
	}

	if badge == nil {
		badge = serverBadge(score)
	}

	return models.Scorecard{
		Score:            score,
		Rubric:           rubric,
		ProTip:           strings.TrimSpace(raw.ProTip),
		SuggestedUpgrade: strings.TrimSpace(raw.SuggestedUpgrade),
		Badge:            badge,
	}
}

func serverBadge(score int) *models.Badge {
	switch {
	case score >= 90:
		return &models.Badge{Name: "Clarity Star", Label: "Consistently sharp and focused"}
	case score >= 80:
		return &models.Badge{Name: "Insight Spark", Label: "Shows promising perspective"}
	}
	return nil
}

func fallbackScorecard() models.Scorecard {
	return models.Scorecard{
		Score: 70,
		Rubric: []models.RubricItem{
			{Key: "clarity", Label: "Clarity", Status: models.StatusGood, Note: "Clear question"},
			{Key: "depth", Label: "Depth", Status: models.StatusWarn, Note: "Could probe deeper"},
			{Key: "insight", Label: "Insight", Status: models.StatusWarn, Note: "Surface level"},
			{Key: "openness", Label: "Openness", Status: models.StatusGood, Note: "Invites discussion"},
		},
		ProTip: "Try adding more context or specific examples to deepen your question.",
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
