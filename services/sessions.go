package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"roga/internal/logger"
	"roga/internal/qi"
	"roga/models"
)

const (
	defaultTopic         = "Career guidance and strategic thinking"
	defaultDifficulty    = "intermediate"
	defaultRoundsPlanned = 5
	maxRoundsPlanned     = 10
)

// SessionStore persists sessions and their turns. GetSession and AppendTurn
// return ErrSessionNotFound for unknown ids.
type SessionStore interface {
	CreateSession(ctx context.Context, s models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	AppendTurn(ctx context.Context, t models.Turn) error
	ListTurns(ctx context.Context, sessionID string) ([]models.Turn, error)
}

// Sessions runs multi-round mentor sessions.
type Sessions struct {
	store     SessionStore
	mentor    *Mentor
	scorer    *Scorer
	telemetry TelemetrySink
	log       *logrus.Logger
	now       func() time.Time
}

// NewSessions wires the session flow. telemetry may be nil.
func NewSessions(store SessionStore, mentor *Mentor, scorer *Scorer, telemetry TelemetrySink) *Sessions {
	return &Sessions{
		store:     store,
		mentor:    mentor,
		scorer:    scorer,
		telemetry: telemetry,
		log:       logger.Get("services"),
		now:       time.Now,
	}
}

// Create starts a session, filling defaults for omitted fields.
func (s *Sessions) Create(ctx context.Context, req models.CreateSessionRequest, userID string) (*models.Session, error) {
	if !req.Persona.Valid() {
		return nil, ErrInvalidPersona
	}
	rounds := req.RoundsPlanned
	if rounds == 0 {
		rounds = defaultRoundsPlanned
	}
	if rounds < 1 || rounds > maxRoundsPlanned {
		return nil, fmt.Errorf("%w: must be between 1 and %d", ErrInvalidRounds, maxRoundsPlanned)
	}

	session := models.Session{
		ID:            uuid.NewString(),
		UserID:        userID,
		Persona:       req.Persona,
		Topic:         firstNonEmpty(strings.TrimSpace(req.Topic), defaultTopic),
		Difficulty:    firstNonEmpty(strings.TrimSpace(req.Difficulty), defaultDifficulty),
		RoundsPlanned: rounds,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &session, nil
}

// Get returns a session and its turns.
func (s *Sessions) Get(ctx context.Context, id string) (*models.SessionDetail, error) {
	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	turns, err := s.store.ListTurns(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.SessionDetail{Session: *session, Turns: turns}, nil
}

// Turn answers the user's question in persona, scores it and stores the round.
func (s *Sessions) Turn(ctx context.Context, id string, req models.TurnRequest, userID string) (*models.TurnResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrMissingQuestion
	}
	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Round > session.RoundsPlanned {
		return nil, ErrRoundExceeded
	}

	assessment := qi.Assess(question)
	target := defaultSkill
	if assessment.Closed {
		target = "open_question"
	}

	start := s.now()
	reply := s.mentor.Reply(ctx, MentorPrompt{
		Persona:      session.Persona,
		Scene:        session.Topic,
		Round:        req.Round,
		TargetSkill:  target,
		Question:     question,
		PriorSummary: req.PriorSummary,
	})
	feedback := s.scorer.Evaluate(ctx, question, reply.Text)
	latency := s.now().Sub(start)

	turn := models.Turn{
		SessionID:      id,
		Round:          req.Round,
		Question:       question,
		CharacterReply: reply.Text,
		Feedback:       feedback,
		PriorSummary:   req.PriorSummary,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.store.AppendTurn(ctx, turn); err != nil {
		return nil, fmt.Errorf("failed to store turn: %w", err)
	}

	s.record(ctx, session, turn, target, userID, assessment, latency)

	return &models.TurnResponse{Round: req.Round, CharacterReply: reply.Text, Feedback: feedback}, nil
}

func (s *Sessions) record(ctx context.Context, session *models.Session, turn models.Turn, target, userID string, a qi.Assessment, latency time.Duration) {
	if s.telemetry == nil {
		return
	}
	hash, err := FeedbackHash(turn.Feedback)
	if err != nil {
		s.log.WithError(err).Warn("failed to hash feedback")
	}
	issues := a.Issues()
	if issues == nil {
		issues = []string{}
	}
	t := models.RoundTelemetry{
		SessionID:      session.ID,
		ScenarioID:     session.Topic,
		UserID:         userID,
		RoundIndex:     turn.Round,
		TargetSkill:    target,
		UserQuestion:   turn.Question,
		MentorReply:    turn.CharacterReply,
		Scores:         map[string]int{"overall": turn.Feedback.Score},
		Issues:         issues,
		Feedback:       turn.Feedback,
		FeedbackHash:   hash,
		ModelLatencyMS: latency.Milliseconds(),
		CreatedAt:      turn.CreatedAt,
	}
	if err := s.telemetry.RecordRound(ctx, t); err != nil {
		s.log.WithError(err).WithField("session_id", session.ID).Warn("failed to record telemetry")
	}
}

// Complete summarizes a session: best question, average score and badges.
func (s *Sessions) Complete(ctx context.Context, id string) (*models.CompleteSessionResponse, error) {
	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	turns, err := s.store.ListTurns(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(turns) == 0 {
		return nil, ErrNoTurns
	}

	best := turns[0]
	total := 0
	perfect := false
	for _, t := range turns {
		if t.Feedback.Score > best.Feedback.Score {
			best = t
		}
		total += t.Feedback.Score
		if t.Feedback.Score >= 95 {
			perfect = true
		}
	}
	avg := float64(total) / float64(len(turns))

	badges := []string{}
	switch {
	case avg >= 90:
		badges = append(badges, "Master Questioner")
	case avg >= 80:
		badges = append(badges, "Skilled Inquirer")
	case avg >= 70:
		badges = append(badges, "Thoughtful Asker")
	}
	if perfect {
		badges = append(badges, "Perfect Round")
	}

	persona := strings.ReplaceAll(string(session.Persona), "_", " ")
	return &models.CompleteSessionResponse{
		Summary:      fmt.Sprintf("Completed %d-round session with %s. Average score: %.0f/100.", len(turns), persona, avg),
		BestQuestion: best.Question,
		AverageScore: int(math.RoundToEven(avg)),
		Badges:       badges,
	}, nil
}
