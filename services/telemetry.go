package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"roga/internal/logger"
	"roga/models"
)

const hashPrefix = "sha256:"

// TelemetrySink records per-round session telemetry.
type TelemetrySink interface {
	RecordRound(ctx context.Context, t models.RoundTelemetry) error
}

// LogTelemetrySink writes telemetry as structured log lines.
type LogTelemetrySink struct {
	log *logrus.Logger
}

func NewLogTelemetrySink() *LogTelemetrySink {
	return &LogTelemetrySink{log: logger.Get("telemetry")}
}

func (s *LogTelemetrySink) RecordRound(_ context.Context, t models.RoundTelemetry) error {
	s.log.WithFields(logrus.Fields{
		"session_id":       t.SessionID,
		"scenario_id":      t.ScenarioID,
		"user_id":          t.UserID,
		"round_index":      t.RoundIndex,
		"target_skill":     t.TargetSkill,
		"score":            t.Feedback.Score,
		"issues":           t.Issues,
		"feedback_hash":    t.FeedbackHash,
		"model_latency_ms": t.ModelLatencyMS,
	}).Info("session round")
	return nil
}

// FeedbackHash returns a stable "sha256:<hex>" digest of v. Object keys are
// sorted and the encoding is compact, so equal values hash equally
// regardless of struct field order.
func FeedbackHash(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode feedback: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", fmt.Errorf("failed to decode feedback: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(generic); err != nil {
		return "", fmt.Errorf("failed to encode feedback: %w", err)
	}
	sum := sha256.Sum256(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return hashPrefix + hex.EncodeToString(sum[:]), nil
}

// contentHash is the short digest attached to coaching feedback.
func contentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:16]
}
