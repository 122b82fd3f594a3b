package models

import "time"

// RoundTelemetry records one mentor round for offline analysis.
type RoundTelemetry struct {
	SessionID      string         `json:"session_id" bson:"session_id"`
	ScenarioID     string         `json:"scenario_id" bson:"scenario_id"`
	UserID         string         `json:"user_id,omitempty" bson:"user_id,omitempty"`
	RoundIndex     int            `json:"round_index" bson:"round_index"`
	TargetSkill    string         `json:"target_skill" bson:"target_skill"`
	UserQuestion   string         `json:"user_question" bson:"user_question"`
	MentorReply    string         `json:"mentor_reply" bson:"mentor_reply"`
	Scores         map[string]int `json:"scores" bson:"scores"`
	Issues         []string       `json:"issues" bson:"issues"`
	Feedback       Scorecard      `json:"feedback" bson:"feedback"`
	FeedbackHash   string         `json:"feedback_hash" bson:"feedback_hash"`
	ModelLatencyMS int64          `json:"model_latency_ms" bson:"model_latency_ms"`
	TokensInput    int            `json:"tokens_input,omitempty" bson:"tokens_input,omitempty"`
	TokensOutput   int            `json:"tokens_output,omitempty" bson:"tokens_output,omitempty"`
	CreatedAt      time.Time      `json:"created_at" bson:"created_at"`
}
