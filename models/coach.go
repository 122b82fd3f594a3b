package models

import "roga/internal/qi"

// ClassifyRequest is the payload for POST /classify and the v3 daily
// challenge pipeline.
type ClassifyRequest struct {
	ScenarioID   *int   `json:"scenario_id,omitempty"`
	ScenarioText string `json:"scenario_text"`
	UserQuestion string `json:"user_question"`
}

// QIScores are the 1-5 question-intelligence scores.
type QIScores struct {
	Clarity   int `json:"clarity" bson:"clarity"`
	Depth     int `json:"depth" bson:"depth"`
	Relevance int `json:"relevance" bson:"relevance"`
	Empathy   int `json:"empathy" bson:"empathy"`
	Overall   int `json:"overall" bson:"overall"`
}

// Map converts to the keyed form used by the capping rules.
func (s QIScores) Map() qi.Scores {
	return qi.Scores{
		"clarity":   s.Clarity,
		"depth":     s.Depth,
		"relevance": s.Relevance,
		"empathy":   s.Empathy,
		"overall":   s.Overall,
	}
}

// QIScoresFrom reads the five QI dimensions from m; missing keys are zero.
func QIScoresFrom(m qi.Scores) QIScores {
	return QIScores{
		Clarity:   m["clarity"],
		Depth:     m["depth"],
		Relevance: m["relevance"],
		Empathy:   m["empathy"],
		Overall:   m["overall"],
	}
}

// Classification is the scored and tagged view of a question.
type Classification struct {
	Scores         QIScores `json:"scores"`
	Issues         []string `json:"issues"`
	DetectedSkills []string `json:"detected_skills"`
}

// CoachRequest is the payload for POST /coach/v3.
type CoachRequest struct {
	ScenarioText   string         `json:"scenario_text"`
	UserQuestion   string         `json:"user_question"`
	Classification Classification `json:"classification"`
}

// SkillFeedback holds one line of guidance per QI dimension.
type SkillFeedback struct {
	Clarity   string `json:"clarity"`
	Depth     string `json:"depth"`
	Relevance string `json:"relevance"`
	Empathy   string `json:"empathy"`
}

// CoachFeedbackV3 is the six-part coaching framework.
type CoachFeedbackV3 struct {
	QIScore         QIScores      `json:"qi_score"`
	SkillFeedback   SkillFeedback `json:"skill_feedback"`
	SkillDetected   string        `json:"skill_detected"`
	Strengths       string        `json:"strengths"`
	ImprovementArea string        `json:"improvement_area"`
	CoachingNugget  string        `json:"coaching_nugget"`
	ExampleUpgrades []string      `json:"example_upgrades"`
	ProgressNote    string        `json:"progress_note"`
}

// CoachMeta reports brand and length checks on generated feedback.
type CoachMeta struct {
	BrandCheck    bool     `json:"brand_check"`
	LengthOK      bool     `json:"length_ok"`
	WordCount     int      `json:"word_count"`
	BannedContent []string `json:"banned_content"`
	Hash          string   `json:"hash"`
}

// DailyChallengeSchemaV3 tags the v3 daily challenge response shape.
const DailyChallengeSchemaV3 = "roga.daily_challenge.v3_enhanced"

// DailyChallengeFeedbackV3 is returned by POST /daily-challenge-feedback/v3.
type DailyChallengeFeedbackV3 struct {
	Schema         string          `json:"schema"`
	ScenarioID     *int            `json:"scenario_id"`
	UserQuestion   string          `json:"user_question"`
	Classification Classification  `json:"classification"`
	Feedback       CoachFeedbackV3 `json:"feedback"`
	Meta           CoachMeta       `json:"meta"`
}
