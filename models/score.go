package models

// RubricKeys are the scorecard dimensions in display order.
var RubricKeys = []string{"clarity", "depth", "insight", "openness"}

// RubricLabels maps a rubric key to its display label.
var RubricLabels = map[string]string{
	"clarity":  "Clarity",
	"depth":    "Depth",
	"insight":  "Insight",
	"openness": "Openness",
}

// Rubric statuses.
const (
	StatusGood = "good"
	StatusWarn = "warn"
	StatusBad  = "bad"
)

// RubricItem is one scored dimension of a question.
type RubricItem struct {
	Key    string `json:"key" bson:"key"`
	Label  string `json:"label" bson:"label"`
	Status string `json:"status" bson:"status"`
	Note   string `json:"note" bson:"note"`
}

// Badge is an optional award attached to a score.
type Badge struct {
	Name  string `json:"name" bson:"name"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
}

// ScoreRequest is the payload for POST /score. Daily challenges send the
// scenario fields; session mode sends mode "session" with the session fields.
type ScoreRequest struct {
	Question      string `json:"question"`
	ScenarioID    *int   `json:"scenarioId,omitempty"`
	ScenarioIDAlt *int   `json:"scenario_id,omitempty"`
	ScenarioTitle string `json:"scenarioTitle,omitempty"`
	ScenarioText  string `json:"scenarioText,omitempty"`

	Mode           string `json:"mode,omitempty"`
	Round          int    `json:"round,omitempty"`
	SessionID      string `json:"sessionId,omitempty"`
	SessionTitle   string `json:"sessionTitle,omitempty"`
	SessionScene   string `json:"sessionScene,omitempty"`
	SessionPersona string `json:"sessionPersona,omitempty"`
	PriorSummary   string `json:"priorSummary,omitempty"`
}

// Scenario returns the scenario id from either spelling.
func (r ScoreRequest) Scenario() *int {
	if r.ScenarioID != nil {
		return r.ScenarioID
	}
	return r.ScenarioIDAlt
}

// SessionMode reports whether the request carries multi-round context.
func (r ScoreRequest) SessionMode() bool {
	return r.Mode == "session"
}

// ScenarioInfo echoes the scenario a question was scored against.
type ScenarioInfo struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Scorecard is the normalized LLM evaluation of a question.
type Scorecard struct {
	Score            int          `json:"score" bson:"score"`
	Rubric           []RubricItem `json:"rubric" bson:"rubric"`
	ProTip           string       `json:"proTip,omitempty" bson:"proTip,omitempty"`
	SuggestedUpgrade string       `json:"suggestedUpgrade,omitempty" bson:"suggestedUpgrade,omitempty"`
	Badge            *Badge       `json:"badge,omitempty" bson:"badge,omitempty"`
}

// ScoreResponse is returned by POST /score.
type ScoreResponse struct {
	Scenario ScenarioInfo `json:"scenario"`
	Question string       `json:"question"`
	Scorecard
}
