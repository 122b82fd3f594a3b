package models

import "time"

// Persona selects the mentor voice for a session.
type Persona string

const (
	PersonaPhilosopher   Persona = "generic_philosopher"
	PersonaBusinessCoach Persona = "business_coach"
	PersonaTeacherMentor Persona = "teacher_mentor"
)

// Valid reports whether p is a known persona.
func (p Persona) Valid() bool {
	switch p {
	case PersonaPhilosopher, PersonaBusinessCoach, PersonaTeacherMentor:
		return true
	}
	return false
}

// Session is a multi-round questioning session with a persona.
type Session struct {
	ID            string    `json:"id" bson:"_id"`
	UserID        string    `json:"userId,omitempty" bson:"userId,omitempty"`
	Persona       Persona   `json:"persona" bson:"persona"`
	Topic         string    `json:"topic" bson:"topic"`
	Difficulty    string    `json:"difficulty" bson:"difficulty"`
	RoundsPlanned int       `json:"roundsPlanned" bson:"roundsPlanned"`
	CurrentRound  int       `json:"currentRound" bson:"currentRound"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

// CreateSessionRequest is the payload for POST /sessions.
type CreateSessionRequest struct {
	Persona       Persona `json:"persona" binding:"required"`
	Topic         string  `json:"topic"`
	Difficulty    string  `json:"difficulty"`
	RoundsPlanned int     `json:"roundsPlanned" binding:"omitempty,min=1,max=10"`
}

// TurnRequest is the payload for POST /sessions/:id/turns.
type TurnRequest struct {
	Round        int    `json:"round" binding:"required,min=1,max=10"`
	Question     string `json:"question" binding:"required"`
	PriorSummary string `json:"priorSummary,omitempty"`
}

// Turn is one stored round of a session.
type Turn struct {
	SessionID      string    `json:"sessionId" bson:"sessionId"`
	Round          int       `json:"round" bson:"round"`
	Question       string    `json:"question" bson:"question"`
	CharacterReply string    `json:"characterReply" bson:"characterReply"`
	Feedback       Scorecard `json:"feedback" bson:"feedback"`
	PriorSummary   string    `json:"priorSummary,omitempty" bson:"priorSummary,omitempty"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}

// TurnResponse is returned after a turn is processed.
type TurnResponse struct {
	Round          int       `json:"round"`
	CharacterReply string    `json:"characterReply"`
	Feedback       Scorecard `json:"feedback"`
}

// SessionDetail is a session with its turns so far.
type SessionDetail struct {
	Session
	Turns []Turn `json:"turns"`
}

// CompleteSessionResponse summarizes a finished session.
type CompleteSessionResponse struct {
	Summary      string   `json:"summary"`
	BestQuestion string   `json:"bestQuestion"`
	AverageScore int      `json:"averageScore"`
	Badges       []string `json:"badges"`
}
