package controllers

import (
	"net/http"
	"strings"

	"roga/internal/qi"

	"github.com/gin-gonic/gin"
)

// QICheckRequest asks for the deterministic checks on a piece of text.
// Question defaults to Text for the admissibility verdict.
type QICheckRequest struct {
	Text         string `json:"text" binding:"required"`
	Question     string `json:"question"`
	MaxSentences int    `json:"maxSentences" binding:"omitempty,min=1,max=20"`
	Fallback     string `json:"fallback"`
}

// QICheckResponse reports what the detector, sanitizer and capping rules
// make of the text. Ceilings are the highest 1-5 scores still reachable.
type QICheckResponse struct {
	IsQuestion    bool          `json:"isQuestion"`
	Sanitized     string        `json:"sanitized"`
	Statement     string        `json:"statement"`
	UsedFallback  bool          `json:"usedFallback"`
	SentenceCount int           `json:"sentenceCount"`
	Assessment    qi.Assessment `json:"assessment"`
	Ceilings      qi.Scores     `json:"ceilings"`
}

// CheckQuestion runs the question detector, sanitizer and admissibility
// heuristic without calling a model.
func (ctl *Controller) CheckQuestion(c *gin.Context) {
	var req QICheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}

	maxSentences := req.MaxSentences
	if maxSentences == 0 {
		maxSentences = ctl.MaxSentences
	}
	if maxSentences <= 0 {
		maxSentences = qi.DefaultMaxSentences
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		question = strings.TrimSpace(req.Text)
	}

	assessment := ctl.Policy.Rules.Assess(question)
	top := make(map[string]int, len(qi.QIScale.Dimensions))
	for _, dim := range qi.QIScale.Dimensions {
		top[dim] = qi.QIScale.Max
	}
	st := ctl.Detector.EnsureStatement(req.Text, maxSentences, req.Fallback)

	c.JSON(http.StatusOK, QICheckResponse{
		IsQuestion:    ctl.Detector.IsQuestion(req.Text),
		Sanitized:     ctl.Detector.Sanitize(req.Text, maxSentences),
		Statement:     st.Text,
		UsedFallback:  st.UsedFallback,
		SentenceCount: qi.SentenceCount(req.Text),
		Assessment:    assessment,
		Ceilings:      ctl.Policy.Apply(qi.QIScale.Normalize(top), qi.NewIssueSet(assessment.Issues()...), question),
	})
}
