package controllers

import (
	"errors"
	"net/http"

	"roga/internal/qi"
	"roga/services"

	"github.com/gin-gonic/gin"
)

// Controller holds the services behind the HTTP handlers.
type Controller struct {
	Scorer       *services.Scorer
	Classifier   *services.Classifier
	Coach        *services.Coach
	Sessions     *services.Sessions
	Detector     *qi.Detector
	Policy       qi.CapPolicy
	MaxSentences int
}

// respondError maps service errors onto status codes. Anything unrecognized
// is treated as a generation or storage failure.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, services.ErrMissingQuestion):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing question"})
	case errors.Is(err, services.ErrInvalidPersona),
		errors.Is(err, services.ErrInvalidRounds),
		errors.Is(err, services.ErrRoundExceeded),
		errors.Is(err, services.ErrNoTurns):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func invalidPayload(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
}

// Health reports liveness.
func (ctl *Controller) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
