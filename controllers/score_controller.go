package controllers

import (
	"net/http"

	"roga/models"

	"github.com/gin-gonic/gin"
)

// Score grades a daily challenge or session-mode question on the 0-100 rubric.
func (ctl *Controller) Score(c *gin.Context) {
	var req models.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}

	resp, err := ctl.Scorer.Score(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctl *Controller) Classify(c *gin.Context) {
	var req models.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}

	classification, err := ctl.Classifier.Classify(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, classification)
}

// CoachV3 turns a client-supplied classification into coaching feedback.
func (ctl *Controller) CoachV3(c *gin.Context) {
	var req models.CoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}

	feedback, err := ctl.Coach.CoachV3(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedback)
}

// DailyChallengeV3 classifies and coaches in one call.
func (ctl *Controller) DailyChallengeV3(c *gin.Context) {
	var req models.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}

	resp, err := ctl.Coach.DailyChallengeV3(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
