package controllers

import (
	"net/http"

	"roga/models"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) CreateSession(c *gin.Context) {
	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}

	session, err := ctl.Sessions.Create(c.Request.Context(), req, c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (ctl *Controller) GetSession(c *gin.Context) {
	detail, err := ctl.Sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// SubmitTurn answers one round: mentor reply plus feedback on the question.
func (ctl *Controller) SubmitTurn(c *gin.Context) {
	var req models.TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}

	resp, err := ctl.Sessions.Turn(c.Request.Context(), c.Param("id"), req, c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctl *Controller) CompleteSession(c *gin.Context) {
	resp, err := ctl.Sessions.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
