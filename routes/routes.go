package routes

import (
	"roga/controllers"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the API. auth runs on every route except the health
// check; limit guards the routes that call a model.
func SetupRoutes(router *gin.Engine, ctl *controllers.Controller, auth, limit gin.HandlerFunc) {
	router.GET("/healthz", ctl.Health)

	api := router.Group("/")
	api.Use(auth)
	{
		api.POST("/qi/check", ctl.CheckQuestion)

		scoring := api.Group("/")
		scoring.Use(limit)
		{
			scoring.POST("/score", ctl.Score)
			scoring.POST("/classify", ctl.Classify)
			scoring.POST("/coach/v3", ctl.CoachV3)
			scoring.POST("/daily-challenge-feedback/v3", ctl.DailyChallengeV3)
		}

		SetupSessionRoutes(api, ctl, limit)
	}
}

// SetupSessionRoutes registers the multi-round session endpoints.
func SetupSessionRoutes(router *gin.RouterGroup, ctl *controllers.Controller, limit gin.HandlerFunc) {
	sessions := router.Group("/sessions")
	{
		sessions.POST("", ctl.CreateSession)
		sessions.GET("/:id", ctl.GetSession)
		sessions.POST("/:id/turns", limit, ctl.SubmitTurn)
		sessions.POST("/:id/complete", ctl.CompleteSession)
	}
}
