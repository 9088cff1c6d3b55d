package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/warplabs/warps-engine/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, adminSecret string) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Shared game state (public read access)
		v1.GET("/state", handler.GetState)

		// Token inventory (public read access)
		v1.GET("/tokens/:owner", handler.ListTokens)

		// Composite game flow
		v1.GET("/game/sessions/:owner", handler.GetSession)
		v1.POST("/game/select", handler.SelectToken)
		v1.POST("/game/clear", handler.ClearSelection)
		v1.POST("/game/composite", handler.SubmitComposite)
		v1.POST("/game/mint", handler.Mint)
		v1.POST("/game/claim", handler.ClaimPrize)

		// Points ledger
		v1.POST("/points", handler.AwardPoints)
		v1.GET("/points", handler.GetLeaderboard)
		v1.GET("/points/:username", handler.GetPoints)

		// Referrals
		v1.POST("/referrals", handler.SaveReferral)

		// Signed frame lifecycle webhook
		v1.POST("/webhooks/frame", handler.HandleFrameWebhook)

		// Privileged owner mint (requires the pre-shared admin secret)
		v1.POST("/admin/mint", middleware.SecretAuth(adminSecret), handler.AdminMint)
	}
}
