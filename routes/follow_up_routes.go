package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emidigital/emi-crm/controllers"
	"github.com/emidigital/emi-crm/middleware"
)

// RegisterFollowupRoutes wires the followup ledger routes.
func RegisterFollowupRoutes(router *gin.Engine) {
	followupGroup := router.Group("/api/followups")
	followupGroup.Use(middleware.AuthMiddleware())

	followupGroup.POST("", controllers.CreateFollowup)
	followupGroup.GET("/due", controllers.GetDueFollowups)
}
