package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emidigital/emi-crm/controllers"
	"github.com/emidigital/emi-crm/middleware"
)

// RegisterTemplateRoutes wires the email template generator.
func RegisterTemplateRoutes(router *gin.Engine) {
	templateGroup := router.Group("/api/templates")
	templateGroup.Use(middleware.AuthMiddleware())

	templateGroup.POST("/generate", controllers.GenerateTemplate)
	templateGroup.GET("/status-labels", controllers.StatusLabels)
}
