package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emidigital/emi-crm/controllers"
	"github.com/emidigital/emi-crm/middleware"
)

// RegisterMailRoutes wires the mail authorization and send routes.
func RegisterMailRoutes(router *gin.Engine) {
	mailGroup := router.Group("/api/mail")
	mailGroup.Use(middleware.AuthMiddleware())

	mailGroup.GET("/status", controllers.GetMailStatus)
	mailGroup.POST("/send", controllers.SendMail)

	// reauthorizing swaps the shared credential, admins only
	adminGroup := mailGroup.Group("")
	adminGroup.Use(middleware.AdminOnly())
	adminGroup.GET("/authorize-url", controllers.GetAuthorizationURL)
	adminGroup.POST("/exchange", controllers.ExchangeAuthorizationCode)
}
