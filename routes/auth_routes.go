package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emidigital/emi-crm/controllers"
)

// RegisterAuthRoutes wires the account routes.
func RegisterAuthRoutes(router *gin.Engine) {
	authGroup := router.Group("/api/auth")

	authGroup.POST("/login", controllers.Login)
	authGroup.POST("/register", controllers.Register)
}
