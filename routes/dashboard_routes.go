package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emidigital/emi-crm/controllers"
	"github.com/emidigital/emi-crm/middleware"
)

// RegisterDashboardRoutes wires the dashboard stats route.
func RegisterDashboardRoutes(router *gin.Engine) {
	dashboardGroup := router.Group("/api/dashboard")
	dashboardGroup.Use(middleware.AuthMiddleware())

	dashboardGroup.GET("/stats", controllers.GetDashboardStats)
}
