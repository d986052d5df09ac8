package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emidigital/emi-crm/controllers"
	"github.com/emidigital/emi-crm/middleware"
)

// RegisterActivityRoutes wires activity CRUD.
func RegisterActivityRoutes(router *gin.Engine) {
	activityGroup := router.Group("/api/activities")
	activityGroup.Use(middleware.AuthMiddleware())

	activityGroup.GET("", controllers.ListActivities)
	activityGroup.GET("/:id", controllers.GetActivity)
	activityGroup.POST("", controllers.CreateActivity)
	activityGroup.PUT("/:id", controllers.UpdateActivity)
	activityGroup.DELETE("/:id", controllers.DeleteActivity)

	activityGroup.GET("/:id/followups", controllers.GetActivityFollowups)
}
