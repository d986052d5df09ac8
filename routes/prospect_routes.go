package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emidigital/emi-crm/controllers"
	"github.com/emidigital/emi-crm/middleware"
)

// RegisterProspectRoutes wires prospect CRUD and import.
func RegisterProspectRoutes(router *gin.Engine) {
	prospectGroup := router.Group("/api/prospects")
	prospectGroup.Use(middleware.AuthMiddleware())

	prospectGroup.GET("", controllers.ListProspects)
	prospectGroup.GET("/:id", controllers.GetProspect)
	prospectGroup.POST("", controllers.CreateProspect)
	prospectGroup.PUT("/:id", controllers.UpdateProspect)
	prospectGroup.DELETE("/:id", controllers.DeleteProspect)

	// saved outbound email template
	prospectGroup.PUT("/:id/template", controllers.SaveProspectTemplate)

	// third-party lead import
	prospectGroup.POST("/import", controllers.ImportProspects)
}
