package routes

import (
	"github.com/emidigital/emi-crm/repository"
	"github.com/emidigital/emi-crm/utils"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every route group.
func RegisterRoutes(router *gin.Engine) {
	RegisterAuthRoutes(router)
	RegisterProspectRoutes(router)
	RegisterActivityRoutes(router)
	RegisterFollowupRoutes(router)
	RegisterTemplateRoutes(router)
	RegisterMailRoutes(router)
	RegisterDashboardRoutes(router)

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.GET("/api/db-status", func(c *gin.Context) {
		status, err := repository.GetDatabaseStatus()
		if err != nil {
			utils.ErrorResponse(c, "Gagal membaca status basis data: "+err.Error(), 500)
			return
		}
		c.JSON(200, status)
	})
}
