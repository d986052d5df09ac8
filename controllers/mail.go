package controllers

import (
	"net/http"

	"github.com/emidigital/emi-crm/config"
	"github.com/emidigital/emi-crm/models"
	"github.com/emidigital/emi-crm/service"
	"github.com/emidigital/emi-crm/utils"

	"github.com/gin-gonic/gin"
)

// mailManager owns the process-wide mail credential.
var mailManager = newMailManager()

func newMailManager() *service.MailAuthManager {
	cfg := config.LoadConfig()
	return service.NewMailAuthManager(
		cfg.Mail,
		service.NewHTTPMailProvider(cfg.Mail),
		service.MongoMailAuthStore{},
	)
}

// GetAuthorizationURL returns the provider consent URL the operator has to
// open in a browser.
func GetAuthorizationURL(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"url": mailManager.BuildAuthorizationURL()},
	})
}

// ExchangeAuthorizationCode trades the pasted one-time code for tokens.
func ExchangeAuthorizationCode(c *gin.Context) {
	var req models.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "Kode otorisasi wajib diisi.", http.StatusBadRequest)
		return
	}

	if err := mailManager.ExchangeCode(c.Request.Context(), req.Code); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, nil, "Otorisasi email berhasil. Pengiriman email sudah dapat digunakan.")
}

// GetMailStatus reports whether sending is authorized.
func GetMailStatus(c *gin.Context) {
	record, err := mailManager.Status(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"authorized":  record.Authorized,
			"fromAddress": record.FromAddress,
		},
	})
}

// SendMail sends one HTML email through the authorized provider. Failures
// are surfaced to the operator as-is; nothing is retried here.
func SendMail(c *gin.Context) {
	var req models.SendMailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "Permintaan tidak valid: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	if err := mailManager.SendMail(c.Request.Context(), req.To, req.Subject, req.HTMLBody); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"to":       req.To,
		"operator": user.Username,
	}, "outbound mail sent")

	utils.SuccessResponse(c, nil, "Email berhasil dikirim ke "+req.To+".")
}
