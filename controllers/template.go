package controllers

import (
	"net/http"

	"github.com/emidigital/emi-crm/models"
	"github.com/emidigital/emi-crm/repository"
	"github.com/emidigital/emi-crm/service"
	"github.com/emidigital/emi-crm/utils"

	"github.com/gin-gonic/gin"
)

// GenerateTemplateRequest asks for an outbound email body for a prospect.
// RoleHint/IndustryHint default to the prospect's own contact title and
// industry; ActivityID, when present, drives the follow-up numbering.
type GenerateTemplateRequest struct {
	ProspectID   string  `json:"prospectId" binding:"required"`
	ActivityID   string  `json:"activityId"`
	RoleHint     *string `json:"roleHint"`
	IndustryHint *string `json:"industryHint"`
}

// GenerateTemplate selects the email variant for a prospect and returns the
// rendered HTML. The follow-up number passed to the selector is the count
// of existing followups plus one: which attempt this would be.
func GenerateTemplate(c *gin.Context) {
	var req GenerateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "Permintaan tidak valid: "+err.Error(), http.StatusBadRequest)
		return
	}

	prospect, user, ok := findOwnedProspect(c, req.ProspectID)
	if !ok {
		return
	}

	roleHint := prospect.ContactTitle
	if req.RoleHint != nil {
		roleHint = *req.RoleHint
	}
	industryHint := prospect.Industry
	if req.IndustryHint != nil {
		industryHint = *req.IndustryHint
	}

	followupNumber := 1
	if req.ActivityID != "" {
		if _, _, ok := findOwnedActivity(c, req.ActivityID); !ok {
			return
		}
		n, err := followupLedger.NextFollowupNumber(c.Request.Context(), req.ActivityID)
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		followupNumber = n
	}

	sender := senderProfileFor(user)
	html := service.SelectTemplate(*prospect, roleHint, industryHint, followupNumber, sender)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Template email berhasil dibuat.",
		"data": gin.H{
			"html":           html,
			"followupNumber": followupNumber,
		},
	})
}

// senderProfileFor resolves the operator's profile for interpolation,
// falling back to the JWT identity when the account lookup fails.
func senderProfileFor(user *utils.LoginUser) service.SenderProfile {
	marketer, err := repository.FindMarketerByID(user.ID)
	if err != nil {
		utils.LogError(err, map[string]interface{}{"marketerId": user.ID}, "sender profile lookup failed")
		return service.SenderProfile{Name: user.Username}
	}
	return service.SenderProfile{
		Name:  marketer.FullName,
		Role:  marketer.Position,
		Email: marketer.Email,
	}
}

// StatusLabels exposes the status key/label mapping so clients never
// hardcode it.
func StatusLabels(c *gin.Context) {
	labels := make([]gin.H, 0, len(models.AllStatuses()))
	for _, s := range models.AllStatuses() {
		labels = append(labels, gin.H{"status": s, "label": s.Label()})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": labels})
}
