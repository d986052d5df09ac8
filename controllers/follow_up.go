package controllers

import (
	"net/http"

	"github.com/emidigital/emi-crm/models"
	"github.com/emidigital/emi-crm/repository"
	"github.com/emidigital/emi-crm/service"
	"github.com/emidigital/emi-crm/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// followupLedger is the core ledger over the mongo stores.
var followupLedger = service.NewFollowupLedger(service.MongoActivityStore{}, service.MongoFollowupStore{})

// GetActivityFollowups lists an activity's followups, newest first.
func GetActivityFollowups(c *gin.Context) {
	activity, _, ok := findOwnedActivity(c, c.Param("id"))
	if !ok {
		return
	}

	records, err := followupLedger.List(c.Request.Context(), activity.ID.Hex())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"followups": records,
			"total":     len(records),
		},
	})
}

// CreateFollowup appends a followup. The new status lands on the parent
// activity and the record is inserted as one unit; the ledger reports any
// partial failure as a failed operation.
func CreateFollowup(c *gin.Context) {
	var input models.CreateFollowupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, "Permintaan tidak valid: "+err.Error(), http.StatusBadRequest)
		return
	}

	_, user, ok := findOwnedActivity(c, input.ActivityID)
	if !ok {
		return
	}

	record, err := followupLedger.Append(c.Request.Context(), service.Author{
		ID:   user.ID,
		Name: user.Username,
	}, input)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"followupId": record.ID.Hex(),
		"activityId": input.ActivityID,
		"status":     input.Status,
	}, "followup appended")

	utils.SuccessResponse(c, record, "Follow-up berhasil dicatat.", http.StatusCreated)
}

// GetDueFollowups returns the follow-ups coming due between today (WIB) and
// seven days out, ordered by due date.
func GetDueFollowups(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	query := bson.M{}
	if !utils.IsAdmin(models.UserRole(user.Role)) {
		query["marketerId"] = user.ID
	}

	ctx := repository.GetContext()
	cursor, err := repository.Collection(repository.ActivitiesCollection).Find(ctx, query)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var activities []models.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		utils.HandleError(c, err)
		return
	}

	due, err := followupLedger.DueThisWeek(c.Request.Context(), activities)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	// dates go out in display-timezone form
	type dueView struct {
		models.DueFollowup
		DueDate string `json:"dueDate"`
	}
	views := make([]dueView, 0, len(due))
	for _, d := range due {
		views = append(views, dueView{
			DueFollowup: d,
			DueDate:     utils.ToDisplay(*d.Followup.NextFollowupDate).Format("2006-01-02"),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"due":   views,
			"total": len(views),
		},
	})
}
