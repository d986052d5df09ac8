package controllers

import (
	"net/http"
	"time"

	"github.com/emidigital/emi-crm/models"
	"github.com/emidigital/emi-crm/repository"
	"github.com/emidigital/emi-crm/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// findOwnedActivity loads an activity and enforces the ownership rule.
func findOwnedActivity(c *gin.Context, id string) (*models.Activity, *utils.LoginUser, bool) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return nil, nil, false
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.ErrorResponse(c, "Format ID aktivitas tidak valid.", http.StatusBadRequest)
		return nil, nil, false
	}

	var activity models.Activity
	err = repository.Collection(repository.ActivitiesCollection).
		FindOne(repository.GetContext(), bson.M{"_id": objID}).
		Decode(&activity)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.ErrorResponse(c, "Aktivitas tidak ditemukan.", http.StatusNotFound)
			return nil, nil, false
		}
		utils.HandleError(c, err)
		return nil, nil, false
	}

	if !utils.CanAccessRecord(user.ID, models.UserRole(user.Role), activity.MarketerID) {
		utils.HandleError(c, utils.CreateForbiddenError())
		return nil, nil, false
	}

	return &activity, user, true
}

// ListActivities returns the caller's activities, newest first.
func ListActivities(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	query := bson.M{}
	if !utils.IsAdmin(models.UserRole(user.Role)) {
		query["marketerId"] = user.ID
	}
	if status := c.Query("status"); status != "" {
		query["status"] = status
	}
	if prospectName := c.Query("prospectName"); prospectName != "" {
		// activities join prospects by name, so the filter is a name match
		query["prospectName"] = bson.M{"$regex": prospectName, "$options": "i"}
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := repository.Collection(repository.ActivitiesCollection).
		Find(repository.GetContext(), query, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(repository.GetContext())

	var activities []models.Activity
	if err := cursor.All(repository.GetContext(), &activities); err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": activities})
}

// GetActivity returns one activity with its status display label.
func GetActivity(c *gin.Context) {
	activity, _, ok := findOwnedActivity(c, c.Param("id"))
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"activity":    activity,
			"statusLabel": activity.Status.Label(),
		},
	})
}

// CreateActivity logs a new engagement attempt.
func CreateActivity(c *gin.Context) {
	var input models.CreateActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, "Permintaan tidak valid: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	if !input.ActivityType.IsValid() {
		utils.ErrorResponse(c, "Jenis aktivitas tidak dikenal: "+string(input.ActivityType), http.StatusBadRequest)
		return
	}

	status := input.Status
	if status == "" {
		status = models.StatusNew
	}
	if !status.IsValid() {
		utils.ErrorResponse(c, "Status tidak dikenal: "+string(input.Status), http.StatusBadRequest)
		return
	}

	activity := models.Activity{
		MarketerID:      user.ID,
		MarketerName:    user.Username,
		ProspectName:    input.ProspectName,
		Location:        input.Location,
		ContactPerson:   input.ContactPerson,
		ContactPosition: input.ContactPosition,
		ContactPhone:    input.ContactPhone,
		ContactEmail:    input.ContactEmail,
		ActivityDate:    input.ActivityDate,
		ActivityType:    input.ActivityType,
		Description:     input.Description,
		Status:          status,
		CreatedAt:       time.Now().UTC(),
	}

	result, err := repository.Collection(repository.ActivitiesCollection).
		InsertOne(repository.GetContext(), activity)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	activity.ID = result.InsertedID.(primitive.ObjectID)

	utils.LogInfo(map[string]interface{}{
		"activityId": activity.ID.Hex(),
		"prospect":   activity.ProspectName,
	}, "activity created")

	utils.SuccessResponse(c, activity, "Aktivitas berhasil disimpan.", http.StatusCreated)
}

// UpdateActivity edits an activity, including free-form status changes.
func UpdateActivity(c *gin.Context) {
	activity, _, ok := findOwnedActivity(c, c.Param("id"))
	if !ok {
		return
	}

	var input models.UpdateActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, "Permintaan tidak valid: "+err.Error(), http.StatusBadRequest)
		return
	}

	set := bson.M{}
	if input.ProspectName != "" {
		set["prospectName"] = input.ProspectName
	}
	if input.Location != "" {
		set["location"] = input.Location
	}
	if input.ContactPerson != "" {
		set["contactPerson"] = input.ContactPerson
	}
	if input.ContactPosition != "" {
		set["contactPosition"] = input.ContactPosition
	}
	if input.ContactPhone != "" {
		set["contactPhone"] = input.ContactPhone
	}
	if input.ContactEmail != "" {
		set["contactEmail"] = input.ContactEmail
	}
	if input.ActivityDate != nil {
		set["activityDate"] = *input.ActivityDate
	}
	if input.ActivityType != "" {
		if !input.ActivityType.IsValid() {
			utils.ErrorResponse(c, "Jenis aktivitas tidak dikenal: "+string(input.ActivityType), http.StatusBadRequest)
			return
		}
		set["activityType"] = input.ActivityType
	}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if input.Status != "" {
		if !input.Status.IsValid() {
			utils.ErrorResponse(c, "Status tidak dikenal: "+string(input.Status), http.StatusBadRequest)
			return
		}
		set["status"] = input.Status
	}

	if len(set) == 0 {
		utils.ErrorResponse(c, "Tidak ada perubahan yang dikirim.", http.StatusBadRequest)
		return
	}

	_, err := repository.Collection(repository.ActivitiesCollection).
		UpdateOne(repository.GetContext(), bson.M{"_id": activity.ID}, bson.M{"$set": set})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, nil, "Aktivitas berhasil diperbarui.")
}

// DeleteActivity removes an activity and its followups.
func DeleteActivity(c *gin.Context) {
	activity, _, ok := findOwnedActivity(c, c.Param("id"))
	if !ok {
		return
	}

	ctx := repository.GetContext()
	result, err := repository.Collection(repository.ActivitiesCollection).
		DeleteOne(ctx, bson.M{"_id": activity.ID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		utils.ErrorResponse(c, "Aktivitas tidak ditemukan atau sudah dihapus.", http.StatusNotFound)
		return
	}

	if _, err := repository.Collection(repository.FollowupsCollection).
		DeleteMany(ctx, bson.M{"activityId": activity.ID.Hex()}); err != nil {
		utils.LogError(err, map[string]interface{}{
			"activityId": activity.ID.Hex(),
		}, "failed to delete followups of removed activity")
	}

	utils.SuccessResponse(c, nil, "Aktivitas berhasil dihapus.")
}
