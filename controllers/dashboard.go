package controllers

import (
	"net/http"

	"github.com/emidigital/emi-crm/models"
	"github.com/emidigital/emi-crm/repository"
	"github.com/emidigital/emi-crm/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// GetDashboardStats aggregates the pipeline into one dashboard payload:
// totals, status breakdowns, follow-ups due this week and per-marketer
// activity counts.
func GetDashboardStats(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		return
	}

	ctx := repository.GetContext()
	scope := bson.M{}
	if !utils.IsAdmin(models.UserRole(user.Role)) {
		scope = bson.M{"marketerId": user.ID}
	}
	prospectScope := bson.M{}
	if !utils.IsAdmin(models.UserRole(user.Role)) {
		prospectScope = bson.M{"ownerId": user.ID}
	}

	stats := models.DashboardStats{}

	stats.TotalProspects, err = repository.Collection(repository.ProspectsCollection).CountDocuments(ctx, prospectScope)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	stats.TotalActivities, err = repository.Collection(repository.ActivitiesCollection).CountDocuments(ctx, scope)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	stats.TotalFollowups, err = repository.Collection(repository.FollowupsCollection).CountDocuments(ctx, scope)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	for _, status := range models.AllStatuses() {
		activityQuery := bson.M{"status": status}
		prospectQuery := bson.M{"status": status}
		for k, v := range scope {
			activityQuery[k] = v
		}
		for k, v := range prospectScope {
			prospectQuery[k] = v
		}

		activityCount, err := repository.Collection(repository.ActivitiesCollection).CountDocuments(ctx, activityQuery)
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		stats.ActivityByStatus = append(stats.ActivityByStatus, models.StatusCount{
			Status: status,
			Label:  status.Label(),
			Count:  activityCount,
		})

		prospectCount, err := repository.Collection(repository.ProspectsCollection).CountDocuments(ctx, prospectQuery)
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		stats.ProspectByStatus = append(stats.ProspectByStatus, models.StatusCount{
			Status: status,
			Label:  status.Label(),
			Count:  prospectCount,
		})
	}

	cursor, err := repository.Collection(repository.ActivitiesCollection).Find(ctx, scope)
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
	stats.DueThisWeek = int64(len(due))

	byMarketer := make(map[string]*models.MarketerActivityCount)
	order := []string{}
	for _, activity := range activities {
		entry, ok := byMarketer[activity.MarketerID]
		if !ok {
			entry = &models.MarketerActivityCount{
				MarketerID:   activity.MarketerID,
				MarketerName: activity.MarketerName,
			}
			byMarketer[activity.MarketerID] = entry
			order = append(order, activity.MarketerID)
		}
		entry.Count++
	}
	for _, id := range order {
		stats.ByMarketer = append(stats.ByMarketer, *byMarketer[id])
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}
