package service

import (
	"time"

	"github.com/emidigital/emi-crm/models"
	"github.com/emidigital/emi-crm/repository"
	"github.com/emidigital/emi-crm/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// ScheduleDailyTaskAt runs task every day at the given wall-clock time in
// the display timezone.
func ScheduleDailyTaskAt(hour, min, sec int, task func()) {
	go func() {
		for {
			now := time.Now().In(utils.DisplayZone())
			next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, sec, 0, utils.DisplayZone())
			if now.After(next) {
				next = next.Add(24 * time.Hour)
			}
			time.Sleep(next.Sub(now))
			task()
		}
	}()
}

// ProcessDueFollowupReminders computes the follow-ups coming due in the next
// seven days and logs a reminder per marketer. Runs once a day from the
// scheduler.
func ProcessDueFollowupReminders() {
	utils.Logger.Info().Msg("daily follow-up reminder check started")

	ctx := repository.GetContext()

	cursor, err := repository.Collection(repository.ActivitiesCollection).Find(ctx, bson.M{})
	if err != nil {
		utils.LogError(err, nil, "failed to list activities for reminder check")
		return
	}
	defer cursor.Close(ctx)

	var activities []models.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		utils.LogError(err, nil, "failed to decode activities for reminder check")
		return
	}

	ledger := NewFollowupLedger(MongoActivityStore{}, MongoFollowupStore{})
	due, err := ledger.DueThisWeek(ctx, activities)
	if err != nil {
		utils.LogError(err, nil, "failed to compute due follow-ups")
		return
	}

	perMarketer := make(map[string]int)
	for _, d := range due {
		perMarketer[d.Activity.MarketerName]++
	}

	for marketer, count := range perMarketer {
		utils.LogInfo(map[string]interface{}{
			"marketer": marketer,
			"dueCount": count,
		}, "follow-ups due within the coming week")
	}

	utils.Logger.Info().Int("total", len(due)).Msg("daily follow-up reminder check finished")
}
