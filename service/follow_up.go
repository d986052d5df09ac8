package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/emidigital/emi-crm/models"
	"github.com/emidigital/emi-crm/utils"
)

// ActivityStore is the persistence contract the followup ledger needs for
// activities.
type ActivityStore interface {
	GetActivity(ctx context.Context, id string) (*models.Activity, error)
	UpdateActivityStatus(ctx context.Context, id string, status models.Status) error
}

// FollowupStore is the persistence contract for followup records.
type FollowupStore interface {
	InsertFollowup(ctx context.Context, f *models.Followup) (string, error)
	// ListByActivity returns followups newest-first by creation timestamp.
	ListByActivity(ctx context.Context, activityID string) ([]models.Followup, error)
	CountByActivity(ctx context.Context, activityID string) (int64, error)
}

// Author identifies the marketer appending a followup.
type Author struct {
	ID   string
	Name string
}

// FollowupLedger owns the append-only followup log and the due-date
// windowing over it.
type FollowupLedger struct {
	activities ActivityStore
	followups  FollowupStore
	now        func() time.Time
}

// NewFollowupLedger creates a ledger over the given stores.
func NewFollowupLedger(activities ActivityStore, followups FollowupStore) *FollowupLedger {
	return &FollowupLedger{
		activities: activities,
		followups:  followups,
		now:        time.Now,
	}
}

// Append validates the input, sets the parent activity's status and inserts
// an immutable followup record as a unit. The status write is applied even
// when unchanged; a later followup supersedes the schedule of an earlier
// one. Partial failure between the two writes is compensated and reported
// as a transaction error.
func (l *FollowupLedger) Append(ctx context.Context, author Author, input models.CreateFollowupInput) (*models.Followup, error) {
	if strings.TrimSpace(input.Notes) == "" {
		return nil, utils.NewValidationError("Catatan follow-up wajib diisi")
	}
	if !input.Status.IsValid() {
		return nil, utils.NewValidationError("Status tidak dikenal: " + string(input.Status))
	}
	level := input.InterestLevel
	if level == "" {
		level = models.InterestMedium
	}
	if !level.IsValid() {
		return nil, utils.NewValidationError("Tingkat ketertarikan tidak dikenal: " + string(input.InterestLevel))
	}

	activity, err := l.activities.GetActivity(ctx, input.ActivityID)
	if err != nil {
		return nil, err
	}
	previousStatus := activity.Status

	if err := l.activities.UpdateActivityStatus(ctx, input.ActivityID, input.Status); err != nil {
		return nil, utils.NewTransactionError("Gagal memperbarui status aktivitas, follow-up tidak disimpan. Silakan coba lagi.")
	}

	record := &models.Followup{
		ActivityID:       input.ActivityID,
		MarketerID:       author.ID,
		MarketerName:     author.Name,
		Notes:            input.Notes,
		NextAction:       input.NextAction,
		NextFollowupDate: input.NextFollowupDate,
		InterestLevel:    level,
		Status:           input.Status,
		CreatedAt:        l.now().UTC(),
	}

	id, err := l.followups.InsertFollowup(ctx, record)
	if err != nil {
		// roll the status back so a failed append leaves no trace
		if rbErr := l.activities.UpdateActivityStatus(ctx, input.ActivityID, previousStatus); rbErr != nil {
			utils.LogError(rbErr, map[string]interface{}{
				"activityId": input.ActivityID,
				"status":     previousStatus,
			}, "status rollback failed after followup insert error")
		}
		return nil, utils.NewTransactionError("Gagal menyimpan follow-up. Silakan coba lagi.")
	}
	record.SetHexID(id)

	return record, nil
}

// List returns the followups of an activity, newest first.
func (l *FollowupLedger) List(ctx context.Context, activityID string) ([]models.Followup, error) {
	return l.followups.ListByActivity(ctx, activityID)
}

// NextFollowupNumber returns which follow-up attempt the next one would be:
// existing count + 1.
func (l *FollowupLedger) NextFollowupNumber(ctx context.Context, activityID string) (int, error) {
	count, err := l.followups.CountByActivity(ctx, activityID)
	if err != nil {
		return 0, err
	}
	return int(count) + 1, nil
}

// CurrentFollowup returns the followup carrying the authoritative next due
// date for an activity: the one with the greatest creation timestamp among
// those with a non-null date. A later note without a date does not hide an
// earlier pending schedule.
func CurrentFollowup(followups []models.Followup) *models.Followup {
	var current *models.Followup
	for i := range followups {
		f := &followups[i]
		if f.NextFollowupDate == nil {
			continue
		}
		if current == nil || f.CreatedAt.After(current.CreatedAt) {
			current = f
		}
	}
	return current
}

// DueWithin selects, for each given activity, its current followup when the
// scheduled date (taken at display-timezone midnight) falls inside the
// inclusive window. Results are ordered by ascending date; ties keep the
// activity order given.
func (l *FollowupLedger) DueWithin(ctx context.Context, activities []models.Activity, windowStart, windowEnd time.Time) ([]models.DueFollowup, error) {
	start := utils.LocalMidnight(windowStart)
	end := utils.LocalMidnight(windowEnd)

	var due []models.DueFollowup
	for _, activity := range activities {
		followups, err := l.followups.ListByActivity(ctx, activity.ID.Hex())
		if err != nil {
			return nil, err
		}

		current := CurrentFollowup(followups)
		if current == nil {
			continue
		}

		day := utils.LocalMidnight(*current.NextFollowupDate)
		if day.Before(start) || day.After(end) {
			continue
		}

		due = append(due, models.DueFollowup{Followup: *current, Activity: activity})
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].Followup.NextFollowupDate.Before(*due[j].Followup.NextFollowupDate)
	})

	return due, nil
}

// DueThisWeek windows from today (display timezone) through seven days out.
func (l *FollowupLedger) DueThisWeek(ctx context.Context, activities []models.Activity) ([]models.DueFollowup, error) {
	start := utils.LocalMidnight(l.now())
	return l.DueWithin(ctx, activities, start, start.AddDate(0, 0, 7))
}
