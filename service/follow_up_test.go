package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/emidigital/emi-crm/models"
	"github.com/emidigital/emi-crm/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockActivityStore
type MockActivityStore struct {
	mock.Mock
}

func (m *MockActivityStore) GetActivity(ctx context.Context, id string) (*models.Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Activity), args.Error(1)
}

func (m *MockActivityStore) UpdateActivityStatus(ctx context.Context, id string, status models.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockFollowupStore
type MockFollowupStore struct {
	mock.Mock
}

func (m *MockFollowupStore) InsertFollowup(ctx context.Context, f *models.Followup) (string, error) {
	args := m.Called(ctx, f)
	return args.String(0), args.Error(1)
}

func (m *MockFollowupStore) ListByActivity(ctx context.Context, activityID string) ([]models.Followup, error) {
	args := m.Called(ctx, activityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Followup), args.Error(1)
}

func (m *MockFollowupStore) CountByActivity(ctx context.Context, activityID string) (int64, error) {
	args := m.Called(ctx, activityID)
	return args.Get(0).(int64), args.Error(1)
}

var testAuthor = Author{ID: "m-1", Name: "Rina Wulandari"}

func newTestLedger(activities *MockActivityStore, followups *MockFollowupStore) *FollowupLedger {
	ledger := NewFollowupLedger(activities, followups)
	ledger.now = func() time.Time {
		return time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	}
	return ledger
}

func TestAppendRejectsBlankNotes(t *testing.T) {
	activities := new(MockActivityStore)
	followups := new(MockFollowupStore)
	ledger := newTestLedger(activities, followups)

	for _, notes := range []string{"", "   ", "\n\t"} {
		record, err := ledger.Append(context.Background(), testAuthor, models.CreateFollowupInput{
			ActivityID: "act-1",
			Notes:      notes,
			Status:     models.StatusInProgress,
		})

		assert.Nil(t, record)
		assert.True(t, utils.IsValidationError(err))
	}

	// a rejected append must leave no trace in either store
	activities.AssertNotCalled(t, "UpdateActivityStatus", mock.Anything, mock.Anything, mock.Anything)
	followups.AssertNotCalled(t, "InsertFollowup", mock.Anything, mock.Anything)
}

func TestAppendRejectsUnknownStatus(t *testing.T) {
	activities := new(MockActivityStore)
	followups := new(MockFollowupStore)
	ledger := newTestLedger(activities, followups)

	_, err := ledger.Append(context.Background(), testAuthor, models.CreateFollowupInput{
		ActivityID: "act-1",
		Notes:      "sudah dihubungi",
		Status:     models.Status("done"),
	})

	assert.True(t, utils.IsValidationError(err))
	activities.AssertNotCalled(t, "UpdateActivityStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAppendAppliesStatusAndInsertsAsUnit(t *testing.T) {
	activities := new(MockActivityStore)
	followups := new(MockFollowupStore)
	ledger := newTestLedger(activities, followups)

	activityID := primitive.NewObjectID()
	activities.On("GetActivity", mock.Anything, activityID.Hex()).
		Return(&models.Activity{ID: activityID, Status: models.StatusNew}, nil)
	activities.On("UpdateActivityStatus", mock.Anything, activityID.Hex(), models.StatusInProgress).
		Return(nil).Once()
	followups.On("InsertFollowup", mock.Anything, mock.Anything).
		Return(primitive.NewObjectID().Hex(), nil).Once()

	nextDate := time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC)
	record, err := ledger.Append(context.Background(), testAuthor, models.CreateFollowupInput{
		ActivityID:       activityID.Hex(),
		Notes:            "presentasi berjalan baik",
		NextAction:       "kirim penawaran",
		NextFollowupDate: &nextDate,
		InterestLevel:    models.InterestHigh,
		Status:           models.StatusInProgress,
	})

	assert.NoError(t, err)
	assert.Equal(t, "presentasi berjalan baik", record.Notes)
	assert.Equal(t, models.StatusInProgress, record.Status)
	assert.Equal(t, models.InterestHigh, record.InterestLevel)
	assert.Equal(t, testAuthor.ID, record.MarketerID)
	assert.False(t, record.ID.IsZero())
	assert.Equal(t, time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC), record.CreatedAt)

	activities.AssertExpectations(t)
	followups.AssertExpectations(t)
}

func TestAppendWritesStatusEvenWhenUnchanged(t *testing.T) {
	activities := new(MockActivityStore)
	followups := new(MockFollowupStore)
	ledger := newTestLedger(activities, followups)

	activityID := primitive.NewObjectID()
	activities.On("GetActivity", mock.Anything, activityID.Hex()).
		Return(&models.Activity{ID: activityID, Status: models.StatusInProgress}, nil)
	// the idempotent write still happens
	activities.On("UpdateActivityStatus", mock.Anything, activityID.Hex(), models.StatusInProgress).
		Return(nil).Once()
	followups.On("InsertFollowup", mock.Anything, mock.Anything).
		Return(primitive.NewObjectID().Hex(), nil).Once()

	_, err := ledger.Append(context.Background(), testAuthor, models.CreateFollowupInput{
		ActivityID: activityID.Hex(),
		Notes:      "menunggu jawaban",
		Status:     models.StatusInProgress,
	})

	assert.NoError(t, err)
	activities.AssertExpectations(t)
}

func TestAppendRollsBackStatusWhenInsertFails(t *testing.T) {
	activities := new(MockActivityStore)
	followups := new(MockFollowupStore)
	ledger := newTestLedger(activities, followups)

	activityID := primitive.NewObjectID()
	activities.On("GetActivity", mock.Anything, activityID.Hex()).
		Return(&models.Activity{ID: activityID, Status: models.StatusNew}, nil)
	activities.On("UpdateActivityStatus", mock.Anything, activityID.Hex(), models.StatusSucceeded).
		Return(nil).Once()
	followups.On("InsertFollowup", mock.Anything, mock.Anything).
		Return("", errors.New("connection reset")).Once()
	// compensating write restores the previous status
	activities.On("UpdateActivityStatus", mock.Anything, activityID.Hex(), models.StatusNew).
		Return(nil).Once()

	record, err := ledger.Append(context.Background(), testAuthor, models.CreateFollowupInput{
		ActivityID: activityID.Hex(),
		Notes:      "kontrak ditandatangani",
		Status:     models.StatusSucceeded,
	})

	assert.Nil(t, record)
	assert.True(t, utils.IsTransactionError(err))
	activities.AssertExpectations(t)
	followups.AssertExpectations(t)
}

func TestAppendFailsWhenStatusUpdateFails(t *testing.T) {
	activities := new(MockActivityStore)
	followups := new(MockFollowupStore)
	ledger := newTestLedger(activities, followups)

	activityID := primitive.NewObjectID()
	activities.On("GetActivity", mock.Anything, activityID.Hex()).
		Return(&models.Activity{ID: activityID, Status: models.StatusNew}, nil)
	activities.On("UpdateActivityStatus", mock.Anything, activityID.Hex(), models.StatusFailed).
		Return(errors.New("timeout")).Once()

	_, err := ledger.Append(context.Background(), testAuthor, models.CreateFollowupInput{
		ActivityID: activityID.Hex(),
		Notes:      "tidak ada respon",
		Status:     models.StatusFailed,
	})

	assert.True(t, utils.IsTransactionError(err))
	followups.AssertNotCalled(t, "InsertFollowup", mock.Anything, mock.Anything)
}

func datePtr(t time.Time) *time.Time { return &t }

func TestCurrentFollowupIgnoresLaterUndatedNotes(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	scheduled := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

	followups := []models.Followup{
		// newest first, as the store returns them
		{Notes: "catatan tanpa jadwal", CreatedAt: base.Add(48 * time.Hour)},
		{Notes: "jadwalkan demo", NextFollowupDate: datePtr(scheduled), CreatedAt: base.Add(24 * time.Hour)},
		{Notes: "kontak awal", NextFollowupDate: datePtr(base.AddDate(0, 0, 3)), CreatedAt: base},
	}

	// a later note with no date does not hide the pending schedule; the
	// newest *dated* entry wins
	current := CurrentFollowup(followups)
	assert.NotNil(t, current)
	assert.Equal(t, "jadwalkan demo", current.Notes)
	assert.Equal(t, scheduled, *current.NextFollowupDate)
}

func TestCurrentFollowupNilWhenNothingScheduled(t *testing.T) {
	followups := []models.Followup{
		{Notes: "a", CreatedAt: time.Now()},
		{Notes: "b", CreatedAt: time.Now().Add(time.Hour)},
	}
	assert.Nil(t, CurrentFollowup(followups))
	assert.Nil(t, CurrentFollowup(nil))
}

func dueWindowFixture(t *testing.T, dates map[string]*time.Time) (*FollowupLedger, []models.Activity, *MockFollowupStore) {
	t.Helper()

	activities := new(MockActivityStore)
	followups := new(MockFollowupStore)
	ledger := newTestLedger(activities, followups)

	var acts []models.Activity
	created := time.Date(2023, 12, 1, 8, 0, 0, 0, time.UTC)
	for name, date := range dates {
		id := primitive.NewObjectID()
		acts = append(acts, models.Activity{ID: id, ProspectName: name})

		var records []models.Followup
		if date != nil {
			records = append(records, models.Followup{
				ActivityID:       id.Hex(),
				Notes:            "jadwal " + name,
				NextFollowupDate: date,
				CreatedAt:        created,
			})
		}
		followups.On("ListByActivity", mock.Anything, id.Hex()).Return(records, nil)
	}

	return ledger, acts, followups
}

func TestDueWithinWindowIsInclusive(t *testing.T) {
	wib := utils.DisplayZone()
	windowStart := time.Date(2024, 1, 1, 0, 0, 0, 0, wib)
	windowEnd := time.Date(2024, 1, 8, 0, 0, 0, 0, wib)

	ledger, acts, _ := dueWindowFixture(t, map[string]*time.Time{
		"on-upper-bound": datePtr(time.Date(2024, 1, 8, 0, 0, 0, 0, wib)),
		"past-window":    datePtr(time.Date(2024, 1, 9, 0, 0, 0, 0, wib)),
		"before-window":  datePtr(time.Date(2023, 12, 31, 0, 0, 0, 0, wib)),
		"mid-window":     datePtr(time.Date(2024, 1, 3, 0, 0, 0, 0, wib)),
		"no-schedule":    nil,
	})

	due, err := ledger.DueWithin(context.Background(), acts, windowStart, windowEnd)

	assert.NoError(t, err)
	names := make([]string, 0, len(due))
	for _, d := range due {
		names = append(names, d.Activity.ProspectName)
	}
	assert.Equal(t, []string{"mid-window", "on-upper-bound"}, names)
}

func TestDueWithinComputesDayInDisplayTimezone(t *testing.T) {
	wib := utils.DisplayZone()
	windowStart := time.Date(2024, 1, 1, 0, 0, 0, 0, wib)
	windowEnd := time.Date(2024, 1, 8, 0, 0, 0, 0, wib)

	// 2024-01-08 18:00 UTC is already 2024-01-09 in WIB, so it is out;
	// 2023-12-31 18:00 UTC is 2024-01-01 in WIB, so it is in
	ledger, acts, _ := dueWindowFixture(t, map[string]*time.Time{
		"utc-late-evening":  datePtr(time.Date(2024, 1, 8, 18, 0, 0, 0, time.UTC)),
		"utc-new-years-eve": datePtr(time.Date(2023, 12, 31, 18, 0, 0, 0, time.UTC)),
	})

	due, err := ledger.DueWithin(context.Background(), acts, windowStart, windowEnd)

	assert.NoError(t, err)
	assert.Len(t, due, 1)
	assert.Equal(t, "utc-new-years-eve", due[0].Activity.ProspectName)
}

func TestDueWithinSortsByAscendingDate(t *testing.T) {
	wib := utils.DisplayZone()
	windowStart := time.Date(2024, 1, 1, 0, 0, 0, 0, wib)
	windowEnd := time.Date(2024, 1, 8, 0, 0, 0, 0, wib)

	ledger, acts, _ := dueWindowFixture(t, map[string]*time.Time{
		"later":    datePtr(time.Date(2024, 1, 6, 0, 0, 0, 0, wib)),
		"earliest": datePtr(time.Date(2024, 1, 2, 0, 0, 0, 0, wib)),
		"middle":   datePtr(time.Date(2024, 1, 4, 0, 0, 0, 0, wib)),
	})

	due, err := ledger.DueWithin(context.Background(), acts, windowStart, windowEnd)

	assert.NoError(t, err)
	assert.Len(t, due, 3)
	assert.Equal(t, "earliest", due[0].Activity.ProspectName)
	assert.Equal(t, "middle", due[1].Activity.ProspectName)
	assert.Equal(t, "later", due[2].Activity.ProspectName)
}

func TestNextFollowupNumberIsCountPlusOne(t *testing.T) {
	activities := new(MockActivityStore)
	followups := new(MockFollowupStore)
	ledger := newTestLedger(activities, followups)

	followups.On("CountByActivity", mock.Anything, "act-1").Return(int64(2), nil)

	n, err := ledger.NextFollowupNumber(context.Background(), "act-1")

	assert.NoError(t, err)
	assert.Equal(t, 3, n)
}
