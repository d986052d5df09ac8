package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InterestLevel is the prospect's interest as judged at followup time.
type InterestLevel string

const (
	InterestLow    InterestLevel = "low"
	InterestMedium InterestLevel = "medium"
	InterestHigh   InterestLevel = "high"
)

// IsValid reports whether l is a known interest level.
func (l InterestLevel) IsValid() bool {
	switch l {
	case InterestLow, InterestMedium, InterestHigh:
		return true
	}
	return false
}

// Followup is an immutable, timestamped note attached to exactly one
// activity. NextFollowupDate, once set, is the authoritative next due date
// for the parent activity until superseded by a later followup. Status
// records the value the parent activity was set to when this followup was
// appended.
type Followup struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ActivityID   string             `bson:"activityId" json:"activityId"`
	MarketerID   string             `bson:"marketerId" json:"marketerId"`
	MarketerName string             `bson:"marketerName" json:"marketerName"`

	Notes            string        `bson:"notes" json:"notes"`
	NextAction       string        `bson:"nextAction,omitempty" json:"nextAction,omitempty"`
	NextFollowupDate *time.Time    `bson:"nextFollowupDate,omitempty" json:"nextFollowupDate,omitempty"`
	InterestLevel    InterestLevel `bson:"interestLevel" json:"interestLevel"`
	Status           Status        `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// SetHexID assigns the record id returned by the store on insert.
func (f *Followup) SetHexID(id string) {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		f.ID = oid
	}
}

// CreateFollowupInput is the followup-append payload. Status is applied to
// the parent activity atomically alongside the insert.
type CreateFollowupInput struct {
	ActivityID       string        `json:"activityId" binding:"required"`
	Notes            string        `json:"notes"`
	NextAction       string        `json:"nextAction"`
	NextFollowupDate *time.Time    `json:"nextFollowupDate"`
	InterestLevel    InterestLevel `json:"interestLevel"`
	Status           Status        `json:"status" binding:"required"`
}

// DueFollowup pairs a due followup with its parent activity for the
// follow-up reminder views.
type DueFollowup struct {
	Followup Followup `json:"followup"`
	Activity Activity `json:"activity"`
}
