package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityType is the kind of engagement attempt.
type ActivityType string

const (
	ActivityTypePresentation ActivityType = "Presentation"
	ActivityTypeProductDemo  ActivityType = "Product Demo"
	ActivityTypeFollowUpCall ActivityType = "Follow-up Call"
	ActivityTypeEmail        ActivityType = "Email"
	ActivityTypeMeeting      ActivityType = "Meeting"
	ActivityTypeOther        ActivityType = "Other"
)

// IsValid reports whether t is a known activity type.
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityTypePresentation, ActivityTypeProductDemo, ActivityTypeFollowUpCall,
		ActivityTypeEmail, ActivityTypeMeeting, ActivityTypeOther:
		return true
	}
	return false
}

// Activity is one logged engagement attempt with a prospect's contact.
// It references the prospect by company name, not by id. That loose join is
// a known data-integrity gap carried over deliberately; adding a foreign key
// would change matching semantics for existing data.
type Activity struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	MarketerID   string             `bson:"marketerId" json:"marketerId"`
	MarketerName string             `bson:"marketerName" json:"marketerName"`

	ProspectName string `bson:"prospectName" json:"prospectName"`
	Location     string `bson:"location,omitempty" json:"location,omitempty"`

	ContactPerson   string `bson:"contactPerson" json:"contactPerson"`
	ContactPosition string `bson:"contactPosition,omitempty" json:"contactPosition,omitempty"`
	ContactPhone    string `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`
	ContactEmail    string `bson:"contactEmail,omitempty" json:"contactEmail,omitempty"`

	ActivityDate time.Time    `bson:"activityDate" json:"activityDate"`
	ActivityType ActivityType `bson:"activityType" json:"activityType"`
	Description  string       `bson:"description,omitempty" json:"description,omitempty"`

	Status    Status    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// CreateActivityInput is the activity-creation payload.
type CreateActivityInput struct {
	ProspectName    string       `json:"prospectName" binding:"required"`
	Location        string       `json:"location"`
	ContactPerson   string       `json:"contactPerson" binding:"required"`
	ContactPosition string       `json:"contactPosition"`
	ContactPhone    string       `json:"contactPhone"`
	ContactEmail    string       `json:"contactEmail"`
	ActivityDate    time.Time    `json:"activityDate" binding:"required"`
	ActivityType    ActivityType `json:"activityType" binding:"required"`
	Description     string       `json:"description"`
	Status          Status       `json:"status"`
}

// UpdateActivityInput is the activity-edit payload. Status may be set to any
// valid value; there is no transition guard.
type UpdateActivityInput struct {
	ProspectName    string       `json:"prospectName"`
	Location        string       `json:"location"`
	ContactPerson   string       `json:"contactPerson"`
	ContactPosition string       `json:"contactPosition"`
	ContactPhone    string       `json:"contactPhone"`
	ContactEmail    string       `json:"contactEmail"`
	ActivityDate    *time.Time   `json:"activityDate"`
	ActivityType    ActivityType `json:"activityType"`
	Description     string       `json:"description"`
	Status          Status       `json:"status"`
}
