package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProspectSource tells whether a prospect was typed in by a marketer or came
// from the lead-import integration.
type ProspectSource string

const (
	ProspectSourceManual   ProspectSource = "manual"
	ProspectSourceImported ProspectSource = "imported"
)

// Prospect is a researched company/contact record, independent of logged
// activities. Owned exclusively by the marketer who created it unless an
// admin is acting. Deletion is a hard delete.
type Prospect struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CompanyName string             `bson:"companyName" json:"companyName"`
	Website     string             `bson:"website" json:"website"`
	Industry    string             `bson:"industry" json:"industry"`
	FoundedYear int                `bson:"foundedYear,omitempty" json:"foundedYear,omitempty"`
	CompanySize string             `bson:"companySize,omitempty" json:"companySize,omitempty"`
	Revenue     string             `bson:"revenue,omitempty" json:"revenue,omitempty"`

	ContactName  string `bson:"contactName" json:"contactName"`
	ContactTitle string `bson:"contactTitle" json:"contactTitle"`
	ContactEmail string `bson:"contactEmail" json:"contactEmail"`
	ContactPhone string `bson:"contactPhone" json:"contactPhone"`
	Location     string `bson:"location" json:"location"`

	Keywords     []string `bson:"keywords,omitempty" json:"keywords,omitempty"`
	Technologies []string `bson:"technologies,omitempty" json:"technologies,omitempty"`
	Notes        string   `bson:"notes,omitempty" json:"notes,omitempty"`

	NextStep     string     `bson:"nextStep,omitempty" json:"nextStep,omitempty"`
	NextStepDate *time.Time `bson:"nextStepDate,omitempty" json:"nextStepDate,omitempty"`

	Status          Status         `bson:"status" json:"status"`
	Source          ProspectSource `bson:"source" json:"source"`
	ImportBatchID   string         `bson:"importBatchId,omitempty" json:"importBatchId,omitempty"`
	IsDecisionMaker bool           `bson:"isDecisionMaker" json:"isDecisionMaker"`
	EmailValid      bool           `bson:"emailValid" json:"emailValid"`

	OwnerID   string `bson:"ownerId" json:"ownerId"`
	OwnerName string `bson:"ownerName" json:"ownerName"`

	// Last generated outbound email, saved for reuse.
	EmailTemplate string `bson:"emailTemplate,omitempty" json:"emailTemplate,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProspectInput is the attribute set of a prospect without identity or
// ownership, as typed in by a marketer or returned by the import source.
type ProspectInput struct {
	CompanyName string `json:"companyName" binding:"required"`
	Website     string `json:"website"`
	Industry    string `json:"industry"`
	FoundedYear int    `json:"foundedYear"`
	CompanySize string `json:"companySize"`
	Revenue     string `json:"revenue"`

	ContactName  string `json:"contactName"`
	ContactTitle string `json:"contactTitle"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	Location     string `json:"location"`

	Keywords     []string `json:"keywords"`
	Technologies []string `json:"technologies"`
	Notes        string   `json:"notes"`

	NextStep     string     `json:"nextStep"`
	NextStepDate *time.Time `json:"nextStepDate"`

	Status          Status `json:"status"`
	IsDecisionMaker bool   `json:"isDecisionMaker"`
	EmailValid      bool   `json:"emailValid"`
}

// ImportProspectsRequest asks the import source for prospects matching a
// free-text query.
type ImportProspectsRequest struct {
	Query string `json:"query" binding:"required"`
}
