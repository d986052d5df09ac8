package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MailAuthConfig is the singleton credential record for the outbound mail
// provider. Client id/secret live in the environment configuration; only
// the tokens obtained at runtime are persisted here.
type MailAuthConfig struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	AccessToken  string             `bson:"accessToken,omitempty" json:"-"`
	RefreshToken string             `bson:"refreshToken,omitempty" json:"-"`
	TokenExpiry  time.Time          `bson:"tokenExpiry,omitempty" json:"tokenExpiry,omitempty"`
	FromAddress  string             `bson:"fromAddress,omitempty" json:"fromAddress,omitempty"`
	Authorized   bool               `bson:"authorized" json:"authorized"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type (
	// ExchangeCodeRequest carries the one-time authorization code pasted
	// back by the operator.
	ExchangeCodeRequest struct {
		Code string `json:"code" binding:"required"`
	}

	// SendMailRequest is the outbound send payload.
	SendMailRequest struct {
		To       string `json:"to" binding:"required,email"`
		Subject  string `json:"subject" binding:"required"`
		HTMLBody string `json:"htmlBody" binding:"required"`
	}
)
