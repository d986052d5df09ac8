package service

import (
	"context"
	"fmt"

	"github.com/emidigital/emi-crm/models"
	"github.com/emidigital/emi-crm/repository"
	"github.com/emidigital/emi-crm/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoActivityStore backs ActivityStore with the activities collection.
type MongoActivityStore struct{}

// GetActivity fetches one activity by hex id.
func (MongoActivityStore) GetActivity(ctx context.Context, id string) (*models.Activity, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.CreateBadRequestError("Format ID aktivitas tidak valid")
	}

	var activity models.Activity
	err = repository.Collection(repository.ActivitiesCollection).
		FindOne(ctx, bson.M{"_id": objID}).
		Decode(&activity)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.CreateNotFoundError("Aktivitas")
		}
		return nil, err
	}

	return &activity, nil
}

// UpdateActivityStatus overwrites the activity's status. There is no
// transition guard; any valid status may replace any other.
func (MongoActivityStore) UpdateActivityStatus(ctx context.Context, id string, status models.Status) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return utils.CreateBadRequestError("Format ID aktivitas tidak valid")
	}

	result, err := repository.Collection(repository.ActivitiesCollection).UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.CreateNotFoundError("Aktivitas")
	}

	utils.LogDbOperation("updateStatus", repository.ActivitiesCollection, id, status)
	return nil
}

// MongoFollowupStore backs FollowupStore with the followups collection.
type MongoFollowupStore struct{}

// InsertFollowup appends one immutable followup record.
func (MongoFollowupStore) InsertFollowup(ctx context.Context, f *models.Followup) (string, error) {
	result, err := repository.Collection(repository.FollowupsCollection).InsertOne(ctx, f)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return oid.Hex(), nil
}

// ListByActivity returns an activity's followups newest-first.
func (MongoFollowupStore) ListByActivity(ctx context.Context, activityID string) ([]models.Followup, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := repository.Collection(repository.FollowupsCollection).
		Find(ctx, bson.M{"activityId": activityID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.Followup
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CountByActivity counts an activity's followups.
func (MongoFollowupStore) CountByActivity(ctx context.Context, activityID string) (int64, error) {
	return repository.Collection(repository.FollowupsCollection).
		CountDocuments(ctx, bson.M{"activityId": activityID})
}

// MongoMailAuthStore backs MailAuthStore with the singleton credential
// record.
type MongoMailAuthStore struct{}

// Load fetches the singleton record, returning an unauthorized zero record
// when none has been persisted yet.
func (MongoMailAuthStore) Load(ctx context.Context) (*models.MailAuthConfig, error) {
	var record models.MailAuthConfig
	err := repository.Collection(repository.MailAuthCollection).
		FindOne(ctx, bson.M{}).
		Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return &models.MailAuthConfig{}, nil
		}
		return nil, err
	}
	return &record, nil
}

// Save upserts the singleton record.
func (MongoMailAuthStore) Save(ctx context.Context, record *models.MailAuthConfig) error {
	filter := bson.M{}
	if !record.ID.IsZero() {
		filter = bson.M{"_id": record.ID}
	}

	update := bson.M{"$set": bson.M{
		"accessToken":  record.AccessToken,
		"refreshToken": record.RefreshToken,
		"tokenExpiry":  record.TokenExpiry,
		"fromAddress":  record.FromAddress,
		"authorized":   record.Authorized,
		"updatedAt":    record.UpdatedAt,
	}}

	_, err := repository.Collection(repository.MailAuthCollection).
		UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
