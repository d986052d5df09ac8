package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/emidigital/emi-crm/models"
	"github.com/emidigital/emi-crm/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	MarketersCollection     = "marketers"
	ProspectsCollection     = "prospects"
	ActivitiesCollection    = "activities"
	FollowupsCollection     = "followups"
	MailAuthCollection      = "mailAuthConfig"
	AppConfigCollection     = "appConfig"
	OperationLogsCollection = "apiOperationLogs"
)

var (
	client *mongo.Client
	db     *mongo.Database
	ctx    = context.Background()
	once   sync.Once
)

// InitMongoDB connects the process-wide client.
func InitMongoDB(uri, dbName string) error {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var err error
	clientOptions := options.Client().ApplyURI(uri)
	client, err = mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return fmt.Errorf("gagal terhubung ke MongoDB: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping MongoDB gagal: %w", err)
	}

	db = client.Database(dbName)
	utils.Logger.Info().Str("database", dbName).Msg("connected to MongoDB")

	return nil
}

// CloseMongoDB disconnects the client.
func CloseMongoDB() {
	if client != nil {
		if err := client.Disconnect(ctx); err != nil {
			utils.Logger.Error().Err(err).Msg("failed to disconnect MongoDB")
			return
		}
		utils.Logger.Info().Msg("disconnected from MongoDB")
	}
}

// ExecuteDbOperation runs operation with retry on transient errors.
func ExecuteDbOperation(operation func() (interface{}, error), retries int) (interface{}, error) {
	if retries <= 0 {
		retries = 3
	}

	var lastErr error
	for i := 0; i < retries; i++ {
		result, err := operation()
		if err == nil {
			return result, nil
		}

		lastErr = err
		utils.Logger.Error().Err(err).Msgf("db operation failed, retry (%d/%d)", i+1, retries)

		if !isRetryableError(err) {
			break
		}

		time.Sleep(time.Duration(500*(i+1)) * time.Millisecond)
	}

	return nil, lastErr
}

// isRetryableError reports whether err is worth retrying.
func isRetryableError(err error) bool {
	retryableCodes := map[int]bool{
		6:     true, // HostUnreachable
		7:     true, // HostNotFound
		89:    true, // NetworkTimeout
		91:    true, // ShutdownInProgress
		189:   true, // PrimarySteppedDown
		10107: true, // NotMaster
		13436: true, // NotMasterNoSlaveOk
		11600: true, // InterruptedAtShutdown
		11602: true, // InterruptedDueToReplStateChange
		10058: true, // ConnectionReset
	}

	if cmdErr, ok := err.(mongo.CommandError); ok {
		return retryableCodes[int(cmdErr.Code)]
	}

	return isNetworkError(err)
}

// isNetworkError checks for common transport failures.
func isNetworkError(err error) bool {
	errMsg := strings.ToLower(err.Error())
	networkErrors := []string{
		"connection refused",
		"connection reset",
		"connection closed",
		"no reachable servers",
		"timeout",
		"context deadline exceeded",
		"server selection error",
	}

	for _, ne := range networkErrors {
		if strings.Contains(errMsg, ne) {
			return true
		}
	}

	return false
}

// InitializeCollections creates the collections that do not exist yet.
func InitializeCollections() error {
	collections := []string{
		MarketersCollection,
		ProspectsCollection,
		ActivitiesCollection,
		FollowupsCollection,
		MailAuthCollection,
		AppConfigCollection,
		OperationLogsCollection,
	}

	for _, collName := range collections {
		collExists, err := CollectionExists(collName)
		if err != nil {
			return fmt.Errorf("gagal memeriksa koleksi: %w", err)
		}

		if !collExists {
			if err := db.CreateCollection(ctx, collName); err != nil {
				return fmt.Errorf("gagal membuat koleksi: %w", err)
			}
			utils.Logger.Info().Str("collection", collName).Msg("collection created")
		}
	}

	return nil
}

// CollectionExists checks whether a collection exists.
func CollectionExists(collName string) (bool, error) {
	collections, err := db.ListCollectionNames(ctx, bson.M{"name": collName})
	if err != nil {
		return false, err
	}

	for _, name := range collections {
		if name == collName {
			return true, nil
		}
	}

	return false, nil
}

// InitializeAdminAccount seeds the default admin if none exists.
func InitializeAdminAccount() error {
	marketersCollection := db.Collection(MarketersCollection)

	count, err := marketersCollection.CountDocuments(ctx, bson.M{"role": models.UserRoleAdmin})
	if err != nil {
		return fmt.Errorf("gagal memeriksa akun admin: %w", err)
	}

	if count > 0 {
		utils.Logger.Info().Msg("admin account already exists, skipping seed")
		return nil
	}

	admin := models.Marketer{
		Username:  "admin",
		Password:  utils.HashPassword("admin123"),
		FullName:  "EMI Marketing Team",
		Email:     "marketing@emidigital.id",
		Position:  "Administrator",
		Role:      models.UserRoleAdmin,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	_, err = marketersCollection.InsertOne(ctx, admin)
	if err != nil {
		return fmt.Errorf("gagal membuat akun admin: %w", err)
	}

	utils.Logger.Info().Msg("default admin account created")
	return nil
}

// FindMarketerByID looks up a marketer account by hex id.
func FindMarketerByID(id string) (*models.Marketer, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("format ID tidak valid: %w", err)
	}

	var marketer models.Marketer
	err = db.Collection(MarketersCollection).FindOne(ctx, bson.M{"_id": objID}).Decode(&marketer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("pengguna tidak ditemukan")
		}
		return nil, err
	}

	return &marketer, nil
}

// GetDatabaseStatus reports per-collection document counts.
func GetDatabaseStatus() (map[string]interface{}, error) {
	collections := []string{
		MarketersCollection,
		ProspectsCollection,
		ActivitiesCollection,
		FollowupsCollection,
		MailAuthCollection,
		AppConfigCollection,
		OperationLogsCollection,
	}

	result := make(map[string]interface{})

	for _, collName := range collections {
		coll := db.Collection(collName)
		count, err := coll.CountDocuments(ctx, bson.M{})
		if err != nil {
			utils.Logger.Error().Err(err).Str("collection", collName).Msg("failed to count collection")
			result[collName] = map[string]interface{}{
				"count": 0,
				"error": err.Error(),
			}
			continue
		}
		result[collName] = map[string]interface{}{
			"count": count,
		}
	}

	return result, nil
}

// GetDB returns the database handle, connecting lazily if needed.
func GetDB() *mongo.Database {
	once.Do(func() {
		if db != nil {
			return
		}
		if err := InitMongoDB("mongodb://127.0.0.1:27017", "emi_crm"); err != nil {
			utils.Logger.Fatal().Err(err).Msg("MongoDB connection failed")
		}
	})

	return db
}

// GetContext returns the context used for repository operations.
func GetContext() context.Context {
	return ctx
}

// Collection returns a handle for the named collection.
func Collection(name string) *mongo.Collection {
	return GetDB().Collection(name)
}
