package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"tripflow/database"
	"tripflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo creates a new instance of SessionRepository using MongoDB.
func NewMongoSessionRepo() SessionRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("search_sessions")
	repo := &MongoSessionRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoSessionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "session_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// CreateOrUpdate upserts the session document keyed by session id. Calling it
// twice with the same id updates the existing record rather than duplicating.
func (r *MongoSessionRepo) CreateOrUpdate(session *models.Session) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	session.UpdatedAt = now
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}

	filter := bson.M{"session_id": session.SessionID}
	update := bson.M{
		"$set": bson.M{
			"customer_id":            session.CustomerID,
			"original_request":       session.OriginalRequest,
			"nationality":            session.Nationality,
			"conversation_context":   session.ConversationContext,
			"extracted_requirements": session.ExtractedRequirements,
			"final_itinerary":        session.FinalItinerary,
			"status":                 session.Status,
			"updated_at":             session.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"session_id": session.SessionID,
			"created_at": session.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert session %s: %w", session.SessionID, err)
	}
	return nil
}

// Load retrieves the session document for the given id.
func (r *MongoSessionRepo) Load(sessionID string) (*models.Session, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var session models.Session
	err := r.coll.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	return &session, nil
}
