package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-mouse/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrSessionNotFound = dmn.ErrSessionNotFound
)

// SessionRepo handles the persistence of simulation sessions in MongoDB.
type SessionRepo struct {
	collection *mongo.Collection
}

// NewSessionRepo creates a new SessionRepo with the given MongoDB client, database name, and collection name.
func NewSessionRepo(client *mongo.Client, dbName, collectionName string) *SessionRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &SessionRepo{
		collection: collection,
	}
}

// Save inserts or updates a session. The journey can be long, so the write
// gets a more generous deadline than the reads.
func (s *SessionRepo) Save(session *dmn.Session) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": session.ID}
	update := bson.M{
		"$set": bson.M{
			"algorithm": session.Algorithm,
			"heuristic": session.Heuristic,
			"dim":       session.Dim,
			"seed":      session.Seed,
			"runs":      session.Runs,
			"route":     session.Route,
			"steps":     session.Steps,
			"createdAt": session.CreatedAt,
			"updatedAt": time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := s.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("saving session %s: %w", session.ID, err)
	}
	return nil
}

// ByID retrieves a session with its journey.
func (s *SessionRepo) ByID(id uuid.UUID) (*dmn.Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var session dmn.Session
	if err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &session, nil
}

// Recent retrieves up to limit sessions, newest first, leaving out their journeys.
func (s *SessionRepo) Recent(limit int) ([]*dmn.Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"steps": 0})

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	defer cursor.Close(ctx)

	sessions := make([]*dmn.Session, 0, limit)
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return sessions, nil
}
