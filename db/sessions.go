package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roga/models"
	"roga/services"
)

const (
	sessionsCollection = "sessions"
	turnsCollection    = "session_turns"
)

// MongoSessionStore keeps sessions and turns in MongoDB.
type MongoSessionStore struct {
	sessions *mongo.Collection
	turns    *mongo.Collection
}

func NewMongoSessionStore(database *mongo.Database) *MongoSessionStore {
	return &MongoSessionStore{
		sessions: database.Collection(sessionsCollection),
		turns:    database.Collection(turnsCollection),
	}
}

// EnsureIndexes creates the turn lookup index.
func (s *MongoSessionStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.turns.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "sessionId", Value: 1}, {Key: "round", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create turn index: %w", err)
	}
	return nil
}

func (s *MongoSessionStore) CreateSession(ctx context.Context, session models.Session) error {
	if _, err := s.sessions.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (s *MongoSessionStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := s.sessions.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, services.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &session, nil
}

// AppendTurn stores the turn, then advances the session's current round.
// When the round cannot be advanced the turn is removed again, so
// currentRound never points past the stored turns.
func (s *MongoSessionStore) AppendTurn(ctx context.Context, turn models.Turn) error {
	if _, err := s.GetSession(ctx, turn.SessionID); err != nil {
		return err
	}
	ins, err := s.turns.InsertOne(ctx, turn)
	if err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}

	res, err := s.sessions.UpdateOne(ctx,
		bson.M{"_id": turn.SessionID},
		bson.M{"$set": bson.M{"currentRound": turn.Round}},
	)
	switch {
	case err != nil:
		err = fmt.Errorf("failed to update session: %w", err)
	case res.MatchedCount == 0:
		err = services.ErrSessionNotFound
	default:
		return nil
	}
	if _, derr := s.turns.DeleteOne(ctx, bson.M{"_id": ins.InsertedID}); derr != nil {
		err = errors.Join(err, fmt.Errorf("failed to remove turn: %w", derr))
	}
	return err
}

func (s *MongoSessionStore) ListTurns(ctx context.Context, sessionID string) ([]models.Turn, error) {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "round", Value: 1}, {Key: "createdAt", Value: 1}})
	cursor, err := s.turns.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer cursor.Close(ctx)

	turns := []models.Turn{}
	if err := cursor.All(ctx, &turns); err != nil {
		return nil, fmt.Errorf("failed to decode turns: %w", err)
	}
	return turns, nil
}
