package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"roga/models"
)

const telemetryCollection = "round_telemetry"

// MongoTelemetrySink appends round telemetry to MongoDB.
type MongoTelemetrySink struct {
	coll *mongo.Collection
}

func NewMongoTelemetrySink(database *mongo.Database) *MongoTelemetrySink {
	return &MongoTelemetrySink{coll: database.Collection(telemetryCollection)}
}

func (s *MongoTelemetrySink) RecordRound(ctx context.Context, t models.RoundTelemetry) error {
	if _, err := s.coll.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("failed to insert telemetry: %w", err)
	}
	return nil
}
