package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sharebnb/internal/entities"
)

// temporary datalake in the service's own database
// should be replaced with a real datalake in prod (bigquery, s3, etc)

type EventsRepository struct {
	events *mongo.Collection
}

func NewEventsRepo(db *mongo.Database) *EventsRepository {
	return &EventsRepository{events: db.Collection("events")}
}

func (r *EventsRepository) SaveEvent(ctx context.Context, event entities.DatalakeEvent) error {
	// upsert on event id keeps redelivered messages from duplicating rows
	_, err := r.events.UpdateOne(ctx,
		bson.M{"event_id": event.Id},
		bson.M{"$setOnInsert": event},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return entities.StoreError{Op: "save event", Err: err}
	}

	return nil
}
