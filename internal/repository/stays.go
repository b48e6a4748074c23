package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"sharebnb/internal/entities"
)

// StaysRepo reads the listing store.
type StaysRepo struct {
	stays *mongo.Collection
}

func NewStaysRepo(db *mongo.Database) *StaysRepo {
	return &StaysRepo{stays: db.Collection("stay")}
}

func (r *StaysRepo) GetByID(ctx context.Context, id string) (*entities.Stay, error) {
	oid, err := parseObjectID("stayId", id)
	if err != nil {
		return nil, err
	}

	var stay entities.Stay
	err = r.stays.FindOne(ctx, bson.M{"_id": oid}).Decode(&stay)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, entities.StoreError{Op: "find stay", Err: err}
	}

	return &stay, nil
}
