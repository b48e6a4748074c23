package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"sharebnb/internal/entities"
)

// UsersRepo reads the credential store. User lifecycle is owned elsewhere.
type UsersRepo struct {
	users *mongo.Collection
}

func NewUsersRepo(db *mongo.Database) *UsersRepo {
	return &UsersRepo{users: db.Collection("user")}
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (*entities.User, error) {
	oid, err := parseObjectID("userId", id)
	if err != nil {
		return nil, err
	}

	var user entities.User
	err = r.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, entities.StoreError{Op: "find user", Err: err}
	}

	return &user, nil
}
