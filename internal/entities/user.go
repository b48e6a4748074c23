package entities

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a credential-store record. Read-only collaborator data in this
// service; user CRUD lives elsewhere.
type User struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Username string             `json:"username,omitempty" bson:"username,omitempty"`
	Fullname string             `json:"fullname,omitempty" bson:"fullname,omitempty"`
	Email    string             `json:"email,omitempty" bson:"email,omitempty"`
	ImgURL   string             `json:"imgUrl,omitempty" bson:"imgUrl,omitempty"`
	IsAdmin  bool               `json:"isAdmin,omitempty" bson:"isAdmin,omitempty"`
}
