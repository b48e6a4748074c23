package entities

import "go.mongodb.org/mongo-driver/bson/primitive"

// Stay is a listing-store record. Read-only collaborator data here.
type Stay struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Name    string             `json:"name,omitempty" bson:"name,omitempty"`
	Address string             `json:"address,omitempty" bson:"address,omitempty"`
	City    string             `json:"city,omitempty" bson:"city,omitempty"`
	ImgURLs []string           `json:"imgUrls,omitempty" bson:"imgUrls,omitempty"`
	Price   float64            `json:"price,omitempty" bson:"price,omitempty"`
	HostID  primitive.ObjectID `json:"hostId,omitempty" bson:"hostId,omitempty"`
}
