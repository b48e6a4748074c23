package entities

import (
	"time"

	"github.com/google/uuid"
)

type DatalakeEvent struct {
	Id          uuid.UUID `json:"event_id" bson:"event_id"`
	PublishedAt time.Time `json:"published_at" bson:"published_at"`
	EventName   string    `json:"event_name" bson:"event_name"`
	Payload     []byte    `json:"event_payload" bson:"event_payload"`
}
