package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusApproved OrderStatus = "approved"
	OrderStatusRejected OrderStatus = "rejected"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusRejected:
		return true
	}
	return false
}

// NotificationConfirmationSentAt is the key under Order.Emails holding the
// timestamp of the last successfully sent confirmation email.
const NotificationConfirmationSentAt = "confirmationSentAt"

// Order is a guest's booking of a stay. Host and guest identities are
// immutable after creation; only Status and Emails mutate afterwards.
type Order struct {
	ID           primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	UserID       primitive.ObjectID   `json:"userId" bson:"userId"`
	StayID       primitive.ObjectID   `json:"stayId" bson:"stayId"`
	HostID       primitive.ObjectID   `json:"hostId" bson:"hostId"`
	StartDate    time.Time            `json:"startDate" bson:"startDate"`
	EndDate      time.Time            `json:"endDate" bson:"endDate"`
	Guests       int                  `json:"guests" bson:"guests"`
	TotalPrice   float64              `json:"totalPrice" bson:"totalPrice"`
	Status       OrderStatus          `json:"status" bson:"status"`
	ContactEmail string               `json:"contactEmail,omitempty" bson:"contactEmail,omitempty"`
	CreatedAt    time.Time            `json:"createdAt" bson:"createdAt"`
	Emails       map[string]time.Time `json:"emails,omitempty" bson:"emails,omitempty"`
}

// CreateOrder carries the untrusted input of a booking request. Identity
// fields are hex object ids and are validated by the repository.
type CreateOrder struct {
	UserID       string
	StayID       string
	HostID       string
	StartDate    time.Time
	EndDate      time.Time
	Guests       int
	TotalPrice   float64
	Status       OrderStatus
	ContactEmail string
}

// OrderFilter is the closed set of query filters. Fields combine with
// logical AND; empty fields are ignored.
type OrderFilter struct {
	HostID string
	UserID string
	Status string
}

type UserSummary struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	ImgURL   string             `json:"imgUrl,omitempty" bson:"imgUrl,omitempty"`
	Fullname string             `json:"fullname,omitempty" bson:"fullname,omitempty"`
	Email    string             `json:"email,omitempty" bson:"email,omitempty"`
}

type StaySummary struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Name    string             `json:"name,omitempty" bson:"name,omitempty"`
	ImgURLs []string           `json:"imgUrls,omitempty" bson:"imgUrls,omitempty"`
	Price   float64            `json:"price,omitempty" bson:"price,omitempty"`
	Address string             `json:"address,omitempty" bson:"address,omitempty"`
}

// OrderView is the read-only projection of an order joined with its guest,
// stay and host. Computed per read, never persisted.
type OrderView struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id"`
	UserID       primitive.ObjectID `json:"userId" bson:"userId"`
	StayID       primitive.ObjectID `json:"stayId" bson:"stayId"`
	HostID       primitive.ObjectID `json:"hostId" bson:"hostId"`
	StartDate    time.Time          `json:"startDate" bson:"startDate"`
	EndDate      time.Time          `json:"endDate" bson:"endDate"`
	Guests       int                `json:"guests" bson:"guests"`
	TotalPrice   float64            `json:"totalPrice" bson:"totalPrice"`
	Status       OrderStatus        `json:"status" bson:"status"`
	ContactEmail string             `json:"contactEmail,omitempty" bson:"contactEmail,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	Guest        UserSummary        `json:"guest" bson:"guest"`
	Stay         StaySummary        `json:"stay" bson:"stay"`
	Host         UserSummary        `json:"host" bson:"host"`
}
