package entities

import "time"

type Event interface {
	IsInternal() bool
}

// ConfirmationSnapshot is the denormalized bag of already-known facts handed
// to the confirmation workflow so it can skip redundant lookups. Any subset
// of fields may be set; nil/empty fields are resolved or defaulted by the
// workflow.
type ConfirmationSnapshot struct {
	Order      *Order     `json:"order,omitempty"`
	Stay       *Stay      `json:"stay,omitempty"`
	Guest      *User      `json:"guest,omitempty"`
	GuestID    string     `json:"guestId,omitempty"`
	GuestEmail string     `json:"guestEmail,omitempty"`
	GuestName  string     `json:"guestName,omitempty"`
	StayName   string     `json:"stayName,omitempty"`
	Address    string     `json:"address,omitempty"`
	StartDate  *time.Time `json:"startDate,omitempty"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	TotalPrice *float64   `json:"totalPrice,omitempty"`
	ManageURL  string     `json:"manageUrl,omitempty"`
}

type OrderPlaced_v1 struct {
	Header   EventHeader          `json:"header"`
	OrderID  string               `json:"order_id"`
	Snapshot ConfirmationSnapshot `json:"snapshot"`
}

func (e OrderPlaced_v1) IsInternal() bool {
	return false
}

type OrderStatusChanged_v1 struct {
	Header    EventHeader `json:"header"`
	OrderID   string      `json:"order_id"`
	Status    OrderStatus `json:"status"`
	UserID    string      `json:"user_id"`
	HostID    string      `json:"host_id"`
	ChangedAt time.Time   `json:"changed_at"`
}

func (e OrderStatusChanged_v1) IsInternal() bool {
	return false
}

type OrderConfirmationSent_v1 struct {
	Header  EventHeader `json:"header"`
	OrderID string      `json:"order_id"`
	Email   string      `json:"email"`
	SentAt  time.Time   `json:"sent_at"`
}

func (e OrderConfirmationSent_v1) IsInternal() bool {
	return true
}
