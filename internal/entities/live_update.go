package entities

// LiveUpdateOrderChanged tags live updates about a booking's status.
const LiveUpdateOrderChanged = "booking-updated"

// LiveUpdate is one push event addressed to a single connected user.
// Delivery is best-effort; events for offline users are dropped.
type LiveUpdate struct {
	Type        string `json:"type"`
	Data        any    `json:"data"`
	RecipientID string `json:"recipientIdentity"`
}
