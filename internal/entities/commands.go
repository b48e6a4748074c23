package entities

// SendOrderConfirmation_v1 starts one confirmation workflow run. The
// header's idempotency key identifies the run across redeliveries.
type SendOrderConfirmation_v1 struct {
	Header   EventHeader          `json:"header"`
	OrderID  string               `json:"order_id"`
	Snapshot ConfirmationSnapshot `json:"snapshot"`
}
