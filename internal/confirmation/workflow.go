package confirmation

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"

	"sharebnb/internal/entities"
)

type OrderStore interface {
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	MarkConfirmationSent(ctx context.Context, id string, at time.Time) error
}

type StayStore interface {
	GetByID(ctx context.Context, id string) (*entities.Stay, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id string) (*entities.User, error)
}

type MessageSender interface {
	Send(ctx context.Context, to, subject, html string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event any) error
}

// RunMarker remembers which steps of a run already completed, so a
// redelivered run skips them instead of re-executing side effects.
type RunMarker interface {
	IsDone(ctx context.Context, runID, step string) (bool, error)
	MarkDone(ctx context.Context, runID, step string) error
}

// Workflow composes and sends one confirmation email per booking. Fact
// lookups are best-effort, the send step is retryable through the caller's
// redelivery, and marking the order is never allowed to fail the run.
type Workflow struct {
	orders    OrderStore
	stays     StayStore
	users     UserStore
	sender    MessageSender
	marker    RunMarker
	publisher EventPublisher
	clientURL string
}

func NewWorkflow(
	orders OrderStore,
	stays StayStore,
	users UserStore,
	sender MessageSender,
	marker RunMarker,
	publisher EventPublisher,
	clientURL string,
) *Workflow {
	return &Workflow{
		orders:    orders,
		stays:     stays,
		users:     users,
		sender:    sender,
		marker:    marker,
		publisher: publisher,
		clientURL: clientURL,
	}
}

const stepSendEmail = "send-email"

// Run executes one workflow run. runID identifies the run across
// redeliveries; orderID and snapshot come from the trigger payload.
func (w *Workflow) Run(ctx context.Context, runID, orderID string, snapshot entities.ConfirmationSnapshot) error {
	logger := log.FromContext(ctx).WithField("order_id", orderID).WithField("run_id", runID)

	// resolve missing facts; every lookup failure is non-fatal
	order := snapshot.Order
	if order == nil && orderID != "" {
		loaded, err := w.orders.GetByID(ctx, orderID)
		if err != nil {
			logger.WithField("error", err).Warn("Could not load order, continuing with snapshot")
		} else {
			order = loaded
		}
	}

	stay := snapshot.Stay
	if stay == nil && order != nil && !order.StayID.IsZero() {
		loaded, err := w.stays.GetByID(ctx, order.StayID.Hex())
		if err != nil {
			logger.WithField("error", err).Warn("Could not load stay, continuing without it")
		} else {
			stay = loaded
		}
	}

	guest := snapshot.Guest
	if guest == nil {
		guestID := snapshot.GuestID
		if guestID == "" && order != nil && !order.UserID.IsZero() {
			guestID = order.UserID.Hex()
		}
		if guestID != "" {
			loaded, err := w.users.GetByID(ctx, guestID)
			if err != nil {
				logger.WithField("error", err).Warn("Could not load guest, continuing without it")
			} else {
				guest = loaded
			}
		}
	}

	details := resolveDetails(snapshot, order, stay, guest, w.clientURL)

	// nothing to notify without a recipient or a date range
	if details.GuestEmail == "" || details.StartDate.IsZero() || details.EndDate.IsZero() {
		logger.Info("Confirmation skipped: missing guest email or dates")
		return nil
	}

	msg := BuildOrderConfirmation(details)

	sent, err := w.runOnce(ctx, runID, stepSendEmail, func(ctx context.Context) error {
		if err := w.sender.Send(ctx, details.GuestEmail, msg.Subject, msg.HTML); err != nil {
			return entities.NotificationError{Step: stepSendEmail, Err: err}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !sent {
		logger.Info("Confirmation already sent for this run, skipping send")
	}

	if sent && w.publisher != nil {
		err := w.publisher.Publish(ctx, entities.OrderConfirmationSent_v1{
			Header:  entities.NewEventHeaderWithIdempotencyKey(runID),
			OrderID: orderID,
			Email:   details.GuestEmail,
			SentAt:  time.Now(),
		})
		if err != nil {
			logger.WithField("error", err).Warn("Could not publish confirmation-sent event")
		}
	}

	// best-effort; a failure here must never fail the run
	markID := orderID
	if markID == "" && order != nil {
		markID = order.ID.Hex()
	}
	if markID != "" {
		if err := w.orders.MarkConfirmationSent(ctx, markID, time.Now()); err != nil {
			logger.WithField("error", err).Warn("Could not mark confirmation as sent")
		}
	}

	return nil
}

// runOnce executes fn unless the step already completed for this run.
// Returns whether fn ran. Marker failures degrade to at-least-once.
func (w *Workflow) runOnce(ctx context.Context, runID, step string, fn func(context.Context) error) (bool, error) {
	done, err := w.marker.IsDone(ctx, runID, step)
	if err != nil {
		log.FromContext(ctx).WithField("error", err).Warn("Could not check step mark")
	}
	if done {
		return false, nil
	}

	if err := fn(ctx); err != nil {
		return true, err
	}

	if err := w.marker.MarkDone(ctx, runID, step); err != nil {
		log.FromContext(ctx).WithField("error", err).Warn("Could not mark step as done")
	}

	return true, nil
}
