package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"sharebnb/internal/entities"
)

func (h *Handler) OrderConfirmationTriggerHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"order_confirmation_trigger",
		func(ctx context.Context, payload *entities.OrderPlaced_v1) error {
			log.FromContext(ctx).
				WithField("order_id", payload.OrderID).
				Info("Order placed, scheduling confirmation")

			cmd := entities.SendOrderConfirmation_v1{
				Header:   entities.NewEventHeaderWithIdempotencyKey(payload.Header.IdempotencyKey),
				OrderID:  payload.OrderID,
				Snapshot: payload.Snapshot,
			}
			if err := h.commandBus.Send(ctx, cmd); err != nil {
				return fmt.Errorf("failed to send confirmation command: %w", err)
			}

			return nil
		})
}
