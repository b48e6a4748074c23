package commands

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"sharebnb/internal/entities"
	"sharebnb/internal/idempotency"
)

func (h *Handler) SendOrderConfirmationHandler() cqrs.CommandHandler {
	return cqrs.NewCommandHandler(
		"send_order_confirmation",
		func(ctx context.Context, command *entities.SendOrderConfirmation_v1) error {
			log.FromContext(ctx).
				WithField("order_id", command.OrderID).
				Info("Running order confirmation workflow")

			runID := command.Header.IdempotencyKey
			if runID == "" {
				runID = idempotency.GetKey(ctx)
			}

			if err := h.workflow.Run(ctx, runID, command.OrderID, command.Snapshot); err != nil {
				return fmt.Errorf("confirmation workflow: %w", err)
			}

			return nil
		},
	)
}
