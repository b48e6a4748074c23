package events

import (
	"context"

	"sharebnb/internal/entities"
)

type CommandSender interface {
	Send(ctx context.Context, command any) error
}

type EventRepository interface {
	SaveEvent(ctx context.Context, event entities.DatalakeEvent) error
}

type Handler struct {
	commandBus CommandSender
}

func NewHandler(commandBus CommandSender) *Handler {
	return &Handler{
		commandBus: commandBus,
	}
}
