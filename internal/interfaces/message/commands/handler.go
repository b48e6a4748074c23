package commands

import (
	"context"

	"sharebnb/internal/entities"
)

type ConfirmationWorkflow interface {
	Run(ctx context.Context, runID string, orderID string, snapshot entities.ConfirmationSnapshot) error
}

type Handler struct {
	workflow ConfirmationWorkflow
}

func NewHandler(workflow ConfirmationWorkflow) *Handler {
	return &Handler{
		workflow: workflow,
	}
}
