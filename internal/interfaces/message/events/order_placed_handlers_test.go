package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharebnb/internal/entities"
)

type fakeCommandSender struct {
	sent []any
	err  error
}

func (f *fakeCommandSender) Send(ctx context.Context, command any) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, command)
	return nil
}

func TestOrderConfirmationTriggerHandler(t *testing.T) {
	sender := &fakeCommandSender{}
	handler := NewHandler(sender).OrderConfirmationTriggerHandler()

	event := entities.OrderPlaced_v1{
		Header:  entities.NewEventHeader(),
		OrderID: "order-1",
		Snapshot: entities.ConfirmationSnapshot{
			GuestEmail: "dana@example.com",
		},
	}

	err := handler.Handle(context.Background(), &event)
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	cmd, ok := sender.sent[0].(entities.SendOrderConfirmation_v1)
	require.True(t, ok)
	assert.Equal(t, "order-1", cmd.OrderID)
	assert.Equal(t, "dana@example.com", cmd.Snapshot.GuestEmail)

	// the run keeps the trigger's idempotency key so redeliveries dedupe
	assert.Equal(t, event.Header.IdempotencyKey, cmd.Header.IdempotencyKey)
	assert.NotEqual(t, event.Header.Id, cmd.Header.Id)
}

func TestOrderConfirmationTriggerHandler_SendFailurePropagates(t *testing.T) {
	sender := &fakeCommandSender{err: errors.New("broker down")}
	handler := NewHandler(sender).OrderConfirmationTriggerHandler()

	err := handler.Handle(context.Background(), &entities.OrderPlaced_v1{
		Header:  entities.NewEventHeader(),
		OrderID: "order-1",
	})

	assert.Error(t, err)
}
