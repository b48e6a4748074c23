package confirmation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sharebnb/internal/entities"
)

type fakeOrderStore struct {
	order      *entities.Order
	getErr     error
	markErr    error
	markedID   string
	markedAt   time.Time
	markCalled bool
}

func (f *fakeOrderStore) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.order, nil
}

func (f *fakeOrderStore) MarkConfirmationSent(ctx context.Context, id string, at time.Time) error {
	f.markCalled = true
	f.markedID = id
	f.markedAt = at
	return f.markErr
}

type fakeStayStore struct {
	stay *entities.Stay
	err  error
}

func (f *fakeStayStore) GetByID(ctx context.Context, id string) (*entities.Stay, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stay, nil
}

type fakeUserStore struct {
	user *entities.User
	err  error
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (*entities.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

type fakeSender struct {
	err      error
	sent     int
	to       string
	subject  string
	lastHTML string
}

func (f *fakeSender) Send(ctx context.Context, to, subject, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent++
	f.to = to
	f.subject = subject
	f.lastHTML = html
	return nil
}

type memoryMarker struct {
	marks  map[string]bool
	getErr error
	setErr error
}

func newMemoryMarker() *memoryMarker {
	return &memoryMarker{marks: map[string]bool{}}
}

func (m *memoryMarker) IsDone(ctx context.Context, runID, step string) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	return m.marks[runID+"/"+step], nil
}

func (m *memoryMarker) MarkDone(ctx context.Context, runID, step string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.marks[runID+"/"+step] = true
	return nil
}

type fakePublisher struct {
	events []any
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, event any) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func testOrder() *entities.Order {
	return &entities.Order{
		ID:           primitive.NewObjectID(),
		UserID:       primitive.NewObjectID(),
		StayID:       primitive.NewObjectID(),
		HostID:       primitive.NewObjectID(),
		StartDate:    time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Guests:       2,
		TotalPrice:   300,
		Status:       entities.OrderStatusApproved,
		ContactEmail: "dana@example.com",
	}
}

func newTestWorkflow(orders *fakeOrderStore, stays *fakeStayStore, users *fakeUserStore, sender *fakeSender, marker *memoryMarker, publisher *fakePublisher) *Workflow {
	return NewWorkflow(orders, stays, users, sender, marker, publisher, "http://localhost:5173")
}

func TestWorkflow_Run_SendsConfirmation(t *testing.T) {
	order := testOrder()
	orders := &fakeOrderStore{order: order}
	sender := &fakeSender{}
	publisher := &fakePublisher{}

	w := newTestWorkflow(
		orders,
		&fakeStayStore{stay: &entities.Stay{Name: "Loft", Address: "12 Cherry Lane"}},
		&fakeUserStore{user: &entities.User{Fullname: "Dana", Email: "dana@example.com"}},
		sender,
		newMemoryMarker(),
		publisher,
	)

	err := w.Run(context.Background(), "run-1", order.ID.Hex(), entities.ConfirmationSnapshot{})
	require.NoError(t, err)

	assert.Equal(t, 1, sender.sent)
	assert.Equal(t, "dana@example.com", sender.to)
	assert.Contains(t, sender.subject, "Loft")

	assert.True(t, orders.markCalled)
	assert.Equal(t, order.ID.Hex(), orders.markedID)

	require.Len(t, publisher.events, 1)
	sentEvent, ok := publisher.events[0].(entities.OrderConfirmationSent_v1)
	require.True(t, ok)
	assert.Equal(t, order.ID.Hex(), sentEvent.OrderID)
	assert.Equal(t, "dana@example.com", sentEvent.Email)
}

func TestWorkflow_Run_GuardSkipsWithoutRecipient(t *testing.T) {
	order := testOrder()
	order.ContactEmail = ""
	sender := &fakeSender{}

	w := newTestWorkflow(
		&fakeOrderStore{order: order},
		&fakeStayStore{err: errors.New("stay store down")},
		&fakeUserStore{err: errors.New("user store down")},
		sender,
		newMemoryMarker(),
		&fakePublisher{},
	)

	err := w.Run(context.Background(), "run-1", order.ID.Hex(), entities.ConfirmationSnapshot{})

	require.NoError(t, err)
	assert.Zero(t, sender.sent)
}

func TestWorkflow_Run_GuardSkipsWithoutDates(t *testing.T) {
	sender := &fakeSender{}

	w := newTestWorkflow(
		&fakeOrderStore{getErr: errors.New("order store down")},
		&fakeStayStore{},
		&fakeUserStore{},
		sender,
		newMemoryMarker(),
		&fakePublisher{},
	)

	snapshot := entities.ConfirmationSnapshot{GuestEmail: "dana@example.com"}
	err := w.Run(context.Background(), "some-order-id", "some-order-id", snapshot)

	require.NoError(t, err)
	assert.Zero(t, sender.sent)
}

func TestWorkflow_Run_SendFailureIsRetryable(t *testing.T) {
	order := testOrder()
	orders := &fakeOrderStore{order: order}
	sender := &fakeSender{err: errors.New("smtp down")}
	marker := newMemoryMarker()

	w := newTestWorkflow(orders, &fakeStayStore{}, &fakeUserStore{}, sender, marker, &fakePublisher{})

	err := w.Run(context.Background(), "run-1", order.ID.Hex(), entities.ConfirmationSnapshot{})

	var notifErr entities.NotificationError
	require.ErrorAs(t, err, &notifErr)
	assert.Equal(t, "send-email", notifErr.Step)
	assert.False(t, orders.markCalled)

	// redelivery after the failure sends for real
	sender.err = nil
	err = w.Run(context.Background(), "run-1", order.ID.Hex(), entities.ConfirmationSnapshot{})
	require.NoError(t, err)
	assert.Equal(t, 1, sender.sent)
}

func TestWorkflow_Run_RedeliverySkipsCompletedSend(t *testing.T) {
	order := testOrder()
	sender := &fakeSender{}
	marker := newMemoryMarker()

	w := newTestWorkflow(&fakeOrderStore{order: order}, &fakeStayStore{}, &fakeUserStore{}, sender, marker, &fakePublisher{})

	require.NoError(t, w.Run(context.Background(), "run-1", order.ID.Hex(), entities.ConfirmationSnapshot{}))
	require.NoError(t, w.Run(context.Background(), "run-1", order.ID.Hex(), entities.ConfirmationSnapshot{}))

	assert.Equal(t, 1, sender.sent)

	// a different run id sends again
	require.NoError(t, w.Run(context.Background(), "run-2", order.ID.Hex(), entities.ConfirmationSnapshot{}))
	assert.Equal(t, 2, sender.sent)
}

func TestWorkflow_Run_MarkerFailureDegradesToAtLeastOnce(t *testing.T) {
	order := testOrder()
	sender := &fakeSender{}
	marker := newMemoryMarker()
	marker.getErr = errors.New("redis down")
	marker.setErr = errors.New("redis down")

	w := newTestWorkflow(&fakeOrderStore{order: order}, &fakeStayStore{}, &fakeUserStore{}, sender, marker, &fakePublisher{})

	require.NoError(t, w.Run(context.Background(), "run-1", order.ID.Hex(), entities.ConfirmationSnapshot{}))
	require.NoError(t, w.Run(context.Background(), "run-1", order.ID.Hex(), entities.ConfirmationSnapshot{}))

	assert.Equal(t, 2, sender.sent)
}

func TestWorkflow_Run_MarkSentFailureDoesNotFailRun(t *testing.T) {
	order := testOrder()
	orders := &fakeOrderStore{order: order, markErr: errors.New("write failed")}
	sender := &fakeSender{}

	w := newTestWorkflow(orders, &fakeStayStore{}, &fakeUserStore{}, sender, newMemoryMarker(), &fakePublisher{})

	err := w.Run(context.Background(), "run-1", order.ID.Hex(), entities.ConfirmationSnapshot{})

	require.NoError(t, err)
	assert.Equal(t, 1, sender.sent)
	assert.True(t, orders.markCalled)
}

func TestWorkflow_Run_SnapshotAloneIsEnough(t *testing.T) {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	price := 300.0

	sender := &fakeSender{}

	w := newTestWorkflow(
		&fakeOrderStore{getErr: errors.New("order store down")},
		&fakeStayStore{err: errors.New("stay store down")},
		&fakeUserStore{err: errors.New("user store down")},
		sender,
		newMemoryMarker(),
		&fakePublisher{},
	)

	snapshot := entities.ConfirmationSnapshot{
		GuestEmail: "dana@example.com",
		GuestName:  "Dana",
		StayName:   "Loft",
		StartDate:  &start,
		EndDate:    &end,
		TotalPrice: &price,
	}

	err := w.Run(context.Background(), "run-1", "missing-order", snapshot)

	require.NoError(t, err)
	assert.Equal(t, 1, sender.sent)
	assert.Contains(t, sender.subject, "Loft")
}
