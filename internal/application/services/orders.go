package services

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"

	"sharebnb/internal/entities"
)

type OrdersRepository interface {
	Create(ctx context.Context, in entities.CreateOrder) (*entities.Order, error)
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	Query(ctx context.Context, filter entities.OrderFilter) ([]entities.OrderView, error)
	SetStatus(ctx context.Context, id string, status entities.OrderStatus, requesterID string) (*entities.OrderView, error)
	Remove(ctx context.Context, id, requesterID string, isAdmin bool) error
}

type StaysRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Stay, error)
}

type LiveUpdater interface {
	EmitToUser(userID string, event entities.LiveUpdate)
}

type EventBus interface {
	Publish(ctx context.Context, event any) error
}

// OrdersService wraps the repository with authorization and side-effect
// orchestration: live updates on status transitions and the asynchronous
// confirmation trigger on creation. Side effects are best-effort and never
// fail the operation that triggered them.
type OrdersService struct {
	orders    OrdersRepository
	stays     StaysRepository
	live      LiveUpdater
	eb        EventBus
	clientURL string
}

func NewOrdersService(
	orders OrdersRepository,
	stays StaysRepository,
	live LiveUpdater,
	eb EventBus,
	clientURL string,
) *OrdersService {
	return &OrdersService{
		orders:    orders,
		stays:     stays,
		live:      live,
		eb:        eb,
		clientURL: clientURL,
	}
}

// RequestOrder creates a booking on behalf of the guest named in the input.
// The input's userId is trusted as the guest even when it differs from the
// requester, so guest checkout flows keep working; the requester's email
// still feeds the contact-email fallback.
func (s *OrdersService) RequestOrder(ctx context.Context, requester entities.Identity, in entities.CreateOrder) (*entities.Order, error) {
	if in.ContactEmail == "" {
		in.ContactEmail = requester.Email
	}

	order, err := s.orders.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.publishOrderPlaced(ctx, requester, order)

	return order, nil
}

// publishOrderPlaced enqueues the confirmation workflow trigger with a
// denormalized snapshot so the workflow can usually skip its own lookups.
// The trigger is fire-and-forget; a publish failure is logged, never
// surfaced to the caller.
func (s *OrdersService) publishOrderPlaced(ctx context.Context, requester entities.Identity, order *entities.Order) {
	snapshot := entities.ConfirmationSnapshot{
		Order:      order,
		GuestID:    order.UserID.Hex(),
		GuestEmail: order.ContactEmail,
		GuestName:  requester.Fullname,
		StartDate:  &order.StartDate,
		EndDate:    &order.EndDate,
		TotalPrice: &order.TotalPrice,
		ManageURL:  s.clientURL + "/trips/" + order.ID.Hex(),
	}
	if snapshot.GuestName == "" {
		snapshot.GuestName = requester.Username
	}

	if stay, err := s.stays.GetByID(ctx, order.StayID.Hex()); err == nil && stay != nil {
		snapshot.Stay = stay
		snapshot.StayName = stay.Name
		snapshot.Address = stay.Address
		if snapshot.Address == "" {
			snapshot.Address = stay.City
		}
	}

	err := s.eb.Publish(ctx, entities.OrderPlaced_v1{
		Header:   entities.NewEventHeader(),
		OrderID:  order.ID.Hex(),
		Snapshot: snapshot,
	})
	if err != nil {
		log.FromContext(ctx).
			WithField("order_id", order.ID.Hex()).
			WithField("error", err).
			Error("Could not publish order placed event")
	}
}

// ChangeStatus persists a transition and notifies both parties. Exactly two
// live updates go out for approved/rejected, none for pending.
func (s *OrdersService) ChangeStatus(ctx context.Context, requester entities.Identity, orderID string, status entities.OrderStatus) (*entities.OrderView, error) {
	view, err := s.orders.SetStatus(ctx, orderID, status, requester.ID)
	if err != nil {
		return nil, err
	}

	if status == entities.OrderStatusApproved || status == entities.OrderStatusRejected {
		s.live.EmitToUser(view.UserID.Hex(), entities.LiveUpdate{
			Type:        entities.LiveUpdateOrderChanged,
			Data:        view,
			RecipientID: view.UserID.Hex(),
		})
		s.live.EmitToUser(view.HostID.Hex(), entities.LiveUpdate{
			Type:        entities.LiveUpdateOrderChanged,
			Data:        view,
			RecipientID: view.HostID.Hex(),
		})

		err := s.eb.Publish(ctx, entities.OrderStatusChanged_v1{
			Header:    entities.NewEventHeader(),
			OrderID:   view.ID.Hex(),
			Status:    status,
			UserID:    view.UserID.Hex(),
			HostID:    view.HostID.Hex(),
			ChangedAt: time.Now(),
		})
		if err != nil {
			log.FromContext(ctx).
				WithField("order_id", orderID).
				WithField("error", err).
				Error("Could not publish status changed event")
		}
	}

	return view, nil
}

func (s *OrdersService) GetOrder(ctx context.Context, id string) (*entities.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *OrdersService) ListOrders(ctx context.Context, filter entities.OrderFilter) ([]entities.OrderView, error) {
	return s.orders.Query(ctx, filter)
}

func (s *OrdersService) RemoveOrder(ctx context.Context, requester entities.Identity, id string) error {
	return s.orders.Remove(ctx, id, requester.ID, requester.IsAdmin)
}
