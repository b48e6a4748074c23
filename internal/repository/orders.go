package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"sharebnb/internal/entities"
)

// OrdersRepo owns the canonical state of order documents. Enriched reads
// join the guest, stay and host collections; the joins are 1:1 by
// construction, so every lookup is unwound into a single sub-document.
type OrdersRepo struct {
	orders *mongo.Collection
}

func NewOrdersRepo(db *mongo.Database) *OrdersRepo {
	return &OrdersRepo{orders: db.Collection("order")}
}

func parseObjectID(field, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, entities.ValidationError{Field: field, Reason: "not a valid object id"}
	}
	return oid, nil
}

func (r *OrdersRepo) Create(ctx context.Context, in entities.CreateOrder) (*entities.Order, error) {
	userID, err := parseObjectID("userId", in.UserID)
	if err != nil {
		return nil, err
	}
	stayID, err := parseObjectID("stayId", in.StayID)
	if err != nil {
		return nil, err
	}
	hostID, err := parseObjectID("hostId", in.HostID)
	if err != nil {
		return nil, err
	}
	if in.Guests < 1 {
		return nil, entities.ValidationError{Field: "guests", Reason: "must be at least 1"}
	}
	if in.TotalPrice < 0 {
		return nil, entities.ValidationError{Field: "totalPrice", Reason: "must not be negative"}
	}

	status := in.Status
	if status == "" {
		status = entities.OrderStatusPending
	}
	if !status.Valid() {
		return nil, entities.ValidationError{Field: "status", Reason: "unknown status"}
	}

	order := entities.Order{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		StayID:       stayID,
		HostID:       hostID,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Guests:       in.Guests,
		TotalPrice:   in.TotalPrice,
		Status:       status,
		ContactEmail: in.ContactEmail,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := r.orders.InsertOne(ctx, order); err != nil {
		return nil, entities.StoreError{Op: "insert order", Err: err}
	}

	return &order, nil
}

func (r *OrdersRepo) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	oid, err := parseObjectID("orderId", id)
	if err != nil {
		return nil, err
	}

	var order entities.Order
	err = r.orders.FindOne(ctx, bson.M{"_id": oid}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, entities.StoreError{Op: "find order", Err: err}
	}

	return &order, nil
}

func buildCriteria(filter entities.OrderFilter) (bson.M, error) {
	criteria := bson.M{}
	if filter.HostID != "" {
		oid, err := parseObjectID("hostId", filter.HostID)
		if err != nil {
			return nil, err
		}
		criteria["hostId"] = oid
	}
	if filter.UserID != "" {
		oid, err := parseObjectID("userId", filter.UserID)
		if err != nil {
			return nil, err
		}
		criteria["userId"] = oid
	}
	if filter.Status != "" {
		if !entities.OrderStatus(filter.Status).Valid() {
			return nil, entities.ValidationError{Field: "status", Reason: "unknown status"}
		}
		criteria["status"] = filter.Status
	}
	return criteria, nil
}

// enrichmentStages joins user (guest), stay and user (host) into the order
// and projects the view shape. A booking always references exactly one
// guest, one stay and one host, so each $lookup unwinds to one document.
func enrichmentStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "user",
			"localField":   "userId",
			"foreignField": "_id",
			"as":           "guest",
		}}},
		{{Key: "$unwind", Value: "$guest"}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "stay",
			"localField":   "stayId",
			"foreignField": "_id",
			"as":           "stay",
		}}},
		{{Key: "$unwind", Value: "$stay"}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "user",
			"localField":   "hostId",
			"foreignField": "_id",
			"as":           "host",
		}}},
		{{Key: "$unwind", Value: "$host"}},
		{{Key: "$project", Value: bson.M{
			"userId":       1,
			"stayId":       1,
			"hostId":       1,
			"startDate":    1,
			"endDate":      1,
			"status":       1,
			"totalPrice":   1,
			"guests":       1,
			"createdAt":    1,
			"contactEmail": 1,
			"guest": bson.M{
				"_id":      "$guest._id",
				"imgUrl":   "$guest.imgUrl",
				"fullname": bson.M{"$ifNull": bson.A{"$guest.fullname", "$guest.username"}},
				"email":    "$guest.email",
			},
			"stay": bson.M{
				"_id":     "$stay._id",
				"name":    "$stay.name",
				"imgUrls": "$stay.imgUrls",
				"price":   "$stay.price",
				"address": bson.M{"$ifNull": bson.A{"$stay.address", "$stay.city"}},
			},
			"host": bson.M{
				"_id":      "$host._id",
				"imgUrl":   "$host.imgUrl",
				"fullname": bson.M{"$ifNull": bson.A{"$host.fullname", "$host.username"}},
				"email":    "$host.email",
			},
		}}},
	}
}

func (r *OrdersRepo) Query(ctx context.Context, filter entities.OrderFilter) ([]entities.OrderView, error) {
	criteria, err := buildCriteria(filter)
	if err != nil {
		return nil, err
	}

	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: criteria}},
	}, enrichmentStages()...)

	cur, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, entities.StoreError{Op: "query orders", Err: err}
	}
	defer cur.Close(ctx)

	views := []entities.OrderView{}
	if err := cur.All(ctx, &views); err != nil {
		return nil, entities.StoreError{Op: "decode orders", Err: err}
	}

	return views, nil
}

func (r *OrdersRepo) getView(ctx context.Context, oid primitive.ObjectID) (*entities.OrderView, error) {
	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": oid}}},
	}, enrichmentStages()...)

	cur, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, entities.StoreError{Op: "read order view", Err: err}
	}
	defer cur.Close(ctx)

	var views []entities.OrderView
	if err := cur.All(ctx, &views); err != nil {
		return nil, entities.StoreError{Op: "decode order view", Err: err}
	}
	if len(views) == 0 {
		return nil, entities.ErrNotFound
	}

	return &views[0], nil
}

// SetStatus persists a status transition and returns the re-read enriched
// view. Only the order's host may transition it, whatever the target status.
func (r *OrdersRepo) SetStatus(ctx context.Context, id string, status entities.OrderStatus, requesterID string) (*entities.OrderView, error) {
	oid, err := parseObjectID("orderId", id)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, entities.ValidationError{Field: "status", Reason: "unknown status"}
	}

	order, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.HostID.Hex() != requesterID {
		return nil, entities.ErrForbidden
	}

	_, err = r.orders.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return nil, entities.StoreError{Op: "update order status", Err: err}
	}

	return r.getView(ctx, oid)
}

// MarkConfirmationSent records when the confirmation email went out. Safe to
// re-apply; later timestamps simply overwrite earlier ones.
func (r *OrdersRepo) MarkConfirmationSent(ctx context.Context, id string, at time.Time) error {
	oid, err := parseObjectID("orderId", id)
	if err != nil {
		return err
	}

	_, err = r.orders.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"emails." + entities.NotificationConfirmationSentAt: at}},
	)
	if err != nil {
		return entities.StoreError{Op: "mark confirmation sent", Err: err}
	}

	return nil
}

func (r *OrdersRepo) Remove(ctx context.Context, id, requesterID string, isAdmin bool) error {
	oid, err := parseObjectID("orderId", id)
	if err != nil {
		return err
	}

	order, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && order.HostID.Hex() != requesterID {
		return entities.ErrForbidden
	}

	if _, err := r.orders.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return entities.StoreError{Op: "delete order", Err: err}
	}

	return nil
}
