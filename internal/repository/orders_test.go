package repository

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sharebnb/internal/entities"
)

var (
	testDB        *mongo.Database
	getTestDBOnce sync.Once
)

// getTestDB connects to TEST_MONGO_URL once per test binary. Tests that need
// it are skipped when the variable is unset.
func getTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	url := os.Getenv("TEST_MONGO_URL")
	if url == "" {
		t.Skip("TEST_MONGO_URL not set, skipping integration test")
	}

	getTestDBOnce.Do(func() {
		client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(url))
		if err != nil {
			panic(err)
		}
		testDB = client.Database("sharebnb_test")
	})
	return testDB
}

func cleanupCollections(t *testing.T, db *mongo.Database) {
	t.Helper()

	for _, name := range []string{"order", "user", "stay", "events"} {
		_, err := db.Collection(name).DeleteMany(context.Background(), bson.M{})
		require.NoError(t, err)
	}
}

func insertUser(t *testing.T, db *mongo.Database, user entities.User) primitive.ObjectID {
	t.Helper()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := db.Collection("user").InsertOne(context.Background(), user)
	require.NoError(t, err)
	return user.ID
}

func insertStay(t *testing.T, db *mongo.Database, stay entities.Stay) primitive.ObjectID {
	t.Helper()

	if stay.ID.IsZero() {
		stay.ID = primitive.NewObjectID()
	}
	_, err := db.Collection("stay").InsertOne(context.Background(), stay)
	require.NoError(t, err)
	return stay.ID
}

func validCreateOrder(userID, stayID, hostID primitive.ObjectID) entities.CreateOrder {
	return entities.CreateOrder{
		UserID:       userID.Hex(),
		StayID:       stayID.Hex(),
		HostID:       hostID.Hex(),
		StartDate:    time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Guests:       2,
		TotalPrice:   300,
		ContactEmail: "dana@example.com",
	}
}

func TestOrdersRepo_Create_Validation(t *testing.T) {
	// validation runs before any collection access
	repo := &OrdersRepo{}
	ctx := context.Background()

	userID := primitive.NewObjectID()
	stayID := primitive.NewObjectID()
	hostID := primitive.NewObjectID()

	t.Run("rejects malformed ids", func(t *testing.T) {
		in := validCreateOrder(userID, stayID, hostID)
		in.UserID = "not-an-id"

		_, err := repo.Create(ctx, in)

		var validationErr entities.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "userId", validationErr.Field)
	})

	t.Run("rejects zero guests", func(t *testing.T) {
		in := validCreateOrder(userID, stayID, hostID)
		in.Guests = 0

		_, err := repo.Create(ctx, in)

		var validationErr entities.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "guests", validationErr.Field)
	})

	t.Run("rejects negative total", func(t *testing.T) {
		in := validCreateOrder(userID, stayID, hostID)
		in.TotalPrice = -1

		_, err := repo.Create(ctx, in)

		var validationErr entities.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "totalPrice", validationErr.Field)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		in := validCreateOrder(userID, stayID, hostID)
		in.Status = "confirmed-ish"

		_, err := repo.Create(ctx, in)

		var validationErr entities.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "status", validationErr.Field)
	})
}

func TestOrdersRepo_Integration(t *testing.T) {
	db := getTestDB(t)
	t.Cleanup(func() { cleanupCollections(t, db) })

	repo := NewOrdersRepo(db)
	ctx := context.Background()

	guestID := insertUser(t, db, entities.User{Username: "dana42", Fullname: "Dana", Email: "dana@example.com"})
	hostID := insertUser(t, db, entities.User{Username: "host1", Fullname: "Harry Host", Email: "harry@example.com"})
	stayID := insertStay(t, db, entities.Stay{Name: "Loft", Address: "12 Cherry Lane", HostID: hostID})

	t.Run("create defaults to pending and sets created at", func(t *testing.T) {
		order, err := repo.Create(ctx, validCreateOrder(guestID, stayID, hostID))
		require.NoError(t, err)

		assert.Equal(t, entities.OrderStatusPending, order.Status)
		assert.False(t, order.CreatedAt.IsZero())

		got, err := repo.GetByID(ctx, order.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, order.ID, got.ID)
	})

	t.Run("get by id returns not found for missing order", func(t *testing.T) {
		_, err := repo.GetByID(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("query enriches guest stay and host", func(t *testing.T) {
		order, err := repo.Create(ctx, validCreateOrder(guestID, stayID, hostID))
		require.NoError(t, err)

		views, err := repo.Query(ctx, entities.OrderFilter{HostID: hostID.Hex()})
		require.NoError(t, err)
		require.NotEmpty(t, views)

		var view *entities.OrderView
		for i := range views {
			if views[i].ID == order.ID {
				view = &views[i]
			}
		}
		require.NotNil(t, view)

		assert.Equal(t, "Dana", view.Guest.Fullname)
		assert.Equal(t, "Loft", view.Stay.Name)
		assert.Equal(t, "12 Cherry Lane", view.Stay.Address)
		assert.Equal(t, "Harry Host", view.Host.Fullname)
	})

	t.Run("query by status filters", func(t *testing.T) {
		views, err := repo.Query(ctx, entities.OrderFilter{
			HostID: hostID.Hex(),
			Status: string(entities.OrderStatusApproved),
		})
		require.NoError(t, err)

		for _, v := range views {
			assert.Equal(t, entities.OrderStatusApproved, v.Status)
		}
	})

	t.Run("set status requires the host", func(t *testing.T) {
		order, err := repo.Create(ctx, validCreateOrder(guestID, stayID, hostID))
		require.NoError(t, err)

		_, err = repo.SetStatus(ctx, order.ID.Hex(), entities.OrderStatusApproved, guestID.Hex())
		assert.ErrorIs(t, err, entities.ErrForbidden)

		view, err := repo.SetStatus(ctx, order.ID.Hex(), entities.OrderStatusApproved, hostID.Hex())
		require.NoError(t, err)
		assert.Equal(t, entities.OrderStatusApproved, view.Status)
	})

	t.Run("mark confirmation sent stamps the order", func(t *testing.T) {
		order, err := repo.Create(ctx, validCreateOrder(guestID, stayID, hostID))
		require.NoError(t, err)

		at := time.Now().UTC().Truncate(time.Millisecond)
		require.NoError(t, repo.MarkConfirmationSent(ctx, order.ID.Hex(), at))
		// re-applying overwrites the stamp, nothing else
		require.NoError(t, repo.MarkConfirmationSent(ctx, order.ID.Hex(), at.Add(time.Minute)))

		got, err := repo.GetByID(ctx, order.ID.Hex())
		require.NoError(t, err)
		require.Contains(t, got.Emails, entities.NotificationConfirmationSentAt)
		assert.WithinDuration(t, at.Add(time.Minute), got.Emails[entities.NotificationConfirmationSentAt], time.Second)
		assert.Equal(t, entities.OrderStatusPending, got.Status)
	})

	t.Run("remove requires host or admin", func(t *testing.T) {
		order, err := repo.Create(ctx, validCreateOrder(guestID, stayID, hostID))
		require.NoError(t, err)

		err = repo.Remove(ctx, order.ID.Hex(), guestID.Hex(), false)
		assert.ErrorIs(t, err, entities.ErrForbidden)

		require.NoError(t, repo.Remove(ctx, order.ID.Hex(), guestID.Hex(), true))

		_, err = repo.GetByID(ctx, order.ID.Hex())
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}
