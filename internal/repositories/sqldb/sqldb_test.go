package sqldb

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"tattoo-studio-api/internal/database"
	"tattoo-studio-api/internal/database/databasetest"
	"tattoo-studio-api/internal/models"
	"tattoo-studio-api/internal/repositories"
)

func setupStore(t *testing.T) (*Store, *database.Connector) {
	connector := databasetest.NewSQLite(t)
	return NewStore(connector, databasetest.Logger()), connector
}

func TestBookingRepository_CreateAndList(t *testing.T) {
	store, connector := setupStore(t)
	ctx := context.Background()

	clientID := databasetest.SeedUser(t, connector, "ivan", "client")
	otherID := databasetest.SeedUser(t, connector, "olga", "client")
	serviceID := databasetest.SeedService(t, connector, "Mini tattoo", 3500, 60)

	early := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	late := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

	var created *models.Booking
	err := store.WithTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		created = models.NewBooking(clientID, serviceID, early, "left forearm")
		if err := repos.Bookings().Create(ctx, created); err != nil {
			return err
		}
		return repos.Bookings().Create(ctx, models.NewBooking(otherID, serviceID, late, ""))
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if created.ID == 0 {
		t.Fatal("Expected generated ID")
	}
	if created.Status != models.BookingStatusPending {
		t.Errorf("Expected pending status, got %s", created.Status)
	}
	if !created.BookingDate.Equal(early) {
		t.Errorf("Expected booking date %v, got %v", early, created.BookingDate)
	}
	if created.CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}

	var all, mine []*models.BookingDetails
	err = store.WithTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		var err error
		if all, err = repos.Bookings().List(ctx, repositories.BookingFilters{}); err != nil {
			return err
		}
		mine, err = repos.Bookings().List(ctx, repositories.BookingFilters{UserID: &clientID})
		return err
	})
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}

	if len(all) != 2 {
		t.Fatalf("Expected 2 bookings, got %d", len(all))
	}
	if !all[0].BookingDate.Equal(late) {
		t.Errorf("Expected latest booking first, got %v", all[0].BookingDate)
	}

	if len(mine) != 1 {
		t.Fatalf("Expected 1 booking for client, got %d", len(mine))
	}
	if mine[0].ServiceName == nil || *mine[0].ServiceName != "Mini tattoo" {
		t.Errorf("Expected joined service name, got %v", mine[0].ServiceName)
	}
	if mine[0].Price == nil || *mine[0].Price != 3500 {
		t.Errorf("Expected joined price 3500, got %v", mine[0].Price)
	}
	if mine[0].ClientEmail == nil || *mine[0].ClientEmail != "ivan@studio.test" {
		t.Errorf("Expected joined client email, got %v", mine[0].ClientEmail)
	}
}

func TestBookingRepository_ListEmptyIsNotNil(t *testing.T) {
	store, _ := setupStore(t)

	var bookings []*models.BookingDetails
	err := store.WithTransaction(context.Background(), func(ctx context.Context, repos repositories.Repositories) error {
		var err error
		bookings, err = repos.Bookings().List(ctx, repositories.BookingFilters{Status: models.BookingStatusConfirmed})
		return err
	})
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if bookings == nil || len(bookings) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", bookings)
	}
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	store, connector := setupStore(t)
	ctx := context.Background()

	clientID := databasetest.SeedUser(t, connector, "ivan", "client")
	serviceID := databasetest.SeedService(t, connector, "Cover-up", 9000, 180)

	booking := models.NewBooking(clientID, serviceID, time.Now().UTC(), "")
	err := store.WithTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		return repos.Bookings().Create(ctx, booking)
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	var updated *models.Booking
	err = store.WithTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		var err error
		updated, err = repos.Bookings().UpdateStatus(ctx, booking.ID, models.BookingStatusConfirmed)
		return err
	})
	if err != nil {
		t.Fatalf("UpdateStatus() failed: %v", err)
	}
	if updated.Status != models.BookingStatusConfirmed {
		t.Errorf("Expected confirmed, got %s", updated.Status)
	}

	err = store.WithTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		_, err := repos.Bookings().UpdateStatus(ctx, 9999, models.BookingStatusConfirmed)
		return err
	})
	if !repositories.IsNotFound(err) {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestBookingRepository_ForeignKeyViolation(t *testing.T) {
	store, _ := setupStore(t)

	err := store.WithTransaction(context.Background(), func(ctx context.Context, repos repositories.Repositories) error {
		return repos.Bookings().Create(ctx, models.NewBooking(42, 43, time.Now().UTC(), ""))
	})
	if !repositories.IsForeignKey(err) {
		t.Errorf("Expected foreign key error, got %v", err)
	}
}

func TestOrderRepository_CreateUpdateAndList(t *testing.T) {
	store, connector := setupStore(t)
	ctx := context.Background()

	clientID := databasetest.SeedUser(t, connector, "ivan", "client")
	otherID := databasetest.SeedUser(t, connector, "olga", "client")
	databasetest.SeedOrder(t, connector, otherID, "portrait", "pending")

	order := models.NewOrder(clientID, "sleeve tattoo", "koi and waves")
	err := store.WithTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		return repos.Orders().Create(ctx, order)
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if order.ID == 0 || order.Status != models.OrderStatusPending || order.Price != nil {
		t.Fatalf("Unexpected created order: %+v", order)
	}
	if order.UpdatedAt.IsZero() {
		t.Error("Expected updated_at to be set")
	}

	price := 150.0
	status := models.OrderStatusPriced
	var updated *models.Order
	err = store.WithTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		var err error
		updated, err = repos.Orders().Update(ctx, order.ID, models.OrderChanges{Status: &status, Price: &price})
		return err
	})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if updated.Status != models.OrderStatusPriced {
		t.Errorf("Expected priced, got %s", updated.Status)
	}
	if updated.Price == nil || *updated.Price != 150 {
		t.Errorf("Expected price 150, got %v", updated.Price)
	}
	if updated.PaymentMethod != nil {
		t.Errorf("Expected payment method untouched, got %v", *updated.PaymentMethod)
	}

	var all, mine []*models.OrderDetails
	var details *models.OrderDetails
	err = store.WithTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		var err error
		if all, err = repos.Orders().List(ctx, repositories.OrderFilters{}); err != nil {
			return err
		}
		if mine, err = repos.Orders().List(ctx, repositories.OrderFilters{UserID: &clientID}); err != nil {
			return err
		}
		details, err = repos.Orders().GetDetails(ctx, order.ID)
		return err
	})
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}

	if len(all) != 2 {
		t.Errorf("Expected 2 orders, got %d", len(all))
	}
	if len(mine) != 1 || mine[0].ID != order.ID {
		t.Errorf("Expected only the client's order, got %d orders", len(mine))
	}
	if details.ClientName != "ivan" || details.ClientEmail != "ivan@studio.test" {
		t.Errorf("Unexpected client details: %s %s", details.ClientName, details.ClientEmail)
	}
}

func TestOrderRepository_MarkDiscussing(t *testing.T) {
	store, connector := setupStore(t)
	ctx := context.Background()

	clientID := databasetest.SeedUser(t, connector, "ivan", "client")
	pendingID := databasetest.SeedOrder(t, connector, clientID, "sketch", "pending")
	pricedID := databasetest.SeedOrder(t, connector, clientID, "sketch", "priced")

	var changedPending, changedPriced bool
	err := store.WithTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		var err error
		if changedPending, err = repos.Orders().MarkDiscussing(ctx, pendingID); err != nil {
			return err
		}
		changedPriced, err = repos.Orders().MarkDiscussing(ctx, pricedID)
		return err
	})
	if err != nil {
		t.Fatalf("MarkDiscussing() failed: %v", err)
	}

	if !changedPending {
		t.Error("Expected pending order to change")
	}
	if changedPriced {
		t.Error("Priced order should not change")
	}

	if got := databasetest.QueryString(t, connector, `SELECT status FROM orders WHERE id = ?`, pendingID); got != "discussing" {
		t.Errorf("Expected discussing, got %s", got)
	}
	if got := databasetest.QueryString(t, connector, `SELECT status FROM orders WHERE id = ?`, pricedID); got != "priced" {
		t.Errorf("Expected priced, got %s", got)
	}
}

func TestOrderMessageRepository_Thread(t *testing.T) {
	store, connector := setupStore(t)
	ctx := context.Background()

	clientID := databasetest.SeedUser(t, connector, "ivan", "client")
	masterID := databasetest.SeedUser(t, connector, "anna", "master")
	orderID := databasetest.SeedOrder(t, connector, clientID, "sleeve tattoo", "pending")

	first := models.NewOrderMessage(orderID, clientID, "Hello")
	second := models.NewOrderMessage(orderID, masterID, "Hi, send a sketch")

	err := store.WithTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		if err := repos.OrderMessages().Create(ctx, first); err != nil {
			return err
		}
		return repos.OrderMessages().Create(ctx, second)
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if first.ID == 0 || first.CreatedAt.IsZero() {
		t.Errorf("Expected generated fields, got %+v", first)
	}

	var thread []*models.OrderMessageDetails
	err = store.WithTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		var err error
		thread, err = repos.OrderMessages().ListByOrder(ctx, orderID)
		return err
	})
	if err != nil {
		t.Fatalf("ListByOrder() failed: %v", err)
	}

	if len(thread) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(thread))
	}
	if thread[0].ID != first.ID || thread[1].ID != second.ID {
		t.Errorf("Expected messages in insertion order, got %d then %d", thread[0].ID, thread[1].ID)
	}
	if thread[1].SenderName != "anna" || thread[1].SenderRole != models.RoleMaster {
		t.Errorf("Unexpected sender: %s %s", thread[1].SenderName, thread[1].SenderRole)
	}
}

func TestContactMessageRepository_Create(t *testing.T) {
	store, _ := setupStore(t)

	msg := &models.ContactMessage{Name: "Olga", Phone: "+79990000000", Message: "Want a consultation"}
	err := store.WithTransaction(context.Background(), func(ctx context.Context, repos repositories.Repositories) error {
		return repos.ContactMessages().Create(ctx, msg)
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if msg.ID == 0 {
		t.Error("Expected generated ID")
	}
	if msg.Email != "" {
		t.Errorf("Expected empty email, got %q", msg.Email)
	}
}

func TestUserAndServiceRepository_NotFound(t *testing.T) {
	store, _ := setupStore(t)

	err := store.WithTransaction(context.Background(), func(ctx context.Context, repos repositories.Repositories) error {
		if _, err := repos.Users().GetByID(ctx, 1); !repositories.IsNotFound(err) {
			t.Errorf("Expected user not found, got %v", err)
		}
		if _, err := repos.Services().GetByID(ctx, 1); !repositories.IsNotFound(err) {
			t.Errorf("Expected service not found, got %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithTransaction() failed: %v", err)
	}
}

func TestStore_RollbackOnError(t *testing.T) {
	store, connector := setupStore(t)
	ctx := context.Background()

	clientID := databasetest.SeedUser(t, connector, "ivan", "client")
	sentinel := errors.New("boom")

	err := store.WithTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		if err := repos.Orders().Create(ctx, models.NewOrder(clientID, "sketch", "")); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("Expected sentinel error, got %v", err)
	}

	if got := databasetest.QueryString(t, connector, `SELECT COUNT(*) FROM orders`); got != "0" {
		t.Errorf("Expected rollback to leave no orders, got %s", got)
	}
}

func TestStore_RollbackOnPanic(t *testing.T) {
	store, connector := setupStore(t)
	clientID := databasetest.SeedUser(t, connector, "ivan", "client")

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected panic to propagate")
			}
		}()
		_ = store.WithTransaction(context.Background(), func(ctx context.Context, repos repositories.Repositories) error {
			if err := repos.Orders().Create(ctx, models.NewOrder(clientID, "sketch", "")); err != nil {
				return err
			}
			panic("handler bug")
		})
	}()

	if got := databasetest.QueryString(t, connector, `SELECT COUNT(*) FROM orders`); got != "0" {
		t.Errorf("Expected rollback to leave no orders, got %s", got)
	}
}

func TestStore_Health(t *testing.T) {
	store, _ := setupStore(t)
	if err := store.Health(context.Background()); err != nil {
		t.Fatalf("Health() failed: %v", err)
	}
}

func TestStore_ConnectionFailure(t *testing.T) {
	connector := database.NewConnector(&database.ConnectionConfig{
		Driver:         database.DriverSQLite,
		DSN:            filepath.Join(t.TempDir(), "missing", "dir", "studio.db"),
		ConnectTimeout: time.Second,
		Logger:         databasetest.Logger(),
	})
	store := NewStore(connector, databasetest.Logger())

	called := false
	err := store.WithTransaction(context.Background(), func(ctx context.Context, repos repositories.Repositories) error {
		called = true
		return nil
	})
	if !repositories.IsConnection(err) {
		t.Fatalf("Expected connection error, got %v", err)
	}
	if called {
		t.Error("Transaction body must not run without a connection")
	}
}
