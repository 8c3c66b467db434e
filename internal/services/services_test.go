package services

import (
	"context"
	"errors"
	"testing"

	"tattoo-studio-api/internal/database"
	"tattoo-studio-api/internal/database/databasetest"
	"tattoo-studio-api/internal/models"
	"tattoo-studio-api/internal/repositories/sqldb"
)

type testEnv struct {
	connector *database.Connector
	services  *ServiceContainer
	notifier  *recordingNotifier
}

type recordingNotifier struct {
	sent []*models.ContactMessage
	err  error
}

func (n *recordingNotifier) NotifyContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	n.sent = append(n.sent, msg)
	return n.err
}

func setupServices(t *testing.T) *testEnv {
	connector := databasetest.NewSQLite(t)
	logger := databasetest.Logger()
	notifier := &recordingNotifier{}

	container, err := NewServiceContainer(sqldb.NewStore(connector, logger), &ServiceConfig{
		ContactNotifier: notifier,
		Logger:          logger,
	})
	if err != nil {
		t.Fatalf("NewServiceContainer() failed: %v", err)
	}
	if err := container.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}

	return &testEnv{connector: connector, services: container, notifier: notifier}
}

func assertServiceError(t *testing.T, err error, kind error, message string) {
	t.Helper()

	if !errors.Is(err, kind) {
		t.Fatalf("Expected %v, got %v", kind, err)
	}
	got, ok := ClientMessage(err)
	if !ok {
		t.Fatalf("Expected a ServiceError, got %T", err)
	}
	if got != message {
		t.Errorf("Expected message %q, got %q", message, got)
	}
}

func TestNewServiceContainerRequiresStore(t *testing.T) {
	if _, err := NewServiceContainer(nil, nil); err == nil {
		t.Error("Expected error for nil store")
	}
}

func TestValidateRequestMessages(t *testing.T) {
	v := newValidator()

	err := validateRequest(v, "test", &UpdateBookingStatusRequest{ID: 1}, MsgBookingUpdateRequired)
	assertServiceError(t, err, ErrValidation, MsgBookingUpdateRequired)

	err = validateRequest(v, "test", &UpdateBookingStatusRequest{ID: 1, Status: "archived"}, MsgBookingUpdateRequired)
	assertServiceError(t, err, ErrValidation, "Некорректное значение поля status")

	err = validateRequest(v, "test", &UpdateBookingStatusRequest{ID: 1, Status: "confirmed"}, MsgBookingUpdateRequired)
	if err != nil {
		t.Errorf("Expected valid request, got %v", err)
	}
}

func TestBookingService_CreateBooking(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	userID := databasetest.SeedUser(t, env.connector, "ivan", "client")
	serviceID := databasetest.SeedService(t, env.connector, "Mini tattoo", 3500, 60)

	booking, err := env.services.BookingService.CreateBooking(ctx, &CreateBookingRequest{
		UserID:      userID,
		ServiceID:   serviceID,
		BookingDate: "2026-03-01T14:00:00",
		Notes:       "left forearm",
	})
	if err != nil {
		t.Fatalf("CreateBooking() failed: %v", err)
	}

	if booking.Status != models.BookingStatusPending {
		t.Errorf("Expected pending, got %s", booking.Status)
	}
	if booking.UserID != userID || booking.ServiceID != serviceID || booking.Notes != "left forearm" {
		t.Errorf("Booking does not echo request: %+v", booking)
	}
}

func TestBookingService_CreateBookingErrors(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	userID := databasetest.SeedUser(t, env.connector, "ivan", "client")
	serviceID := databasetest.SeedService(t, env.connector, "Mini tattoo", 3500, 60)

	tests := []struct {
		name    string
		req     *CreateBookingRequest
		kind    error
		message string
	}{
		{"missing date", &CreateBookingRequest{UserID: userID, ServiceID: serviceID}, ErrValidation, MsgBookingFieldsRequired},
		{"missing user", &CreateBookingRequest{ServiceID: serviceID, BookingDate: "2026-03-01"}, ErrValidation, MsgBookingFieldsRequired},
		{"bad date", &CreateBookingRequest{UserID: userID, ServiceID: serviceID, BookingDate: "soon"}, ErrValidation, "Некорректное значение поля booking_date"},
		{"unknown user", &CreateBookingRequest{UserID: 999, ServiceID: serviceID, BookingDate: "2026-03-01"}, ErrNotFound, MsgUserNotFound},
		{"unknown service", &CreateBookingRequest{UserID: userID, ServiceID: 999, BookingDate: "2026-03-01"}, ErrNotFound, MsgServiceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.services.BookingService.CreateBooking(ctx, tt.req)
			assertServiceError(t, err, tt.kind, tt.message)
		})
	}
}

func TestBookingService_UpdateAndList(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	userID := databasetest.SeedUser(t, env.connector, "ivan", "client")
	serviceID := databasetest.SeedService(t, env.connector, "Mini tattoo", 3500, 60)

	booking, err := env.services.BookingService.CreateBooking(ctx, &CreateBookingRequest{
		UserID: userID, ServiceID: serviceID, BookingDate: "2026-03-01 10:00",
	})
	if err != nil {
		t.Fatalf("CreateBooking() failed: %v", err)
	}

	updated, err := env.services.BookingService.UpdateBookingStatus(ctx, &UpdateBookingStatusRequest{ID: booking.ID, Status: "confirmed"})
	if err != nil {
		t.Fatalf("UpdateBookingStatus() failed: %v", err)
	}
	if updated.Status != models.BookingStatusConfirmed {
		t.Errorf("Expected confirmed, got %s", updated.Status)
	}

	_, err = env.services.BookingService.UpdateBookingStatus(ctx, &UpdateBookingStatusRequest{ID: 999, Status: "confirmed"})
	assertServiceError(t, err, ErrNotFound, MsgBookingNotFound)

	confirmed, err := env.services.BookingService.ListBookings(ctx, &BookingFilters{Status: "confirmed"})
	if err != nil {
		t.Fatalf("ListBookings() failed: %v", err)
	}
	if len(confirmed) != 1 {
		t.Errorf("Expected 1 confirmed booking, got %d", len(confirmed))
	}

	cancelled, err := env.services.BookingService.ListBookings(ctx, &BookingFilters{Status: "cancelled"})
	if err != nil {
		t.Fatalf("ListBookings() failed: %v", err)
	}
	if len(cancelled) != 0 {
		t.Errorf("Expected no cancelled bookings, got %d", len(cancelled))
	}
}

func TestContactService_Submit(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	msg, err := env.services.ContactService.SubmitContactMessage(ctx, &ContactRequest{
		Name:    "  Olga ",
		Phone:   " +79990000000",
		Message: "Want a consultation ",
	})
	if err != nil {
		t.Fatalf("SubmitContactMessage() failed: %v", err)
	}

	if msg.ID == 0 || msg.Name != "Olga" || msg.Message != "Want a consultation" {
		t.Errorf("Unexpected stored message: %+v", msg)
	}
	if len(env.notifier.sent) != 1 {
		t.Errorf("Expected one notification, got %d", len(env.notifier.sent))
	}
}

func TestContactService_NotifierFailureIsIgnored(t *testing.T) {
	env := setupServices(t)
	env.notifier.err = errors.New("mail provider down")

	_, err := env.services.ContactService.SubmitContactMessage(context.Background(), &ContactRequest{
		Name: "Olga", Phone: "+79990000000", Email: "olga@example.com", Message: "hi",
	})
	if err != nil {
		t.Fatalf("Notifier failure must not fail the submission: %v", err)
	}
}

func TestContactService_Validation(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	_, err := env.services.ContactService.SubmitContactMessage(ctx, &ContactRequest{Name: "Olga", Phone: "   ", Message: "hi"})
	assertServiceError(t, err, ErrValidation, MsgContactFieldsRequired)

	_, err = env.services.ContactService.SubmitContactMessage(ctx, &ContactRequest{Name: "Olga", Phone: "1", Email: "not-an-email", Message: "hi"})
	assertServiceError(t, err, ErrValidation, "Некорректное значение поля email")

	if len(env.notifier.sent) != 0 {
		t.Errorf("Rejected submissions must not notify, got %d", len(env.notifier.sent))
	}
}

func TestOrderService_CreateAndList(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	clientID := databasetest.SeedUser(t, env.connector, "ivan", "client")
	otherID := databasetest.SeedUser(t, env.connector, "olga", "client")
	masterID := databasetest.SeedUser(t, env.connector, "anna", "master")

	order, err := env.services.OrderService.CreateOrder(ctx, clientID, &CreateOrderRequest{ServiceType: "sleeve tattoo"})
	if err != nil {
		t.Fatalf("CreateOrder() failed: %v", err)
	}
	if order.Status != models.OrderStatusPending || order.Price != nil || order.UserID != clientID {
		t.Errorf("Unexpected order: %+v", order)
	}

	if _, err := env.services.OrderService.CreateOrder(ctx, otherID, &CreateOrderRequest{ServiceType: "portrait"}); err != nil {
		t.Fatalf("CreateOrder() failed: %v", err)
	}

	_, err = env.services.OrderService.CreateOrder(ctx, clientID, &CreateOrderRequest{ServiceType: "  "})
	assertServiceError(t, err, ErrValidation, MsgServiceTypeRequired)

	_, err = env.services.OrderService.CreateOrder(ctx, 999, &CreateOrderRequest{ServiceType: "portrait"})
	assertServiceError(t, err, ErrNotFound, MsgUserNotFound)

	mine, err := env.services.OrderService.ListOrders(ctx, clientID)
	if err != nil {
		t.Fatalf("ListOrders() failed: %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("Client should see 1 order, got %d", len(mine))
	}

	all, err := env.services.OrderService.ListOrders(ctx, masterID)
	if err != nil {
		t.Fatalf("ListOrders() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Master should see 2 orders, got %d", len(all))
	}
}

func TestOrderService_GetOrderAccess(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	clientID := databasetest.SeedUser(t, env.connector, "ivan", "client")
	strangerID := databasetest.SeedUser(t, env.connector, "olga", "client")
	masterID := databasetest.SeedUser(t, env.connector, "anna", "master")
	orderID := databasetest.SeedOrder(t, env.connector, clientID, "sleeve tattoo", "pending")

	if _, err := env.services.OrderService.GetOrder(ctx, clientID, orderID); err != nil {
		t.Errorf("Owner should read the order: %v", err)
	}
	if _, err := env.services.OrderService.GetOrder(ctx, masterID, orderID); err != nil {
		t.Errorf("Master should read the order: %v", err)
	}

	_, err := env.services.OrderService.GetOrder(ctx, strangerID, orderID)
	assertServiceError(t, err, ErrForbidden, MsgAccessDenied)

	_, err = env.services.OrderService.GetOrder(ctx, clientID, 999)
	assertServiceError(t, err, ErrNotFound, MsgOrderNotFound)

	_, err = env.services.OrderService.GetOrder(ctx, 999, orderID)
	assertServiceError(t, err, ErrNotFound, MsgUserNotFound)
}

func TestOrderService_UpdateOrder(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	clientID := databasetest.SeedUser(t, env.connector, "ivan", "client")
	strangerID := databasetest.SeedUser(t, env.connector, "olga", "client")
	masterID := databasetest.SeedUser(t, env.connector, "anna", "master")
	orderID := databasetest.SeedOrder(t, env.connector, clientID, "sleeve tattoo", "discussing")

	price := 150.0
	priced, err := env.services.OrderService.UpdateOrder(ctx, masterID, &UpdateOrderRequest{OrderID: orderID, Price: &price})
	if err != nil {
		t.Fatalf("UpdateOrder() failed: %v", err)
	}
	if priced.Status != models.OrderStatusPriced {
		t.Errorf("Price without status must force priced, got %s", priced.Status)
	}
	if priced.Price == nil || *priced.Price != 150 {
		t.Errorf("Expected price 150, got %v", priced.Price)
	}

	// A client price is dropped; the payment method still applies.
	clientPrice := 1.0
	card := "card"
	paid := "paid"
	updated, err := env.services.OrderService.UpdateOrder(ctx, clientID, &UpdateOrderRequest{
		OrderID: orderID, Price: &clientPrice, PaymentMethod: &card, Status: &paid,
	})
	if err != nil {
		t.Fatalf("UpdateOrder() failed: %v", err)
	}
	if *updated.Price != 150 {
		t.Errorf("Client must not change the price, got %v", *updated.Price)
	}
	if updated.Status != models.OrderStatusPaid || updated.PaymentMethod == nil || *updated.PaymentMethod != "card" {
		t.Errorf("Unexpected update result: %+v", updated)
	}

	// Only a client price: nothing left to update.
	_, err = env.services.OrderService.UpdateOrder(ctx, clientID, &UpdateOrderRequest{OrderID: orderID, Price: &clientPrice})
	assertServiceError(t, err, ErrValidation, MsgNothingToUpdate)

	_, err = env.services.OrderService.UpdateOrder(ctx, strangerID, &UpdateOrderRequest{OrderID: orderID, PaymentMethod: &card})
	assertServiceError(t, err, ErrForbidden, MsgAccessDenied)

	_, err = env.services.OrderService.UpdateOrder(ctx, masterID, &UpdateOrderRequest{OrderID: 999, PaymentMethod: &card})
	assertServiceError(t, err, ErrNotFound, MsgOrderNotFound)

	_, err = env.services.OrderService.UpdateOrder(ctx, masterID, &UpdateOrderRequest{PaymentMethod: &card})
	assertServiceError(t, err, ErrValidation, MsgOrderIDRequired)

	shipped := "shipped"
	_, err = env.services.OrderService.UpdateOrder(ctx, masterID, &UpdateOrderRequest{OrderID: orderID, Status: &shipped})
	assertServiceError(t, err, ErrValidation, "Некорректное значение поля status")
}

func TestOrderService_MasterPriceWithStatus(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	clientID := databasetest.SeedUser(t, env.connector, "ivan", "client")
	masterID := databasetest.SeedUser(t, env.connector, "anna", "master")
	orderID := databasetest.SeedOrder(t, env.connector, clientID, "sleeve tattoo", "pending")

	price := 200.0
	status := "discussing"
	updated, err := env.services.OrderService.UpdateOrder(ctx, masterID, &UpdateOrderRequest{OrderID: orderID, Price: &price, Status: &status})
	if err != nil {
		t.Fatalf("UpdateOrder() failed: %v", err)
	}
	if updated.Status != models.OrderStatusDiscussing {
		t.Errorf("Explicit status must win over priced, got %s", updated.Status)
	}
}

func TestMessageService_PostTransitionsPendingOrder(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	clientID := databasetest.SeedUser(t, env.connector, "ivan", "client")
	masterID := databasetest.SeedUser(t, env.connector, "anna", "master")
	pendingID := databasetest.SeedOrder(t, env.connector, clientID, "sleeve tattoo", "pending")
	pricedID := databasetest.SeedOrder(t, env.connector, clientID, "portrait", "priced")

	msg, err := env.services.MessageService.PostMessage(ctx, clientID, &PostMessageRequest{OrderID: pendingID, Message: " Hello "})
	if err != nil {
		t.Fatalf("PostMessage() failed: %v", err)
	}
	if msg.ID == 0 || msg.SenderID != clientID || msg.Message != "Hello" {
		t.Errorf("Unexpected message: %+v", msg)
	}

	if got := databasetest.QueryString(t, env.connector, `SELECT status FROM orders WHERE id = ?`, pendingID); got != "discussing" {
		t.Errorf("Expected discussing, got %s", got)
	}

	if _, err := env.services.MessageService.PostMessage(ctx, masterID, &PostMessageRequest{OrderID: pricedID, Message: "Price is final"}); err != nil {
		t.Fatalf("PostMessage() failed: %v", err)
	}
	if got := databasetest.QueryString(t, env.connector, `SELECT status FROM orders WHERE id = ?`, pricedID); got != "priced" {
		t.Errorf("Status must stay priced, got %s", got)
	}

	thread, err := env.services.MessageService.ListMessages(ctx, masterID, pendingID)
	if err != nil {
		t.Fatalf("ListMessages() failed: %v", err)
	}
	if len(thread) != 1 || thread[0].SenderName != "ivan" || thread[0].SenderRole != models.RoleClient {
		t.Errorf("Unexpected thread: %+v", thread)
	}
}

func TestMessageService_Errors(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	clientID := databasetest.SeedUser(t, env.connector, "ivan", "client")
	strangerID := databasetest.SeedUser(t, env.connector, "olga", "client")
	orderID := databasetest.SeedOrder(t, env.connector, clientID, "sleeve tattoo", "pending")

	_, err := env.services.MessageService.PostMessage(ctx, clientID, &PostMessageRequest{OrderID: orderID, Message: "   "})
	assertServiceError(t, err, ErrValidation, MsgMessageFieldsRequired)

	_, err = env.services.MessageService.PostMessage(ctx, strangerID, &PostMessageRequest{OrderID: orderID, Message: "hi"})
	assertServiceError(t, err, ErrForbidden, MsgAccessDenied)

	_, err = env.services.MessageService.ListMessages(ctx, strangerID, orderID)
	assertServiceError(t, err, ErrForbidden, MsgAccessDenied)

	_, err = env.services.MessageService.ListMessages(ctx, clientID, 0)
	assertServiceError(t, err, ErrValidation, MsgOrderIDRequired)

	_, err = env.services.MessageService.PostMessage(ctx, clientID, &PostMessageRequest{OrderID: 999, Message: "hi"})
	assertServiceError(t, err, ErrNotFound, MsgOrderNotFound)

	// A rejected message must not move the order forward.
	if got := databasetest.QueryString(t, env.connector, `SELECT status FROM orders WHERE id = ?`, orderID); got != "pending" {
		t.Errorf("Expected pending, got %s", got)
	}
}
