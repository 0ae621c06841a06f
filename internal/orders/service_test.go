package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/raisul516/ironi-backend/internal/notifications"
	"github.com/raisul516/ironi-backend/pkg/config"
	"github.com/raisul516/ironi-backend/pkg/db"
	"github.com/raisul516/ironi-backend/pkg/db/models"
	"github.com/raisul516/ironi-backend/pkg/enums"
	pkgerrors "github.com/raisul516/ironi-backend/pkg/errors"
)

var testDBSeq int

func setupOrdersTestDB(t *testing.T) *db.Client {
	t.Helper()

	testDBSeq++
	dsn := fmt.Sprintf("file:orderstest%d?mode=memory&cache=shared", testDBSeq)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
	))

	return db.FromConn(conn)
}

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()

	client := setupOrdersTestDB(t)
	svc, err := NewService(ServiceParams{
		DB:      client,
		Emitter: notifications.NewEmitter(),
		Orders:  config.OrdersConfig{RepeatPickupOffset: 24 * time.Hour},
	})
	require.NoError(t, err)
	return svc, client
}

func futurePickup() (string, string) {
	slot := time.Now().Add(48 * time.Hour)
	return slot.Format("2006-01-02"), slot.Format("15:04")
}

func createRequest() CreateOrderRequest {
	date, clock := futurePickup()
	return CreateOrderRequest{
		PickupDate: date,
		PickupTime: clock,
		Address:    "12 Lake Road, Dhaka",
		Services:   []string{"Washing", "Ironing"},
		Items: []OrderItemRequest{
			{Type: "Shirt", Quantity: 2},
			{Type: "Pants", Quantity: 1},
		},
	}
}

func notificationsFor(t *testing.T, client *db.Client, userID uuid.UUID) []models.Notification {
	t.Helper()
	var list []models.Notification
	require.NoError(t, client.DB().
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&list).Error)
	return list
}

func TestCreateOrderComputesTotalAndNotifies(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	order, err := svc.Create(ctx, userID, createRequest())
	require.NoError(t, err)

	// (50 + 30) per garment, three garments
	assert.Equal(t, int64(240), order.TotalAmount)
	assert.Equal(t, enums.OrderStatusPending, order.Status)
	assert.Equal(t, enums.PaymentStatusPending, order.Payment.Status)
	require.Len(t, order.Items, 2)
	assert.Equal(t, int64(80), order.Items[0].Price)

	notifs := notificationsFor(t, client, userID)
	require.Len(t, notifs, 1)
	assert.Equal(t, enums.NotificationTypeStatusUpdate, notifs[0].Type)
	assert.Contains(t, notifs[0].Message, "has been placed")
}

func TestCreateOrderRejectsPastPickup(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := createRequest()
	past := time.Now().Add(-time.Hour)
	req.PickupDate = past.Format("2006-01-02")
	req.PickupTime = past.Format("15:04")

	_, err := svc.Create(ctx, uuid.New(), req)
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestCreateOrderRejectsUnknownService(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	req := createRequest()
	req.Services = []string{"Folding"}

	_, err := svc.Create(ctx, userID, req)
	require.Error(t, err)

	// nothing persisted on validation failure
	var count int64
	require.NoError(t, client.DB().Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, notificationsFor(t, client, userID))
}

func TestListReturnsNewestFirstAndOwnerScoped(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()
	other := uuid.New()

	first, err := svc.Create(ctx, owner, createRequest())
	require.NoError(t, err)
	second, err := svc.Create(ctx, owner, createRequest())
	require.NoError(t, err)
	_, err = svc.Create(ctx, other, createRequest())
	require.NoError(t, err)

	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.ElementsMatch(t,
		[]uuid.UUID{first.ID, second.ID},
		[]uuid.UUID{list[0].ID, list[1].ID})
}

func TestHistoryOnlyTerminalOrders(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	pending, err := svc.Create(ctx, userID, createRequest())
	require.NoError(t, err)
	cancelled, err := svc.Create(ctx, userID, createRequest())
	require.NoError(t, err)
	delivered, err := svc.Create(ctx, userID, createRequest())
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, userID, cancelled.ID)
	require.NoError(t, err)
	require.NoError(t, client.DB().
		Model(&models.Order{}).
		Where("id = ?", delivered.ID).
		Update("status", enums.OrderStatusDelivered).Error)

	history, err := svc.History(ctx, userID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, order := range history {
		assert.NotEqual(t, pending.ID, order.ID)
		assert.True(t, order.Status.IsTerminal())
	}
}

func TestGetHidesForeignOrders(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, uuid.New(), createRequest())
	require.NoError(t, err)

	_, err = svc.Get(ctx, uuid.New(), order.ID)
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestRepeatCopiesOrderWithDefaultPickup(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	source, err := svc.Create(ctx, userID, createRequest())
	require.NoError(t, err)

	repeated, err := svc.Repeat(ctx, userID, source.ID, RepeatOrderRequest{})
	require.NoError(t, err)

	assert.NotEqual(t, source.ID, repeated.ID)
	assert.Equal(t, source.Address, repeated.Address)
	assert.Equal(t, source.Services, repeated.Services)
	assert.Equal(t, source.TotalAmount, repeated.TotalAmount)
	assert.Equal(t, enums.OrderStatusPending, repeated.Status)

	instant, err := parsePickup(repeated.PickupDate, repeated.PickupTime)
	require.NoError(t, err)
	assert.True(t, instant.After(time.Now()))

	notifs := notificationsFor(t, client, userID)
	require.Len(t, notifs, 2)
	assert.Contains(t, notifs[1].Message, "placed again")
}

func TestRepeatRejectsForeignSource(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	source, err := svc.Create(ctx, uuid.New(), createRequest())
	require.NoError(t, err)

	_, err = svc.Repeat(ctx, uuid.New(), source.ID, RepeatOrderRequest{})
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestRepeatRejectsPastOverride(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	source, err := svc.Create(ctx, userID, createRequest())
	require.NoError(t, err)

	past := time.Now().Add(-2 * time.Hour)
	_, err = svc.Repeat(ctx, userID, source.ID, RepeatOrderRequest{
		PickupDate: past.Format("2006-01-02"),
		PickupTime: past.Format("15:04"),
	})
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestCancelOnlyFromPending(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	order, err := svc.Create(ctx, userID, createRequest())
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, userID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusCancelled, cancelled.Status)

	confirmed, err := svc.Create(ctx, userID, createRequest())
	require.NoError(t, err)
	require.NoError(t, client.DB().
		Model(&models.Order{}).
		Where("id = ?", confirmed.ID).
		Update("status", enums.OrderStatusConfirmed).Error)

	_, err = svc.Cancel(ctx, userID, confirmed.ID)
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())
}

func TestUpdateInstructionsOnlyWhilePending(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	order, err := svc.Create(ctx, userID, createRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateInstructions(ctx, userID, order.ID, UpdateInstructionsRequest{
		Instructions: "Leave at the gate",
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Instructions)
	assert.Equal(t, "Leave at the gate", *updated.Instructions)

	require.NoError(t, client.DB().
		Model(&models.Order{}).
		Where("id = ?", order.ID).
		Update("status", enums.OrderStatusWashing).Error)

	_, err = svc.UpdateInstructions(ctx, userID, order.ID, UpdateInstructionsRequest{
		Instructions: "Too late",
	})
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())
}

func TestInitiatePaymentCODPaysAndConfirms(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	order, err := svc.Create(ctx, userID, createRequest())
	require.NoError(t, err)

	paid, err := svc.InitiatePayment(ctx, userID, order.ID, InitiatePaymentRequest{Method: "COD"})
	require.NoError(t, err)

	assert.Equal(t, enums.OrderStatusConfirmed, paid.Status)
	assert.Equal(t, enums.PaymentStatusPaid, paid.Payment.Status)
	require.NotNil(t, paid.Payment.Method)
	assert.Equal(t, enums.PaymentMethodCOD, *paid.Payment.Method)
	assert.NotNil(t, paid.Payment.PaidAt)

	notifs := notificationsFor(t, client, userID)
	require.Len(t, notifs, 2)
	assert.Equal(t, enums.NotificationTypePayment, notifs[1].Type)
}

func TestInitiatePaymentCardStaysPending(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	order, err := svc.Create(ctx, userID, createRequest())
	require.NoError(t, err)

	initiated, err := svc.InitiatePayment(ctx, userID, order.ID, InitiatePaymentRequest{Method: "Card"})
	require.NoError(t, err)

	assert.Equal(t, enums.OrderStatusPending, initiated.Status)
	assert.Equal(t, enums.PaymentStatusPending, initiated.Payment.Status)
	require.NotNil(t, initiated.Payment.Method)
	assert.Equal(t, enums.PaymentMethodCard, *initiated.Payment.Method)
	assert.Nil(t, initiated.Payment.PaidAt)
}

func TestInitiatePaymentRejectsUnknownMethod(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	order, err := svc.Create(ctx, userID, createRequest())
	require.NoError(t, err)

	_, err = svc.InitiatePayment(ctx, userID, order.ID, InitiatePaymentRequest{Method: "Cheque"})
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestConfirmPaymentFlipsToPaidAndConfirmed(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	order, err := svc.Create(ctx, userID, createRequest())
	require.NoError(t, err)

	_, err = svc.InitiatePayment(ctx, userID, order.ID, InitiatePaymentRequest{Method: "Wallet"})
	require.NoError(t, err)

	confirmed, err := svc.ConfirmPayment(ctx, userID, order.ID, ConfirmPaymentRequest{
		TransactionID: "TXN-12345",
	})
	require.NoError(t, err)

	assert.Equal(t, enums.OrderStatusConfirmed, confirmed.Status)
	assert.Equal(t, enums.PaymentStatusPaid, confirmed.Payment.Status)
	require.NotNil(t, confirmed.Payment.TransactionID)
	assert.Equal(t, "TXN-12345", *confirmed.Payment.TransactionID)

	notifs := notificationsFor(t, client, userID)
	require.Len(t, notifs, 3)
	assert.Contains(t, notifs[2].Message, "confirmed")
}

func TestConfirmPaymentTwiceIsStateConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	order, err := svc.Create(ctx, userID, createRequest())
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(ctx, userID, order.ID, ConfirmPaymentRequest{TransactionID: "TXN-1"})
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(ctx, userID, order.ID, ConfirmPaymentRequest{TransactionID: "TXN-2"})
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())
}

func TestConfirmPaymentRejectsCancelledOrder(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	order, err := svc.Create(ctx, userID, createRequest())
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, userID, order.ID)
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(ctx, userID, order.ID, ConfirmPaymentRequest{TransactionID: "TXN-1"})
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())

	var stored models.Order
	require.NoError(t, client.DB().First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, enums.OrderStatusCancelled, stored.Status)
	assert.Equal(t, enums.PaymentStatusPending, stored.Payment.Status)
	assert.Nil(t, stored.Payment.TransactionID)
}

func TestConfirmPaymentRejectsInProgressOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	order, err := svc.Create(ctx, userID, createRequest())
	require.NoError(t, err)

	_, err = svc.AdminUpdateStatus(ctx, order.ID, AdminUpdateStatusRequest{Status: "Washing"})
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(ctx, userID, order.ID, ConfirmPaymentRequest{TransactionID: "TXN-1"})
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())
}

func TestAdminUpdateStatusSkipsTransitionChecks(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, uuid.New(), createRequest())
	require.NoError(t, err)

	// Pending straight to Delivered, no intermediate states
	updated, err := svc.AdminUpdateStatus(ctx, order.ID, AdminUpdateStatusRequest{Status: "Delivered"})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusDelivered, updated.Status)

	// and back again
	updated, err = svc.AdminUpdateStatus(ctx, order.ID, AdminUpdateStatusRequest{Status: "Pending"})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPending, updated.Status)
}

func TestAdminUpdateStatusValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AdminUpdateStatus(ctx, uuid.New(), AdminUpdateStatusRequest{Status: "Exploded"})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	_, err = svc.AdminUpdateStatus(ctx, uuid.New(), AdminUpdateStatusRequest{Status: "Washing"})
	require.Error(t, err)
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestAdminListIncludesUserSummaries(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	user := &models.User{
		ID:           uuid.New(),
		Name:         "Rahim Uddin",
		Email:        "rahim@example.com",
		Phone:        "01712345678",
		PasswordHash: "x",
		IsActive:     true,
		Role:         enums.UserRoleCustomer,
	}
	require.NoError(t, client.DB().Create(user).Error)

	_, err := svc.Create(ctx, user.ID, createRequest())
	require.NoError(t, err)

	list, err := svc.AdminList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].User)
	assert.Equal(t, "Rahim Uddin", list[0].User.Name)
	assert.Equal(t, "rahim@example.com", list[0].User.Email)
}
