package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raisul516/ironi-backend/internal/notifications"
	"github.com/raisul516/ironi-backend/internal/pricing"
	"github.com/raisul516/ironi-backend/pkg/config"
	"github.com/raisul516/ironi-backend/pkg/db"
	"github.com/raisul516/ironi-backend/pkg/db/models"
	dbtypes "github.com/raisul516/ironi-backend/pkg/db/types"
	"github.com/raisul516/ironi-backend/pkg/enums"
	pkgerrors "github.com/raisul516/ironi-backend/pkg/errors"
)

const (
	pickupDateLayout = "2006-01-02"
	pickupTimeLayout = "15:04"
)

// Service defines the behavior needed by the orders controllers.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderDTO, error)
	List(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
	History(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
	Get(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error)
	Repeat(ctx context.Context, userID, orderID uuid.UUID, req RepeatOrderRequest) (*OrderDTO, error)
	Cancel(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error)
	UpdateInstructions(ctx context.Context, userID, orderID uuid.UUID, req UpdateInstructionsRequest) (*OrderDTO, error)
	InitiatePayment(ctx context.Context, userID, orderID uuid.UUID, req InitiatePaymentRequest) (*OrderDTO, error)
	ConfirmPayment(ctx context.Context, userID, orderID uuid.UUID, req ConfirmPaymentRequest) (*OrderDTO, error)
	AdminList(ctx context.Context) ([]AdminOrderDTO, error)
	AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, req AdminUpdateStatusRequest) (*OrderDTO, error)
}

type service struct {
	db           *db.Client
	emitter      *notifications.Emitter
	repeatOffset time.Duration
}

// ServiceParams bundles the dependencies required to build an orders service.
type ServiceParams struct {
	DB      *db.Client
	Emitter *notifications.Emitter
	Orders  config.OrdersConfig
}

// NewService constructs an orders service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	if params.Emitter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "notification emitter required")
	}
	offset := params.Orders.RepeatPickupOffset
	if offset <= 0 {
		offset = 24 * time.Hour
	}
	return &service{
		db:           params.DB,
		emitter:      params.Emitter,
		repeatOffset: offset,
	}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderDTO, error) {
	if err := validatePickupFuture(req.PickupDate, req.PickupTime); err != nil {
		return nil, err
	}

	lines := make([]pricing.ItemLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, pricing.ItemLine{
			Type:     enums.ItemType(strings.TrimSpace(item.Type)),
			Quantity: item.Quantity,
		})
	}
	quote, err := pricing.Compute(req.Services, lines)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:       userID,
		PickupDate:   req.PickupDate,
		PickupTime:   req.PickupTime,
		Address:      strings.TrimSpace(req.Address),
		Services:     serviceLabels(quote.Services),
		TotalAmount:  quote.TotalPrice,
		Status:       enums.OrderStatusPending,
		Instructions: req.Instructions,
		Payment:      models.Payment{Status: enums.PaymentStatusPending},
	}
	for _, line := range lines {
		order.Items = append(order.Items, models.OrderItem{
			ItemType: line.Type,
			Quantity: line.Quantity,
			Price:    quote.PerItemPrice,
		})
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := NewRepository(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}
		message := fmt.Sprintf("Your order #%s has been placed. Pickup scheduled for %s %s.",
			shortID(order.ID), order.PickupDate, order.PickupTime)
		return s.emitter.Emit(ctx, tx, userID, &order.ID, enums.NotificationTypeStatusUpdate, message)
	})
	if err != nil {
		return nil, err
	}

	return FromModel(order), nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	list, err := NewRepository(s.db.DB()).ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return FromModels(list), nil
}

func (s *service) History(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	list, err := NewRepository(s.db.DB()).ListTerminalForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list order history")
	}
	return FromModels(list), nil
}

func (s *service) Get(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.findOwned(ctx, s.db.DB(), userID, orderID)
	if err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

func (s *service) Repeat(ctx context.Context, userID, orderID uuid.UUID, req RepeatOrderRequest) (*OrderDTO, error) {
	source, err := s.findOwned(ctx, s.db.DB(), userID, orderID)
	if err != nil {
		return nil, err
	}

	pickupDate := strings.TrimSpace(req.PickupDate)
	pickupTime := strings.TrimSpace(req.PickupTime)
	if pickupDate == "" || pickupTime == "" {
		slot := time.Now().Add(s.repeatOffset)
		pickupDate = slot.Format(pickupDateLayout)
		pickupTime = slot.Format(pickupTimeLayout)
	}
	if err := validatePickupFuture(pickupDate, pickupTime); err != nil {
		return nil, err
	}

	lines := make([]pricing.ItemLine, 0, len(source.Items))
	for _, item := range source.Items {
		lines = append(lines, pricing.ItemLine{Type: item.ItemType, Quantity: item.Quantity})
	}
	quote, err := pricing.Compute(source.Services, lines)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:      userID,
		PickupDate:  pickupDate,
		PickupTime:  pickupTime,
		Address:     source.Address,
		Services:    serviceLabels(quote.Services),
		TotalAmount: quote.TotalPrice,
		Status:      enums.OrderStatusPending,
		Payment:     models.Payment{Status: enums.PaymentStatusPending},
	}
	for _, line := range lines {
		order.Items = append(order.Items, models.OrderItem{
			ItemType: line.Type,
			Quantity: line.Quantity,
			Price:    quote.PerItemPrice,
		})
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := NewRepository(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "repeat order")
		}
		message := fmt.Sprintf("Your order #%s has been placed again. Pickup scheduled for %s %s.",
			shortID(order.ID), order.PickupDate, order.PickupTime)
		return s.emitter.Emit(ctx, tx, userID, &order.ID, enums.NotificationTypeStatusUpdate, message)
	})
	if err != nil {
		return nil, err
	}

	return FromModel(order), nil
}

func (s *service) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error) {
	var order *models.Order
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		loaded, err := s.findOwned(ctx, tx, userID, orderID)
		if err != nil {
			return err
		}
		if loaded.Status != enums.OrderStatusPending {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("order in status %q cannot be cancelled", loaded.Status))
		}

		loaded.Status = enums.OrderStatusCancelled
		if err := NewRepository(tx).SaveTransition(ctx, loaded); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cancel order")
		}

		message := fmt.Sprintf("Your order #%s has been cancelled.", shortID(loaded.ID))
		if err := s.emitter.Emit(ctx, tx, userID, &loaded.ID, enums.NotificationTypeStatusUpdate, message); err != nil {
			return err
		}
		order = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

func (s *service) UpdateInstructions(ctx context.Context, userID, orderID uuid.UUID, req UpdateInstructionsRequest) (*OrderDTO, error) {
	var order *models.Order
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		loaded, err := s.findOwned(ctx, tx, userID, orderID)
		if err != nil {
			return err
		}
		if loaded.Status != enums.OrderStatusPending {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("instructions cannot change once the order is %q", loaded.Status))
		}

		instructions := strings.TrimSpace(req.Instructions)
		if err := NewRepository(tx).UpdateInstructions(ctx, loaded.ID, instructions); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update instructions")
		}
		loaded.Instructions = &instructions
		order = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

func (s *service) InitiatePayment(ctx context.Context, userID, orderID uuid.UUID, req InitiatePaymentRequest) (*OrderDTO, error) {
	method, err := enums.ParsePaymentMethod(strings.TrimSpace(req.Method))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method").
			WithDetails(map[string]any{"valid_methods": enums.ValidPaymentMethods()})
	}

	var order *models.Order
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		loaded, err := s.findOwned(ctx, tx, userID, orderID)
		if err != nil {
			return err
		}
		if loaded.Payment.Status == enums.PaymentStatusPaid {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order is already paid")
		}
		if loaded.Status != enums.OrderStatusPending {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("payment cannot start while the order is %q", loaded.Status))
		}

		loaded.Payment.Method = &method

		var message string
		notifType := enums.NotificationTypePayment
		if method == enums.PaymentMethodCOD {
			now := time.Now().UTC()
			loaded.Payment.Status = enums.PaymentStatusPaid
			loaded.Payment.PaidAt = &now
			loaded.Status = enums.OrderStatusConfirmed
			message = fmt.Sprintf("Payment for order #%s will be collected on delivery. Your order is confirmed.",
				shortID(loaded.ID))
		} else {
			message = fmt.Sprintf("Payment for order #%s has been initiated via %s.",
				shortID(loaded.ID), method)
		}

		if err := NewRepository(tx).SaveTransition(ctx, loaded); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "initiate payment")
		}
		if err := s.emitter.Emit(ctx, tx, userID, &loaded.ID, notifType, message); err != nil {
			return err
		}
		order = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

func (s *service) ConfirmPayment(ctx context.Context, userID, orderID uuid.UUID, req ConfirmPaymentRequest) (*OrderDTO, error) {
	transactionID := strings.TrimSpace(req.TransactionID)
	if transactionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction_id is required")
	}

	var order *models.Order
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		loaded, err := s.findOwned(ctx, tx, userID, orderID)
		if err != nil {
			return err
		}
		if loaded.Payment.Status == enums.PaymentStatusPaid {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "payment is already confirmed")
		}
		if loaded.Status != enums.OrderStatusPending {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("payment cannot be confirmed while the order is %q", loaded.Status))
		}

		now := time.Now().UTC()
		loaded.Payment.Status = enums.PaymentStatusPaid
		loaded.Payment.TransactionID = &transactionID
		loaded.Payment.PaidAt = &now
		loaded.Status = enums.OrderStatusConfirmed

		if err := NewRepository(tx).SaveTransition(ctx, loaded); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "confirm payment")
		}

		message := fmt.Sprintf("Payment for order #%s has been confirmed. Your order is now being processed.",
			shortID(loaded.ID))
		if err := s.emitter.Emit(ctx, tx, userID, &loaded.ID, enums.NotificationTypePayment, message); err != nil {
			return err
		}
		order = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

func (s *service) AdminList(ctx context.Context) ([]AdminOrderDTO, error) {
	list, err := NewRepository(s.db.DB()).ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list all orders")
	}
	out := make([]AdminOrderDTO, 0, len(list))
	for i := range list {
		out = append(out, *adminFromModel(&list[i]))
	}
	return out, nil
}

func (s *service) AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, req AdminUpdateStatusRequest) (*OrderDTO, error) {
	status, err := enums.ParseOrderStatus(strings.TrimSpace(req.Status))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status").
			WithDetails(map[string]any{"valid_statuses": enums.ValidOrderStatuses()})
	}

	repo := NewRepository(s.db.DB())
	affected, err := repo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	order, err := repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	return FromModel(order), nil
}

func (s *service) findOwned(ctx context.Context, tx *gorm.DB, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := NewRepository(tx).FindOwned(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	return order, nil
}

// validatePickupFuture parses the date/time pair and rejects instants that are
// not strictly in the future.
func validatePickupFuture(pickupDate, pickupTime string) error {
	instant, err := parsePickup(pickupDate, pickupTime)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid pickup date or time")
	}
	if !instant.After(time.Now()) {
		return pkgerrors.New(pkgerrors.CodeValidation, "pickup date and time must be in the future")
	}
	return nil
}

func parsePickup(pickupDate, pickupTime string) (time.Time, error) {
	raw := strings.TrimSpace(pickupDate) + "T" + strings.TrimSpace(pickupTime)
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02T15:04:05"} {
		if instant, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return instant, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable pickup instant %q", raw)
}

func serviceLabels(services []enums.ServiceType) dbtypes.StringList {
	out := make(dbtypes.StringList, 0, len(services))
	for _, service := range services {
		out = append(out, service.String())
	}
	return out
}

func shortID(id uuid.UUID) string {
	s := id.String()
	return s[len(s)-6:]
}
