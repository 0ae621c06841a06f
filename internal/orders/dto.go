package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/raisul516/ironi-backend/internal/users"
	"github.com/raisul516/ironi-backend/pkg/db/models"
	"github.com/raisul516/ironi-backend/pkg/enums"
)

// OrderItemRequest is one garment line in a create request.
type OrderItemRequest struct {
	Type     string `json:"type" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest captures the payload for scheduling a pickup.
type CreateOrderRequest struct {
	PickupDate   string             `json:"pickup_date" validate:"required"`
	PickupTime   string             `json:"pickup_time" validate:"required"`
	Address      string             `json:"address" validate:"required"`
	Services     []string           `json:"services" validate:"required,min=1"`
	Items        []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Instructions *string            `json:"instructions,omitempty"`
}

// RepeatOrderRequest optionally overrides the pickup slot of a repeated order.
type RepeatOrderRequest struct {
	PickupDate string `json:"pickup_date,omitempty"`
	PickupTime string `json:"pickup_time,omitempty"`
}

// UpdateInstructionsRequest replaces the free-text delivery instructions.
type UpdateInstructionsRequest struct {
	Instructions string `json:"instructions" validate:"required"`
}

// InitiatePaymentRequest selects the payment method for an order.
type InitiatePaymentRequest struct {
	Method string `json:"method" validate:"required"`
}

// ConfirmPaymentRequest completes a Card/Wallet payment.
type ConfirmPaymentRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
}

// AdminUpdateStatusRequest sets an order status without transition checks.
type AdminUpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderItemDTO is the transport shape of one garment line.
type OrderItemDTO struct {
	Type     enums.ItemType `json:"type"`
	Quantity int            `json:"quantity"`
	Price    int64          `json:"price"`
}

// PaymentDTO is the transport shape of the embedded payment record.
type PaymentDTO struct {
	Method        *enums.PaymentMethod `json:"method,omitempty"`
	Status        enums.PaymentStatus  `json:"status"`
	TransactionID *string              `json:"transaction_id,omitempty"`
	PaidAt        *time.Time           `json:"paid_at,omitempty"`
}

// OrderDTO is the transport shape of a full order.
type OrderDTO struct {
	ID           uuid.UUID         `json:"id"`
	PickupDate   string            `json:"pickup_date"`
	PickupTime   string            `json:"pickup_time"`
	Address      string            `json:"address"`
	Services     []string          `json:"services"`
	Items        []OrderItemDTO    `json:"items"`
	TotalAmount  int64             `json:"total_amount"`
	Status       enums.OrderStatus `json:"status"`
	Instructions *string           `json:"instructions,omitempty"`
	Payment      PaymentDTO        `json:"payment"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// AdminOrderDTO augments an order with its owner's summary.
type AdminOrderDTO struct {
	OrderDTO
	User *users.Summary `json:"user"`
}

func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}

	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemDTO{
			Type:     item.ItemType,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	return &OrderDTO{
		ID:           o.ID,
		PickupDate:   o.PickupDate,
		PickupTime:   o.PickupTime,
		Address:      o.Address,
		Services:     append([]string(nil), o.Services...),
		Items:        items,
		TotalAmount:  o.TotalAmount,
		Status:       o.Status,
		Instructions: o.Instructions,
		Payment: PaymentDTO{
			Method:        o.Payment.Method,
			Status:        o.Payment.Status,
			TransactionID: o.Payment.TransactionID,
			PaidAt:        o.Payment.PaidAt,
		},
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func FromModels(list []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}

func adminFromModel(o *models.Order) *AdminOrderDTO {
	dto := AdminOrderDTO{OrderDTO: *FromModel(o)}
	if o.User != nil {
		dto.User = users.SummaryFromModel(o.User)
	}
	return &dto
}
