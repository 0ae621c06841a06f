package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/raisul516/ironi-backend/pkg/db/types"
	"github.com/raisul516/ironi-backend/pkg/enums"
)

// Order is a laundry pickup order. Items and the payment record live with it:
// every mutation to either goes through the owning order. TotalAmount is the
// pricing output captured at creation and is never recomputed afterwards.
type Order struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID          `gorm:"type:uuid;not null;index"`
	User         *User              `gorm:"foreignKey:UserID"`
	PickupDate   string             `gorm:"column:pickup_date;type:text;not null"`
	PickupTime   string             `gorm:"column:pickup_time;type:text;not null"`
	Address      string             `gorm:"type:text;not null"`
	Services     dbtypes.StringList `gorm:"type:text;not null"`
	Items        []OrderItem        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount  int64              `gorm:"column:total_amount;not null"`
	Status       enums.OrderStatus  `gorm:"type:text;not null;default:'Pending'"`
	Instructions *string            `gorm:"type:text"`
	Payment      Payment            `gorm:"embedded;embeddedPrefix:payment_"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem is one garment line on an order. Price is the per-item price at
// creation time.
type OrderItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	ItemType  enums.ItemType `gorm:"column:item_type;type:text;not null"`
	Quantity  int            `gorm:"not null"`
	Price     int64          `gorm:"not null"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
}

// Payment is the payment state embedded on an order. Method stays nil until
// the customer initiates payment.
type Payment struct {
	Method        *enums.PaymentMethod `gorm:"column:method;type:text"`
	Status        enums.PaymentStatus  `gorm:"column:status;type:text;not null;default:'Pending'"`
	TransactionID *string              `gorm:"column:transaction_id;type:text"`
	PaidAt        *time.Time           `gorm:"column:paid_at"`
}
