package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/raisul516/ironi-backend/pkg/enums"
)

// Claim is a damage or loss report filed against an order.
type Claim struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	User          *User             `gorm:"foreignKey:UserID"`
	OrderID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	Description   string            `gorm:"type:text;not null"`
	PhotoURL      *string           `gorm:"column:photo_url;type:text"`
	Status        enums.ClaimStatus `gorm:"type:text;not null;default:'Pending'"`
	AdminResponse *string           `gorm:"column:admin_response;type:text"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
