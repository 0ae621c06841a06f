package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/raisul516/ironi-backend/pkg/enums"
)

// Notification is an in-app message scoped to a single user.
type Notification struct {
	ID        uuid.UUID              `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID              `gorm:"type:uuid;not null;index"`
	OrderID   *uuid.UUID             `gorm:"type:uuid"`
	Type      enums.NotificationType `gorm:"type:text;not null;default:'general'"`
	Message   string                 `gorm:"type:text;not null"`
	IsRead    bool                   `gorm:"column:is_read;not null;default:false"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
}
