package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/raisul516/ironi-backend/pkg/enums"
	"github.com/raisul516/ironi-backend/pkg/types"
)

// User represents a registered customer or admin account.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name         string         `gorm:"type:text;not null"`
	Email        string         `gorm:"type:text;not null;uniqueIndex"`
	Phone        string         `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Address      types.Address  `gorm:"embedded;embeddedPrefix:address_"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	Role         enums.UserRole `gorm:"type:text;not null;default:'customer'"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
