package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating is one customer's star rating for an order. The composite unique
// index enforces one rating per user per order; repeat submissions update
// in place.
type Rating struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_order"`
	User      *User     `gorm:"foreignKey:UserID"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_order"`
	Stars     int       `gorm:"not null"`
	Feedback  *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
