package notifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/raisul516/ironi-backend/pkg/db/models"
	"github.com/raisul516/ironi-backend/pkg/enums"
)

// NotificationDTO is the transport shape for one in-app notification.
type NotificationDTO struct {
	ID        uuid.UUID              `json:"id"`
	Message   string                 `json:"message"`
	Type      enums.NotificationType `json:"type"`
	IsRead    bool                   `json:"is_read"`
	OrderID   *uuid.UUID             `json:"order_id,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// CreateNotificationRequest is the system/admin fan-out payload.
type CreateNotificationRequest struct {
	UserID  uuid.UUID  `json:"user_id" validate:"required"`
	Message string     `json:"message" validate:"required"`
	Type    string     `json:"type,omitempty"`
	OrderID *uuid.UUID `json:"order_id,omitempty"`
}

// UnreadCountDTO carries the unread counter.
type UnreadCountDTO struct {
	UnreadCount int64 `json:"unread_count"`
}

func FromModel(n *models.Notification) *NotificationDTO {
	if n == nil {
		return nil
	}
	return &NotificationDTO{
		ID:        n.ID,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		OrderID:   n.OrderID,
		CreatedAt: n.CreatedAt,
	}
}

func FromModels(list []models.Notification) []NotificationDTO {
	out := make([]NotificationDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
