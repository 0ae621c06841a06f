package notifications

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raisul516/ironi-backend/pkg/db/models"
	"github.com/raisul516/ironi-backend/pkg/enums"
)

// Emitter is the single entry point services use to write transition
// notifications. Emit runs against the caller's transaction handle so the
// notification commits or rolls back with the state change it describes.
type Emitter struct{}

// NewEmitter constructs a notification emitter.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// Emit writes one notification inside the provided transaction.
func (e *Emitter) Emit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, orderID *uuid.UUID, notifType enums.NotificationType, message string) error {
	repo := NewRepository(tx)
	return repo.Create(ctx, &models.Notification{
		UserID:  userID,
		OrderID: orderID,
		Type:    notifType,
		Message: message,
	})
}
