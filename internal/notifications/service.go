package notifications

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/raisul516/ironi-backend/pkg/db"
	"github.com/raisul516/ironi-backend/pkg/db/models"
	"github.com/raisul516/ironi-backend/pkg/enums"
	pkgerrors "github.com/raisul516/ironi-backend/pkg/errors"
)

// Service defines the behavior needed by the notifications controller.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]NotificationDTO, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (*UnreadCountDTO, error)
	Create(ctx context.Context, req CreateNotificationRequest) (*NotificationDTO, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) (*NotificationDTO, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type service struct {
	db *db.Client
}

// NewService constructs a notifications service.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &service{db: client}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]NotificationDTO, error) {
	list, err := NewRepository(s.db.DB()).ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list notifications")
	}
	return FromModels(list), nil
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (*UnreadCountDTO, error) {
	count, err := NewRepository(s.db.DB()).UnreadCount(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count unread notifications")
	}
	return &UnreadCountDTO{UnreadCount: count}, nil
}

func (s *service) Create(ctx context.Context, req CreateNotificationRequest) (*NotificationDTO, error) {
	notifType := enums.NotificationTypeGeneral
	if trimmed := strings.TrimSpace(req.Type); trimmed != "" {
		parsed, err := enums.ParseNotificationType(trimmed)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid notification type")
		}
		notifType = parsed
	}

	notification := &models.Notification{
		UserID:  req.UserID,
		OrderID: req.OrderID,
		Type:    notifType,
		Message: req.Message,
	}
	if err := NewRepository(s.db.DB()).Create(ctx, notification); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create notification")
	}
	return FromModel(notification), nil
}

func (s *service) MarkRead(ctx context.Context, id, userID uuid.UUID) (*NotificationDTO, error) {
	repo := NewRepository(s.db.DB())
	affected, err := repo.MarkRead(ctx, id, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark notification read")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}

	notification, err := repo.FindOwned(ctx, id, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load notification")
	}
	return FromModel(notification), nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := NewRepository(s.db.DB()).MarkAllRead(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark all notifications read")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	affected, err := NewRepository(s.db.DB()).Delete(ctx, id, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete notification")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}
