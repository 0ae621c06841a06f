package admin

import (
	"context"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raisul516/ironi-backend/internal/claims"
	"github.com/raisul516/ironi-backend/internal/orders"
	"github.com/raisul516/ironi-backend/internal/ratings"
	"github.com/raisul516/ironi-backend/internal/users"
	"github.com/raisul516/ironi-backend/pkg/db"
	"github.com/raisul516/ironi-backend/pkg/db/models"
	pkgerrors "github.com/raisul516/ironi-backend/pkg/errors"
)

// Service exposes the operator-only surface backing the admin dashboard.
type Service interface {
	Stats(ctx context.Context) (*StatsDTO, error)
	ListUsers(ctx context.Context) ([]users.UserDTO, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type service struct {
	db *db.Client
}

// NewService constructs an admin service backed by the shared database client.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &service{db: client}, nil
}

func (s *service) Stats(ctx context.Context) (*StatsDTO, error) {
	conn := s.db.DB()

	totalUsers, err := users.NewRepository(conn).Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count users")
	}

	activeOrders, err := orders.NewRepository(conn).CountActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count active orders")
	}

	pendingClaims, err := claims.NewRepository(conn).CountPending(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count pending claims")
	}

	average, count, err := ratings.NewRepository(conn).GlobalAverage(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "average rating")
	}

	return &StatsDTO{
		TotalUsers:    totalUsers,
		ActiveOrders:  activeOrders,
		PendingClaims: pendingClaims,
		AverageRating: math.Round(average*100) / 100,
		RatingsCount:  count,
	}, nil
}

func (s *service) ListUsers(ctx context.Context) ([]users.UserDTO, error) {
	list, err := users.NewRepository(s.db.DB()).List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}

	out := make([]users.UserDTO, 0, len(list))
	for i := range list {
		out = append(out, *users.FromModel(&list[i]))
	}
	return out, nil
}

// DeleteUser removes the account and everything hanging off it. Orders,
// ratings, claims and notifications reference users without a cascade, so the
// dependents go first, inside one transaction.
func (s *service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		orderIDs := tx.Model(&models.Order{}).Select("id").Where("user_id = ?", id)

		if err := tx.WithContext(ctx).Where("user_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user notifications")
		}
		// Ratings and claims can point at this user's orders even when filed
		// from another account, so sweep by owner and by order.
		if err := tx.WithContext(ctx).Where("user_id = ? OR order_id IN (?)", id, orderIDs).Delete(&models.Rating{}).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user ratings")
		}
		if err := tx.WithContext(ctx).Where("user_id = ? OR order_id IN (?)", id, orderIDs).Delete(&models.Claim{}).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user claims")
		}
		if err := tx.WithContext(ctx).Where("order_id IN (?)", orderIDs).Delete(&models.OrderItem{}).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user order items")
		}
		if err := tx.WithContext(ctx).Where("user_id = ?", id).Delete(&models.Order{}).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user orders")
		}

		affected, err := users.NewRepository(tx).Delete(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil
	})
}
