package ratings

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raisul516/ironi-backend/internal/users"
	"github.com/raisul516/ironi-backend/pkg/db"
	"github.com/raisul516/ironi-backend/pkg/db/models"
	pkgerrors "github.com/raisul516/ironi-backend/pkg/errors"
)

// Service defines the behavior needed by the ratings controllers.
type Service interface {
	Submit(ctx context.Context, userID uuid.UUID, req SubmitRatingRequest) (*RatingDTO, error)
	ListForOrder(ctx context.Context, orderID uuid.UUID) ([]RatingDTO, error)
	Average(ctx context.Context, orderID uuid.UUID) (*AverageDTO, error)
	MyRating(ctx context.Context, userID, orderID uuid.UUID) (*RatingDTO, error)
	AdminList(ctx context.Context) ([]AdminRatingDTO, error)
	AdminDelete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	db *db.Client
}

// NewService constructs a ratings service.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &service{db: client}, nil
}

func (s *service) Submit(ctx context.Context, userID uuid.UUID, req SubmitRatingRequest) (*RatingDTO, error) {
	if req.Stars < 1 || req.Stars > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stars must be between 1 and 5")
	}

	repo := NewRepository(s.db.DB())
	rating := &models.Rating{
		UserID:   userID,
		OrderID:  req.OrderID,
		Stars:    req.Stars,
		Feedback: req.Feedback,
	}
	if err := repo.Upsert(ctx, rating); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "submit rating")
	}

	// Re-read so an upsert that hit the existing row reports its id.
	stored, err := repo.FindByUserAndOrder(ctx, userID, req.OrderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load rating")
	}
	return FromModel(stored), nil
}

func (s *service) ListForOrder(ctx context.Context, orderID uuid.UUID) ([]RatingDTO, error) {
	list, err := NewRepository(s.db.DB()).ListForOrder(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list ratings")
	}
	return FromModels(list), nil
}

func (s *service) Average(ctx context.Context, orderID uuid.UUID) (*AverageDTO, error) {
	avg, count, err := NewRepository(s.db.DB()).Average(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "average rating")
	}
	return &AverageDTO{Average: round2(avg), Count: count}, nil
}

func (s *service) MyRating(ctx context.Context, userID, orderID uuid.UUID) (*RatingDTO, error) {
	rating, err := NewRepository(s.db.DB()).FindByUserAndOrder(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load rating")
	}
	return FromModel(rating), nil
}

func (s *service) AdminList(ctx context.Context) ([]AdminRatingDTO, error) {
	list, err := NewRepository(s.db.DB()).ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list all ratings")
	}
	out := make([]AdminRatingDTO, 0, len(list))
	for i := range list {
		dto := AdminRatingDTO{RatingDTO: *FromModel(&list[i])}
		if list[i].User != nil {
			dto.User = users.SummaryFromModel(list[i].User)
		}
		out = append(out, dto)
	}
	return out, nil
}

func (s *service) AdminDelete(ctx context.Context, id uuid.UUID) error {
	affected, err := NewRepository(s.db.DB()).Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete rating")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "rating not found")
	}
	return nil
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
