package ratings

import (
	"time"

	"github.com/google/uuid"

	"github.com/raisul516/ironi-backend/internal/users"
	"github.com/raisul516/ironi-backend/pkg/db/models"
)

// SubmitRatingRequest creates or overwrites the caller's rating for an order.
type SubmitRatingRequest struct {
	OrderID  uuid.UUID `json:"order_id" validate:"required"`
	Stars    int       `json:"stars" validate:"required,min=1,max=5"`
	Feedback *string   `json:"feedback,omitempty"`
}

// RatingDTO is the transport shape of one rating.
type RatingDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	OrderID   uuid.UUID `json:"order_id"`
	Stars     int       `json:"stars"`
	Feedback  *string   `json:"feedback,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AverageDTO carries the rounded average and rating count for an order.
type AverageDTO struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// AdminRatingDTO augments a rating with its author's summary.
type AdminRatingDTO struct {
	RatingDTO
	User *users.Summary `json:"user"`
}

func FromModel(r *models.Rating) *RatingDTO {
	if r == nil {
		return nil
	}
	return &RatingDTO{
		ID:        r.ID,
		UserID:    r.UserID,
		OrderID:   r.OrderID,
		Stars:     r.Stars,
		Feedback:  r.Feedback,
		CreatedAt: r.CreatedAt,
	}
}

func FromModels(list []models.Rating) []RatingDTO {
	out := make([]RatingDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
