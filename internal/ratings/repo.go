package ratings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/raisul516/ironi-backend/pkg/db/models"
)

// Repository exposes rating persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a ratings repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert inserts a rating or, on a (user_id, order_id) conflict, overwrites
// the stars and feedback of the existing row.
func (r *Repository) Upsert(ctx context.Context, rating *models.Rating) error {
	if rating.ID == uuid.Nil {
		rating.ID = uuid.New()
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"stars", "feedback", "updated_at"}),
		}).
		Create(rating).Error
}

// FindByUserAndOrder loads one user's rating for an order.
func (r *Repository) FindByUserAndOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND order_id = ?", userID, orderID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListForOrder returns all ratings on an order, newest first.
func (r *Repository) ListForOrder(ctx context.Context, orderID uuid.UUID) ([]models.Rating, error) {
	var list []models.Rating
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Average aggregates the average stars and count for an order.
func (r *Repository) Average(ctx context.Context, orderID uuid.UUID) (float64, int64, error) {
	var row struct {
		Avg   float64
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("COALESCE(AVG(stars), 0) AS avg, COUNT(*) AS count").
		Where("order_id = ?", orderID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Avg, row.Count, nil
}

// GlobalAverage aggregates the average stars and count across all ratings.
func (r *Repository) GlobalAverage(ctx context.Context) (float64, int64, error) {
	var row struct {
		Avg   float64
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("COALESCE(AVG(stars), 0) AS avg, COUNT(*) AS count").
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Avg, row.Count, nil
}

// ListAll returns every rating with its author, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Rating, error) {
	var list []models.Rating
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Delete removes a rating by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Rating{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
