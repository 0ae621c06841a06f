package claims

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raisul516/ironi-backend/pkg/db/models"
	"github.com/raisul516/ironi-backend/pkg/enums"
)

// Repository owns persistence for claims.
type Repository struct {
	db *gorm.DB
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn}
}

func (r *Repository) Create(ctx context.Context, claim *models.Claim) error {
	if claim.ID == uuid.Nil {
		claim.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(claim).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Claim, error) {
	var claim models.Claim
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&claim).Error
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Claim, error) {
	var list []models.Claim
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *Repository) ListForUserAndOrder(ctx context.Context, userID, orderID uuid.UUID) ([]models.Claim, error) {
	var list []models.Claim
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND order_id = ?", userID, orderID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *Repository) ListAll(ctx context.Context) ([]models.Claim, error) {
	var list []models.Claim
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// SaveDecision persists the status and admin response set on the claim.
func (r *Repository) SaveDecision(ctx context.Context, claim *models.Claim) error {
	return r.db.WithContext(ctx).
		Model(&models.Claim{}).
		Where("id = ?", claim.ID).
		Updates(map[string]any{
			"status":         claim.Status,
			"admin_response": claim.AdminResponse,
		}).Error
}

func (r *Repository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Claim{}).
		Where("status = ?", enums.ClaimStatusPending).
		Count(&count).Error
	return count, err
}
