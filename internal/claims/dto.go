package claims

import (
	"time"

	"github.com/google/uuid"

	"github.com/raisul516/ironi-backend/internal/users"
	"github.com/raisul516/ironi-backend/pkg/db/models"
	"github.com/raisul516/ironi-backend/pkg/enums"
)

// CreateClaimRequest files a damage or loss report against an order.
type CreateClaimRequest struct {
	OrderID     uuid.UUID `json:"order_id" validate:"required"`
	Description string    `json:"description" validate:"required"`
	PhotoURL    *string   `json:"photo_url,omitempty" validate:"omitempty,url"`
}

// AdminUpdateClaimRequest records the admin decision on a claim. Status may
// be omitted to edit the response without deciding.
type AdminUpdateClaimRequest struct {
	Status   string  `json:"status,omitempty"`
	Response *string `json:"response,omitempty"`
}

// ClaimDTO is the transport shape of one claim.
type ClaimDTO struct {
	ID            uuid.UUID         `json:"id"`
	UserID        uuid.UUID         `json:"user_id"`
	OrderID       uuid.UUID         `json:"order_id"`
	Description   string            `json:"description"`
	PhotoURL      *string           `json:"photo_url,omitempty"`
	Status        enums.ClaimStatus `json:"status"`
	AdminResponse *string           `json:"admin_response,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// AdminClaimDTO augments a claim with its author's summary.
type AdminClaimDTO struct {
	ClaimDTO
	User *users.Summary `json:"user"`
}

func FromModel(c *models.Claim) *ClaimDTO {
	if c == nil {
		return nil
	}
	return &ClaimDTO{
		ID:            c.ID,
		UserID:        c.UserID,
		OrderID:       c.OrderID,
		Description:   c.Description,
		PhotoURL:      c.PhotoURL,
		Status:        c.Status,
		AdminResponse: c.AdminResponse,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func FromModels(list []models.Claim) []ClaimDTO {
	out := make([]ClaimDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
