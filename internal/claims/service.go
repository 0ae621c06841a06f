package claims

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raisul516/ironi-backend/internal/notifications"
	"github.com/raisul516/ironi-backend/internal/users"
	"github.com/raisul516/ironi-backend/pkg/db"
	"github.com/raisul516/ironi-backend/pkg/db/models"
	"github.com/raisul516/ironi-backend/pkg/enums"
	pkgerrors "github.com/raisul516/ironi-backend/pkg/errors"
)

// Service defines the behavior needed by the claims controllers.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateClaimRequest) (*ClaimDTO, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]ClaimDTO, error)
	ListMineForOrder(ctx context.Context, userID, orderID uuid.UUID) ([]ClaimDTO, error)
	AdminList(ctx context.Context) ([]AdminClaimDTO, error)
	AdminUpdate(ctx context.Context, claimID uuid.UUID, req AdminUpdateClaimRequest) (*ClaimDTO, error)
}

type service struct {
	db      *db.Client
	emitter *notifications.Emitter
}

// ServiceParams bundles the dependencies required to build a claims service.
type ServiceParams struct {
	DB      *db.Client
	Emitter *notifications.Emitter
}

// NewService constructs a claims service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	if params.Emitter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "notification emitter required")
	}
	return &service{db: params.DB, emitter: params.Emitter}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateClaimRequest) (*ClaimDTO, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}

	claim := &models.Claim{
		ID:          uuid.New(),
		UserID:      userID,
		OrderID:     req.OrderID,
		Description: description,
		PhotoURL:    req.PhotoURL,
		Status:      enums.ClaimStatusPending,
	}
	if err := NewRepository(s.db.DB()).Create(ctx, claim); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create claim")
	}
	return FromModel(claim), nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]ClaimDTO, error) {
	list, err := NewRepository(s.db.DB()).ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list claims")
	}
	return FromModels(list), nil
}

func (s *service) ListMineForOrder(ctx context.Context, userID, orderID uuid.UUID) ([]ClaimDTO, error) {
	list, err := NewRepository(s.db.DB()).ListForUserAndOrder(ctx, userID, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list claims for order")
	}
	return FromModels(list), nil
}

func (s *service) AdminList(ctx context.Context) ([]AdminClaimDTO, error) {
	list, err := NewRepository(s.db.DB()).ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list all claims")
	}

	out := make([]AdminClaimDTO, 0, len(list))
	for i := range list {
		out = append(out, AdminClaimDTO{
			ClaimDTO: *FromModel(&list[i]),
			User:     users.SummaryFromModel(list[i].User),
		})
	}
	return out, nil
}

func (s *service) AdminUpdate(ctx context.Context, claimID uuid.UUID, req AdminUpdateClaimRequest) (*ClaimDTO, error) {
	decided := req.Status != ""
	var status enums.ClaimStatus
	if decided {
		parsed, err := enums.ParseClaimStatus(req.Status)
		if err != nil || parsed == enums.ClaimStatusPending {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "decision must be Approved or Rejected").
				WithDetails(map[string]any{
					"valid_statuses": []string{
						enums.ClaimStatusApproved.String(),
						enums.ClaimStatusRejected.String(),
					},
				})
		}
		status = parsed
	}

	response := ""
	if req.Response != nil {
		response = strings.TrimSpace(*req.Response)
	}
	if !decided && response == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}
	if status == enums.ClaimStatusRejected && response == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a rejection requires a response explaining the decision")
	}

	var claim *models.Claim
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		loaded, err := repo.FindByID(ctx, claimID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "claim not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load claim")
		}

		if decided {
			loaded.Status = status
		}
		if response != "" {
			loaded.AdminResponse = &response
		}
		if err := repo.SaveDecision(ctx, loaded); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save claim decision")
		}

		if decided {
			message := decisionMessage(loaded.OrderID, status, response)
			if err := s.emitter.Emit(ctx, tx, loaded.UserID, &loaded.OrderID, enums.NotificationTypeStatusUpdate, message); err != nil {
				return err
			}
		}
		claim = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(claim), nil
}

func decisionMessage(orderID uuid.UUID, status enums.ClaimStatus, response string) string {
	if status == enums.ClaimStatusRejected {
		return fmt.Sprintf("Your damage claim for order #%s has been rejected. Reason: %s", shortID(orderID), response)
	}
	message := fmt.Sprintf("Your damage claim for order #%s has been approved.", shortID(orderID))
	if response != "" {
		message += fmt.Sprintf(" Note: %s", response)
	}
	return message
}

func shortID(id uuid.UUID) string {
	s := id.String()
	return s[len(s)-6:]
}
