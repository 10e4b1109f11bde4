package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/probata/estateledger-backend/internal/apierr"
	"github.com/probata/estateledger-backend/internal/logger"
	"github.com/probata/estateledger-backend/internal/repos"
	"github.com/probata/estateledger-backend/internal/types"
)

type LiabilityService interface {
	CreateLiability(ctx context.Context, tx *gorm.DB, attrs LiabilityAttrs) (*types.Liability, error)
	ListLiabilities(ctx context.Context) ([]*types.Liability, error)
	DeleteLiability(ctx context.Context, liabilityID uuid.UUID) error
}

type LiabilityAttrs struct {
	LiabilityName        string
	LiabilityCategory    types.LiabilityCategory
	Amount               decimal.Decimal
	FinancialInstitution *string
	DueDate              *time.Time
	Notes                *string
}

type liabilityService struct {
	db            *gorm.DB
	log           *logger.Logger
	liabilityRepo repos.LiabilityRepo
}

func NewLiabilityService(db *gorm.DB, baseLog *logger.Logger, liabilityRepo repos.LiabilityRepo) LiabilityService {
	return &liabilityService{
		db:            db,
		log:           baseLog.With("service", "LiabilityService"),
		liabilityRepo: liabilityRepo,
	}
}

func (s *liabilityService) CreateLiability(ctx context.Context, tx *gorm.DB, attrs LiabilityAttrs) (*types.Liability, error) {
	if attrs.LiabilityName == "" {
		return nil, apierr.Validation("missing_liability_name", fmt.Errorf("liability name is required"))
	}
	if !attrs.LiabilityCategory.Valid() {
		return nil, apierr.Validation("invalid_category", fmt.Errorf("invalid liability category %q", attrs.LiabilityCategory))
	}
	if attrs.Amount.IsNegative() {
		return nil, apierr.Validation("negative_amount", fmt.Errorf("amount must not be negative"))
	}
	now := time.Now()
	liability := &types.Liability{
		ID:                   uuid.New(),
		LiabilityName:        attrs.LiabilityName,
		LiabilityCategory:    attrs.LiabilityCategory,
		Amount:               attrs.Amount,
		FinancialInstitution: attrs.FinancialInstitution,
		DueDate:              attrs.DueDate,
		Notes:                attrs.Notes,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if _, err := s.liabilityRepo.Create(ctx, tx, []*types.Liability{liability}); err != nil {
		s.log.Error("CreateLiability failed", "error", err)
		return nil, apierr.Unavailable(err)
	}
	s.log.Info("CreateLiability", "liability_id", liability.ID, "category", liability.LiabilityCategory)
	return liability, nil
}

func (s *liabilityService) ListLiabilities(ctx context.Context) ([]*types.Liability, error) {
	liabilities, err := s.liabilityRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, apierr.Unavailable(err)
	}
	return liabilities, nil
}

func (s *liabilityService) DeleteLiability(ctx context.Context, liabilityID uuid.UUID) error {
	liabilities, err := s.liabilityRepo.GetByIDs(ctx, nil, []uuid.UUID{liabilityID})
	if err != nil {
		return apierr.Unavailable(err)
	}
	if len(liabilities) == 0 {
		return apierr.NotFound("liability_not_found", fmt.Errorf("liability %s not found", liabilityID))
	}
	if err := s.liabilityRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{liabilityID}); err != nil {
		s.log.Error("DeleteLiability failed", "error", err, "liability_id", liabilityID)
		return apierr.Unavailable(err)
	}
	return nil
}
