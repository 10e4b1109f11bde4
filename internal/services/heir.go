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

type HeirService interface {
	CreateHeir(ctx context.Context, tx *gorm.DB, attrs HeirAttrs) (*types.Heir, error)
	ListHeirs(ctx context.Context) ([]*types.Heir, error)
	UpdateHeir(ctx context.Context, heirID uuid.UUID, attrs HeirAttrs) (*types.Heir, error)
	DeleteHeir(ctx context.Context, heirID uuid.UUID) error
}

type HeirAttrs struct {
	FirstName        string
	MiddleInitial    *string
	LastName         string
	Suffix           *string
	Relation         string
	Email            string
	Phone            string
	StreetAddress1   string
	StreetAddress2   *string
	City             string
	State            string
	ZipCode          string
	TargetPercentage decimal.Decimal
}

type heirService struct {
	db        *gorm.DB
	log       *logger.Logger
	heirRepo  repos.HeirRepo
	shareRepo repos.DistributionShareRepo
}

func NewHeirService(db *gorm.DB, baseLog *logger.Logger, heirRepo repos.HeirRepo, shareRepo repos.DistributionShareRepo) HeirService {
	return &heirService{
		db:        db,
		log:       baseLog.With("service", "HeirService"),
		heirRepo:  heirRepo,
		shareRepo: shareRepo,
	}
}

func (s *heirService) CreateHeir(ctx context.Context, tx *gorm.DB, attrs HeirAttrs) (*types.Heir, error) {
	if attrs.FirstName == "" || attrs.LastName == "" {
		return nil, apierr.Validation("missing_name", fmt.Errorf("first and last name are required"))
	}
	if attrs.TargetPercentage.IsNegative() || attrs.TargetPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, apierr.Validation("invalid_target_percentage", fmt.Errorf("target percentage must be between 0 and 100"))
	}
	now := time.Now()
	heir := &types.Heir{
		ID:               uuid.New(),
		FirstName:        attrs.FirstName,
		MiddleInitial:    attrs.MiddleInitial,
		LastName:         attrs.LastName,
		Suffix:           attrs.Suffix,
		Relation:         attrs.Relation,
		Email:            attrs.Email,
		Phone:            attrs.Phone,
		StreetAddress1:   attrs.StreetAddress1,
		StreetAddress2:   attrs.StreetAddress2,
		City:             attrs.City,
		State:            attrs.State,
		ZipCode:          attrs.ZipCode,
		TargetPercentage: attrs.TargetPercentage,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := s.heirRepo.Create(ctx, tx, []*types.Heir{heir}); err != nil {
		s.log.Error("CreateHeir failed", "error", err)
		return nil, apierr.Unavailable(err)
	}
	s.log.Info("CreateHeir", "heir_id", heir.ID)
	return heir, nil
}

func (s *heirService) ListHeirs(ctx context.Context) ([]*types.Heir, error) {
	heirs, err := s.heirRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, apierr.Unavailable(err)
	}
	return heirs, nil
}

func (s *heirService) UpdateHeir(ctx context.Context, heirID uuid.UUID, attrs HeirAttrs) (*types.Heir, error) {
	heirs, err := s.heirRepo.GetByIDs(ctx, nil, []uuid.UUID{heirID})
	if err != nil {
		return nil, apierr.Unavailable(err)
	}
	if len(heirs) == 0 {
		return nil, apierr.NotFound("heir_not_found", fmt.Errorf("heir %s not found", heirID))
	}
	if attrs.TargetPercentage.IsNegative() || attrs.TargetPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, apierr.Validation("invalid_target_percentage", fmt.Errorf("target percentage must be between 0 and 100"))
	}
	heir := heirs[0]
	heir.FirstName = attrs.FirstName
	heir.MiddleInitial = attrs.MiddleInitial
	heir.LastName = attrs.LastName
	heir.Suffix = attrs.Suffix
	heir.Relation = attrs.Relation
	heir.Email = attrs.Email
	heir.Phone = attrs.Phone
	heir.StreetAddress1 = attrs.StreetAddress1
	heir.StreetAddress2 = attrs.StreetAddress2
	heir.City = attrs.City
	heir.State = attrs.State
	heir.ZipCode = attrs.ZipCode
	heir.TargetPercentage = attrs.TargetPercentage
	heir.UpdatedAt = time.Now()
	if err := s.heirRepo.Update(ctx, nil, heir); err != nil {
		s.log.Error("UpdateHeir failed", "error", err, "heir_id", heirID)
		return nil, apierr.Unavailable(err)
	}
	return heir, nil
}

// DeleteHeir refuses to remove an heir who still appears in any
// distribution: cascading would silently rewrite allocations, so the
// conflict is surfaced instead.
func (s *heirService) DeleteHeir(ctx context.Context, heirID uuid.UUID) error {
	heirs, err := s.heirRepo.GetByIDs(ctx, nil, []uuid.UUID{heirID})
	if err != nil {
		return apierr.Unavailable(err)
	}
	if len(heirs) == 0 {
		return apierr.NotFound("heir_not_found", fmt.Errorf("heir %s not found", heirID))
	}

	// Delete first, count second, in one transaction. The delete takes the
	// heir row lock, so a share writer touching the same heir has either
	// committed (the count sees its shares and we roll back) or will fail
	// its own in-transaction liveness check against our deletion.
	transaction := s.db.Begin()
	if transaction.Error != nil {
		return apierr.Unavailable(fmt.Errorf("begin transaction: %w", transaction.Error))
	}
	if err := s.heirRepo.SoftDeleteByIDs(ctx, transaction, []uuid.UUID{heirID}); err != nil {
		transaction.Rollback()
		s.log.Error("DeleteHeir failed", "error", err, "heir_id", heirID)
		return apierr.Unavailable(err)
	}
	count, err := s.shareRepo.CountByHeirIDs(ctx, transaction, []uuid.UUID{heirID})
	if err != nil {
		transaction.Rollback()
		return apierr.Unavailable(err)
	}
	if count > 0 {
		transaction.Rollback()
		return apierr.Conflict("heir_referenced", fmt.Errorf("heir %s is referenced by %d distribution shares", heirID, count))
	}
	if err := transaction.Commit().Error; err != nil {
		return apierr.Unavailable(fmt.Errorf("commit: %w", err))
	}
	s.log.Info("DeleteHeir", "heir_id", heirID)
	return nil
}
