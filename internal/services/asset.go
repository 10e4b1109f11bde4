package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/probata/estateledger-backend/internal/allocation"
	"github.com/probata/estateledger-backend/internal/apierr"
	"github.com/probata/estateledger-backend/internal/cache"
	"github.com/probata/estateledger-backend/internal/logger"
	"github.com/probata/estateledger-backend/internal/repos"
	"github.com/probata/estateledger-backend/internal/types"
)

// AssetService is the allocation writer and the read surface over assets.
// Mutations that touch a share set run the validator first and then write
// the asset row together with the complete set in one transaction, so the
// store never holds an asset whose shares don't reconcile.
//
// When the caller passes its own tx it also owns the commit, and with it
// the rollup-cache invalidation: the service only invalidates after
// transactions it opened and committed itself.
type AssetService interface {
	CreateAsset(ctx context.Context, tx *gorm.DB, attrs AssetAttrs, shares []allocation.ShareInput) (*AssetView, error)
	ReplaceShares(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, shares []allocation.ShareInput) error
	UpdateValue(ctx context.Context, assetID uuid.UUID, value decimal.Decimal) (*types.Asset, error)
	ChangeStatus(ctx context.Context, assetID uuid.UUID, status types.AccountStatus) (*types.Asset, error)
	DeleteAsset(ctx context.Context, assetID uuid.UUID) error
	ListAssets(ctx context.Context, tx *gorm.DB) ([]*AssetView, error)
	GetAsset(ctx context.Context, assetID uuid.UUID) (*AssetView, error)
	GetDistributions(ctx context.Context, assetID uuid.UUID) ([]DistributionView, error)
}

// AssetAttrs is the normalized intake shape. Manual entry, bank-link import
// and file upload all reduce to this before reaching the writer.
type AssetAttrs struct {
	AssetName            string
	AssetCategory        types.AssetCategory
	AccountNumber        *string
	FinancialInstitution *string
	AccountOwner         *string
	CurrentValue         decimal.Decimal
	CostBasis            *decimal.Decimal
	AcquisitionDate      *time.Time
	IsProbate            bool
	AssetLocation        *string
	AssetContactName     *string
	AssetContactNumber   *string
	AssetContactEmail    *string
	Notes                *string
	AccountStatus        types.AccountStatus
	AccountPlan          types.AccountPlan
	TaskID               *uuid.UUID
	// Metadata carries source-specific detail (bank-link payloads, parsed
	// statement fields) opaque to the ledger.
	Metadata             datatypes.JSON
	// RequiresDistribution makes an empty share list a validation error
	// instead of an asset without distribution.
	RequiresDistribution bool
}

type DistributionView struct {
	ID                  uuid.UUID       `json:"id"`
	AssetID             uuid.UUID       `json:"asset_id"`
	HeirID              uuid.UUID       `json:"heir_id"`
	Heir                *types.Heir     `json:"heir,omitempty"`
	ShareOfDistribution decimal.Decimal `json:"share_of_distribution"`
	ShareBps            int64           `json:"share_bps"`
	DistributionType    string          `json:"distribution_type"`
}

type AssetView struct {
	*types.Asset
	Distributions []DistributionView `json:"distributions"`
}

type assetService struct {
	db          *gorm.DB
	log         *logger.Logger
	assetRepo   repos.AssetRepo
	shareRepo   repos.DistributionShareRepo
	heirRepo    repos.HeirRepo
	rollupCache *cache.RollupCache
}

func NewAssetService(
	db *gorm.DB,
	baseLog *logger.Logger,
	assetRepo repos.AssetRepo,
	shareRepo repos.DistributionShareRepo,
	heirRepo repos.HeirRepo,
	rollupCache *cache.RollupCache,
) AssetService {
	return &assetService{
		db:          db,
		log:         baseLog.With("service", "AssetService"),
		assetRepo:   assetRepo,
		shareRepo:   shareRepo,
		heirRepo:    heirRepo,
		rollupCache: rollupCache,
	}
}

func (s *assetService) CreateAsset(ctx context.Context, tx *gorm.DB, attrs AssetAttrs, shares []allocation.ShareInput) (*AssetView, error) {
	if attrs.AssetName == "" {
		return nil, apierr.Validation("missing_asset_name", fmt.Errorf("asset name is required"))
	}
	if !attrs.AssetCategory.Valid() {
		return nil, apierr.Validation("invalid_category", fmt.Errorf("invalid asset category %q", attrs.AssetCategory))
	}
	if attrs.CurrentValue.IsNegative() {
		return nil, apierr.Validation("negative_value", fmt.Errorf("current value must not be negative"))
	}

	// Validate before any write. On failure nothing is persisted.
	if len(shares) > 0 || attrs.RequiresDistribution {
		if err := s.validateShares(ctx, tx, shares); err != nil {
			return nil, err
		}
	}

	transaction := tx
	createdTx := false
	if transaction == nil {
		createdTx = true
		transaction = s.db.Begin()
		if transaction.Error != nil {
			return nil, apierr.Unavailable(fmt.Errorf("begin transaction: %w", transaction.Error))
		}
	}

	now := time.Now()
	asset := &types.Asset{
		ID:                   uuid.New(),
		AssetName:            attrs.AssetName,
		AssetCategory:        attrs.AssetCategory,
		AccountNumber:        attrs.AccountNumber,
		FinancialInstitution: attrs.FinancialInstitution,
		AccountOwner:         attrs.AccountOwner,
		CurrentValue:         attrs.CurrentValue,
		CostBasis:            attrs.CostBasis,
		AcquisitionDate:      attrs.AcquisitionDate,
		IsProbate:            attrs.IsProbate,
		AssetLocation:        attrs.AssetLocation,
		AssetContactName:     attrs.AssetContactName,
		AssetContactNumber:   attrs.AssetContactNumber,
		AssetContactEmail:    attrs.AssetContactEmail,
		Notes:                attrs.Notes,
		AccountStatus:        attrs.AccountStatus,
		AccountPlan:          attrs.AccountPlan,
		TaskID:               attrs.TaskID,
		Metadata:             attrs.Metadata,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if _, err := s.assetRepo.Create(ctx, transaction, []*types.Asset{asset}); err != nil {
		if createdTx {
			transaction.Rollback()
		}
		s.log.Error("CreateAsset: asset row failed", "error", err)
		return nil, s.storeError(err)
	}

	if err := s.claimHeirs(ctx, transaction, shares); err != nil {
		if createdTx {
			transaction.Rollback()
		}
		return nil, err
	}
	shareRows := buildShareRows(asset.ID, shares, now)
	if _, err := s.shareRepo.Create(ctx, transaction, shareRows); err != nil {
		if createdTx {
			transaction.Rollback()
		}
		s.log.Error("CreateAsset: share rows failed", "error", err, "asset_id", asset.ID)
		return nil, s.storeError(err)
	}

	if createdTx {
		if err := transaction.Commit().Error; err != nil {
			return nil, apierr.Unavailable(fmt.Errorf("commit: %w", err))
		}
		s.rollupCache.Invalidate(ctx)
	}

	s.log.Info("CreateAsset", "asset_id", asset.ID, "category", asset.AssetCategory, "shares", len(shareRows))
	return &AssetView{Asset: asset, Distributions: toDistributionViews(shareRows)}, nil
}

func (s *assetService) ReplaceShares(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, shares []allocation.ShareInput) error {
	assets, err := s.assetRepo.GetByIDs(ctx, tx, []uuid.UUID{assetID})
	if err != nil {
		return s.storeError(err)
	}
	if len(assets) == 0 {
		return apierr.NotFound("asset_not_found", fmt.Errorf("asset %s not found", assetID))
	}

	// An empty list is a whole-set delete: the asset reverts to "no
	// distribution yet". Anything non-empty must reconcile to 100%.
	if len(shares) > 0 {
		if err := s.validateShares(ctx, tx, shares); err != nil {
			return err
		}
	}

	transaction := tx
	createdTx := false
	if transaction == nil {
		createdTx = true
		transaction = s.db.Begin()
		if transaction.Error != nil {
			return apierr.Unavailable(fmt.Errorf("begin transaction: %w", transaction.Error))
		}
	}

	if err := s.claimHeirs(ctx, transaction, shares); err != nil {
		if createdTx {
			transaction.Rollback()
		}
		return err
	}
	// Full-set replace inside one transaction: never an incremental patch.
	if err := s.shareRepo.DeleteByAssetIDs(ctx, transaction, []uuid.UUID{assetID}); err != nil {
		if createdTx {
			transaction.Rollback()
		}
		s.log.Error("ReplaceShares: delete old set failed", "error", err, "asset_id", assetID)
		return s.storeError(err)
	}
	shareRows := buildShareRows(assetID, shares, time.Now())
	if _, err := s.shareRepo.Create(ctx, transaction, shareRows); err != nil {
		if createdTx {
			transaction.Rollback()
		}
		s.log.Error("ReplaceShares: insert new set failed", "error", err, "asset_id", assetID)
		return s.storeError(err)
	}

	if createdTx {
		if err := transaction.Commit().Error; err != nil {
			return apierr.Unavailable(fmt.Errorf("commit: %w", err))
		}
		s.rollupCache.Invalidate(ctx)
	}

	s.log.Info("ReplaceShares", "asset_id", assetID, "shares", len(shareRows))
	return nil
}

func (s *assetService) UpdateValue(ctx context.Context, assetID uuid.UUID, value decimal.Decimal) (*types.Asset, error) {
	if value.IsNegative() {
		return nil, apierr.Validation("negative_value", fmt.Errorf("current value must not be negative"))
	}
	asset, err := s.getOne(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if err := s.assetRepo.UpdateFields(ctx, nil, assetID, map[string]interface{}{
		"current_value": value,
		"updated_at":    time.Now(),
	}); err != nil {
		s.log.Error("UpdateValue failed", "error", err, "asset_id", assetID)
		return nil, s.storeError(err)
	}
	s.rollupCache.Invalidate(ctx)
	asset.CurrentValue = value
	return asset, nil
}

func (s *assetService) ChangeStatus(ctx context.Context, assetID uuid.UUID, status types.AccountStatus) (*types.Asset, error) {
	if !status.Valid() {
		return nil, apierr.Validation("invalid_status", fmt.Errorf("invalid account status %q", status))
	}
	asset, err := s.getOne(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if err := s.assetRepo.UpdateFields(ctx, nil, assetID, map[string]interface{}{
		"account_status": status,
		"updated_at":     time.Now(),
	}); err != nil {
		s.log.Error("ChangeStatus failed", "error", err, "asset_id", assetID)
		return nil, s.storeError(err)
	}
	s.rollupCache.Invalidate(ctx)
	asset.AccountStatus = status
	return asset, nil
}

// DeleteAsset removes the asset and cascades its share set in the same
// transaction, so no orphan share is ever readable.
func (s *assetService) DeleteAsset(ctx context.Context, assetID uuid.UUID) error {
	if _, err := s.getOne(ctx, assetID); err != nil {
		return err
	}

	transaction := s.db.Begin()
	if transaction.Error != nil {
		return apierr.Unavailable(fmt.Errorf("begin transaction: %w", transaction.Error))
	}
	if err := s.shareRepo.DeleteByAssetIDs(ctx, transaction, []uuid.UUID{assetID}); err != nil {
		transaction.Rollback()
		return s.storeError(err)
	}
	if err := s.assetRepo.SoftDeleteByIDs(ctx, transaction, []uuid.UUID{assetID}); err != nil {
		transaction.Rollback()
		return s.storeError(err)
	}
	if err := transaction.Commit().Error; err != nil {
		return apierr.Unavailable(fmt.Errorf("commit: %w", err))
	}
	s.rollupCache.Invalidate(ctx)
	s.log.Info("DeleteAsset", "asset_id", assetID)
	return nil
}

func (s *assetService) ListAssets(ctx context.Context, tx *gorm.DB) ([]*AssetView, error) {
	assets, err := s.assetRepo.GetAll(ctx, tx)
	if err != nil {
		return nil, s.storeError(err)
	}
	if len(assets) == 0 {
		return []*AssetView{}, nil
	}
	assetIDs := make([]uuid.UUID, len(assets))
	for i, a := range assets {
		assetIDs[i] = a.ID
	}
	shares, err := s.shareRepo.GetByAssetIDs(ctx, tx, assetIDs)
	if err != nil {
		return nil, s.storeError(err)
	}
	byAsset := make(map[uuid.UUID][]DistributionView, len(assets))
	for _, sh := range shares {
		byAsset[sh.AssetID] = append(byAsset[sh.AssetID], toDistributionView(sh))
	}
	views := make([]*AssetView, len(assets))
	for i, a := range assets {
		dists := byAsset[a.ID]
		if dists == nil {
			dists = []DistributionView{}
		}
		views[i] = &AssetView{Asset: a, Distributions: dists}
	}
	return views, nil
}

func (s *assetService) GetAsset(ctx context.Context, assetID uuid.UUID) (*AssetView, error) {
	asset, err := s.getOne(ctx, assetID)
	if err != nil {
		return nil, err
	}
	dists, err := s.GetDistributions(ctx, assetID)
	if err != nil {
		return nil, err
	}
	return &AssetView{Asset: asset, Distributions: dists}, nil
}

func (s *assetService) GetDistributions(ctx context.Context, assetID uuid.UUID) ([]DistributionView, error) {
	shares, err := s.shareRepo.GetByAssetIDs(ctx, nil, []uuid.UUID{assetID})
	if err != nil {
		return nil, s.storeError(err)
	}
	views := make([]DistributionView, len(shares))
	for i, sh := range shares {
		views[i] = toDistributionView(sh)
	}
	return views, nil
}

// validateShares resolves the referenced heirs and runs the pure validator.
// This read runs before the write transaction opens, so it can go stale;
// claimHeirs repeats the liveness half of the check inside the transaction.
func (s *assetService) validateShares(ctx context.Context, tx *gorm.DB, shares []allocation.ShareInput) error {
	heirIDs := uniqueHeirIDs(shares)
	heirs, err := s.heirRepo.GetByIDs(ctx, tx, heirIDs)
	if err != nil {
		return s.storeError(err)
	}
	known := make(map[uuid.UUID]struct{}, len(heirs))
	for _, h := range heirs {
		known[h.ID] = struct{}{}
	}
	if err := allocation.Validate(shares, known); err != nil {
		var ve *allocation.ValidationError
		if errors.As(err, &ve) {
			return apierr.Validation(ve.Code, err)
		}
		return apierr.Validation("invalid_shares", err)
	}
	return nil
}

// claimHeirs re-verifies, inside the write transaction, that every heir the
// share set references is still live. The heir FK is soft-delete blind (a
// soft delete is an UPDATE, so ON DELETE RESTRICT never fires), which leaves
// this touch as the only thing serializing a share write against a
// concurrent heir deletion.
func (s *assetService) claimHeirs(ctx context.Context, tx *gorm.DB, shares []allocation.ShareInput) error {
	heirIDs := uniqueHeirIDs(shares)
	if len(heirIDs) == 0 {
		return nil
	}
	touched, err := s.heirRepo.TouchByIDs(ctx, tx, heirIDs)
	if err != nil {
		return s.storeError(err)
	}
	if touched != int64(len(heirIDs)) {
		return apierr.Conflict("heir_deleted", fmt.Errorf("%d of %d referenced heirs no longer exist", int64(len(heirIDs))-touched, len(heirIDs)))
	}
	return nil
}

func uniqueHeirIDs(shares []allocation.ShareInput) []uuid.UUID {
	heirIDs := make([]uuid.UUID, 0, len(shares))
	seen := make(map[uuid.UUID]struct{}, len(shares))
	for _, sh := range shares {
		if _, ok := seen[sh.HeirID]; ok {
			continue
		}
		seen[sh.HeirID] = struct{}{}
		heirIDs = append(heirIDs, sh.HeirID)
	}
	return heirIDs
}

func (s *assetService) getOne(ctx context.Context, assetID uuid.UUID) (*types.Asset, error) {
	assets, err := s.assetRepo.GetByIDs(ctx, nil, []uuid.UUID{assetID})
	if err != nil {
		return nil, s.storeError(err)
	}
	if len(assets) == 0 {
		return nil, apierr.NotFound("asset_not_found", fmt.Errorf("asset %s not found", assetID))
	}
	return assets[0], nil
}

// storeError sorts store failures into the retryable/non-retryable split the
// API promises: referential conflicts are 409s the caller must resolve,
// anything else transient is a 503 the caller may retry.
func (s *assetService) storeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apierr.Conflict("constraint_violation", err)
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return apierr.Conflict("constraint_violation", err)
	}
	return apierr.Unavailable(err)
}

func buildShareRows(assetID uuid.UUID, shares []allocation.ShareInput, now time.Time) []*types.DistributionShare {
	rows := make([]*types.DistributionShare, len(shares))
	for i, sh := range shares {
		distType := sh.DistributionType
		if distType == "" {
			distType = "default"
		}
		rows[i] = &types.DistributionShare{
			ID:                  uuid.New(),
			AssetID:             assetID,
			HeirID:              sh.HeirID,
			ShareOfDistribution: sh.ShareOfDistribution,
			DistributionType:    distType,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
	}
	return rows
}

func toDistributionView(sh *types.DistributionShare) DistributionView {
	return DistributionView{
		ID:                  sh.ID,
		AssetID:             sh.AssetID,
		HeirID:              sh.HeirID,
		Heir:                sh.Heir,
		ShareOfDistribution: sh.ShareOfDistribution,
		ShareBps:            allocation.ToBasisPoints(sh.ShareOfDistribution),
		DistributionType:    sh.DistributionType,
	}
}

func toDistributionViews(rows []*types.DistributionShare) []DistributionView {
	views := make([]DistributionView, len(rows))
	for i, sh := range rows {
		views[i] = toDistributionView(sh)
	}
	return views
}
