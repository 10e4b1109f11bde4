package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/probata/estateledger-backend/internal/logger"
  "github.com/probata/estateledger-backend/internal/types"
)

// DistributionShareRepo only exposes whole-set operations per asset. There is
// deliberately no single-share update: a share set is replaced atomically or
// not at all, which is what keeps the per-asset 100% invariant intact.
type DistributionShareRepo interface {
  Create(ctx context.Context, tx *gorm.DB, shares []*types.DistributionShare) ([]*types.DistributionShare, error)
  GetByAssetIDs(ctx context.Context, tx *gorm.DB, assetIDs []uuid.UUID) ([]*types.DistributionShare, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.DistributionShare, error)
  CountByHeirIDs(ctx context.Context, tx *gorm.DB, heirIDs []uuid.UUID) (int64, error)
  DeleteByAssetIDs(ctx context.Context, tx *gorm.DB, assetIDs []uuid.UUID) error
}

type distributionShareRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewDistributionShareRepo(db *gorm.DB, baseLog *logger.Logger) DistributionShareRepo {
  repoLog := baseLog.With("repo", "DistributionShareRepo")
  return &distributionShareRepo{db: db, log: repoLog}
}

func (r *distributionShareRepo) Create(ctx context.Context, tx *gorm.DB, shares []*types.DistributionShare) ([]*types.DistributionShare, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(shares) == 0 {
    return []*types.DistributionShare{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&shares).Error; err != nil {
    return nil, err
  }
  return shares, nil
}

func (r *distributionShareRepo) GetByAssetIDs(ctx context.Context, tx *gorm.DB, assetIDs []uuid.UUID) ([]*types.DistributionShare, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.DistributionShare
  if len(assetIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Preload("Heir").
    Where("asset_id IN ?", assetIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *distributionShareRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.DistributionShare, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.DistributionShare
  if err := transaction.WithContext(ctx).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *distributionShareRepo) CountByHeirIDs(ctx context.Context, tx *gorm.DB, heirIDs []uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(heirIDs) == 0 {
    return 0, nil
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.DistributionShare{}).
    Where("heir_id IN ?", heirIDs).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (r *distributionShareRepo) DeleteByAssetIDs(ctx context.Context, tx *gorm.DB, assetIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(assetIDs) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("asset_id IN ?", assetIDs).
    Delete(&types.DistributionShare{}).Error; err != nil {
    return err
  }
  return nil
}
