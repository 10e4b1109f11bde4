package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/probata/estateledger-backend/internal/logger"
  "github.com/probata/estateledger-backend/internal/types"
)

type AssetRepo interface {
  Create(ctx context.Context, tx *gorm.DB, assets []*types.Asset) ([]*types.Asset, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, assetIDs []uuid.UUID) ([]*types.Asset, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Asset, error)
  Update(ctx context.Context, tx *gorm.DB, asset *types.Asset) error
  UpdateFields(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, fields map[string]interface{}) error
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, assetIDs []uuid.UUID) error
  FullDeleteByIDs(ctx context.Context, tx *gorm.DB, assetIDs []uuid.UUID) error
}

type assetRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAssetRepo(db *gorm.DB, baseLog *logger.Logger) AssetRepo {
  repoLog := baseLog.With("repo", "AssetRepo")
  return &assetRepo{db: db, log: repoLog}
}

func (r *assetRepo) Create(ctx context.Context, tx *gorm.DB, assets []*types.Asset) ([]*types.Asset, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(assets) == 0 {
    return []*types.Asset{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&assets).Error; err != nil {
    return nil, err
  }
  return assets, nil
}

func (r *assetRepo) GetByIDs(ctx context.Context, tx *gorm.DB, assetIDs []uuid.UUID) ([]*types.Asset, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Asset
  if len(assetIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", assetIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *assetRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Asset, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Asset
  if err := transaction.WithContext(ctx).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *assetRepo) Update(ctx context.Context, tx *gorm.DB, asset *types.Asset) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if asset == nil {
    return nil
  }

  if err := transaction.WithContext(ctx).Save(asset).Error; err != nil {
    return err
  }
  return nil
}

func (r *assetRepo) UpdateFields(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, fields map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(fields) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Model(&types.Asset{}).
    Where("id = ?", assetID).
    Updates(fields).Error; err != nil {
    return err
  }
  return nil
}

func (r *assetRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, assetIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(assetIDs) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", assetIDs).
    Delete(&types.Asset{}).Error; err != nil {
    return err
  }
  return nil
}

func (r *assetRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, assetIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(assetIDs) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("id IN ?", assetIDs).
    Delete(&types.Asset{}).Error; err != nil {
    return err
  }
  return nil
}
