package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/probata/estateledger-backend/internal/logger"
  "github.com/probata/estateledger-backend/internal/types"
)

type LiabilityRepo interface {
  Create(ctx context.Context, tx *gorm.DB, liabilities []*types.Liability) ([]*types.Liability, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, liabilityIDs []uuid.UUID) ([]*types.Liability, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Liability, error)
  Update(ctx context.Context, tx *gorm.DB, liability *types.Liability) error
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, liabilityIDs []uuid.UUID) error
}

type liabilityRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewLiabilityRepo(db *gorm.DB, baseLog *logger.Logger) LiabilityRepo {
  repoLog := baseLog.With("repo", "LiabilityRepo")
  return &liabilityRepo{db: db, log: repoLog}
}

func (r *liabilityRepo) Create(ctx context.Context, tx *gorm.DB, liabilities []*types.Liability) ([]*types.Liability, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(liabilities) == 0 {
    return []*types.Liability{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&liabilities).Error; err != nil {
    return nil, err
  }
  return liabilities, nil
}

func (r *liabilityRepo) GetByIDs(ctx context.Context, tx *gorm.DB, liabilityIDs []uuid.UUID) ([]*types.Liability, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Liability
  if len(liabilityIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", liabilityIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *liabilityRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Liability, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Liability
  if err := transaction.WithContext(ctx).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *liabilityRepo) Update(ctx context.Context, tx *gorm.DB, liability *types.Liability) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if liability == nil {
    return nil
  }

  if err := transaction.WithContext(ctx).Save(liability).Error; err != nil {
    return err
  }
  return nil
}

func (r *liabilityRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, liabilityIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(liabilityIDs) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", liabilityIDs).
    Delete(&types.Liability{}).Error; err != nil {
    return err
  }
  return nil
}
