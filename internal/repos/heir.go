package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/probata/estateledger-backend/internal/logger"
  "github.com/probata/estateledger-backend/internal/types"
)

type HeirRepo interface {
  Create(ctx context.Context, tx *gorm.DB, heirs []*types.Heir) ([]*types.Heir, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, heirIDs []uuid.UUID) ([]*types.Heir, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Heir, error)
  Update(ctx context.Context, tx *gorm.DB, heir *types.Heir) error
  TouchByIDs(ctx context.Context, tx *gorm.DB, heirIDs []uuid.UUID) (int64, error)
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, heirIDs []uuid.UUID) error
}

type heirRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewHeirRepo(db *gorm.DB, baseLog *logger.Logger) HeirRepo {
  repoLog := baseLog.With("repo", "HeirRepo")
  return &heirRepo{db: db, log: repoLog}
}

func (r *heirRepo) Create(ctx context.Context, tx *gorm.DB, heirs []*types.Heir) ([]*types.Heir, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(heirs) == 0 {
    return []*types.Heir{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&heirs).Error; err != nil {
    return nil, err
  }
  return heirs, nil
}

func (r *heirRepo) GetByIDs(ctx context.Context, tx *gorm.DB, heirIDs []uuid.UUID) ([]*types.Heir, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Heir
  if len(heirIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", heirIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *heirRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Heir, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Heir
  if err := transaction.WithContext(ctx).
    Order("last_name ASC, first_name ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *heirRepo) Update(ctx context.Context, tx *gorm.DB, heir *types.Heir) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if heir == nil {
    return nil
  }

  if err := transaction.WithContext(ctx).Save(heir).Error; err != nil {
    return err
  }
  return nil
}

// TouchByIDs writes updated_at on every live row among heirIDs and reports
// how many it hit. Run inside a transaction this takes row locks, so a
// concurrent soft delete of the same heirs serializes against the caller:
// whichever transaction commits second sees the other's effect.
func (r *heirRepo) TouchByIDs(ctx context.Context, tx *gorm.DB, heirIDs []uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(heirIDs) == 0 {
    return 0, nil
  }

  res := transaction.WithContext(ctx).
    Model(&types.Heir{}).
    Where("id IN ?", heirIDs).
    Update("updated_at", time.Now())
  if res.Error != nil {
    return 0, res.Error
  }
  return res.RowsAffected, nil
}

func (r *heirRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, heirIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(heirIDs) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", heirIDs).
    Delete(&types.Heir{}).Error; err != nil {
    return err
  }
  return nil
}
