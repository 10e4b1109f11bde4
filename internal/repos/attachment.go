package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/probata/estateledger-backend/internal/logger"
  "github.com/probata/estateledger-backend/internal/types"
)

type AttachmentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, attachments []*types.Attachment) ([]*types.Attachment, error)
  GetByOwner(ctx context.Context, tx *gorm.DB, ownerType string, ownerIDs []uuid.UUID) ([]*types.Attachment, error)
  FullDeleteByOwner(ctx context.Context, tx *gorm.DB, ownerType string, ownerIDs []uuid.UUID) error
}

type attachmentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAttachmentRepo(db *gorm.DB, baseLog *logger.Logger) AttachmentRepo {
  repoLog := baseLog.With("repo", "AttachmentRepo")
  return &attachmentRepo{db: db, log: repoLog}
}

func (r *attachmentRepo) Create(ctx context.Context, tx *gorm.DB, attachments []*types.Attachment) ([]*types.Attachment, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(attachments) == 0 {
    return []*types.Attachment{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&attachments).Error; err != nil {
    return nil, err
  }
  return attachments, nil
}

func (r *attachmentRepo) GetByOwner(ctx context.Context, tx *gorm.DB, ownerType string, ownerIDs []uuid.UUID) ([]*types.Attachment, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Attachment
  if len(ownerIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("owner_type = ? AND owner_id IN ?", ownerType, ownerIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *attachmentRepo) FullDeleteByOwner(ctx context.Context, tx *gorm.DB, ownerType string, ownerIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(ownerIDs) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("owner_type = ? AND owner_id IN ?", ownerType, ownerIDs).
    Delete(&types.Attachment{}).Error; err != nil {
    return err
  }
  return nil
}
