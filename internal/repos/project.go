package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/probata/estateledger-backend/internal/logger"
  "github.com/probata/estateledger-backend/internal/types"
)

type ProjectRepo interface {
  Create(ctx context.Context, tx *gorm.DB, projects []*types.Project) ([]*types.Project, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.Project, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Project, error)
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) error
}

type projectRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
  repoLog := baseLog.With("repo", "ProjectRepo")
  return &projectRepo{db: db, log: repoLog}
}

func (r *projectRepo) Create(ctx context.Context, tx *gorm.DB, projects []*types.Project) ([]*types.Project, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(projects) == 0 {
    return []*types.Project{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&projects).Error; err != nil {
    return nil, err
  }
  return projects, nil
}

func (r *projectRepo) GetByIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.Project, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Project
  if len(projectIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", projectIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *projectRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Project, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Project
  if err := transaction.WithContext(ctx).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *projectRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(projectIDs) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", projectIDs).
    Delete(&types.Project{}).Error; err != nil {
    return err
  }
  return nil
}
