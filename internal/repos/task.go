package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/probata/estateledger-backend/internal/logger"
  "github.com/probata/estateledger-backend/internal/types"
)

type TaskRepo interface {
  Create(ctx context.Context, tx *gorm.DB, tasks []*types.Task) ([]*types.Task, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.Task, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Task, error)
  Update(ctx context.Context, tx *gorm.DB, task *types.Task) error
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) error
}

type taskRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
  repoLog := baseLog.With("repo", "TaskRepo")
  return &taskRepo{db: db, log: repoLog}
}

func (r *taskRepo) Create(ctx context.Context, tx *gorm.DB, tasks []*types.Task) ([]*types.Task, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(tasks) == 0 {
    return []*types.Task{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&tasks).Error; err != nil {
    return nil, err
  }
  return tasks, nil
}

func (r *taskRepo) GetByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.Task, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Task
  if len(taskIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Preload("Project").
    Where("id IN ?", taskIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *taskRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Task, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Task
  if err := transaction.WithContext(ctx).
    Preload("Project").
    Order("deadline ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *taskRepo) Update(ctx context.Context, tx *gorm.DB, task *types.Task) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if task == nil {
    return nil
  }

  if err := transaction.WithContext(ctx).Save(task).Error; err != nil {
    return err
  }
  return nil
}

func (r *taskRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(taskIDs) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", taskIDs).
    Delete(&types.Task{}).Error; err != nil {
    return err
  }
  return nil
}
