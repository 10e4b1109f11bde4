package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/probata/estateledger-backend/internal/apierr"
	"github.com/probata/estateledger-backend/internal/logger"
	"github.com/probata/estateledger-backend/internal/repos"
	"github.com/probata/estateledger-backend/internal/types"
)

type TaskService interface {
	CreateTask(ctx context.Context, tx *gorm.DB, attrs TaskAttrs) (*types.Task, error)
	ListTasks(ctx context.Context) ([]*TaskView, error)
	UpdateTask(ctx context.Context, taskID uuid.UUID, attrs TaskAttrs) (*types.Task, error)
	DeleteTask(ctx context.Context, taskID uuid.UUID) error
	AddAttachment(ctx context.Context, taskID uuid.UUID, url string) (*types.Attachment, error)
}

type TaskAttrs struct {
	Title     string
	Owner     string
	Deadline  time.Time
	Status    types.TaskStatus
	Priority  types.TaskPriority
	ProjectID *uuid.UUID
	AssetID   *uuid.UUID
	Notes     *string
}

type TaskView struct {
	*types.Task
	Attachments []*types.Attachment `json:"attachments"`
}

const attachmentOwnerTask = "task"

type taskService struct {
	db             *gorm.DB
	log            *logger.Logger
	taskRepo       repos.TaskRepo
	projectRepo    repos.ProjectRepo
	attachmentRepo repos.AttachmentRepo
}

func NewTaskService(db *gorm.DB, baseLog *logger.Logger, taskRepo repos.TaskRepo, projectRepo repos.ProjectRepo, attachmentRepo repos.AttachmentRepo) TaskService {
	return &taskService{
		db:             db,
		log:            baseLog.With("service", "TaskService"),
		taskRepo:       taskRepo,
		projectRepo:    projectRepo,
		attachmentRepo: attachmentRepo,
	}
}

func (s *taskService) CreateTask(ctx context.Context, tx *gorm.DB, attrs TaskAttrs) (*types.Task, error) {
	if attrs.Title == "" || attrs.Owner == "" {
		return nil, apierr.Validation("missing_fields", fmt.Errorf("title and owner are required"))
	}
	if attrs.Deadline.IsZero() {
		return nil, apierr.Validation("missing_deadline", fmt.Errorf("deadline is required"))
	}
	status := attrs.Status
	if status == "" {
		status = types.TaskNotStarted
	}
	if !status.Valid() {
		return nil, apierr.Validation("invalid_status", fmt.Errorf("invalid task status %q", status))
	}
	priority := attrs.Priority
	if priority == "" {
		priority = types.PriorityMedium
	}
	if !priority.Valid() {
		return nil, apierr.Validation("invalid_priority", fmt.Errorf("invalid task priority %q", priority))
	}
	if attrs.ProjectID != nil {
		projects, err := s.projectRepo.GetByIDs(ctx, tx, []uuid.UUID{*attrs.ProjectID})
		if err != nil {
			return nil, apierr.Unavailable(err)
		}
		if len(projects) == 0 {
			return nil, apierr.Validation("unknown_project", fmt.Errorf("project %s not found", *attrs.ProjectID))
		}
	}
	now := time.Now()
	task := &types.Task{
		ID:        uuid.New(),
		Title:     attrs.Title,
		Owner:     attrs.Owner,
		Deadline:  attrs.Deadline,
		Status:    status,
		Priority:  priority,
		ProjectID: attrs.ProjectID,
		AssetID:   attrs.AssetID,
		Notes:     attrs.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.taskRepo.Create(ctx, tx, []*types.Task{task}); err != nil {
		s.log.Error("CreateTask failed", "error", err)
		return nil, apierr.Unavailable(err)
	}
	s.log.Info("CreateTask", "task_id", task.ID)
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context) ([]*TaskView, error) {
	tasks, err := s.taskRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, apierr.Unavailable(err)
	}
	if len(tasks) == 0 {
		return []*TaskView{}, nil
	}
	taskIDs := make([]uuid.UUID, len(tasks))
	for i, t := range tasks {
		taskIDs[i] = t.ID
	}
	attachments, err := s.attachmentRepo.GetByOwner(ctx, nil, attachmentOwnerTask, taskIDs)
	if err != nil {
		return nil, apierr.Unavailable(err)
	}
	byTask := make(map[uuid.UUID][]*types.Attachment)
	for _, att := range attachments {
		byTask[att.OwnerID] = append(byTask[att.OwnerID], att)
	}
	views := make([]*TaskView, len(tasks))
	for i, t := range tasks {
		atts := byTask[t.ID]
		if atts == nil {
			atts = []*types.Attachment{}
		}
		views[i] = &TaskView{Task: t, Attachments: atts}
	}
	return views, nil
}

func (s *taskService) UpdateTask(ctx context.Context, taskID uuid.UUID, attrs TaskAttrs) (*types.Task, error) {
	tasks, err := s.taskRepo.GetByIDs(ctx, nil, []uuid.UUID{taskID})
	if err != nil {
		return nil, apierr.Unavailable(err)
	}
	if len(tasks) == 0 {
		return nil, apierr.NotFound("task_not_found", fmt.Errorf("task %s not found", taskID))
	}
	if attrs.Status != "" && !attrs.Status.Valid() {
		return nil, apierr.Validation("invalid_status", fmt.Errorf("invalid task status %q", attrs.Status))
	}
	if attrs.Priority != "" && !attrs.Priority.Valid() {
		return nil, apierr.Validation("invalid_priority", fmt.Errorf("invalid task priority %q", attrs.Priority))
	}
	task := tasks[0]
	if attrs.Title != "" {
		task.Title = attrs.Title
	}
	if attrs.Owner != "" {
		task.Owner = attrs.Owner
	}
	if !attrs.Deadline.IsZero() {
		task.Deadline = attrs.Deadline
	}
	if attrs.Status != "" {
		task.Status = attrs.Status
	}
	if attrs.Priority != "" {
		task.Priority = attrs.Priority
	}
	if attrs.ProjectID != nil {
		task.ProjectID = attrs.ProjectID
	}
	if attrs.AssetID != nil {
		task.AssetID = attrs.AssetID
	}
	if attrs.Notes != nil {
		task.Notes = attrs.Notes
	}
	task.UpdatedAt = time.Now()
	if err := s.taskRepo.Update(ctx, nil, task); err != nil {
		s.log.Error("UpdateTask failed", "error", err, "task_id", taskID)
		return nil, apierr.Unavailable(err)
	}
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	tasks, err := s.taskRepo.GetByIDs(ctx, nil, []uuid.UUID{taskID})
	if err != nil {
		return apierr.Unavailable(err)
	}
	if len(tasks) == 0 {
		return apierr.NotFound("task_not_found", fmt.Errorf("task %s not found", taskID))
	}

	transaction := s.db.Begin()
	if transaction.Error != nil {
		return apierr.Unavailable(fmt.Errorf("begin transaction: %w", transaction.Error))
	}
	if err := s.attachmentRepo.FullDeleteByOwner(ctx, transaction, attachmentOwnerTask, []uuid.UUID{taskID}); err != nil {
		transaction.Rollback()
		return apierr.Unavailable(err)
	}
	if err := s.taskRepo.SoftDeleteByIDs(ctx, transaction, []uuid.UUID{taskID}); err != nil {
		transaction.Rollback()
		return apierr.Unavailable(err)
	}
	if err := transaction.Commit().Error; err != nil {
		return apierr.Unavailable(fmt.Errorf("commit: %w", err))
	}
	return nil
}

func (s *taskService) AddAttachment(ctx context.Context, taskID uuid.UUID, url string) (*types.Attachment, error) {
	if url == "" {
		return nil, apierr.Validation("missing_url", fmt.Errorf("attachment url is required"))
	}
	tasks, err := s.taskRepo.GetByIDs(ctx, nil, []uuid.UUID{taskID})
	if err != nil {
		return nil, apierr.Unavailable(err)
	}
	if len(tasks) == 0 {
		return nil, apierr.NotFound("task_not_found", fmt.Errorf("task %s not found", taskID))
	}
	now := time.Now()
	att := &types.Attachment{
		ID:        uuid.New(),
		URL:       url,
		OwnerType: attachmentOwnerTask,
		OwnerID:   taskID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.attachmentRepo.Create(ctx, nil, []*types.Attachment{att}); err != nil {
		s.log.Error("AddAttachment failed", "error", err, "task_id", taskID)
		return nil, apierr.Unavailable(err)
	}
	return att, nil
}
