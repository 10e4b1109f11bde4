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

type ProjectService interface {
	CreateProject(ctx context.Context, tx *gorm.DB, name string, description *string) (*types.Project, error)
	ListProjects(ctx context.Context) ([]*types.Project, error)
}

type projectService struct {
	db          *gorm.DB
	log         *logger.Logger
	projectRepo repos.ProjectRepo
}

func NewProjectService(db *gorm.DB, baseLog *logger.Logger, projectRepo repos.ProjectRepo) ProjectService {
	return &projectService{
		db:          db,
		log:         baseLog.With("service", "ProjectService"),
		projectRepo: projectRepo,
	}
}

func (s *projectService) CreateProject(ctx context.Context, tx *gorm.DB, name string, description *string) (*types.Project, error) {
	if name == "" {
		return nil, apierr.Validation("missing_project_name", fmt.Errorf("project name is required"))
	}
	now := time.Now()
	project := &types.Project{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.projectRepo.Create(ctx, tx, []*types.Project{project}); err != nil {
		s.log.Error("CreateProject failed", "error", err)
		return nil, apierr.Unavailable(err)
	}
	s.log.Info("CreateProject", "project_id", project.ID)
	return project, nil
}

func (s *projectService) ListProjects(ctx context.Context) ([]*types.Project, error) {
	projects, err := s.projectRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, apierr.Unavailable(err)
	}
	return projects, nil
}
