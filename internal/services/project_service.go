// File: internal/services/project_service.go
package services

import (
	"context"
	"strings"

	"docuchat/internal/domain"
	"docuchat/internal/repository/project"
)

// ProjectService manages named groupings of chats. Deleting a project
// cascades to its chats and their attachments at the store level.
type ProjectService struct {
	projectRepo project.ProjectRepository
	logger      Logger
}

func NewProjectService(projectRepo project.ProjectRepository, logger Logger) *ProjectService {
	if logger == nil {
		logger = NoOpLogger{}
	}
	return &ProjectService{projectRepo: projectRepo, logger: logger}
}

func (s *ProjectService) Create(ctx context.Context, name string) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("project name is required")
	}
	created, err := s.projectRepo.Create(ctx, &domain.Project{Name: name})
	if err != nil {
		return nil, err
	}
	s.logger.Info("project created", "project_id", created.ID)
	return created, nil
}

func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.projectRepo.FindAll(ctx)
}

func (s *ProjectService) Rename(ctx context.Context, projectID uint, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.NewValidationError("project name is required")
	}
	return s.projectRepo.Rename(ctx, projectID, name)
}

func (s *ProjectService) Delete(ctx context.Context, projectID uint) error {
	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return err
	}
	s.logger.Info("project deleted with owned chats", "project_id", projectID)
	return nil
}
