// File: internal/repository/project/interface.go
package project

import (
	"context"

	"docuchat/internal/domain"
)

// ProjectRepository handles project data operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	FindAll(ctx context.Context) ([]domain.Project, error)
	FindByID(ctx context.Context, id uint) (*domain.Project, error)
	Rename(ctx context.Context, projectID uint, name string) error
	Delete(ctx context.Context, projectID uint) error
}
