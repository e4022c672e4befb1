// File: internal/repository/project/project_repository.go
package project

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"docuchat/internal/domain"
)

var ErrProjectNotFound = fmt.Errorf("project: %w", domain.ErrNotFound)

type gormProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &gormProjectRepository{db: db}
}

func (r *gormProjectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return nil, &domain.StorageError{Op: "create project", Err: err}
	}
	return project, nil
}

func (r *gormProjectRepository) FindAll(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&projects).Error; err != nil {
		return nil, &domain.StorageError{Op: "list projects", Err: err}
	}
	return projects, nil
}

func (r *gormProjectRepository) FindByID(ctx context.Context, id uint) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "find project", Err: err}
	}
	return &project, nil
}

func (r *gormProjectRepository) Rename(ctx context.Context, projectID uint, name string) error {
	result := r.db.WithContext(ctx).Model(&domain.Project{}).Where("id = ?", projectID).
		Update("name", name)
	if result.Error != nil {
		return &domain.StorageError{Op: "rename project", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// Delete removes the project; the store cascades to its chats and their
// attachments.
func (r *gormProjectRepository) Delete(ctx context.Context, projectID uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Project{}, projectID)
	if result.Error != nil {
		return &domain.StorageError{Op: "delete project", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}
