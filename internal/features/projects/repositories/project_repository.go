package projects_repositories

import (
	"context"
	"time"

	projects_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/models"
	"github.com/SH20RAJ/sketchflow-sub001/internal/storage"

	"github.com/google/uuid"
)

type ProjectRepository struct{}

func (r *ProjectRepository) CreateProject(ctx context.Context, project *projects_models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}
	if project.UpdatedAt.IsZero() {
		project.UpdatedAt = project.CreatedAt
	}

	return storage.FromContext(ctx).Create(project).Error
}

func (r *ProjectRepository) GetProjectByID(ctx context.Context, projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	if err := storage.FromContext(ctx).Where("id = ?", projectID).First(&project).Error; err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) GetProjectsByIDs(
	ctx context.Context,
	projectIDs []uuid.UUID,
) ([]*projects_models.Project, error) {
	var projects = make([]*projects_models.Project, 0)

	if len(projectIDs) == 0 {
		return projects, nil
	}

	err := storage.FromContext(ctx).
		Where("id IN ?", projectIDs).
		Order("updated_at DESC").
		Find(&projects).Error

	return projects, err
}

func (r *ProjectRepository) GetProjectsByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*projects_models.Project, error) {
	var projects = make([]*projects_models.Project, 0)

	err := storage.FromContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&projects).Error

	return projects, err
}

func (r *ProjectRepository) UpdateProject(ctx context.Context, project *projects_models.Project) error {
	return storage.FromContext(ctx).Save(project).Error
}

// DeleteProject removes the project. Collaborators, comments, activities,
// documents and tag links go with it through ON DELETE CASCADE.
func (r *ProjectRepository) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	return storage.FromContext(ctx).Where("id = ?", projectID).Delete(&projects_models.Project{}).Error
}
