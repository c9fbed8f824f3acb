package collaborators_repositories

import (
	"context"

	collaborators_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/enums"
	collaborators_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/models"
	"github.com/SH20RAJ/sketchflow-sub001/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CollaboratorRepository struct{}

func (r *CollaboratorRepository) CreateCollaborator(
	ctx context.Context,
	collaborator *collaborators_models.ProjectCollaborator,
) error {
	return storage.FromContext(ctx).Create(collaborator).Error
}

func (r *CollaboratorRepository) GetCollaborator(
	ctx context.Context,
	projectID uuid.UUID,
	userID uuid.UUID,
) (*collaborators_models.ProjectCollaborator, error) {
	return r.getCollaborator(storage.FromContext(ctx), projectID, userID)
}

// GetCollaboratorForUpdate locks the row until the surrounding transaction ends
func (r *CollaboratorRepository) GetCollaboratorForUpdate(
	ctx context.Context,
	projectID uuid.UUID,
	userID uuid.UUID,
) (*collaborators_models.ProjectCollaborator, error) {
	return r.getCollaborator(
		storage.FromContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		projectID,
		userID,
	)
}

func (r *CollaboratorRepository) UpdateCollaborator(
	ctx context.Context,
	collaborator *collaborators_models.ProjectCollaborator,
) error {
	return storage.FromContext(ctx).
		Model(&collaborators_models.ProjectCollaborator{}).
		Where("project_id = ? AND user_id = ?", collaborator.ProjectID, collaborator.UserID).
		Updates(map[string]any{
			"role":          collaborator.Role,
			"invite_status": collaborator.InviteStatus,
			"accepted_at":   collaborator.AcceptedAt,
		}).Error
}

func (r *CollaboratorRepository) DeleteCollaborator(ctx context.Context, projectID, userID uuid.UUID) error {
	return storage.FromContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&collaborators_models.ProjectCollaborator{}).Error
}

func (r *CollaboratorRepository) GetProjectCollaborators(
	ctx context.Context,
	projectID uuid.UUID,
) ([]*collaborators_models.ProjectCollaborator, error) {
	var collaborators = make([]*collaborators_models.ProjectCollaborator, 0)

	err := storage.FromContext(ctx).
		Where("project_id = ?", projectID).
		Order("invited_at DESC").
		Find(&collaborators).Error

	return collaborators, err
}

func (r *CollaboratorRepository) GetUserCollaborations(
	ctx context.Context,
	userID uuid.UUID,
	status collaborators_enums.InviteStatus,
) ([]*collaborators_models.ProjectCollaborator, error) {
	var collaborators = make([]*collaborators_models.ProjectCollaborator, 0)

	err := storage.FromContext(ctx).
		Where("user_id = ? AND invite_status = ?", userID, status).
		Order("invited_at DESC").
		Find(&collaborators).Error

	return collaborators, err
}

func (r *CollaboratorRepository) getCollaborator(
	db *gorm.DB,
	projectID uuid.UUID,
	userID uuid.UUID,
) (*collaborators_models.ProjectCollaborator, error) {
	var collaborator collaborators_models.ProjectCollaborator

	err := db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&collaborator).Error
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	return &collaborator, nil
}
