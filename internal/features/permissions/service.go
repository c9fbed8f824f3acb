package permissions

import (
	"context"
	"fmt"

	"github.com/SH20RAJ/sketchflow-sub001/internal/apperrors"
	collaborators_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/models"
	projects_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/models"

	"github.com/google/uuid"
)

type ProjectReader interface {
	GetProjectByID(ctx context.Context, projectID uuid.UUID) (*projects_models.Project, error)
}

type CollaboratorReader interface {
	GetCollaborator(
		ctx context.Context,
		projectID uuid.UUID,
		userID uuid.UUID,
	) (*collaborators_models.ProjectCollaborator, error)
}

type AccessResolver interface {
	ResolveAccess(ctx context.Context, projectID uuid.UUID, userID uuid.UUID) (*ProjectAccess, error)
}

type PermissionService struct {
	projectReader      ProjectReader
	collaboratorReader CollaboratorReader
}

func NewPermissionService(projectReader ProjectReader, collaboratorReader CollaboratorReader) *PermissionService {
	return &PermissionService{
		projectReader:      projectReader,
		collaboratorReader: collaboratorReader,
	}
}

// ResolveAccess reads the project and the collaborator row from the
// database on every call. Owner wins over a collaborator row, an accepted
// row wins over the shared flag.
func (s *PermissionService) ResolveAccess(
	ctx context.Context,
	projectID uuid.UUID,
	userID uuid.UUID,
) (*ProjectAccess, error) {
	project, err := s.projectReader.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if project == nil {
		return nil, apperrors.NotFound("project not found")
	}

	access := &ProjectAccess{
		Project: project,
		UserID:  userID,
		Level:   AccessNone,
	}

	if project.IsOwnedBy(userID) {
		access.Level = AccessOwner
		return access, nil
	}

	collaborator, err := s.collaboratorReader.GetCollaborator(ctx, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get collaborator: %w", err)
	}

	if collaborator != nil && collaborator.IsAccepted() {
		access.Level = AccessCollaborator
		access.Collaborator = collaborator
		return access, nil
	}

	if project.Shared {
		access.Level = AccessPublic
	}

	return access, nil
}
