package projects_testing

import (
	"context"
	"testing"
	"time"

	collaborators_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/enums"
	collaborators_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/models"
	projects_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type ProjectCreator interface {
	CreateProject(ctx context.Context, project *projects_models.Project) error
}

type CollaboratorCreator interface {
	CreateCollaborator(ctx context.Context, collaborator *collaborators_models.ProjectCollaborator) error
}

func CreateTestProject(
	t *testing.T,
	repository ProjectCreator,
	ownerID uuid.UUID,
	shared bool,
) *projects_models.Project {
	t.Helper()

	now := time.Now().UTC()
	project := &projects_models.Project{
		ID:        uuid.New(),
		Name:      "Test Project " + uuid.NewString()[:8],
		OwnerID:   ownerID,
		Shared:    shared,
		CreatedAt: now,
		UpdatedAt: now,
	}

	require.NoError(t, repository.CreateProject(context.Background(), project))

	return project
}

// AddTestCollaborator inserts a collaborator row directly, skipping the
// invitation flow
func AddTestCollaborator(
	t *testing.T,
	repository CollaboratorCreator,
	project *projects_models.Project,
	userID uuid.UUID,
	role collaborators_enums.CollaboratorRole,
	status collaborators_enums.InviteStatus,
) *collaborators_models.ProjectCollaborator {
	t.Helper()

	now := time.Now().UTC()
	collaborator := &collaborators_models.ProjectCollaborator{
		ProjectID:    project.ID,
		UserID:       userID,
		Role:         role,
		InviteStatus: status,
		InvitedBy:    project.OwnerID,
		InvitedAt:    now,
	}

	if status == collaborators_enums.InviteStatusAccepted {
		collaborator.AcceptedAt = &now
	}

	require.NoError(t, repository.CreateCollaborator(context.Background(), collaborator))

	return collaborator
}
