package collaborators_interfaces

import (
	"context"

	"github.com/SH20RAJ/sketchflow-sub001/internal/email"
	"github.com/SH20RAJ/sketchflow-sub001/internal/features/activities"
	collaborators_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/enums"
	collaborators_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/models"
	projects_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/models"
	"github.com/SH20RAJ/sketchflow-sub001/internal/util/rate_limit"

	"github.com/google/uuid"
)

// CollaboratorRepository lookups return nil without error when the row is absent
type CollaboratorRepository interface {
	CreateCollaborator(ctx context.Context, collaborator *collaborators_models.ProjectCollaborator) error
	GetCollaborator(
		ctx context.Context,
		projectID uuid.UUID,
		userID uuid.UUID,
	) (*collaborators_models.ProjectCollaborator, error)
	GetCollaboratorForUpdate(
		ctx context.Context,
		projectID uuid.UUID,
		userID uuid.UUID,
	) (*collaborators_models.ProjectCollaborator, error)
	UpdateCollaborator(ctx context.Context, collaborator *collaborators_models.ProjectCollaborator) error
	DeleteCollaborator(ctx context.Context, projectID uuid.UUID, userID uuid.UUID) error
	GetProjectCollaborators(
		ctx context.Context,
		projectID uuid.UUID,
	) ([]*collaborators_models.ProjectCollaborator, error)
	GetUserCollaborations(
		ctx context.Context,
		userID uuid.UUID,
		status collaborators_enums.InviteStatus,
	) ([]*collaborators_models.ProjectCollaborator, error)
}

type ProjectReader interface {
	GetProjectsByIDs(ctx context.Context, projectIDs []uuid.UUID) ([]*projects_models.Project, error)
}

type ActivityWriter interface {
	Append(ctx context.Context, projectID uuid.UUID, actorID uuid.UUID, details activities.ActivityDetails) error
}

type InvitationNotifier interface {
	IsConfigured() bool
	SendInvitation(ctx context.Context, data email.InvitationData) error
}

type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit rate_limit.Limit) (*rate_limit.RateLimitResult, error)
}
