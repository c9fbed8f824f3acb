package projects_interfaces

import (
	"context"

	"github.com/SH20RAJ/sketchflow-sub001/internal/features/activities"
	collaborators_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/enums"
	collaborators_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/models"
	projects_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/enums"
	projects_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/models"

	"github.com/google/uuid"
)

type ProjectRepository interface {
	CreateProject(ctx context.Context, project *projects_models.Project) error
	GetProjectByID(ctx context.Context, projectID uuid.UUID) (*projects_models.Project, error)
	GetProjectsByIDs(ctx context.Context, projectIDs []uuid.UUID) ([]*projects_models.Project, error)
	GetProjectsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*projects_models.Project, error)
	UpdateProject(ctx context.Context, project *projects_models.Project) error
	DeleteProject(ctx context.Context, projectID uuid.UUID) error
}

type TagRepository interface {
	CreateTag(ctx context.Context, tag *projects_models.ProjectTag) error
	GetTagByID(ctx context.Context, tagID uuid.UUID) (*projects_models.ProjectTag, error)
	GetTagsByUser(ctx context.Context, userID uuid.UUID) ([]*projects_models.ProjectTag, error)
	UpdateTag(ctx context.Context, tag *projects_models.ProjectTag) error
	DeleteTag(ctx context.Context, tagID uuid.UUID) error
	AttachTag(ctx context.Context, projectID, tagID uuid.UUID) error
	DetachTag(ctx context.Context, projectID, tagID uuid.UUID) error
	GetTagLinks(ctx context.Context, tagIDs []uuid.UUID) ([]*projects_models.ProjectTagLink, error)
}

type DocumentRepository interface {
	GetDocument(
		ctx context.Context,
		projectID uuid.UUID,
		kind projects_enums.DocumentKind,
	) (*projects_models.ProjectDocument, error)
	UpsertDocument(ctx context.Context, document *projects_models.ProjectDocument) error
}

type CollaborationReader interface {
	GetUserCollaborations(
		ctx context.Context,
		userID uuid.UUID,
		status collaborators_enums.InviteStatus,
	) ([]*collaborators_models.ProjectCollaborator, error)
}

type ActivityWriter interface {
	Append(ctx context.Context, projectID uuid.UUID, actorID uuid.UUID, details activities.ActivityDetails) error
}

type ProjectCache interface {
	Set(ctx context.Context, project *projects_models.Project)
	Invalidate(ctx context.Context, projectID uuid.UUID)
}
