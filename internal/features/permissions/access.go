package permissions

import (
	"github.com/SH20RAJ/sketchflow-sub001/internal/apperrors"
	collaborators_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/enums"
	collaborators_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/models"
	projects_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/models"

	"github.com/google/uuid"
)

type AccessLevel string

const (
	AccessNone         AccessLevel = "NONE"
	AccessPublic       AccessLevel = "PUBLIC"
	AccessCollaborator AccessLevel = "COLLABORATOR"
	AccessOwner        AccessLevel = "OWNER"
)

// ProjectAccess is the relationship of one user to one project at the time
// it was resolved. It must not outlive the request that resolved it.
type ProjectAccess struct {
	Project      *projects_models.Project
	UserID       uuid.UUID
	Level        AccessLevel
	Collaborator *collaborators_models.ProjectCollaborator
}

// Role is the collaborator role, or OWNER for the owner. Empty otherwise.
func (a *ProjectAccess) Role() collaborators_enums.CollaboratorRole {
	switch a.Level {
	case AccessOwner:
		return collaborators_enums.CollaboratorRoleOwner
	case AccessCollaborator:
		return a.Collaborator.Role
	default:
		return ""
	}
}

func (a *ProjectAccess) IsOwner() bool {
	return a.Level == AccessOwner
}

func (a *ProjectAccess) CanRead() bool {
	return a.Level != AccessNone
}

func (a *ProjectAccess) CanComment() bool {
	switch a.Role() {
	case collaborators_enums.CollaboratorRoleOwner,
		collaborators_enums.CollaboratorRoleEditor,
		collaborators_enums.CollaboratorRoleCommenter:
		return true
	default:
		return false
	}
}

func (a *ProjectAccess) CanEdit() bool {
	switch a.Role() {
	case collaborators_enums.CollaboratorRoleOwner, collaborators_enums.CollaboratorRoleEditor:
		return true
	default:
		return false
	}
}

func (a *ProjectAccess) CanResolveComments() bool {
	return a.CanEdit()
}

func (a *ProjectAccess) RequireRead() error {
	if !a.CanRead() {
		return apperrors.Forbidden("you do not have access to this project")
	}

	return nil
}

func (a *ProjectAccess) RequireOwner(message string) error {
	if !a.IsOwner() {
		return apperrors.Forbidden(message)
	}

	return nil
}
