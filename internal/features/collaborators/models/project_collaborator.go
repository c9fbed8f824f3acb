package collaborators_models

import (
	"time"

	collaborators_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/enums"

	"github.com/google/uuid"
)

type ProjectCollaborator struct {
	ProjectID    uuid.UUID                            `json:"projectId"    gorm:"column:project_id;primaryKey"`
	UserID       uuid.UUID                            `json:"userId"       gorm:"column:user_id;primaryKey"`
	Role         collaborators_enums.CollaboratorRole `json:"role"         gorm:"column:role"`
	InviteStatus collaborators_enums.InviteStatus     `json:"inviteStatus" gorm:"column:invite_status"`
	InvitedBy    uuid.UUID                            `json:"invitedBy"    gorm:"column:invited_by"`
	InvitedAt    time.Time                            `json:"invitedAt"    gorm:"column:invited_at"`
	AcceptedAt   *time.Time                           `json:"acceptedAt"   gorm:"column:accepted_at"`
}

func (ProjectCollaborator) TableName() string {
	return "project_collaborators"
}

func (c *ProjectCollaborator) IsPending() bool {
	return c.InviteStatus == collaborators_enums.InviteStatusPending
}

func (c *ProjectCollaborator) IsAccepted() bool {
	return c.InviteStatus == collaborators_enums.InviteStatusAccepted
}
