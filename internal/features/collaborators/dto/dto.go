package collaborators_dto

import (
	"time"

	collaborators_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/enums"
	collaborators_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/models"
	users_dto "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/dto"

	"github.com/google/uuid"
)

type InviteCollaboratorRequestDTO struct {
	Email string `json:"email" binding:"required,email"`
	// Role defaults to VIEWER when omitted
	Role collaborators_enums.CollaboratorRole `json:"role"`
}

type UpdateCollaboratorRoleRequestDTO struct {
	Role collaborators_enums.CollaboratorRole `json:"role" binding:"required"`
}

type RespondToInvitationRequestDTO struct {
	Status collaborators_enums.InviteStatus `json:"status" binding:"required"`
}

type CollaboratorResponseDTO struct {
	ProjectID    uuid.UUID                            `json:"projectId"`
	UserID       uuid.UUID                            `json:"userId"`
	Role         collaborators_enums.CollaboratorRole `json:"role"`
	InviteStatus collaborators_enums.InviteStatus     `json:"inviteStatus,omitempty"`
	InvitedBy    *uuid.UUID                           `json:"invitedBy,omitempty"`
	InvitedAt    *time.Time                           `json:"invitedAt,omitempty"`
	AcceptedAt   *time.Time                           `json:"acceptedAt,omitempty"`
	IsOwner      bool                                 `json:"isOwner"`
	User         *users_dto.PublicProfileDTO          `json:"user"`
}

func ToCollaboratorResponse(
	collaborator *collaborators_models.ProjectCollaborator,
	user *users_dto.PublicProfileDTO,
) *CollaboratorResponseDTO {
	invitedBy := collaborator.InvitedBy
	invitedAt := collaborator.InvitedAt

	return &CollaboratorResponseDTO{
		ProjectID:    collaborator.ProjectID,
		UserID:       collaborator.UserID,
		Role:         collaborator.Role,
		InviteStatus: collaborator.InviteStatus,
		InvitedBy:    &invitedBy,
		InvitedAt:    &invitedAt,
		AcceptedAt:   collaborator.AcceptedAt,
		IsOwner:      false,
		User:         user,
	}
}

type ListCollaboratorsResponseDTO struct {
	Collaborators []*CollaboratorResponseDTO `json:"collaborators"`
	IsOwner       bool                       `json:"isOwner"`
}

type InvitationResponseDTO struct {
	ProjectID   uuid.UUID                            `json:"projectId"`
	ProjectName string                               `json:"projectName"`
	Role        collaborators_enums.CollaboratorRole `json:"role"`
	InvitedAt   time.Time                            `json:"invitedAt"`
	InvitedBy   *users_dto.PublicProfileDTO          `json:"invitedBy"`
}

type ListInvitationsResponseDTO struct {
	Invitations []*InvitationResponseDTO `json:"invitations"`
}

type RespondToInvitationResponseDTO struct {
	Collaborator *CollaboratorResponseDTO `json:"collaborator"`
	Message      string                   `json:"message"`
}
