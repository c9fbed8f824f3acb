package activities

import (
	"encoding/json"
	"fmt"
	"time"

	collaborators_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/enums"
	projects_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/enums"

	"github.com/google/uuid"
)

// ActivityDetails is the typed payload of one activity. Each variant knows
// the action it is recorded under.
type ActivityDetails interface {
	Action() ActivityAction
}

type InvitedCollaboratorDetails struct {
	InviteeID    uuid.UUID                            `json:"inviteeId"`
	InviteeEmail string                               `json:"inviteeEmail"`
	Role         collaborators_enums.CollaboratorRole `json:"role"`
}

func (InvitedCollaboratorDetails) Action() ActivityAction {
	return ActionInvitedCollaborator
}

type InvitationResponseDetails struct {
	Status collaborators_enums.InviteStatus     `json:"status"`
	Role   collaborators_enums.CollaboratorRole `json:"role"`
}

func (d InvitationResponseDetails) Action() ActivityAction {
	if d.Status == collaborators_enums.InviteStatusAccepted {
		return ActionAcceptedInvitation
	}

	return ActionRejectedInvitation
}

type RoleUpdatedDetails struct {
	TargetUserID uuid.UUID                            `json:"targetUserId"`
	OldRole      collaborators_enums.CollaboratorRole `json:"oldRole"`
	NewRole      collaborators_enums.CollaboratorRole `json:"newRole"`
}

func (RoleUpdatedDetails) Action() ActivityAction {
	return ActionUpdatedCollaboratorRole
}

type CollaboratorRemovedDetails struct {
	TargetUserID uuid.UUID                            `json:"targetUserId"`
	Role         collaborators_enums.CollaboratorRole `json:"role"`
	SelfRemoval  bool                                 `json:"selfRemoval"`
}

func (d CollaboratorRemovedDetails) Action() ActivityAction {
	if d.SelfRemoval {
		return ActionLeftProject
	}

	return ActionRemovedCollaborator
}

type CommentAddedDetails struct {
	CommentID uuid.UUID  `json:"commentId"`
	Content   string     `json:"content"`
	ElementID *string    `json:"elementId"`
	ParentID  *uuid.UUID `json:"parentId"`
}

func (CommentAddedDetails) Action() ActivityAction {
	return ActionAddedComment
}

type CommentResolvedDetails struct {
	CommentID uuid.UUID `json:"commentId"`
}

func (CommentResolvedDetails) Action() ActivityAction {
	return ActionResolvedComment
}

type CommentDeletedDetails struct {
	CommentID      uuid.UUID `json:"commentId"`
	RepliesDeleted int64     `json:"repliesDeleted"`
}

func (CommentDeletedDetails) Action() ActivityAction {
	return ActionDeletedComment
}

type DocumentUpdatedDetails struct {
	Kind  projects_enums.DocumentKind `json:"kind"`
	Bytes int                         `json:"bytes"`
}

func (DocumentUpdatedDetails) Action() ActivityAction {
	return ActionUpdatedDocument
}

type ProjectSharingChangedDetails struct {
	Shared bool `json:"shared"`
}

func (ProjectSharingChangedDetails) Action() ActivityAction {
	return ActionChangedProjectSharing
}

func NewActivity(projectID, actorID uuid.UUID, details ActivityDetails) (*CollaborationActivity, error) {
	encoded, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("failed to encode activity details: %w", err)
	}

	return &CollaborationActivity{
		// v7 ids sort by creation time, which keeps ties in created_at ordered
		ID:        uuid.Must(uuid.NewV7()),
		ProjectID: projectID,
		UserID:    actorID,
		Action:    details.Action(),
		Details:   encoded,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// DecodeDetails turns a stored payload back into the variant of its action
func DecodeDetails(action ActivityAction, raw RawDetails) (ActivityDetails, error) {
	var details ActivityDetails

	switch action {
	case ActionInvitedCollaborator:
		details = &InvitedCollaboratorDetails{}
	case ActionAcceptedInvitation, ActionRejectedInvitation:
		details = &InvitationResponseDetails{}
	case ActionUpdatedCollaboratorRole:
		details = &RoleUpdatedDetails{}
	case ActionRemovedCollaborator, ActionLeftProject:
		details = &CollaboratorRemovedDetails{}
	case ActionAddedComment:
		details = &CommentAddedDetails{}
	case ActionResolvedComment:
		details = &CommentResolvedDetails{}
	case ActionDeletedComment:
		details = &CommentDeletedDetails{}
	case ActionUpdatedDocument:
		details = &DocumentUpdatedDetails{}
	case ActionChangedProjectSharing:
		details = &ProjectSharingChangedDetails{}
	default:
		return nil, fmt.Errorf("unknown activity action %q", action)
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, details); err != nil {
			return nil, fmt.Errorf("failed to decode %s details: %w", action, err)
		}
	}

	return details, nil
}
