package activities

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ActivityAction string

const (
	ActionInvitedCollaborator     ActivityAction = "invited_collaborator"
	ActionAcceptedInvitation      ActivityAction = "accepted_invitation"
	ActionRejectedInvitation      ActivityAction = "rejected_invitation"
	ActionUpdatedCollaboratorRole ActivityAction = "updated_collaborator_role"
	ActionRemovedCollaborator     ActivityAction = "removed_collaborator"
	ActionLeftProject             ActivityAction = "left_project"
	ActionAddedComment            ActivityAction = "added_comment"
	ActionResolvedComment         ActivityAction = "resolved_comment"
	ActionDeletedComment          ActivityAction = "deleted_comment"
	ActionUpdatedDocument         ActivityAction = "updated_document"
	ActionChangedProjectSharing   ActivityAction = "changed_project_sharing"
)

// CollaborationActivity rows are append-only
type CollaborationActivity struct {
	ID        uuid.UUID      `json:"id"        gorm:"column:id;primaryKey"`
	ProjectID uuid.UUID      `json:"projectId" gorm:"column:project_id"`
	UserID    uuid.UUID      `json:"userId"    gorm:"column:user_id"`
	Action    ActivityAction `json:"action"    gorm:"column:action"`
	Details   RawDetails     `json:"details"   gorm:"column:details;type:jsonb"`
	CreatedAt time.Time      `json:"createdAt" gorm:"column:created_at"`
}

func (CollaborationActivity) TableName() string {
	return "collaboration_activities"
}

// RawDetails is the encoded JSONB payload of an activity
type RawDetails []byte

func (d RawDetails) Value() (driver.Value, error) {
	if len(d) == 0 {
		return "{}", nil
	}

	return string(d), nil
}

func (d *RawDetails) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = nil
	case []byte:
		*d = append((*d)[:0], v...)
	case string:
		*d = RawDetails(v)
	default:
		return fmt.Errorf("unsupported activity details type %T", value)
	}

	return nil
}

func (d RawDetails) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("{}"), nil
	}

	return d, nil
}
