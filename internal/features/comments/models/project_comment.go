package comments_models

import (
	"time"

	"github.com/google/uuid"
)

type CommentPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ProjectComment struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id;primaryKey"`
	ProjectID uuid.UUID `json:"projectId" gorm:"column:project_id"`
	UserID    uuid.UUID `json:"userId"    gorm:"column:user_id"`
	Content   string    `json:"content"   gorm:"column:content"`
	// ElementID anchors the comment to a diagram element
	ElementID *string          `json:"elementId" gorm:"column:element_id"`
	Position  *CommentPosition `json:"position"  gorm:"column:position;type:jsonb;serializer:json"`
	ParentID  *uuid.UUID       `json:"parentId"  gorm:"column:parent_id"`
	Resolved  bool             `json:"resolved"  gorm:"column:resolved"`
	CreatedAt time.Time        `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time        `json:"updatedAt" gorm:"column:updated_at"`
}

func (ProjectComment) TableName() string {
	return "project_comments"
}

func (c *ProjectComment) IsReply() bool {
	return c.ParentID != nil
}

// CommentUpdate lists the columns an update writes, nil fields stay untouched
type CommentUpdate struct {
	Content   *string
	Resolved  *bool
	UpdatedAt time.Time
}
