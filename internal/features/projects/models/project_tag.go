package projects_models

import (
	"time"

	"github.com/google/uuid"
)

type ProjectTag struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id;primaryKey"`
	UserID    uuid.UUID `json:"userId"    gorm:"column:user_id"`
	Name      string    `json:"name"      gorm:"column:name"`
	Emoji     string    `json:"emoji"     gorm:"column:emoji"`
	Color     string    `json:"color"     gorm:"column:color"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (ProjectTag) TableName() string {
	return "project_tags"
}

type ProjectTagLink struct {
	ProjectID uuid.UUID `gorm:"column:project_id;primaryKey"`
	TagID     uuid.UUID `gorm:"column:tag_id;primaryKey"`
}

func (ProjectTagLink) TableName() string {
	return "project_tag_links"
}
