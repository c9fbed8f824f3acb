package projects_models

import (
	"time"

	projects_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/enums"

	"github.com/google/uuid"
)

// ProjectDocument holds the diagram scene or the markdown body of a project.
// Content is opaque to the backend.
type ProjectDocument struct {
	ProjectID uuid.UUID                   `json:"projectId" gorm:"column:project_id;primaryKey"`
	Kind      projects_enums.DocumentKind `json:"kind"      gorm:"column:kind;primaryKey"`
	Content   string                      `json:"content"   gorm:"column:content"`
	UpdatedBy *uuid.UUID                  `json:"updatedBy" gorm:"column:updated_by"`
	UpdatedAt time.Time                   `json:"updatedAt" gorm:"column:updated_at"`
}

func (ProjectDocument) TableName() string {
	return "project_documents"
}
