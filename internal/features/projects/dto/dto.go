package projects_dto

import (
	"time"

	collaborators_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/enums"
	projects_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/enums"
	projects_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/models"

	"github.com/google/uuid"
)

// Project DTOs
type CreateProjectRequestDTO struct {
	Name        string `json:"name"        binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=2000"`
	Shared      bool   `json:"shared"`
}

type UpdateProjectRequestDTO struct {
	Name        *string `json:"name"        binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Shared      *bool   `json:"shared"`
}

type ProjectResponseDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Shared      bool      `json:"shared"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Caller's role in the project, empty for public access to a shared project
	Role    collaborators_enums.CollaboratorRole `json:"role,omitempty"`
	IsOwner bool                                 `json:"isOwner"`
}

func ToProjectResponse(
	project *projects_models.Project,
	role collaborators_enums.CollaboratorRole,
) *ProjectResponseDTO {
	return &ProjectResponseDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
		Shared:      project.Shared,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
		Role:        role,
		IsOwner:     role == collaborators_enums.CollaboratorRoleOwner,
	}
}

type ListProjectsResponseDTO struct {
	Projects []*ProjectResponseDTO `json:"projects"`
}

// Tag DTOs
type CreateTagRequestDTO struct {
	Name  string `json:"name"  binding:"required"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

type UpdateTagRequestDTO struct {
	Name  *string `json:"name"`
	Emoji *string `json:"emoji"`
	Color *string `json:"color"`
}

type TagResponseDTO struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	Emoji      string      `json:"emoji"`
	Color      string      `json:"color"`
	CreatedAt  time.Time   `json:"createdAt"`
	ProjectIDs []uuid.UUID `json:"projectIds"`
}

func ToTagResponse(tag *projects_models.ProjectTag, projectIDs []uuid.UUID) *TagResponseDTO {
	if projectIDs == nil {
		projectIDs = []uuid.UUID{}
	}

	return &TagResponseDTO{
		ID:         tag.ID,
		Name:       tag.Name,
		Emoji:      tag.Emoji,
		Color:      tag.Color,
		CreatedAt:  tag.CreatedAt,
		ProjectIDs: projectIDs,
	}
}

type ListTagsResponseDTO struct {
	Tags []*TagResponseDTO `json:"tags"`
}

// Document DTOs
type UpdateDocumentRequestDTO struct {
	Content string `json:"content"`
}

type DocumentResponseDTO struct {
	ProjectID uuid.UUID                   `json:"projectId"`
	Kind      projects_enums.DocumentKind `json:"kind"`
	Content   string                      `json:"content"`
	UpdatedBy *uuid.UUID                  `json:"updatedBy"`
	UpdatedAt *time.Time                  `json:"updatedAt"`
}
