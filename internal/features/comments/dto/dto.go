package comments_dto

import (
	"time"

	comments_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/comments/models"
	users_dto "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/dto"

	"github.com/google/uuid"
)

type CreateCommentRequestDTO struct {
	Content   string                           `json:"content"`
	ElementID *string                          `json:"elementId"`
	Position  *comments_models.CommentPosition `json:"position"`
	ParentID  *uuid.UUID                       `json:"parentId"`
}

// UpdateCommentRequestDTO changes only the fields that are present
type UpdateCommentRequestDTO struct {
	Content  *string `json:"content"`
	Resolved *bool   `json:"resolved"`
}

type CommentResponseDTO struct {
	ID        uuid.UUID                        `json:"id"`
	ProjectID uuid.UUID                        `json:"projectId"`
	UserID    uuid.UUID                        `json:"userId"`
	Content   string                           `json:"content"`
	ElementID *string                          `json:"elementId"`
	Position  *comments_models.CommentPosition `json:"position"`
	ParentID  *uuid.UUID                       `json:"parentId"`
	Resolved  bool                             `json:"resolved"`
	CreatedAt time.Time                        `json:"createdAt"`
	UpdatedAt time.Time                        `json:"updatedAt"`
	User      *users_dto.PublicProfileDTO      `json:"user"`
	Replies   []*CommentResponseDTO            `json:"replies"`
}

func ToCommentResponse(
	comment *comments_models.ProjectComment,
	author *users_dto.PublicProfileDTO,
) *CommentResponseDTO {
	return &CommentResponseDTO{
		ID:        comment.ID,
		ProjectID: comment.ProjectID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		ElementID: comment.ElementID,
		Position:  comment.Position,
		ParentID:  comment.ParentID,
		Resolved:  comment.Resolved,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		User:      author,
		Replies:   []*CommentResponseDTO{},
	}
}

type ListCommentsResponseDTO struct {
	Comments []*CommentResponseDTO `json:"comments"`
}
