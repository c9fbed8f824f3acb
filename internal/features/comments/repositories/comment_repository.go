package comments_repositories

import (
	"context"

	comments_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/comments/models"
	"github.com/SH20RAJ/sketchflow-sub001/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type CommentRepository struct{}

func (r *CommentRepository) CreateComment(ctx context.Context, comment *comments_models.ProjectComment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}

	return storage.FromContext(ctx).Create(comment).Error
}

func (r *CommentRepository) GetCommentByID(
	ctx context.Context,
	commentID uuid.UUID,
) (*comments_models.ProjectComment, error) {
	var comment comments_models.ProjectComment

	if err := storage.FromContext(ctx).Where("id = ?", commentID).First(&comment).Error; err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	return &comment, nil
}

// GetProjectComments returns top-level comments and replies together, oldest first
func (r *CommentRepository) GetProjectComments(
	ctx context.Context,
	projectID uuid.UUID,
) ([]*comments_models.ProjectComment, error) {
	var comments = make([]*comments_models.ProjectComment, 0)

	err := storage.FromContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error

	return comments, err
}

// GetCommentForUpdate locks the row until the surrounding transaction ends
func (r *CommentRepository) GetCommentForUpdate(
	ctx context.Context,
	commentID uuid.UUID,
) (*comments_models.ProjectComment, error) {
	var comment comments_models.ProjectComment

	err := storage.FromContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", commentID).
		First(&comment).Error
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	return &comment, nil
}

// UpdateComment writes only the fields set in update and reports whether
// the comment still existed
func (r *CommentRepository) UpdateComment(
	ctx context.Context,
	commentID uuid.UUID,
	update *comments_models.CommentUpdate,
) (bool, error) {
	columns := map[string]any{"updated_at": update.UpdatedAt}
	if update.Content != nil {
		columns["content"] = *update.Content
	}
	if update.Resolved != nil {
		columns["resolved"] = *update.Resolved
	}

	result := storage.FromContext(ctx).
		Model(&comments_models.ProjectComment{}).
		Where("id = ?", commentID).
		Updates(columns)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// DeleteCommentWithReplies deletes the comment and its replies, returning
// how many replies were removed
func (r *CommentRepository) DeleteCommentWithReplies(ctx context.Context, commentID uuid.UUID) (int64, error) {
	db := storage.FromContext(ctx)

	replies := db.Where("parent_id = ?", commentID).Delete(&comments_models.ProjectComment{})
	if replies.Error != nil {
		return 0, replies.Error
	}

	if err := db.Where("id = ?", commentID).Delete(&comments_models.ProjectComment{}).Error; err != nil {
		return 0, err
	}

	return replies.RowsAffected, nil
}
