package comments_interfaces

import (
	"context"

	"github.com/SH20RAJ/sketchflow-sub001/internal/features/activities"
	comments_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/comments/models"
	"github.com/SH20RAJ/sketchflow-sub001/internal/util/rate_limit"

	"github.com/google/uuid"
)

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *comments_models.ProjectComment) error
	GetCommentByID(ctx context.Context, commentID uuid.UUID) (*comments_models.ProjectComment, error)
	GetProjectComments(ctx context.Context, projectID uuid.UUID) ([]*comments_models.ProjectComment, error)
	GetCommentForUpdate(ctx context.Context, commentID uuid.UUID) (*comments_models.ProjectComment, error)
	UpdateComment(ctx context.Context, commentID uuid.UUID, update *comments_models.CommentUpdate) (bool, error)
	DeleteCommentWithReplies(ctx context.Context, commentID uuid.UUID) (int64, error)
}

type ActivityWriter interface {
	Append(ctx context.Context, projectID uuid.UUID, actorID uuid.UUID, details activities.ActivityDetails) error
}

type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit rate_limit.Limit) (*rate_limit.RateLimitResult, error)
}
