package comments_services

import (
	"github.com/SH20RAJ/sketchflow-sub001/internal/features/activities"
	comments_repositories "github.com/SH20RAJ/sketchflow-sub001/internal/features/comments/repositories"
	"github.com/SH20RAJ/sketchflow-sub001/internal/features/permissions"
	users_services "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/services"
	"github.com/SH20RAJ/sketchflow-sub001/internal/storage"
	"github.com/SH20RAJ/sketchflow-sub001/internal/util/logger"
	"github.com/SH20RAJ/sketchflow-sub001/internal/util/rate_limit"
)

var commentService = &CommentService{
	commentRepository: &comments_repositories.CommentRepository{},
	userRepository:    users_services.GetUserRepository(),
	accessResolver:    permissions.GetPermissionService(),
	activityWriter:    activities.GetActivityService(),
	transactor:        &storage.GormTransactor{},
	rateLimiter:       rate_limit.NewRateLimiter(),
	logger:            logger.GetLogger(),
}

func GetCommentService() *CommentService {
	return commentService
}
