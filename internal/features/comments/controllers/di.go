package comments_controllers

import (
	comments_services "github.com/SH20RAJ/sketchflow-sub001/internal/features/comments/services"
	"github.com/SH20RAJ/sketchflow-sub001/internal/util/logger"
)

var commentController = &CommentController{
	commentService: comments_services.GetCommentService(),
	logger:         logger.GetLogger(),
}

func GetCommentController() *CommentController {
	return commentController
}

func NewCommentController(commentService *comments_services.CommentService) *CommentController {
	return &CommentController{
		commentService: commentService,
		logger:         logger.GetLogger(),
	}
}
