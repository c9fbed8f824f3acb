package comments_controllers

import (
	"log/slog"
	"net/http"

	"github.com/SH20RAJ/sketchflow-sub001/internal/apperrors"
	comments_dto "github.com/SH20RAJ/sketchflow-sub001/internal/features/comments/dto"
	comments_services "github.com/SH20RAJ/sketchflow-sub001/internal/features/comments/services"
	users_middleware "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CommentController struct {
	commentService *comments_services.CommentService
	logger         *slog.Logger
}

func (c *CommentController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/projects/:projectId/comments", c.ListComments)
	router.POST("/projects/:projectId/comments", c.CreateComment)
	router.PATCH("/projects/:projectId/comments/:commentId", c.UpdateComment)
	router.DELETE("/projects/:projectId/comments/:commentId", c.DeleteComment)
}

// ListComments
// @Summary List project comments
// @Description Top-level comments newest first, each with its replies oldest first
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Success 200 {object} comments_dto.ListCommentsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/comments [get]
func (c *CommentController) ListComments(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("projectId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	response, err := c.commentService.List(ctx.Request.Context(), projectID, user)
	if err != nil {
		apperrors.RespondWithError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// CreateComment
// @Summary Add a comment or a reply
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param request body comments_dto.CreateCommentRequestDTO true "Comment data"
// @Success 200 {object} comments_dto.CommentResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /projects/{projectId}/comments [post]
func (c *CommentController) CreateComment(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("projectId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	var request comments_dto.CreateCommentRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.commentService.Create(ctx.Request.Context(), projectID, user, &request)
	if err != nil {
		apperrors.RespondWithError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateComment
// @Summary Edit or resolve a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param commentId path string true "Comment ID"
// @Param request body comments_dto.UpdateCommentRequestDTO true "Fields to change"
// @Success 200 {object} comments_dto.CommentResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/comments/{commentId} [patch]
func (c *CommentController) UpdateComment(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("projectId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	commentID, err := uuid.Parse(ctx.Param("commentId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	var request comments_dto.UpdateCommentRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.commentService.Update(ctx.Request.Context(), projectID, commentID, user, &request)
	if err != nil {
		apperrors.RespondWithError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// DeleteComment
// @Summary Delete a comment and its replies
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param commentId path string true "Comment ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/comments/{commentId} [delete]
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("projectId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	commentID, err := uuid.Parse(ctx.Param("commentId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	if err := c.commentService.Delete(ctx.Request.Context(), projectID, commentID, user); err != nil {
		apperrors.RespondWithError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
