package projects_controllers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SH20RAJ/sketchflow-sub001/internal/apperrors"
	projects_dto "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/dto"
	projects_services "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/services"
	users_middleware "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/middleware"
	users_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TagController struct {
	tagService *projects_services.TagService
	logger     *slog.Logger
}

func (c *TagController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/tags", c.GetTags)
	router.POST("/tags", c.CreateTag)
	router.PATCH("/tags/:tagId", c.UpdateTag)
	router.DELETE("/tags/:tagId", c.DeleteTag)

	router.PUT("/projects/:projectId/tags/:tagId", c.AttachTag)
	router.DELETE("/projects/:projectId/tags/:tagId", c.DetachTag)
}

// GetTags
// @Summary List the user's tags
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Success 200 {object} projects_dto.ListTagsResponseDTO
// @Failure 401 {object} map[string]string
// @Router /tags [get]
func (c *TagController) GetTags(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	response, err := c.tagService.GetUserTags(ctx.Request.Context(), user)
	if err != nil {
		apperrors.RespondWithError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// CreateTag
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body projects_dto.CreateTagRequestDTO true "Tag data"
// @Success 200 {object} projects_dto.TagResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tags [post]
func (c *TagController) CreateTag(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var request projects_dto.CreateTagRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.tagService.CreateTag(ctx.Request.Context(), &request, user)
	if err != nil {
		apperrors.RespondWithError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateTag
// @Summary Update a tag
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tagId path string true "Tag ID"
// @Param request body projects_dto.UpdateTagRequestDTO true "Fields to change"
// @Success 200 {object} projects_dto.TagResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tags/{tagId} [patch]
func (c *TagController) UpdateTag(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tagID, err := uuid.Parse(ctx.Param("tagId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID"})
		return
	}

	var request projects_dto.UpdateTagRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.tagService.UpdateTag(ctx.Request.Context(), tagID, &request, user)
	if err != nil {
		apperrors.RespondWithError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// DeleteTag
// @Summary Delete a tag
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param tagId path string true "Tag ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tags/{tagId} [delete]
func (c *TagController) DeleteTag(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tagID, err := uuid.Parse(ctx.Param("tagId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID"})
		return
	}

	if err := c.tagService.DeleteTag(ctx.Request.Context(), tagID, user); err != nil {
		apperrors.RespondWithError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// AttachTag
// @Summary Tag a project
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param tagId path string true "Tag ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/tags/{tagId} [put]
func (c *TagController) AttachTag(ctx *gin.Context) {
	c.changeTagLink(ctx, c.tagService.AttachTag)
}

// DetachTag
// @Summary Remove a tag from a project
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param tagId path string true "Tag ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/tags/{tagId} [delete]
func (c *TagController) DetachTag(ctx *gin.Context) {
	c.changeTagLink(ctx, c.tagService.DetachTag)
}

func (c *TagController) changeTagLink(
	ctx *gin.Context,
	change func(ctx context.Context, projectID, tagID uuid.UUID, user *users_models.User) error,
) {
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

	tagID, err := uuid.Parse(ctx.Param("tagId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID"})
		return
	}

	if err := change(ctx.Request.Context(), projectID, tagID, user); err != nil {
		apperrors.RespondWithError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
