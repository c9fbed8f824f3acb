package projects_controllers

import (
	"log/slog"
	"net/http"

	"github.com/SH20RAJ/sketchflow-sub001/internal/apperrors"
	projects_dto "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/dto"
	projects_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/enums"
	projects_services "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/services"
	users_middleware "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DocumentController struct {
	documentService *projects_services.DocumentService
	logger          *slog.Logger
}

func (c *DocumentController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/projects/:projectId/documents/:kind", c.GetDocument)
	router.PUT("/projects/:projectId/documents/:kind", c.SaveDocument)
}

// GetDocument
// @Summary Get the diagram or markdown document of a project
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param kind path string true "diagram or markdown"
// @Success 200 {object} projects_dto.DocumentResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/documents/{kind} [get]
func (c *DocumentController) GetDocument(ctx *gin.Context) {
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

	kind, ok := projects_enums.ParseDocumentKind(ctx.Param("kind"))
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document kind"})
		return
	}

	response, err := c.documentService.GetDocument(ctx.Request.Context(), projectID, kind, user)
	if err != nil {
		apperrors.RespondWithError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// SaveDocument
// @Summary Replace the diagram or markdown document of a project
// @Description Requires the owner or an accepted editor
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param kind path string true "diagram or markdown"
// @Param request body projects_dto.UpdateDocumentRequestDTO true "Document content"
// @Success 200 {object} projects_dto.DocumentResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/documents/{kind} [put]
func (c *DocumentController) SaveDocument(ctx *gin.Context) {
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

	kind, ok := projects_enums.ParseDocumentKind(ctx.Param("kind"))
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document kind"})
		return
	}

	var request projects_dto.UpdateDocumentRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.documentService.SaveDocument(ctx.Request.Context(), projectID, kind, &request, user)
	if err != nil {
		apperrors.RespondWithError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
