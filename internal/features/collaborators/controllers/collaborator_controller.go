package collaborators_controllers

import (
	"log/slog"
	"net/http"

	"github.com/SH20RAJ/sketchflow-sub001/internal/apperrors"
	collaborators_dto "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/dto"
	collaborators_services "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/services"
	users_middleware "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CollaboratorController struct {
	collaboratorService *collaborators_services.CollaboratorService
	logger              *slog.Logger
}

func (c *CollaboratorController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/projects/:projectId/collaborators", c.ListCollaborators)
	router.POST("/projects/:projectId/collaborators", c.InviteCollaborator)
	router.PATCH("/projects/:projectId/collaborators/:userId", c.UpdateCollaboratorRole)
	router.DELETE("/projects/:projectId/collaborators/:userId", c.RemoveCollaborator)

	router.GET("/collaborations/invitations", c.ListInvitations)
	router.PATCH("/collaborations/invitations/:projectId", c.RespondToInvitation)
}

// ListCollaborators
// @Summary List project collaborators
// @Description Returns the owner followed by every collaborator of the project
// @Tags collaborators
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Success 200 {object} collaborators_dto.ListCollaboratorsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/collaborators [get]
func (c *CollaboratorController) ListCollaborators(ctx *gin.Context) {
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

	response, err := c.collaboratorService.List(ctx.Request.Context(), projectID, user)
	if err != nil {
		apperrors.RespondWithError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// InviteCollaborator
// @Summary Invite a collaborator
// @Description Invites an existing user to the project. Only the owner can invite.
// @Tags collaborators
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param request body collaborators_dto.InviteCollaboratorRequestDTO true "Invitation data"
// @Success 200 {object} collaborators_dto.CollaboratorResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /projects/{projectId}/collaborators [post]
func (c *CollaboratorController) InviteCollaborator(ctx *gin.Context) {
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

	var request collaborators_dto.InviteCollaboratorRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.collaboratorService.Invite(ctx.Request.Context(), projectID, user, &request)
	if err != nil {
		apperrors.RespondWithError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateCollaboratorRole
// @Summary Change a collaborator role
// @Tags collaborators
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param userId path string true "Collaborator user ID"
// @Param request body collaborators_dto.UpdateCollaboratorRoleRequestDTO true "New role"
// @Success 200 {object} collaborators_dto.CollaboratorResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/collaborators/{userId} [patch]
func (c *CollaboratorController) UpdateCollaboratorRole(ctx *gin.Context) {
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

	targetUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var request collaborators_dto.UpdateCollaboratorRoleRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.collaboratorService.UpdateRole(
		ctx.Request.Context(),
		projectID,
		user,
		targetUserID,
		&request,
	)
	if err != nil {
		apperrors.RespondWithError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// RemoveCollaborator
// @Summary Remove a collaborator or leave a project
// @Description The owner can remove anyone, a collaborator can remove themselves
// @Tags collaborators
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param userId path string true "Collaborator user ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/collaborators/{userId} [delete]
func (c *CollaboratorController) RemoveCollaborator(ctx *gin.Context) {
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

	targetUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := c.collaboratorService.Remove(ctx.Request.Context(), projectID, user, targetUserID); err != nil {
		apperrors.RespondWithError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// ListInvitations
// @Summary List pending invitations of the current user
// @Tags collaborators
// @Produce json
// @Security BearerAuth
// @Success 200 {object} collaborators_dto.ListInvitationsResponseDTO
// @Failure 401 {object} map[string]string
// @Router /collaborations/invitations [get]
func (c *CollaboratorController) ListInvitations(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	response, err := c.collaboratorService.ListPendingInvitations(ctx.Request.Context(), user)
	if err != nil {
		apperrors.RespondWithError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// RespondToInvitation
// @Summary Accept or reject an invitation
// @Tags collaborators
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param request body collaborators_dto.RespondToInvitationRequestDTO true "ACCEPTED or REJECTED"
// @Success 200 {object} collaborators_dto.RespondToInvitationResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /collaborations/invitations/{projectId} [patch]
func (c *CollaboratorController) RespondToInvitation(ctx *gin.Context) {
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

	var request collaborators_dto.RespondToInvitationRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.collaboratorService.RespondToInvite(ctx.Request.Context(), projectID, user, &request)
	if err != nil {
		apperrors.RespondWithError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
