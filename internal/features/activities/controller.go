package activities

import (
	"log/slog"
	"net/http"

	"github.com/SH20RAJ/sketchflow-sub001/internal/apperrors"
	users_middleware "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ActivityController struct {
	activityService *ActivityService
	logger          *slog.Logger
}

func (c *ActivityController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/projects/:projectId/activities", c.GetProjectActivities)
}

// GetProjectActivities
// @Summary Get recent project activities
// @Description Returns the 50 most recent collaboration events of a project, newest first
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Success 200 {object} GetActivitiesResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/activities [get]
func (c *ActivityController) GetProjectActivities(ctx *gin.Context) {
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

	activities, err := c.activityService.GetRecent(ctx.Request.Context(), projectID, user)
	if err != nil {
		apperrors.RespondWithError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, GetActivitiesResponseDTO{Activities: activities})
}
