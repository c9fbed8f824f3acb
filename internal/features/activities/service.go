package activities

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SH20RAJ/sketchflow-sub001/internal/features/permissions"
	users_dto "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/dto"
	users_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/models"

	"github.com/google/uuid"
)

const RecentActivitiesLimit = 50

type ActivityStore interface {
	CreateActivity(ctx context.Context, activity *CollaborationActivity) error
	GetRecentProjectActivities(ctx context.Context, projectID uuid.UUID, limit int) ([]*ActivityRow, error)
}

type ActivityService struct {
	activityStore  ActivityStore
	accessResolver permissions.AccessResolver
	logger         *slog.Logger
}

func NewActivityService(
	activityStore ActivityStore,
	accessResolver permissions.AccessResolver,
	logger *slog.Logger,
) *ActivityService {
	return &ActivityService{
		activityStore:  activityStore,
		accessResolver: accessResolver,
		logger:         logger,
	}
}

// Append records an activity. Callers pass the ctx of their transaction so
// the activity commits or rolls back together with the state change.
func (s *ActivityService) Append(
	ctx context.Context,
	projectID uuid.UUID,
	actorID uuid.UUID,
	details ActivityDetails,
) error {
	activity, err := NewActivity(projectID, actorID, details)
	if err != nil {
		return err
	}

	if err := s.activityStore.CreateActivity(ctx, activity); err != nil {
		return fmt.Errorf("failed to write %s activity: %w", activity.Action, err)
	}

	return nil
}

func (s *ActivityService) GetRecent(
	ctx context.Context,
	projectID uuid.UUID,
	requester *users_models.User,
) ([]*ActivityDTO, error) {
	access, err := s.accessResolver.ResolveAccess(ctx, projectID, requester.ID)
	if err != nil {
		return nil, err
	}

	if err := access.RequireRead(); err != nil {
		return nil, err
	}

	rows, err := s.activityStore.GetRecentProjectActivities(ctx, projectID, RecentActivitiesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get activities: %w", err)
	}

	result := make([]*ActivityDTO, 0, len(rows))
	for _, row := range rows {
		details, err := DecodeDetails(row.Action, row.Details)
		if err != nil {
			s.logger.Warn("skipping undecodable activity",
				slog.String("activityId", row.ID.String()),
				slog.String("error", err.Error()))
			continue
		}

		result = append(result, &ActivityDTO{
			ID:        row.ID,
			ProjectID: row.ProjectID,
			Action:    row.Action,
			Details:   details,
			CreatedAt: row.CreatedAt,
			User: users_dto.PublicProfileDTO{
				ID:    row.UserID,
				Name:  row.UserName,
				Email: row.UserEmail,
				Image: row.UserImage,
			},
		})
	}

	return result, nil
}
