package activities

import (
	"context"

	"github.com/SH20RAJ/sketchflow-sub001/internal/storage"

	"github.com/google/uuid"
)

type ActivityRepository struct{}

func (r *ActivityRepository) CreateActivity(ctx context.Context, activity *CollaborationActivity) error {
	if activity.ID == uuid.Nil {
		activity.ID = uuid.Must(uuid.NewV7())
	}

	return storage.FromContext(ctx).Create(activity).Error
}

func (r *ActivityRepository) GetRecentProjectActivities(
	ctx context.Context,
	projectID uuid.UUID,
	limit int,
) ([]*ActivityRow, error) {
	var rows = make([]*ActivityRow, 0)

	sql := `
		SELECT
			a.id,
			a.project_id,
			a.user_id,
			a.action,
			a.details,
			a.created_at,
			u.name as user_name,
			u.email as user_email,
			u.image as user_image
		FROM collaboration_activities a
		JOIN users u ON a.user_id = u.id
		WHERE a.project_id = ?
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT ?`

	err := storage.FromContext(ctx).Raw(sql, projectID, limit).Scan(&rows).Error

	return rows, err
}
