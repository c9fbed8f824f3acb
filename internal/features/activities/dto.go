package activities

import (
	"time"

	users_dto "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/dto"

	"github.com/google/uuid"
)

// ActivityRow is an activity joined with its actor
type ActivityRow struct {
	ID        uuid.UUID      `gorm:"column:id"`
	ProjectID uuid.UUID      `gorm:"column:project_id"`
	UserID    uuid.UUID      `gorm:"column:user_id"`
	Action    ActivityAction `gorm:"column:action"`
	Details   RawDetails     `gorm:"column:details"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UserName  string         `gorm:"column:user_name"`
	UserEmail string         `gorm:"column:user_email"`
	UserImage *string        `gorm:"column:user_image"`
}

type ActivityDTO struct {
	ID        uuid.UUID                  `json:"id"`
	ProjectID uuid.UUID                  `json:"projectId"`
	Action    ActivityAction             `json:"action"`
	Details   ActivityDetails            `json:"details"`
	CreatedAt time.Time                  `json:"createdAt"`
	User      users_dto.PublicProfileDTO `json:"user"`
}

type GetActivitiesResponseDTO struct {
	Activities []*ActivityDTO `json:"activities"`
}
