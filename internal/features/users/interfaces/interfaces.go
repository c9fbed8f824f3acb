package users_interfaces

import (
	"context"

	users_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/models"

	"github.com/google/uuid"
)

// UserRepository lookups return nil without error when the user is absent
type UserRepository interface {
	CreateUser(ctx context.Context, user *users_models.User) error
	GetUserByEmail(ctx context.Context, email string) (*users_models.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*users_models.User, error)
	GetUsersByIDs(ctx context.Context, userIDs []uuid.UUID) ([]*users_models.User, error)
}
