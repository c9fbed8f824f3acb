package users_services_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/SH20RAJ/sketchflow-sub001/internal/apperrors"
	users_dto "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/dto"
	users_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/enums"
	users_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/models"
	users_services "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/services"
	"github.com/SH20RAJ/sketchflow-sub001/internal/storage/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService() (*users_services.UserService, *memstore.Store) {
	store := memstore.New()
	return users_services.NewUserService(store, "secret", slog.Default()), store
}

func Test_SignUp_NormalizesEmailAndHashesPassword(t *testing.T) {
	service, _ := newTestUserService()

	user, err := service.SignUp(context.Background(), &users_dto.SignUpRequestDTO{
		Email:    "  Bob@Example.COM ",
		Name:     " Bob ",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, "bob@example.com", user.Email)
	assert.Equal(t, "Bob", user.Name)
	assert.Equal(t, users_enums.UserStatusActive, user.Status)
	require.True(t, user.HasPassword())
	assert.NotEqual(t, "password123", *user.HashedPassword)
}

func Test_SignUp_WhenEmailTaken_ReturnsConflict(t *testing.T) {
	service, _ := newTestUserService()
	ctx := context.Background()
	request := &users_dto.SignUpRequestDTO{Email: "bob@example.com", Name: "Bob", Password: "password123"}

	_, err := service.SignUp(ctx, request)
	require.NoError(t, err)

	request.Email = "BOB@example.com"
	_, err = service.SignUp(ctx, request)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func Test_SignIn_ThenGetUserFromToken_ReturnsSameUser(t *testing.T) {
	service, _ := newTestUserService()
	ctx := context.Background()

	created, err := service.SignUp(ctx, &users_dto.SignUpRequestDTO{
		Email:    "bob@example.com",
		Name:     "Bob",
		Password: "password123",
	})
	require.NoError(t, err)

	response, err := service.SignIn(ctx, &users_dto.SignInRequestDTO{Email: "Bob@example.com", Password: "password123"})
	require.NoError(t, err)

	user, err := service.GetUserFromToken(ctx, response.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func Test_SignIn_WithWrongPassword_ReturnsBadRequest(t *testing.T) {
	service, _ := newTestUserService()
	ctx := context.Background()

	_, err := service.SignUp(ctx, &users_dto.SignUpRequestDTO{
		Email:    "bob@example.com",
		Name:     "Bob",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = service.SignIn(ctx, &users_dto.SignInRequestDTO{Email: "bob@example.com", Password: "password124"})
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
}

func Test_GetUserFromToken_WithTokenFromOtherSecret_Fails(t *testing.T) {
	service, store := newTestUserService()
	ctx := context.Background()

	user := &users_models.User{
		ID:                   uuid.New(),
		Email:                "bob@example.com",
		Status:               users_enums.UserStatusActive,
		PasswordCreationTime: time.Now().UTC(),
	}
	require.NoError(t, store.CreateUser(ctx, user))

	otherService := users_services.NewUserService(store, "other-secret", slog.Default())
	response, err := otherService.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = service.GetUserFromToken(ctx, response.Token)
	assert.Error(t, err)
}

func Test_GetUserFromToken_WhenUserDeactivated_Fails(t *testing.T) {
	service, store := newTestUserService()
	ctx := context.Background()

	user := &users_models.User{
		ID:                   uuid.New(),
		Email:                "bob@example.com",
		Status:               users_enums.UserStatusInactive,
		PasswordCreationTime: time.Now().UTC(),
	}
	require.NoError(t, store.CreateUser(ctx, user))

	response, err := service.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = service.GetUserFromToken(ctx, response.Token)
	assert.Error(t, err)
}
