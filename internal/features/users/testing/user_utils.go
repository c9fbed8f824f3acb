package users_testing

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	users_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/enums"
	users_interfaces "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/interfaces"
	users_middleware "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/middleware"
	users_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/models"
	users_services "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const TestJwtSecret = "test-jwt-secret"

type ControllerInterface interface {
	RegisterRoutes(router *gin.RouterGroup)
}

type TestUser struct {
	User  *users_models.User
	Token string
}

func (u *TestUser) AuthHeader() string {
	return "Bearer " + u.Token
}

func NewTestUserService(userRepository users_interfaces.UserRepository) *users_services.UserService {
	return users_services.NewUserService(userRepository, TestJwtSecret, slog.Default())
}

// CreateTestRouter mounts the controllers under /api/v1 behind the auth middleware
func CreateTestRouter(userService *users_services.UserService, controllers ...ControllerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	protected := router.Group("/api/v1")
	protected.Use(users_middleware.AuthMiddleware(userService))

	for _, controller := range controllers {
		controller.RegisterRoutes(protected)
	}

	return router
}

func CreateTestUser(
	t *testing.T,
	userRepository users_interfaces.UserRepository,
	userService *users_services.UserService,
) *TestUser {
	t.Helper()

	userID := uuid.New()
	hashedPassword := "$2a$10$test"
	now := time.Now().UTC()

	user := &users_models.User{
		ID:                   userID,
		Email:                fmt.Sprintf("user-%s@test.com", userID.String()[:8]),
		Name:                 "Test User " + userID.String()[:8],
		HashedPassword:       &hashedPassword,
		PasswordCreationTime: now,
		Status:               users_enums.UserStatusActive,
		CreatedAt:            now,
	}

	require.NoError(t, userRepository.CreateUser(context.Background(), user))

	response, err := userService.GenerateAccessToken(user)
	require.NoError(t, err)

	return &TestUser{User: user, Token: response.Token}
}
