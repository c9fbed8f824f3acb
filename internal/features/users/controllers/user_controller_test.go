package users_controllers

import (
	"net/http"
	"testing"

	users_dto "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/dto"
	users_middleware "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/middleware"
	users_testing "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/testing"
	"github.com/SH20RAJ/sketchflow-sub001/internal/storage/memstore"
	test_utils "github.com/SH20RAJ/sketchflow-sub001/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type userTestEnv struct {
	store      *memstore.Store
	controller *UserController
	router     *gin.Engine
}

func newUserTestEnv(limiter *rate.Limiter) *userTestEnv {
	store := memstore.New()
	userService := users_testing.NewTestUserService(store)

	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	controller := NewUserController(userService, limiter)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	v1 := router.Group("/api/v1")
	controller.RegisterRoutes(v1)

	protected := router.Group("/api/v1")
	protected.Use(users_middleware.AuthMiddleware(userService))
	controller.RegisterProtectedRoutes(protected)

	return &userTestEnv{store: store, controller: controller, router: router}
}

func signUpRequest() users_dto.SignUpRequestDTO {
	return users_dto.SignUpRequestDTO{
		Email:    "Alice@Example.com",
		Name:     "Alice",
		Password: "password123",
	}
}

func Test_SignUpUser_WithValidData_UserCreated(t *testing.T) {
	env := newUserTestEnv(nil)

	var response users_dto.UserProfileResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t, env.router, "/api/v1/users/signup", "", signUpRequest(), http.StatusOK, &response,
	)

	assert.Equal(t, "alice@example.com", response.Email)
	assert.Equal(t, "Alice", response.Name)
	assert.True(t, response.IsActive)
}

func Test_SignUpUser_WithInvalidJSON_ReturnsBadRequest(t *testing.T) {
	env := newUserTestEnv(nil)

	resp := test_utils.MakeRequest(t, env.router, test_utils.RequestOptions{
		Method:         "POST",
		URL:            "/api/v1/users/signup",
		Body:           "{invalid json",
		ExpectedStatus: http.StatusBadRequest,
	})

	assert.Contains(t, string(resp.Body), "Invalid request format")
}

func Test_SignUpUser_WithDuplicateEmail_ReturnsConflict(t *testing.T) {
	env := newUserTestEnv(nil)
	request := signUpRequest()

	test_utils.MakePostRequest(t, env.router, "/api/v1/users/signup", "", request, http.StatusOK)

	request.Email = "alice@EXAMPLE.com"
	resp := test_utils.MakePostRequest(t, env.router, "/api/v1/users/signup", "", request, http.StatusConflict)

	assert.Contains(t, string(resp.Body), "already exists")
}

func Test_SignUpUser_WithValidationErrors_ReturnsBadRequest(t *testing.T) {
	env := newUserTestEnv(nil)

	testCases := []struct {
		name    string
		request users_dto.SignUpRequestDTO
	}{
		{
			name:    "invalid email",
			request: users_dto.SignUpRequestDTO{Email: "not-an-email", Name: "Alice", Password: "password123"},
		},
		{
			name:    "short password",
			request: users_dto.SignUpRequestDTO{Email: "alice@example.com", Name: "Alice", Password: "short"},
		},
		{
			name:    "missing name",
			request: users_dto.SignUpRequestDTO{Email: "alice@example.com", Password: "password123"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			test_utils.MakePostRequest(t, env.router, "/api/v1/users/signup", "", tc.request, http.StatusBadRequest)
		})
	}
}

func Test_SignInUser_WithValidCredentials_ReturnsToken(t *testing.T) {
	env := newUserTestEnv(nil)
	test_utils.MakePostRequest(t, env.router, "/api/v1/users/signup", "", signUpRequest(), http.StatusOK)

	var response users_dto.SignInResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		env.router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: "alice@example.com", Password: "password123"},
		http.StatusOK,
		&response,
	)

	require.NotEmpty(t, response.Token)
	assert.Equal(t, "alice@example.com", response.Email)

	var profile users_dto.UserProfileResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, env.router, "/api/v1/users/me", "Bearer "+response.Token, http.StatusOK, &profile,
	)
	assert.Equal(t, response.UserID, profile.ID)
}

func Test_SignInUser_WithWrongPassword_ReturnsBadRequest(t *testing.T) {
	env := newUserTestEnv(nil)
	test_utils.MakePostRequest(t, env.router, "/api/v1/users/signup", "", signUpRequest(), http.StatusOK)

	resp := test_utils.MakePostRequest(
		t,
		env.router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: "alice@example.com", Password: "wrong-password"},
		http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), "password is incorrect")
}

func Test_SignInUser_WithNonExistentUser_ReturnsBadRequest(t *testing.T) {
	env := newUserTestEnv(nil)

	test_utils.MakePostRequest(
		t,
		env.router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: "nobody@example.com", Password: "password123"},
		http.StatusBadRequest,
	)
}

func Test_SignInUser_WhenLimiterExhausted_ReturnsTooManyRequests(t *testing.T) {
	env := newUserTestEnv(rate.NewLimiter(rate.Limit(0.001), 1))
	request := users_dto.SignInRequestDTO{Email: "nobody@example.com", Password: "password123"}

	test_utils.MakePostRequest(t, env.router, "/api/v1/users/signin", "", request, http.StatusBadRequest)
	test_utils.MakePostRequest(t, env.router, "/api/v1/users/signin", "", request, http.StatusTooManyRequests)
}

func Test_GetCurrentUser_WithoutAuth_ReturnsUnauthorized(t *testing.T) {
	env := newUserTestEnv(nil)

	resp := test_utils.MakeGetRequest(t, env.router, "/api/v1/users/me", "", http.StatusUnauthorized)
	assert.Contains(t, string(resp.Body), "Unauthorized")
}

func Test_GetCurrentUser_WithForeignToken_ReturnsUnauthorized(t *testing.T) {
	env := newUserTestEnv(nil)

	test_utils.MakeGetRequest(t, env.router, "/api/v1/users/me", "Bearer not-a-jwt", http.StatusUnauthorized)
}
