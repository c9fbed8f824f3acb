package projects_controllers

import (
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/SH20RAJ/sketchflow-sub001/internal/features/activities"
	collaborators_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/enums"
	"github.com/SH20RAJ/sketchflow-sub001/internal/features/permissions"
	projects_dto "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/dto"
	projects_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/enums"
	projects_services "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/services"
	projects_testing "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/testing"
	users_services "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/services"
	users_testing "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/testing"
	"github.com/SH20RAJ/sketchflow-sub001/internal/storage/memstore"
	test_utils "github.com/SH20RAJ/sketchflow-sub001/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type projectControllerEnv struct {
	store       *memstore.Store
	userService *users_services.UserService
	router      *gin.Engine
	owner       *users_testing.TestUser
}

func newProjectControllerEnv(t *testing.T) *projectControllerEnv {
	store := memstore.New()
	userService := users_testing.NewTestUserService(store)
	permissionService := permissions.NewPermissionService(store, store)
	activityService := activities.NewActivityService(store, permissionService, slog.Default())

	projectController := &ProjectController{
		projectService: projects_services.NewProjectService(
			store, store, permissionService, activityService, store, nil, slog.Default(),
		),
		logger: slog.Default(),
	}
	tagController := &TagController{
		tagService: projects_services.NewTagService(store, permissionService),
		logger:     slog.Default(),
	}
	documentController := &DocumentController{
		documentService: projects_services.NewDocumentService(store, permissionService, activityService, store),
		logger:          slog.Default(),
	}

	return &projectControllerEnv{
		store:       store,
		userService: userService,
		router:      users_testing.CreateTestRouter(userService, projectController, tagController, documentController),
		owner:       users_testing.CreateTestUser(t, store, userService),
	}
}

func (e *projectControllerEnv) createProject(t *testing.T, name string, shared bool) *projects_dto.ProjectResponseDTO {
	t.Helper()

	var response projects_dto.ProjectResponseDTO
	test_utils.MakePostRequestAndUnmarshal(t, e.router, "/api/v1/projects", e.owner.AuthHeader(),
		projects_dto.CreateProjectRequestDTO{Name: name, Shared: shared},
		http.StatusOK,
		&response,
	)

	return &response
}

func Test_CreateProject_WithValidData_ProjectCreated(t *testing.T) {
	env := newProjectControllerEnv(t)

	response := env.createProject(t, "Test Project", false)

	assert.Equal(t, "Test Project", response.Name)
	assert.NotEqual(t, uuid.Nil, response.ID)
	assert.Equal(t, collaborators_enums.CollaboratorRoleOwner, response.Role)
	assert.True(t, response.IsOwner)
}

func Test_CreateProject_WithoutName_ReturnsBadRequest(t *testing.T) {
	env := newProjectControllerEnv(t)

	resp := test_utils.MakePostRequest(t, env.router, "/api/v1/projects", env.owner.AuthHeader(),
		map[string]any{"description": "no name"},
		http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), "Invalid request format")
}

func Test_CreateProject_WithoutAuth_ReturnsUnauthorized(t *testing.T) {
	env := newProjectControllerEnv(t)

	test_utils.MakePostRequest(t, env.router, "/api/v1/projects", "",
		projects_dto.CreateProjectRequestDTO{Name: "Test Project"},
		http.StatusUnauthorized,
	)
}

func Test_GetProjects_ReturnsOnlyCallerProjects(t *testing.T) {
	env := newProjectControllerEnv(t)
	env.createProject(t, "mine", false)

	other := users_testing.CreateTestUser(t, env.store, env.userService)
	projects_testing.CreateTestProject(t, env.store, other.User.ID, true)

	var response projects_dto.ListProjectsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, env.router, "/api/v1/projects", env.owner.AuthHeader(), http.StatusOK, &response)

	require.Len(t, response.Projects, 1)
	assert.Equal(t, "mine", response.Projects[0].Name)
}

func Test_GetProject_SharedByStranger_ReturnsProjectWithoutRole(t *testing.T) {
	env := newProjectControllerEnv(t)
	project := env.createProject(t, "public board", true)
	stranger := users_testing.CreateTestUser(t, env.store, env.userService)

	var response projects_dto.ProjectResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, env.router,
		fmt.Sprintf("/api/v1/projects/%s", project.ID),
		stranger.AuthHeader(), http.StatusOK, &response)

	assert.Equal(t, project.ID, response.ID)
	assert.Empty(t, response.Role)
	assert.False(t, response.IsOwner)
}

func Test_GetProject_PrivateByStranger_ReturnsForbidden(t *testing.T) {
	env := newProjectControllerEnv(t)
	project := env.createProject(t, "private board", false)
	stranger := users_testing.CreateTestUser(t, env.store, env.userService)

	test_utils.MakeGetRequest(t, env.router,
		fmt.Sprintf("/api/v1/projects/%s", project.ID),
		stranger.AuthHeader(), http.StatusForbidden)
}

func Test_GetProject_WithInvalidID_ReturnsBadRequest(t *testing.T) {
	env := newProjectControllerEnv(t)

	resp := test_utils.MakeGetRequest(t, env.router, "/api/v1/projects/invalid", env.owner.AuthHeader(), http.StatusBadRequest)

	assert.Contains(t, string(resp.Body), "Invalid project ID")
}

func Test_UpdateProject_ByOwner_ProjectUpdated(t *testing.T) {
	env := newProjectControllerEnv(t)
	project := env.createProject(t, "before", false)
	name := "after"
	shared := true

	var response projects_dto.ProjectResponseDTO
	test_utils.MakePatchRequestAndUnmarshal(t, env.router,
		fmt.Sprintf("/api/v1/projects/%s", project.ID),
		env.owner.AuthHeader(),
		projects_dto.UpdateProjectRequestDTO{Name: &name, Shared: &shared},
		http.StatusOK,
		&response,
	)

	assert.Equal(t, "after", response.Name)
	assert.True(t, response.Shared)
}

func Test_DeleteProject_ByOwner_ProjectGone(t *testing.T) {
	env := newProjectControllerEnv(t)
	project := env.createProject(t, "doomed", false)
	url := fmt.Sprintf("/api/v1/projects/%s", project.ID)

	test_utils.MakeDeleteRequest(t, env.router, url, env.owner.AuthHeader(), http.StatusOK)
	test_utils.MakeGetRequest(t, env.router, url, env.owner.AuthHeader(), http.StatusNotFound)
}

func Test_Tags_CreateAttachListDelete(t *testing.T) {
	env := newProjectControllerEnv(t)
	project := env.createProject(t, "tagged", false)

	var tag projects_dto.TagResponseDTO
	test_utils.MakePostRequestAndUnmarshal(t, env.router, "/api/v1/tags", env.owner.AuthHeader(),
		projects_dto.CreateTagRequestDTO{Name: "Work", Color: "#112233"},
		http.StatusOK,
		&tag,
	)

	test_utils.MakePostRequest(t, env.router, "/api/v1/tags", env.owner.AuthHeader(),
		projects_dto.CreateTagRequestDTO{Name: "WORK"},
		http.StatusConflict,
	)

	linkURL := fmt.Sprintf("/api/v1/projects/%s/tags/%s", project.ID, tag.ID)
	test_utils.MakePutRequest(t, env.router, linkURL, env.owner.AuthHeader(), nil, http.StatusOK)

	var tags projects_dto.ListTagsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, env.router, "/api/v1/tags", env.owner.AuthHeader(), http.StatusOK, &tags)
	require.Len(t, tags.Tags, 1)
	assert.Equal(t, []uuid.UUID{project.ID}, tags.Tags[0].ProjectIDs)

	test_utils.MakeDeleteRequest(t, env.router, linkURL, env.owner.AuthHeader(), http.StatusOK)
	test_utils.MakeDeleteRequest(t, env.router, fmt.Sprintf("/api/v1/tags/%s", tag.ID), env.owner.AuthHeader(), http.StatusOK)

	test_utils.MakeGetRequestAndUnmarshal(t, env.router, "/api/v1/tags", env.owner.AuthHeader(), http.StatusOK, &tags)
	assert.Empty(t, tags.Tags)
}

func Test_UpdateTag_WithInvalidID_ReturnsBadRequest(t *testing.T) {
	env := newProjectControllerEnv(t)
	name := "x"

	resp := test_utils.MakePatchRequest(t, env.router, "/api/v1/tags/nope", env.owner.AuthHeader(),
		projects_dto.UpdateTagRequestDTO{Name: &name},
		http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), "Invalid tag ID")
}

func Test_Documents_SaveAndLoadByKindInAnyCase(t *testing.T) {
	env := newProjectControllerEnv(t)
	project := env.createProject(t, "docs", false)
	url := fmt.Sprintf("/api/v1/projects/%s/documents/markdown", project.ID)

	var saved projects_dto.DocumentResponseDTO
	test_utils.MakePutRequestAndUnmarshal(t, env.router, url, env.owner.AuthHeader(),
		projects_dto.UpdateDocumentRequestDTO{Content: "# Title"},
		http.StatusOK,
		&saved,
	)
	assert.Equal(t, projects_enums.DocumentKindMarkdown, saved.Kind)

	var loaded projects_dto.DocumentResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, env.router,
		fmt.Sprintf("/api/v1/projects/%s/documents/MARKDOWN", project.ID),
		env.owner.AuthHeader(), http.StatusOK, &loaded)
	assert.Equal(t, "# Title", loaded.Content)
}

func Test_Documents_WithUnknownKind_ReturnsBadRequest(t *testing.T) {
	env := newProjectControllerEnv(t)
	project := env.createProject(t, "docs", false)

	resp := test_utils.MakeGetRequest(t, env.router,
		fmt.Sprintf("/api/v1/projects/%s/documents/spreadsheet", project.ID),
		env.owner.AuthHeader(), http.StatusBadRequest)

	assert.Contains(t, string(resp.Body), "Invalid document kind")
}
