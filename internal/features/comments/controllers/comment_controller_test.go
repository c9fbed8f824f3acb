package comments_controllers_test

import (
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/SH20RAJ/sketchflow-sub001/internal/features/activities"
	collaborators_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/enums"
	comments_controllers "github.com/SH20RAJ/sketchflow-sub001/internal/features/comments/controllers"
	comments_dto "github.com/SH20RAJ/sketchflow-sub001/internal/features/comments/dto"
	comments_services "github.com/SH20RAJ/sketchflow-sub001/internal/features/comments/services"
	"github.com/SH20RAJ/sketchflow-sub001/internal/features/permissions"
	projects_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/models"
	projects_testing "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/testing"
	users_testing "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/testing"
	"github.com/SH20RAJ/sketchflow-sub001/internal/storage/memstore"
	test_utils "github.com/SH20RAJ/sketchflow-sub001/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commentControllerEnv struct {
	router    *gin.Engine
	owner     *users_testing.TestUser
	viewer    *users_testing.TestUser
	commenter *users_testing.TestUser
	project   *projects_models.Project
}

func newCommentControllerEnv(t *testing.T) *commentControllerEnv {
	store := memstore.New()
	userService := users_testing.NewTestUserService(store)
	permissionService := permissions.NewPermissionService(store, store)
	activityService := activities.NewActivityService(store, permissionService, slog.Default())
	service := comments_services.NewCommentService(
		store, store, permissionService, activityService, store, nil, slog.Default(),
	)

	owner := users_testing.CreateTestUser(t, store, userService)
	viewer := users_testing.CreateTestUser(t, store, userService)
	commenter := users_testing.CreateTestUser(t, store, userService)
	project := projects_testing.CreateTestProject(t, store, owner.User.ID, false)

	projects_testing.AddTestCollaborator(t, store, project, viewer.User.ID,
		collaborators_enums.CollaboratorRoleViewer, collaborators_enums.InviteStatusAccepted)
	projects_testing.AddTestCollaborator(t, store, project, commenter.User.ID,
		collaborators_enums.CollaboratorRoleCommenter, collaborators_enums.InviteStatusAccepted)

	return &commentControllerEnv{
		router:    users_testing.CreateTestRouter(userService, comments_controllers.NewCommentController(service)),
		owner:     owner,
		viewer:    viewer,
		commenter: commenter,
		project:   project,
	}
}

func (e *commentControllerEnv) commentsURL() string {
	return fmt.Sprintf("/api/v1/projects/%s/comments", e.project.ID)
}

func Test_CreateComment_ByCommenter_CommentReturned(t *testing.T) {
	env := newCommentControllerEnv(t)
	elementID := "shape-1"

	var response comments_dto.CommentResponseDTO
	test_utils.MakePostRequestAndUnmarshal(t, env.router, env.commentsURL(), env.commenter.AuthHeader(),
		comments_dto.CreateCommentRequestDTO{Content: "check this", ElementID: &elementID},
		http.StatusOK,
		&response,
	)

	assert.Equal(t, "check this", response.Content)
	require.NotNil(t, response.ElementID)
	assert.Equal(t, "shape-1", *response.ElementID)
	assert.Equal(t, env.commenter.User.ID, response.UserID)
}

func Test_CreateComment_ByViewer_ReturnsForbidden(t *testing.T) {
	env := newCommentControllerEnv(t)

	test_utils.MakePostRequest(t, env.router, env.commentsURL(), env.viewer.AuthHeader(),
		comments_dto.CreateCommentRequestDTO{Content: "hi"},
		http.StatusForbidden,
	)
}

func Test_CreateComment_WithMalformedBody_ReturnsBadRequest(t *testing.T) {
	env := newCommentControllerEnv(t)

	resp := test_utils.MakePostRequest(t, env.router, env.commentsURL(), env.owner.AuthHeader(),
		"{not json",
		http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), "Invalid request format")
}

func Test_CommentLifecycle_CreateReplyResolveDelete(t *testing.T) {
	env := newCommentControllerEnv(t)

	var root comments_dto.CommentResponseDTO
	test_utils.MakePostRequestAndUnmarshal(t, env.router, env.commentsURL(), env.owner.AuthHeader(),
		comments_dto.CreateCommentRequestDTO{Content: "root"},
		http.StatusOK,
		&root,
	)

	test_utils.MakePostRequest(t, env.router, env.commentsURL(), env.commenter.AuthHeader(),
		comments_dto.CreateCommentRequestDTO{Content: "reply", ParentID: &root.ID},
		http.StatusOK,
	)

	var list comments_dto.ListCommentsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, env.router, env.commentsURL(), env.viewer.AuthHeader(), http.StatusOK, &list)
	require.Len(t, list.Comments, 1)
	require.Len(t, list.Comments[0].Replies, 1)
	assert.Equal(t, "reply", list.Comments[0].Replies[0].Content)

	commentURL := fmt.Sprintf("%s/%s", env.commentsURL(), root.ID)
	resolved := true

	test_utils.MakePatchRequest(t, env.router, commentURL, env.commenter.AuthHeader(),
		comments_dto.UpdateCommentRequestDTO{Resolved: &resolved},
		http.StatusForbidden,
	)

	var updated comments_dto.CommentResponseDTO
	test_utils.MakePatchRequestAndUnmarshal(t, env.router, commentURL, env.owner.AuthHeader(),
		comments_dto.UpdateCommentRequestDTO{Resolved: &resolved},
		http.StatusOK,
		&updated,
	)
	assert.True(t, updated.Resolved)

	test_utils.MakeDeleteRequest(t, env.router, commentURL, env.commenter.AuthHeader(), http.StatusForbidden)
	test_utils.MakeDeleteRequest(t, env.router, commentURL, env.owner.AuthHeader(), http.StatusOK)
	test_utils.MakeDeleteRequest(t, env.router, commentURL, env.owner.AuthHeader(), http.StatusNotFound)
}

func Test_UpdateComment_WithInvalidCommentID_ReturnsBadRequest(t *testing.T) {
	env := newCommentControllerEnv(t)
	resolved := true

	resp := test_utils.MakePatchRequest(t, env.router, env.commentsURL()+"/nope", env.owner.AuthHeader(),
		comments_dto.UpdateCommentRequestDTO{Resolved: &resolved},
		http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), "Invalid comment ID")
}
