package collaborators_controllers_test

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/SH20RAJ/sketchflow-sub001/internal/features/activities"
	collaborators_controllers "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/controllers"
	collaborators_dto "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/dto"
	collaborators_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/enums"
	collaborators_services "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/services"
	"github.com/SH20RAJ/sketchflow-sub001/internal/features/permissions"
	projects_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/models"
	projects_testing "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/testing"
	users_testing "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/testing"
	"github.com/SH20RAJ/sketchflow-sub001/internal/storage/memstore"
	test_utils "github.com/SH20RAJ/sketchflow-sub001/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collaboratorControllerEnv struct {
	store   *memstore.Store
	router  *gin.Engine
	owner   *users_testing.TestUser
	invitee *users_testing.TestUser
	project *projects_models.Project
}

func newCollaboratorControllerEnv(t *testing.T) *collaboratorControllerEnv {
	store := memstore.New()
	userService := users_testing.NewTestUserService(store)
	permissionService := permissions.NewPermissionService(store, store)
	activityService := activities.NewActivityService(store, permissionService, slog.Default())

	service := collaborators_services.NewCollaboratorService(
		store, store, store, permissionService, activityService, store, nil, nil, slog.Default(),
	)

	router := users_testing.CreateTestRouter(
		userService,
		collaborators_controllers.NewCollaboratorController(service),
	)

	owner := users_testing.CreateTestUser(t, store, userService)
	invitee := users_testing.CreateTestUser(t, store, userService)

	return &collaboratorControllerEnv{
		store:   store,
		router:  router,
		owner:   owner,
		invitee: invitee,
		project: projects_testing.CreateTestProject(t, store, owner.User.ID, false),
	}
}

func (e *collaboratorControllerEnv) collaboratorsURL() string {
	return fmt.Sprintf("/api/v1/projects/%s/collaborators", e.project.ID)
}

func (e *collaboratorControllerEnv) inviteViaAPI(t *testing.T, role collaborators_enums.CollaboratorRole) {
	t.Helper()

	test_utils.MakePostRequest(t, e.router, e.collaboratorsURL(), e.owner.AuthHeader(),
		collaborators_dto.InviteCollaboratorRequestDTO{Email: e.invitee.User.Email, Role: role},
		http.StatusOK,
	)
}

func Test_InviteCollaborator_ByOwner_ReturnsPendingCollaborator(t *testing.T) {
	env := newCollaboratorControllerEnv(t)

	var response collaborators_dto.CollaboratorResponseDTO
	test_utils.MakePostRequestAndUnmarshal(t, env.router, env.collaboratorsURL(), env.owner.AuthHeader(),
		collaborators_dto.InviteCollaboratorRequestDTO{Email: env.invitee.User.Email, Role: collaborators_enums.CollaboratorRoleEditor},
		http.StatusOK,
		&response,
	)

	assert.Equal(t, env.invitee.User.ID, response.UserID)
	assert.Equal(t, collaborators_enums.CollaboratorRoleEditor, response.Role)
	assert.Equal(t, collaborators_enums.InviteStatusPending, response.InviteStatus)
	assert.False(t, response.IsOwner)
}

func Test_InviteCollaborator_Twice_ReturnsConflict(t *testing.T) {
	env := newCollaboratorControllerEnv(t)
	env.inviteViaAPI(t, collaborators_enums.CollaboratorRoleViewer)

	resp := test_utils.MakePostRequest(t, env.router, env.collaboratorsURL(), env.owner.AuthHeader(),
		collaborators_dto.InviteCollaboratorRequestDTO{Email: env.invitee.User.Email},
		http.StatusConflict,
	)

	assert.Contains(t, string(resp.Body), "already a collaborator")
}

func Test_InviteCollaborator_WithInvalidEmail_ReturnsBadRequest(t *testing.T) {
	env := newCollaboratorControllerEnv(t)

	resp := test_utils.MakePostRequest(t, env.router, env.collaboratorsURL(), env.owner.AuthHeader(),
		map[string]string{"email": "not-an-email"},
		http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), "Invalid request format")
}

func Test_InviteCollaborator_WithInvalidProjectID_ReturnsBadRequest(t *testing.T) {
	env := newCollaboratorControllerEnv(t)

	resp := test_utils.MakePostRequest(t, env.router, "/api/v1/projects/not-a-uuid/collaborators", env.owner.AuthHeader(),
		collaborators_dto.InviteCollaboratorRequestDTO{Email: env.invitee.User.Email},
		http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), "Invalid project ID")
}

func Test_InviteCollaborator_WithoutAuth_ReturnsUnauthorized(t *testing.T) {
	env := newCollaboratorControllerEnv(t)

	test_utils.MakePostRequest(t, env.router, env.collaboratorsURL(), "",
		collaborators_dto.InviteCollaboratorRequestDTO{Email: env.invitee.User.Email},
		http.StatusUnauthorized,
	)
}

func Test_InviteCollaborator_ToMissingProject_ReturnsNotFound(t *testing.T) {
	env := newCollaboratorControllerEnv(t)

	test_utils.MakePostRequest(t, env.router,
		fmt.Sprintf("/api/v1/projects/%s/collaborators", uuid.New()),
		env.owner.AuthHeader(),
		collaborators_dto.InviteCollaboratorRequestDTO{Email: env.invitee.User.Email},
		http.StatusNotFound,
	)
}

func Test_InvitationFlow_AcceptThenList_InviteeSeesProject(t *testing.T) {
	env := newCollaboratorControllerEnv(t)
	env.inviteViaAPI(t, collaborators_enums.CollaboratorRoleCommenter)

	var invitations collaborators_dto.ListInvitationsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, env.router, "/api/v1/collaborations/invitations",
		env.invitee.AuthHeader(), http.StatusOK, &invitations)
	require.Len(t, invitations.Invitations, 1)
	assert.Equal(t, env.project.ID, invitations.Invitations[0].ProjectID)

	test_utils.MakeGetRequest(t, env.router, env.collaboratorsURL(), env.invitee.AuthHeader(), http.StatusForbidden)

	var responded collaborators_dto.RespondToInvitationResponseDTO
	test_utils.MakePatchRequestAndUnmarshal(t, env.router,
		fmt.Sprintf("/api/v1/collaborations/invitations/%s", env.project.ID),
		env.invitee.AuthHeader(),
		collaborators_dto.RespondToInvitationRequestDTO{Status: collaborators_enums.InviteStatusAccepted},
		http.StatusOK,
		&responded,
	)
	assert.Equal(t, collaborators_enums.InviteStatusAccepted, responded.Collaborator.InviteStatus)

	var list collaborators_dto.ListCollaboratorsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, env.router, env.collaboratorsURL(),
		env.invitee.AuthHeader(), http.StatusOK, &list)
	assert.False(t, list.IsOwner)
	require.Len(t, list.Collaborators, 2)
	assert.Equal(t, env.owner.User.ID, list.Collaborators[0].UserID)

	test_utils.MakePatchRequest(t, env.router,
		fmt.Sprintf("/api/v1/collaborations/invitations/%s", env.project.ID),
		env.invitee.AuthHeader(),
		collaborators_dto.RespondToInvitationRequestDTO{Status: collaborators_enums.InviteStatusRejected},
		http.StatusConflict,
	)
}

func Test_UpdateCollaboratorRole_ByOwner_RoleChanged(t *testing.T) {
	env := newCollaboratorControllerEnv(t)
	env.inviteViaAPI(t, collaborators_enums.CollaboratorRoleViewer)

	var response collaborators_dto.CollaboratorResponseDTO
	test_utils.MakePatchRequestAndUnmarshal(t, env.router,
		fmt.Sprintf("%s/%s", env.collaboratorsURL(), env.invitee.User.ID),
		env.owner.AuthHeader(),
		collaborators_dto.UpdateCollaboratorRoleRequestDTO{Role: collaborators_enums.CollaboratorRoleEditor},
		http.StatusOK,
		&response,
	)

	assert.Equal(t, collaborators_enums.CollaboratorRoleEditor, response.Role)
}

func Test_UpdateCollaboratorRole_WithInvalidUserID_ReturnsBadRequest(t *testing.T) {
	env := newCollaboratorControllerEnv(t)

	resp := test_utils.MakePatchRequest(t, env.router,
		env.collaboratorsURL()+"/bad-id",
		env.owner.AuthHeader(),
		collaborators_dto.UpdateCollaboratorRoleRequestDTO{Role: collaborators_enums.CollaboratorRoleEditor},
		http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), "Invalid user ID")
}

func Test_RemoveCollaborator_ByOwner_ReturnsSuccess(t *testing.T) {
	env := newCollaboratorControllerEnv(t)
	env.inviteViaAPI(t, collaborators_enums.CollaboratorRoleViewer)

	var response map[string]bool
	resp := test_utils.MakeDeleteRequest(t, env.router,
		fmt.Sprintf("%s/%s", env.collaboratorsURL(), env.invitee.User.ID),
		env.owner.AuthHeader(),
		http.StatusOK,
	)
	require.NoError(t, json.Unmarshal(resp.Body, &response))
	assert.True(t, response["success"])

	test_utils.MakeDeleteRequest(t, env.router,
		fmt.Sprintf("%s/%s", env.collaboratorsURL(), env.invitee.User.ID),
		env.owner.AuthHeader(),
		http.StatusNotFound,
	)
}
