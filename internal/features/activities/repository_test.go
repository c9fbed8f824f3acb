package activities_test

import (
	"context"
	"testing"

	"github.com/SH20RAJ/sketchflow-sub001/internal/features/activities"
	collaborators_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/enums"
	projects_repositories "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/repositories"
	projects_testing "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/testing"
	users_repositories "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/repositories"
	users_testing "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/testing"
	test_utils "github.com/SH20RAJ/sketchflow-sub001/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ActivityRepository_ReturnsNewestFirstJoinedWithActor(t *testing.T) {
	test_utils.GetTestDB(t)

	ctx := context.Background()
	userRepository := &users_repositories.UserRepository{}
	repository := &activities.ActivityRepository{}

	actor := users_testing.CreateTestUser(t, userRepository, users_testing.NewTestUserService(userRepository)).User
	project := projects_testing.CreateTestProject(t, &projects_repositories.ProjectRepository{}, actor.ID, false)

	first, err := activities.NewActivity(project.ID, actor.ID, activities.InvitedCollaboratorDetails{
		InviteeID:    uuid.New(),
		InviteeEmail: "invitee@example.com",
		Role:         collaborators_enums.CollaboratorRoleEditor,
	})
	require.NoError(t, err)
	require.NoError(t, repository.CreateActivity(ctx, first))

	second, err := activities.NewActivity(project.ID, actor.ID, activities.ProjectSharingChangedDetails{Shared: true})
	require.NoError(t, err)
	require.NoError(t, repository.CreateActivity(ctx, second))

	rows, err := repository.GetRecentProjectActivities(ctx, project.ID, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, second.ID, rows[0].ID)
	assert.Equal(t, actor.Name, rows[0].UserName)

	rows, err = repository.GetRecentProjectActivities(ctx, project.ID, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	details, err := activities.DecodeDetails(rows[1].Action, rows[1].Details)
	require.NoError(t, err)
	invited, ok := details.(*activities.InvitedCollaboratorDetails)
	require.True(t, ok)
	assert.Equal(t, "invitee@example.com", invited.InviteeEmail)
}
