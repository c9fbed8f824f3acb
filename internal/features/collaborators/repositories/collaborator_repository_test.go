package collaborators_repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	collaborators_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/enums"
	collaborators_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/models"
	collaborators_repositories "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/repositories"
	projects_repositories "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/repositories"
	projects_testing "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/testing"
	users_repositories "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/repositories"
	users_testing "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/testing"
	"github.com/SH20RAJ/sketchflow-sub001/internal/storage"
	test_utils "github.com/SH20RAJ/sketchflow-sub001/internal/util/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CollaboratorRepository_AgainstPostgres(t *testing.T) {
	test_utils.GetTestDB(t)

	ctx := context.Background()
	userRepository := &users_repositories.UserRepository{}
	projectRepository := &projects_repositories.ProjectRepository{}
	repository := &collaborators_repositories.CollaboratorRepository{}
	transactor := &storage.GormTransactor{}
	userService := users_testing.NewTestUserService(userRepository)

	owner := users_testing.CreateTestUser(t, userRepository, userService).User
	invitee := users_testing.CreateTestUser(t, userRepository, userService).User
	project := projects_testing.CreateTestProject(t, projectRepository, owner.ID, false)

	t.Run("duplicate row is a unique violation", func(t *testing.T) {
		projects_testing.AddTestCollaborator(t, repository, project, invitee.ID,
			collaborators_enums.CollaboratorRoleViewer, collaborators_enums.InviteStatusPending)

		err := repository.CreateCollaborator(ctx, &collaborators_models.ProjectCollaborator{
			ProjectID:    project.ID,
			UserID:       invitee.ID,
			Role:         collaborators_enums.CollaboratorRoleEditor,
			InviteStatus: collaborators_enums.InviteStatusPending,
			InvitedBy:    owner.ID,
			InvitedAt:    time.Now().UTC(),
		})

		assert.True(t, storage.IsUniqueViolation(err))
	})

	t.Run("update inside transaction is visible after commit", func(t *testing.T) {
		err := transactor.InTransaction(ctx, func(ctx context.Context) error {
			collaborator, err := repository.GetCollaboratorForUpdate(ctx, project.ID, invitee.ID)
			if err != nil {
				return err
			}

			acceptedAt := time.Now().UTC()
			collaborator.InviteStatus = collaborators_enums.InviteStatusAccepted
			collaborator.AcceptedAt = &acceptedAt

			return repository.UpdateCollaborator(ctx, collaborator)
		})
		require.NoError(t, err)

		accepted, err := repository.GetUserCollaborations(ctx, invitee.ID, collaborators_enums.InviteStatusAccepted)
		require.NoError(t, err)
		require.Len(t, accepted, 1)
		assert.Equal(t, project.ID, accepted[0].ProjectID)
		assert.NotNil(t, accepted[0].AcceptedAt)
	})

	t.Run("failed transaction rolls back", func(t *testing.T) {
		rollbackErr := errors.New("abort")

		err := transactor.InTransaction(ctx, func(ctx context.Context) error {
			if err := repository.DeleteCollaborator(ctx, project.ID, invitee.ID); err != nil {
				return err
			}

			return rollbackErr
		})
		require.ErrorIs(t, err, rollbackErr)

		collaborator, err := repository.GetCollaborator(ctx, project.ID, invitee.ID)
		require.NoError(t, err)
		assert.NotNil(t, collaborator)
	})

	t.Run("role outside the allowed set is rejected", func(t *testing.T) {
		stranger := users_testing.CreateTestUser(t, userRepository, userService).User

		err := repository.CreateCollaborator(ctx, &collaborators_models.ProjectCollaborator{
			ProjectID:    project.ID,
			UserID:       stranger.ID,
			Role:         collaborators_enums.CollaboratorRoleOwner,
			InviteStatus: collaborators_enums.InviteStatusPending,
			InvitedBy:    owner.ID,
			InvitedAt:    time.Now().UTC(),
		})

		assert.Error(t, err)
	})

	t.Run("deleting the project cascades", func(t *testing.T) {
		require.NoError(t, projectRepository.DeleteProject(ctx, project.ID))

		collaborators, err := repository.GetProjectCollaborators(ctx, project.ID)
		require.NoError(t, err)
		assert.Empty(t, collaborators)
	})
}
