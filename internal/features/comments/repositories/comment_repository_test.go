package comments_repositories_test

import (
	"context"
	"testing"
	"time"

	comments_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/comments/models"
	comments_repositories "github.com/SH20RAJ/sketchflow-sub001/internal/features/comments/repositories"
	projects_repositories "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/repositories"
	projects_testing "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/testing"
	users_repositories "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/repositories"
	users_testing "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/testing"
	"github.com/SH20RAJ/sketchflow-sub001/internal/storage"
	test_utils "github.com/SH20RAJ/sketchflow-sub001/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CommentRepository_AgainstPostgres(t *testing.T) {
	test_utils.GetTestDB(t)

	ctx := context.Background()
	userRepository := &users_repositories.UserRepository{}
	repository := &comments_repositories.CommentRepository{}

	author := users_testing.CreateTestUser(t, userRepository, users_testing.NewTestUserService(userRepository)).User
	project := projects_testing.CreateTestProject(t, &projects_repositories.ProjectRepository{}, author.ID, false)

	newComment := func(parentID *uuid.UUID, createdAt time.Time) *comments_models.ProjectComment {
		comment := &comments_models.ProjectComment{
			ID:        uuid.New(),
			ProjectID: project.ID,
			UserID:    author.ID,
			Content:   "comment",
			Position:  &comments_models.CommentPosition{X: 1.5, Y: -2},
			ParentID:  parentID,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
		require.NoError(t, repository.CreateComment(ctx, comment))

		return comment
	}

	base := time.Now().UTC().Truncate(time.Millisecond)
	root := newComment(nil, base)
	firstReply := newComment(&root.ID, base.Add(time.Second))
	newComment(&root.ID, base.Add(2*time.Second))
	other := newComment(nil, base.Add(3*time.Second))

	comments, err := repository.GetProjectComments(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, comments, 4)
	assert.Equal(t, root.ID, comments[0].ID)
	assert.Equal(t, firstReply.ID, comments[1].ID)
	assert.Equal(t, other.ID, comments[3].ID)

	loaded, err := repository.GetCommentByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, &comments_models.CommentPosition{X: 1.5, Y: -2}, loaded.Position)

	resolved := true
	updated, err := repository.UpdateComment(ctx, root.ID, &comments_models.CommentUpdate{
		Resolved:  &resolved,
		UpdatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.True(t, updated)

	loaded, err = repository.GetCommentByID(ctx, root.ID)
	require.NoError(t, err)
	assert.True(t, loaded.Resolved)
	assert.Equal(t, "comment", loaded.Content)

	repliesDeleted, err := repository.DeleteCommentWithReplies(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), repliesDeleted)

	comments, err = repository.GetProjectComments(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, other.ID, comments[0].ID)

	missing, err := repository.GetCommentByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	updated, err = repository.UpdateComment(ctx, root.ID, &comments_models.CommentUpdate{
		Resolved:  &resolved,
		UpdatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.False(t, updated)
}

func Test_CommentRepository_GetCommentForUpdate_BlocksConcurrentLock(t *testing.T) {
	test_utils.GetTestDB(t)

	ctx := context.Background()
	userRepository := &users_repositories.UserRepository{}
	repository := &comments_repositories.CommentRepository{}
	transactor := &storage.GormTransactor{}

	author := users_testing.CreateTestUser(t, userRepository, users_testing.NewTestUserService(userRepository)).User
	project := projects_testing.CreateTestProject(t, &projects_repositories.ProjectRepository{}, author.ID, false)

	now := time.Now().UTC()
	comment := &comments_models.ProjectComment{
		ProjectID: project.ID,
		UserID:    author.ID,
		Content:   "draft",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repository.CreateComment(ctx, comment))

	locked := make(chan struct{})
	secondRead := make(chan *comments_models.ProjectComment, 1)
	secondErr := make(chan error, 1)

	go func() {
		<-locked
		secondErr <- transactor.InTransaction(ctx, func(ctx context.Context) error {
			current, err := repository.GetCommentForUpdate(ctx, comment.ID)
			secondRead <- current
			return err
		})
	}()

	err := transactor.InTransaction(ctx, func(ctx context.Context) error {
		if _, err := repository.GetCommentForUpdate(ctx, comment.ID); err != nil {
			return err
		}
		close(locked)

		time.Sleep(300 * time.Millisecond)

		edited := "edited"
		_, err := repository.UpdateComment(ctx, comment.ID, &comments_models.CommentUpdate{
			Content:   &edited,
			UpdatedAt: time.Now().UTC(),
		})
		return err
	})
	require.NoError(t, err)

	require.NoError(t, <-secondErr)
	current := <-secondRead
	require.NotNil(t, current)
	assert.Equal(t, "edited", current.Content)
}
