// Package memstore keeps every repository in process memory. Service and
// controller tests run against it instead of PostgreSQL.
package memstore

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/SH20RAJ/sketchflow-sub001/internal/features/activities"
	collaborators_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/enums"
	collaborators_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/models"
	comments_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/comments/models"
	projects_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/enums"
	projects_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/models"
	users_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type collaboratorKey struct {
	projectID uuid.UUID
	userID    uuid.UUID
}

type documentKey struct {
	projectID uuid.UUID
	kind      projects_enums.DocumentKind
}

type tables struct {
	users         map[uuid.UUID]users_models.User
	projects      map[uuid.UUID]projects_models.Project
	tags          map[uuid.UUID]projects_models.ProjectTag
	tagLinks      map[projects_models.ProjectTagLink]struct{}
	documents     map[documentKey]projects_models.ProjectDocument
	collaborators map[collaboratorKey]collaborators_models.ProjectCollaborator
	comments      map[uuid.UUID]comments_models.ProjectComment
	activities    []activities.CollaborationActivity
}

func (t *tables) clone() *tables {
	return &tables{
		users:         maps.Clone(t.users),
		projects:      maps.Clone(t.projects),
		tags:          maps.Clone(t.tags),
		tagLinks:      maps.Clone(t.tagLinks),
		documents:     maps.Clone(t.documents),
		collaborators: maps.Clone(t.collaborators),
		comments:      maps.Clone(t.comments),
		activities:    slices.Clone(t.activities),
	}
}

type txContextKey struct{}

// Store implements the repository interfaces of every feature plus
// storage.Transactor. Transactions are serialized and roll back by
// restoring a snapshot.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data *tables

	activityWriteErr error
}

func New() *Store {
	return &Store{
		data: &tables{
			users:         map[uuid.UUID]users_models.User{},
			projects:      map[uuid.UUID]projects_models.Project{},
			tags:          map[uuid.UUID]projects_models.ProjectTag{},
			tagLinks:      map[projects_models.ProjectTagLink]struct{}{},
			documents:     map[documentKey]projects_models.ProjectDocument{},
			collaborators: map[collaboratorKey]collaborators_models.ProjectCollaborator{},
			comments:      map[uuid.UUID]comments_models.ProjectComment{},
		},
	}
}

// FailActivityWrites makes every following CreateActivity return err.
// Pass nil to restore normal behaviour.
func (s *Store) FailActivityWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activityWriteErr = err
}

func (s *Store) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txContextKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txContextKey{}, true)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()

		return err
	}

	return nil
}

// Users

func (s *Store) CreateUser(_ context.Context, user *users_models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	for _, existing := range s.data.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return gorm.ErrDuplicatedKey
		}
	}

	s.data.users[user.ID] = *user
	return nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*users_models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.TrimSpace(email)
	for _, user := range s.data.users {
		if strings.EqualFold(user.Email, email) {
			return &user, nil
		}
	}

	return nil, nil
}

func (s *Store) GetUserByID(_ context.Context, userID uuid.UUID) (*users_models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.data.users[userID]
	if !ok {
		return nil, nil
	}

	return &user, nil
}

func (s *Store) GetUsersByIDs(_ context.Context, userIDs []uuid.UUID) ([]*users_models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*users_models.User, 0, len(userIDs))
	seen := make(map[uuid.UUID]bool, len(userIDs))
	for _, userID := range userIDs {
		user, ok := s.data.users[userID]
		if !ok || seen[userID] {
			continue
		}

		seen[userID] = true
		result = append(result, &user)
	}

	return result, nil
}

// Projects

func (s *Store) CreateProject(_ context.Context, project *projects_models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}

	if _, ok := s.data.projects[project.ID]; ok {
		return gorm.ErrDuplicatedKey
	}

	s.data.projects[project.ID] = *project
	return nil
}

func (s *Store) GetProjectByID(_ context.Context, projectID uuid.UUID) (*projects_models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, ok := s.data.projects[projectID]
	if !ok {
		return nil, nil
	}

	return &project, nil
}

func (s *Store) GetProjectsByIDs(_ context.Context, projectIDs []uuid.UUID) ([]*projects_models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*projects_models.Project, 0, len(projectIDs))
	for _, projectID := range projectIDs {
		if project, ok := s.data.projects[projectID]; ok {
			result = append(result, &project)
		}
	}

	sortProjects(result)
	return result, nil
}

func (s *Store) GetProjectsByOwner(_ context.Context, ownerID uuid.UUID) ([]*projects_models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*projects_models.Project, 0)
	for _, project := range s.data.projects {
		if project.OwnerID == ownerID {
			result = append(result, &project)
		}
	}

	sortProjects(result)
	return result, nil
}

func (s *Store) UpdateProject(_ context.Context, project *projects_models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.projects[project.ID] = *project
	return nil
}

// DeleteProject cascades like the foreign keys of the real schema
func (s *Store) DeleteProject(_ context.Context, projectID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data.projects, projectID)

	for key := range s.data.collaborators {
		if key.projectID == projectID {
			delete(s.data.collaborators, key)
		}
	}
	for id, comment := range s.data.comments {
		if comment.ProjectID == projectID {
			delete(s.data.comments, id)
		}
	}
	for key := range s.data.documents {
		if key.projectID == projectID {
			delete(s.data.documents, key)
		}
	}
	for link := range s.data.tagLinks {
		if link.ProjectID == projectID {
			delete(s.data.tagLinks, link)
		}
	}
	s.data.activities = slices.DeleteFunc(s.data.activities, func(activity activities.CollaborationActivity) bool {
		return activity.ProjectID == projectID
	})

	return nil
}

func sortProjects(projects []*projects_models.Project) {
	slices.SortStableFunc(projects, func(a, b *projects_models.Project) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
}

// Tags

func (s *Store) CreateTag(_ context.Context, tag *projects_models.ProjectTag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tag.ID == uuid.Nil {
		tag.ID = uuid.New()
	}

	if s.hasTagNameLocked(tag) {
		return gorm.ErrDuplicatedKey
	}

	s.data.tags[tag.ID] = *tag
	return nil
}

func (s *Store) GetTagByID(_ context.Context, tagID uuid.UUID) (*projects_models.ProjectTag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tag, ok := s.data.tags[tagID]
	if !ok {
		return nil, nil
	}

	return &tag, nil
}

func (s *Store) GetTagsByUser(_ context.Context, userID uuid.UUID) ([]*projects_models.ProjectTag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*projects_models.ProjectTag, 0)
	for _, tag := range s.data.tags {
		if tag.UserID == userID {
			result = append(result, &tag)
		}
	}

	slices.SortFunc(result, func(a, b *projects_models.ProjectTag) int {
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	return result, nil
}

func (s *Store) UpdateTag(_ context.Context, tag *projects_models.ProjectTag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasTagNameLocked(tag) {
		return gorm.ErrDuplicatedKey
	}

	s.data.tags[tag.ID] = *tag
	return nil
}

func (s *Store) DeleteTag(_ context.Context, tagID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data.tags, tagID)
	for link := range s.data.tagLinks {
		if link.TagID == tagID {
			delete(s.data.tagLinks, link)
		}
	}

	return nil
}

func (s *Store) AttachTag(_ context.Context, projectID, tagID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.tagLinks[projects_models.ProjectTagLink{ProjectID: projectID, TagID: tagID}] = struct{}{}
	return nil
}

func (s *Store) DetachTag(_ context.Context, projectID, tagID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data.tagLinks, projects_models.ProjectTagLink{ProjectID: projectID, TagID: tagID})
	return nil
}

func (s *Store) GetTagLinks(_ context.Context, tagIDs []uuid.UUID) ([]*projects_models.ProjectTagLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*projects_models.ProjectTagLink, 0)
	for link := range s.data.tagLinks {
		if slices.Contains(tagIDs, link.TagID) {
			result = append(result, &link)
		}
	}

	return result, nil
}

func (s *Store) hasTagNameLocked(tag *projects_models.ProjectTag) bool {
	for _, existing := range s.data.tags {
		if existing.ID != tag.ID && existing.UserID == tag.UserID && strings.EqualFold(existing.Name, tag.Name) {
			return true
		}
	}

	return false
}

// Documents

func (s *Store) GetDocument(
	_ context.Context,
	projectID uuid.UUID,
	kind projects_enums.DocumentKind,
) (*projects_models.ProjectDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	document, ok := s.data.documents[documentKey{projectID, kind}]
	if !ok {
		return nil, nil
	}

	return &document, nil
}

func (s *Store) UpsertDocument(_ context.Context, document *projects_models.ProjectDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.documents[documentKey{document.ProjectID, document.Kind}] = *document
	return nil
}

// Collaborators

func (s *Store) CreateCollaborator(_ context.Context, collaborator *collaborators_models.ProjectCollaborator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := collaboratorKey{collaborator.ProjectID, collaborator.UserID}
	if _, ok := s.data.collaborators[key]; ok {
		return gorm.ErrDuplicatedKey
	}

	s.data.collaborators[key] = *collaborator
	return nil
}

func (s *Store) GetCollaborator(
	_ context.Context,
	projectID uuid.UUID,
	userID uuid.UUID,
) (*collaborators_models.ProjectCollaborator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	collaborator, ok := s.data.collaborators[collaboratorKey{projectID, userID}]
	if !ok {
		return nil, nil
	}

	return &collaborator, nil
}

// GetCollaboratorForUpdate needs no lock, transactions are already serialized
func (s *Store) GetCollaboratorForUpdate(
	ctx context.Context,
	projectID uuid.UUID,
	userID uuid.UUID,
) (*collaborators_models.ProjectCollaborator, error) {
	return s.GetCollaborator(ctx, projectID, userID)
}

func (s *Store) UpdateCollaborator(_ context.Context, collaborator *collaborators_models.ProjectCollaborator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := collaboratorKey{collaborator.ProjectID, collaborator.UserID}
	existing, ok := s.data.collaborators[key]
	if !ok {
		return nil
	}

	existing.Role = collaborator.Role
	existing.InviteStatus = collaborator.InviteStatus
	existing.AcceptedAt = collaborator.AcceptedAt
	s.data.collaborators[key] = existing

	return nil
}

func (s *Store) DeleteCollaborator(_ context.Context, projectID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data.collaborators, collaboratorKey{projectID, userID})
	return nil
}

func (s *Store) GetProjectCollaborators(
	_ context.Context,
	projectID uuid.UUID,
) ([]*collaborators_models.ProjectCollaborator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filterCollaboratorsLocked(func(c collaborators_models.ProjectCollaborator) bool {
		return c.ProjectID == projectID
	}), nil
}

func (s *Store) GetUserCollaborations(
	_ context.Context,
	userID uuid.UUID,
	status collaborators_enums.InviteStatus,
) ([]*collaborators_models.ProjectCollaborator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filterCollaboratorsLocked(func(c collaborators_models.ProjectCollaborator) bool {
		return c.UserID == userID && c.InviteStatus == status
	}), nil
}

func (s *Store) filterCollaboratorsLocked(
	match func(collaborators_models.ProjectCollaborator) bool,
) []*collaborators_models.ProjectCollaborator {
	result := make([]*collaborators_models.ProjectCollaborator, 0)
	for _, collaborator := range s.data.collaborators {
		if match(collaborator) {
			result = append(result, &collaborator)
		}
	}

	slices.SortStableFunc(result, func(a, b *collaborators_models.ProjectCollaborator) int {
		return b.InvitedAt.Compare(a.InvitedAt)
	})

	return result
}

// Comments

func (s *Store) CreateComment(_ context.Context, comment *comments_models.ProjectComment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}

	s.data.comments[comment.ID] = *comment
	return nil
}

func (s *Store) GetCommentByID(_ context.Context, commentID uuid.UUID) (*comments_models.ProjectComment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comment, ok := s.data.comments[commentID]
	if !ok {
		return nil, nil
	}

	return &comment, nil
}

func (s *Store) GetProjectComments(
	_ context.Context,
	projectID uuid.UUID,
) ([]*comments_models.ProjectComment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*comments_models.ProjectComment, 0)
	for _, comment := range s.data.comments {
		if comment.ProjectID == projectID {
			result = append(result, &comment)
		}
	}

	slices.SortFunc(result, func(a, b *comments_models.ProjectComment) int {
		if byTime := a.CreatedAt.Compare(b.CreatedAt); byTime != 0 {
			return byTime
		}

		return cmp.Compare(a.ID.String(), b.ID.String())
	})

	return result, nil
}

// GetCommentForUpdate relies on transactions being serialized
func (s *Store) GetCommentForUpdate(ctx context.Context, commentID uuid.UUID) (*comments_models.ProjectComment, error) {
	return s.GetCommentByID(ctx, commentID)
}

func (s *Store) UpdateComment(
	_ context.Context,
	commentID uuid.UUID,
	update *comments_models.CommentUpdate,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.data.comments[commentID]
	if !ok {
		return false, nil
	}

	if update.Content != nil {
		existing.Content = *update.Content
	}
	if update.Resolved != nil {
		existing.Resolved = *update.Resolved
	}
	existing.UpdatedAt = update.UpdatedAt
	s.data.comments[commentID] = existing

	return true, nil
}

func (s *Store) DeleteCommentWithReplies(_ context.Context, commentID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var replies int64
	for id, comment := range s.data.comments {
		if comment.ParentID != nil && *comment.ParentID == commentID {
			delete(s.data.comments, id)
			replies++
		}
	}

	delete(s.data.comments, commentID)
	return replies, nil
}

// Activities

func (s *Store) CreateActivity(_ context.Context, activity *activities.CollaborationActivity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activityWriteErr != nil {
		return s.activityWriteErr
	}

	if activity.ID == uuid.Nil {
		activity.ID = uuid.Must(uuid.NewV7())
	}

	s.data.activities = append(s.data.activities, *activity)
	return nil
}

// GetRecentProjectActivities mirrors the SQL inner join on users
func (s *Store) GetRecentProjectActivities(
	_ context.Context,
	projectID uuid.UUID,
	limit int,
) ([]*activities.ActivityRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]*activities.ActivityRow, 0)
	for _, activity := range s.data.activities {
		if activity.ProjectID != projectID {
			continue
		}

		user, ok := s.data.users[activity.UserID]
		if !ok {
			continue
		}

		rows = append(rows, &activities.ActivityRow{
			ID:        activity.ID,
			ProjectID: activity.ProjectID,
			UserID:    activity.UserID,
			Action:    activity.Action,
			Details:   activity.Details,
			CreatedAt: activity.CreatedAt,
			UserName:  user.Name,
			UserEmail: user.Email,
			UserImage: user.Image,
		})
	}

	slices.SortFunc(rows, func(a, b *activities.ActivityRow) int {
		if byTime := b.CreatedAt.Compare(a.CreatedAt); byTime != 0 {
			return byTime
		}

		return cmp.Compare(b.ID.String(), a.ID.String())
	})

	if len(rows) > limit {
		rows = rows[:limit]
	}

	return rows, nil
}

// Activities returns every stored activity of a project in insertion order
func (s *Store) Activities(projectID uuid.UUID) []activities.CollaborationActivity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]activities.CollaborationActivity, 0)
	for _, activity := range s.data.activities {
		if activity.ProjectID == projectID {
			result = append(result, activity)
		}
	}

	return result
}
