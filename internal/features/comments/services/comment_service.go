package comments_services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SH20RAJ/sketchflow-sub001/internal/apperrors"
	"github.com/SH20RAJ/sketchflow-sub001/internal/features/activities"
	comments_dto "github.com/SH20RAJ/sketchflow-sub001/internal/features/comments/dto"
	comments_interfaces "github.com/SH20RAJ/sketchflow-sub001/internal/features/comments/interfaces"
	comments_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/comments/models"
	"github.com/SH20RAJ/sketchflow-sub001/internal/features/permissions"
	users_dto "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/dto"
	users_interfaces "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/interfaces"
	users_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/models"
	"github.com/SH20RAJ/sketchflow-sub001/internal/storage"
	"github.com/SH20RAJ/sketchflow-sub001/internal/util/rate_limit"

	"github.com/google/uuid"
)

const (
	MaxCommentLength = 5000

	activityContentPreviewLength = 100
)

var commentRateLimit = rate_limit.Limit{PerMinute: 60, Burst: 20}

type CommentService struct {
	commentRepository comments_interfaces.CommentRepository
	userRepository    users_interfaces.UserRepository
	accessResolver    permissions.AccessResolver
	activityWriter    comments_interfaces.ActivityWriter
	transactor        storage.Transactor
	rateLimiter       comments_interfaces.RateLimiter
	logger            *slog.Logger
}

func NewCommentService(
	commentRepository comments_interfaces.CommentRepository,
	userRepository users_interfaces.UserRepository,
	accessResolver permissions.AccessResolver,
	activityWriter comments_interfaces.ActivityWriter,
	transactor storage.Transactor,
	rateLimiter comments_interfaces.RateLimiter,
	logger *slog.Logger,
) *CommentService {
	return &CommentService{
		commentRepository: commentRepository,
		userRepository:    userRepository,
		accessResolver:    accessResolver,
		activityWriter:    activityWriter,
		transactor:        transactor,
		rateLimiter:       rateLimiter,
		logger:            logger,
	}
}

func (s *CommentService) Create(
	ctx context.Context,
	projectID uuid.UUID,
	user *users_models.User,
	request *comments_dto.CreateCommentRequestDTO,
) (*comments_dto.CommentResponseDTO, error) {
	access, err := s.accessResolver.ResolveAccess(ctx, projectID, user.ID)
	if err != nil {
		return nil, err
	}

	if err := access.RequireRead(); err != nil {
		return nil, err
	}

	if !access.CanComment() {
		return nil, apperrors.Forbidden("your role does not allow commenting on this project")
	}

	content, err := normalizeContent(request.Content)
	if err != nil {
		return nil, err
	}

	if request.ParentID != nil {
		parent, err := s.commentRepository.GetCommentByID(ctx, *request.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to get parent comment: %w", err)
		}

		if parent == nil || parent.ProjectID != projectID {
			return nil, apperrors.BadRequest("parent comment does not belong to this project")
		}

		if parent.IsReply() {
			return nil, apperrors.BadRequest("replies cannot be nested")
		}
	}

	if err := s.checkRateLimit(ctx, "comment:"+user.ID.String()); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	comment := &comments_models.ProjectComment{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    user.ID,
		Content:   content,
		ElementID: normalizeElementID(request.ElementID),
		Position:  request.Position,
		ParentID:  request.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.transactor.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.commentRepository.CreateComment(ctx, comment); err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}

		return s.activityWriter.Append(ctx, projectID, user.ID, activities.CommentAddedDetails{
			CommentID: comment.ID,
			Content:   truncateRunes(content, activityContentPreviewLength),
			ElementID: comment.ElementID,
			ParentID:  comment.ParentID,
		})
	})
	if err != nil {
		return nil, err
	}

	return comments_dto.ToCommentResponse(comment, users_dto.ToPublicProfile(user)), nil
}

// List returns top-level comments newest first, each carrying its replies oldest first
func (s *CommentService) List(
	ctx context.Context,
	projectID uuid.UUID,
	user *users_models.User,
) (*comments_dto.ListCommentsResponseDTO, error) {
	access, err := s.accessResolver.ResolveAccess(ctx, projectID, user.ID)
	if err != nil {
		return nil, err
	}

	if err := access.RequireRead(); err != nil {
		return nil, err
	}

	comments, err := s.commentRepository.GetProjectComments(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	authorIDs := make([]uuid.UUID, 0, len(comments))
	for _, comment := range comments {
		authorIDs = append(authorIDs, comment.UserID)
	}

	authors, err := s.userRepository.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment authors: %w", err)
	}

	profiles := make(map[uuid.UUID]*users_dto.PublicProfileDTO, len(authors))
	for _, author := range authors {
		profiles[author.ID] = users_dto.ToPublicProfile(author)
	}

	topLevel := make([]*comments_dto.CommentResponseDTO, 0)
	byID := make(map[uuid.UUID]*comments_dto.CommentResponseDTO)

	for _, comment := range comments {
		if comment.IsReply() {
			continue
		}

		response := comments_dto.ToCommentResponse(comment, profiles[comment.UserID])
		topLevel = append(topLevel, response)
		byID[comment.ID] = response
	}

	for _, comment := range comments {
		if !comment.IsReply() {
			continue
		}

		parent, ok := byID[*comment.ParentID]
		if !ok {
			continue
		}

		parent.Replies = append(parent.Replies, comments_dto.ToCommentResponse(comment, profiles[comment.UserID]))
	}

	slices.Reverse(topLevel)

	return &comments_dto.ListCommentsResponseDTO{Comments: topLevel}, nil
}

// Update edits the content (author only) and/or the resolved flag
// (author, owner or editor). The comment is locked for the duration of the
// change and only the requested columns are written. Only a false to true
// transition is recorded as a resolved_comment activity.
func (s *CommentService) Update(
	ctx context.Context,
	projectID uuid.UUID,
	commentID uuid.UUID,
	user *users_models.User,
	request *comments_dto.UpdateCommentRequestDTO,
) (*comments_dto.CommentResponseDTO, error) {
	if request.Content == nil && request.Resolved == nil {
		return nil, apperrors.BadRequest("nothing to update, provide content or resolved")
	}

	access, err := s.accessResolver.ResolveAccess(ctx, projectID, user.ID)
	if err != nil {
		return nil, err
	}

	if err := access.RequireRead(); err != nil {
		return nil, err
	}

	update := &comments_models.CommentUpdate{UpdatedAt: time.Now().UTC()}
	if request.Content != nil {
		content, err := normalizeContent(*request.Content)
		if err != nil {
			return nil, err
		}

		update.Content = &content
	}

	var comment *comments_models.ProjectComment

	err = s.transactor.InTransaction(ctx, func(ctx context.Context) error {
		var err error

		comment, err = s.lockProjectComment(ctx, projectID, commentID)
		if err != nil {
			return err
		}

		isAuthor := comment.UserID == user.ID

		if update.Content != nil && !isAuthor {
			return apperrors.Forbidden("only the author can edit a comment")
		}

		resolvedNow := false
		if request.Resolved != nil {
			if !isAuthor && !access.CanResolveComments() {
				return apperrors.Forbidden("only the author, the owner or an editor can resolve comments")
			}

			resolvedNow = *request.Resolved && !comment.Resolved
			update.Resolved = request.Resolved
		}

		updated, err := s.commentRepository.UpdateComment(ctx, comment.ID, update)
		if err != nil {
			return fmt.Errorf("failed to update comment: %w", err)
		}

		if !updated {
			return apperrors.NotFound("comment not found")
		}

		applyCommentUpdate(comment, update)

		if !resolvedNow {
			return nil
		}

		return s.activityWriter.Append(ctx, projectID, user.ID, activities.CommentResolvedDetails{
			CommentID: comment.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	author, err := s.userRepository.GetUserByID(ctx, comment.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment author: %w", err)
	}

	return comments_dto.ToCommentResponse(comment, users_dto.ToPublicProfile(author)), nil
}

// Delete removes the comment together with its replies
func (s *CommentService) Delete(
	ctx context.Context,
	projectID uuid.UUID,
	commentID uuid.UUID,
	user *users_models.User,
) error {
	access, err := s.accessResolver.ResolveAccess(ctx, projectID, user.ID)
	if err != nil {
		return err
	}

	if err := access.RequireRead(); err != nil {
		return err
	}

	return s.transactor.InTransaction(ctx, func(ctx context.Context) error {
		comment, err := s.lockProjectComment(ctx, projectID, commentID)
		if err != nil {
			return err
		}

		if comment.UserID != user.ID && !access.IsOwner() {
			return apperrors.Forbidden("only the author or the project owner can delete a comment")
		}

		repliesDeleted, err := s.commentRepository.DeleteCommentWithReplies(ctx, comment.ID)
		if err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}

		return s.activityWriter.Append(ctx, projectID, user.ID, activities.CommentDeletedDetails{
			CommentID:      comment.ID,
			RepliesDeleted: repliesDeleted,
		})
	})
}

func (s *CommentService) lockProjectComment(
	ctx context.Context,
	projectID uuid.UUID,
	commentID uuid.UUID,
) (*comments_models.ProjectComment, error) {
	comment, err := s.commentRepository.GetCommentForUpdate(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	if comment == nil {
		return nil, apperrors.NotFound("comment not found")
	}

	if comment.ProjectID != projectID {
		return nil, apperrors.BadRequest("comment does not belong to this project")
	}

	return comment, nil
}

func applyCommentUpdate(comment *comments_models.ProjectComment, update *comments_models.CommentUpdate) {
	if update.Content != nil {
		comment.Content = *update.Content
	}
	if update.Resolved != nil {
		comment.Resolved = *update.Resolved
	}
	comment.UpdatedAt = update.UpdatedAt
}

// checkRateLimit fails open when the limiter itself is unavailable
func (s *CommentService) checkRateLimit(ctx context.Context, key string) error {
	if s.rateLimiter == nil {
		return nil
	}

	result, err := s.rateLimiter.CheckRateLimit(ctx, key, commentRateLimit)
	if err != nil {
		s.logger.Warn("rate limiter unavailable, allowing request",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return nil
	}

	if !result.Allowed {
		return apperrors.RateLimited(fmt.Sprintf(
			"too many comments, try again in %d seconds",
			result.RetryAfterSec,
		))
	}

	return nil
}

func normalizeContent(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	if content == "" {
		return "", apperrors.BadRequest("comment content is required")
	}

	if utf8.RuneCountInString(content) > MaxCommentLength {
		return "", apperrors.BadRequest(fmt.Sprintf(
			"comment content must be at most %d characters",
			MaxCommentLength,
		))
	}

	return content, nil
}

func normalizeElementID(elementID *string) *string {
	if elementID == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*elementID)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}

func truncateRunes(value string, limit int) string {
	if utf8.RuneCountInString(value) <= limit {
		return value
	}

	return string([]rune(value)[:limit])
}
