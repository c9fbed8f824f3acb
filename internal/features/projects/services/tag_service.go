package projects_services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SH20RAJ/sketchflow-sub001/internal/apperrors"
	"github.com/SH20RAJ/sketchflow-sub001/internal/features/permissions"
	projects_dto "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/dto"
	projects_interfaces "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/interfaces"
	projects_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/models"
	users_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/models"
	"github.com/SH20RAJ/sketchflow-sub001/internal/storage"

	"github.com/google/uuid"
)

const (
	DefaultTagColor = "#6b7280"

	maxTagNameLength  = 50
	maxTagEmojiLength = 16
)

var tagColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// TagService manages personal tags. Tags belong to one user and are only
// visible to that user.
type TagService struct {
	tagRepository  projects_interfaces.TagRepository
	accessResolver permissions.AccessResolver
}

func NewTagService(
	tagRepository projects_interfaces.TagRepository,
	accessResolver permissions.AccessResolver,
) *TagService {
	return &TagService{
		tagRepository:  tagRepository,
		accessResolver: accessResolver,
	}
}

// GetUserTags lists the caller's tags with the linked projects the caller
// can still read
func (s *TagService) GetUserTags(ctx context.Context, user *users_models.User) (*projects_dto.ListTagsResponseDTO, error) {
	tags, err := s.tagRepository.GetTagsByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}

	tagIDs := make([]uuid.UUID, 0, len(tags))
	for _, tag := range tags {
		tagIDs = append(tagIDs, tag.ID)
	}

	links, err := s.tagRepository.GetTagLinks(ctx, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get tag links: %w", err)
	}

	readable, err := s.readableProjects(ctx, user.ID, links)
	if err != nil {
		return nil, err
	}

	projectsByTag := make(map[uuid.UUID][]uuid.UUID, len(tags))
	for _, link := range links {
		if !readable[link.ProjectID] {
			continue
		}

		projectsByTag[link.TagID] = append(projectsByTag[link.TagID], link.ProjectID)
	}

	result := make([]*projects_dto.TagResponseDTO, 0, len(tags))
	for _, tag := range tags {
		result = append(result, projects_dto.ToTagResponse(tag, projectsByTag[tag.ID]))
	}

	return &projects_dto.ListTagsResponseDTO{Tags: result}, nil
}

func (s *TagService) CreateTag(
	ctx context.Context,
	request *projects_dto.CreateTagRequestDTO,
	user *users_models.User,
) (*projects_dto.TagResponseDTO, error) {
	name, err := normalizeTagName(request.Name)
	if err != nil {
		return nil, err
	}

	color, err := normalizeTagColor(request.Color)
	if err != nil {
		return nil, err
	}

	emoji, err := normalizeTagEmoji(request.Emoji)
	if err != nil {
		return nil, err
	}

	tag := &projects_models.ProjectTag{
		ID:        uuid.New(),
		UserID:    user.ID,
		Name:      name,
		Emoji:     emoji,
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.tagRepository.CreateTag(ctx, tag); err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateTag
		}

		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return projects_dto.ToTagResponse(tag, nil), nil
}

func (s *TagService) UpdateTag(
	ctx context.Context,
	tagID uuid.UUID,
	request *projects_dto.UpdateTagRequestDTO,
	user *users_models.User,
) (*projects_dto.TagResponseDTO, error) {
	tag, err := s.getUserTag(ctx, tagID, user)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		if tag.Name, err = normalizeTagName(*request.Name); err != nil {
			return nil, err
		}
	}
	if request.Color != nil {
		if tag.Color, err = normalizeTagColor(*request.Color); err != nil {
			return nil, err
		}
	}
	if request.Emoji != nil {
		if tag.Emoji, err = normalizeTagEmoji(*request.Emoji); err != nil {
			return nil, err
		}
	}

	if err := s.tagRepository.UpdateTag(ctx, tag); err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateTag
		}

		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	links, err := s.tagRepository.GetTagLinks(ctx, []uuid.UUID{tag.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to get tag links: %w", err)
	}

	projectIDs := make([]uuid.UUID, 0, len(links))
	for _, link := range links {
		projectIDs = append(projectIDs, link.ProjectID)
	}

	return projects_dto.ToTagResponse(tag, projectIDs), nil
}

func (s *TagService) DeleteTag(ctx context.Context, tagID uuid.UUID, user *users_models.User) error {
	if _, err := s.getUserTag(ctx, tagID, user); err != nil {
		return err
	}

	if err := s.tagRepository.DeleteTag(ctx, tagID); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	return nil
}

// AttachTag requires read access to the project. Attaching twice is a no-op.
func (s *TagService) AttachTag(
	ctx context.Context,
	projectID uuid.UUID,
	tagID uuid.UUID,
	user *users_models.User,
) error {
	if _, err := s.getUserTag(ctx, tagID, user); err != nil {
		return err
	}

	access, err := s.accessResolver.ResolveAccess(ctx, projectID, user.ID)
	if err != nil {
		return err
	}

	if err := access.RequireRead(); err != nil {
		return err
	}

	if err := s.tagRepository.AttachTag(ctx, projectID, tagID); err != nil {
		return fmt.Errorf("failed to attach tag: %w", err)
	}

	return nil
}

// DetachTag only checks tag ownership, so a tag can be cleaned up after
// access to the project was lost
func (s *TagService) DetachTag(
	ctx context.Context,
	projectID uuid.UUID,
	tagID uuid.UUID,
	user *users_models.User,
) error {
	if _, err := s.getUserTag(ctx, tagID, user); err != nil {
		return err
	}

	if err := s.tagRepository.DetachTag(ctx, projectID, tagID); err != nil {
		return fmt.Errorf("failed to detach tag: %w", err)
	}

	return nil
}

func (s *TagService) getUserTag(
	ctx context.Context,
	tagID uuid.UUID,
	user *users_models.User,
) (*projects_models.ProjectTag, error) {
	tag, err := s.tagRepository.GetTagByID(ctx, tagID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	// someone else's tag is reported as missing
	if tag == nil || tag.UserID != user.ID {
		return nil, apperrors.NotFound("tag not found")
	}

	return tag, nil
}

func normalizeTagName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", apperrors.BadRequest("tag name is required")
	}

	if utf8.RuneCountInString(name) > maxTagNameLength {
		return "", apperrors.BadRequest(fmt.Sprintf("tag name must be at most %d characters", maxTagNameLength))
	}

	return name, nil
}

func normalizeTagColor(raw string) (string, error) {
	color := strings.TrimSpace(raw)
	if color == "" {
		return DefaultTagColor, nil
	}

	if !tagColorPattern.MatchString(color) {
		return "", apperrors.BadRequest("tag color must be a hex color like #1a2b3c")
	}

	return strings.ToLower(color), nil
}

func normalizeTagEmoji(raw string) (string, error) {
	emoji := strings.TrimSpace(raw)
	if utf8.RuneCountInString(emoji) > maxTagEmojiLength {
		return "", apperrors.BadRequest("tag emoji is too long")
	}

	return emoji, nil
}

func (s *TagService) readableProjects(
	ctx context.Context,
	userID uuid.UUID,
	links []*projects_models.ProjectTagLink,
) (map[uuid.UUID]bool, error) {
	readable := make(map[uuid.UUID]bool, len(links))
	checked := make(map[uuid.UUID]struct{}, len(links))

	for _, link := range links {
		if _, ok := checked[link.ProjectID]; ok {
			continue
		}
		checked[link.ProjectID] = struct{}{}

		access, err := s.accessResolver.ResolveAccess(ctx, link.ProjectID, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}

			return nil, err
		}

		readable[link.ProjectID] = access.CanRead()
	}

	return readable, nil
}
