package projects_repositories

import (
	"context"

	projects_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/models"
	"github.com/SH20RAJ/sketchflow-sub001/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type TagRepository struct{}

func (r *TagRepository) CreateTag(ctx context.Context, tag *projects_models.ProjectTag) error {
	if tag.ID == uuid.Nil {
		tag.ID = uuid.New()
	}

	return storage.FromContext(ctx).Create(tag).Error
}

func (r *TagRepository) GetTagByID(ctx context.Context, tagID uuid.UUID) (*projects_models.ProjectTag, error) {
	var tag projects_models.ProjectTag

	if err := storage.FromContext(ctx).Where("id = ?", tagID).First(&tag).Error; err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	return &tag, nil
}

func (r *TagRepository) GetTagsByUser(ctx context.Context, userID uuid.UUID) ([]*projects_models.ProjectTag, error) {
	var tags = make([]*projects_models.ProjectTag, 0)

	err := storage.FromContext(ctx).
		Where("user_id = ?", userID).
		Order("LOWER(name) ASC").
		Find(&tags).Error

	return tags, err
}

func (r *TagRepository) UpdateTag(ctx context.Context, tag *projects_models.ProjectTag) error {
	return storage.FromContext(ctx).Save(tag).Error
}

func (r *TagRepository) DeleteTag(ctx context.Context, tagID uuid.UUID) error {
	return storage.FromContext(ctx).Where("id = ?", tagID).Delete(&projects_models.ProjectTag{}).Error
}

// AttachTag is idempotent
func (r *TagRepository) AttachTag(ctx context.Context, projectID, tagID uuid.UUID) error {
	return storage.FromContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&projects_models.ProjectTagLink{ProjectID: projectID, TagID: tagID}).Error
}

func (r *TagRepository) DetachTag(ctx context.Context, projectID, tagID uuid.UUID) error {
	return storage.FromContext(ctx).
		Where("project_id = ? AND tag_id = ?", projectID, tagID).
		Delete(&projects_models.ProjectTagLink{}).Error
}

func (r *TagRepository) GetTagLinks(
	ctx context.Context,
	tagIDs []uuid.UUID,
) ([]*projects_models.ProjectTagLink, error) {
	var links = make([]*projects_models.ProjectTagLink, 0)

	if len(tagIDs) == 0 {
		return links, nil
	}

	err := storage.FromContext(ctx).Where("tag_id IN ?", tagIDs).Find(&links).Error

	return links, err
}
