package projects_repositories

import (
	"context"

	projects_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/enums"
	projects_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/models"
	"github.com/SH20RAJ/sketchflow-sub001/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type DocumentRepository struct{}

func (r *DocumentRepository) GetDocument(
	ctx context.Context,
	projectID uuid.UUID,
	kind projects_enums.DocumentKind,
) (*projects_models.ProjectDocument, error) {
	var document projects_models.ProjectDocument

	err := storage.FromContext(ctx).
		Where("project_id = ? AND kind = ?", projectID, kind).
		First(&document).Error
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	return &document, nil
}

func (r *DocumentRepository) UpsertDocument(ctx context.Context, document *projects_models.ProjectDocument) error {
	return storage.FromContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "updated_by", "updated_at"}),
		}).
		Create(document).Error
}
