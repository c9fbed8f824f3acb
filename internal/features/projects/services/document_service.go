package projects_services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SH20RAJ/sketchflow-sub001/internal/apperrors"
	"github.com/SH20RAJ/sketchflow-sub001/internal/features/activities"
	"github.com/SH20RAJ/sketchflow-sub001/internal/features/permissions"
	projects_dto "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/dto"
	projects_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/enums"
	projects_interfaces "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/interfaces"
	projects_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/models"
	users_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/models"
	"github.com/SH20RAJ/sketchflow-sub001/internal/storage"

	"github.com/google/uuid"
)

const MaxDocumentBytes = 10 << 20

type DocumentService struct {
	documentRepository projects_interfaces.DocumentRepository
	accessResolver     permissions.AccessResolver
	activityWriter     projects_interfaces.ActivityWriter
	transactor         storage.Transactor
}

func NewDocumentService(
	documentRepository projects_interfaces.DocumentRepository,
	accessResolver permissions.AccessResolver,
	activityWriter projects_interfaces.ActivityWriter,
	transactor storage.Transactor,
) *DocumentService {
	return &DocumentService{
		documentRepository: documentRepository,
		accessResolver:     accessResolver,
		activityWriter:     activityWriter,
		transactor:         transactor,
	}
}

// GetDocument returns an empty document when nothing was saved yet
func (s *DocumentService) GetDocument(
	ctx context.Context,
	projectID uuid.UUID,
	kind projects_enums.DocumentKind,
	user *users_models.User,
) (*projects_dto.DocumentResponseDTO, error) {
	access, err := s.accessResolver.ResolveAccess(ctx, projectID, user.ID)
	if err != nil {
		return nil, err
	}

	if err := access.RequireRead(); err != nil {
		return nil, err
	}

	document, err := s.documentRepository.GetDocument(ctx, projectID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	if document == nil {
		return &projects_dto.DocumentResponseDTO{ProjectID: projectID, Kind: kind}, nil
	}

	return toDocumentResponse(document), nil
}

// SaveDocument replaces the whole document. Diagram scenes must be JSON.
func (s *DocumentService) SaveDocument(
	ctx context.Context,
	projectID uuid.UUID,
	kind projects_enums.DocumentKind,
	request *projects_dto.UpdateDocumentRequestDTO,
	user *users_models.User,
) (*projects_dto.DocumentResponseDTO, error) {
	access, err := s.accessResolver.ResolveAccess(ctx, projectID, user.ID)
	if err != nil {
		return nil, err
	}

	if err := access.RequireRead(); err != nil {
		return nil, err
	}

	if !access.CanEdit() {
		return nil, apperrors.Forbidden("your role does not allow editing this project")
	}

	if len(request.Content) > MaxDocumentBytes {
		return nil, apperrors.BadRequest("document is too large")
	}

	if kind == projects_enums.DocumentKindDiagram && request.Content != "" && !json.Valid([]byte(request.Content)) {
		return nil, apperrors.BadRequest("diagram content must be valid JSON")
	}

	updatedBy := user.ID
	document := &projects_models.ProjectDocument{
		ProjectID: projectID,
		Kind:      kind,
		Content:   request.Content,
		UpdatedBy: &updatedBy,
		UpdatedAt: time.Now().UTC(),
	}

	err = s.transactor.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.documentRepository.UpsertDocument(ctx, document); err != nil {
			return fmt.Errorf("failed to save document: %w", err)
		}

		return s.activityWriter.Append(ctx, projectID, user.ID, activities.DocumentUpdatedDetails{
			Kind:  kind,
			Bytes: len(document.Content),
		})
	})
	if err != nil {
		return nil, err
	}

	return toDocumentResponse(document), nil
}

func toDocumentResponse(document *projects_models.ProjectDocument) *projects_dto.DocumentResponseDTO {
	updatedAt := document.UpdatedAt

	return &projects_dto.DocumentResponseDTO{
		ProjectID: document.ProjectID,
		Kind:      document.Kind,
		Content:   document.Content,
		UpdatedBy: document.UpdatedBy,
		UpdatedAt: &updatedAt,
	}
}
