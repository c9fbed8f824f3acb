package projects_services

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SH20RAJ/sketchflow-sub001/internal/apperrors"
	"github.com/SH20RAJ/sketchflow-sub001/internal/features/activities"
	collaborators_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/enums"
	collaborators_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/models"
	"github.com/SH20RAJ/sketchflow-sub001/internal/features/permissions"
	projects_dto "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/dto"
	projects_interfaces "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/interfaces"
	projects_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/models"
	users_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/models"
	"github.com/SH20RAJ/sketchflow-sub001/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type ProjectService struct {
	projectRepository   projects_interfaces.ProjectRepository
	collaborationReader projects_interfaces.CollaborationReader
	accessResolver      permissions.AccessResolver
	activityWriter      projects_interfaces.ActivityWriter
	transactor          storage.Transactor
	projectCache        projects_interfaces.ProjectCache
	logger              *slog.Logger
}

func NewProjectService(
	projectRepository projects_interfaces.ProjectRepository,
	collaborationReader projects_interfaces.CollaborationReader,
	accessResolver permissions.AccessResolver,
	activityWriter projects_interfaces.ActivityWriter,
	transactor storage.Transactor,
	projectCache projects_interfaces.ProjectCache,
	logger *slog.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepository:   projectRepository,
		collaborationReader: collaborationReader,
		accessResolver:      accessResolver,
		activityWriter:      activityWriter,
		transactor:          transactor,
		projectCache:        projectCache,
		logger:              logger,
	}
}

func (s *ProjectService) CreateProject(
	ctx context.Context,
	request *projects_dto.CreateProjectRequestDTO,
	creator *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, apperrors.BadRequest("project name is required")
	}

	now := time.Now().UTC()
	project := &projects_models.Project{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(request.Description),
		OwnerID:     creator.ID,
		Shared:      request.Shared,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projectRepository.CreateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	if s.projectCache != nil {
		s.projectCache.Set(ctx, project)
	}

	s.logger.Info("project created",
		slog.String("projectId", project.ID.String()),
		slog.String("ownerId", creator.ID.String()))

	return projects_dto.ToProjectResponse(project, collaborators_enums.CollaboratorRoleOwner), nil
}

func (s *ProjectService) GetProject(
	ctx context.Context,
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	access, err := s.accessResolver.ResolveAccess(ctx, projectID, user.ID)
	if err != nil {
		return nil, err
	}

	if err := access.RequireRead(); err != nil {
		return nil, err
	}

	return projects_dto.ToProjectResponse(access.Project, access.Role()), nil
}

// GetUserProjects returns owned projects and accepted collaborations,
// most recently updated first
func (s *ProjectService) GetUserProjects(
	ctx context.Context,
	user *users_models.User,
) (*projects_dto.ListProjectsResponseDTO, error) {
	var (
		owned          []*projects_models.Project
		collaborations []*collaborators_models.ProjectCollaborator
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		owned, err = s.projectRepository.GetProjectsByOwner(groupCtx, user.ID)
		return err
	})
	group.Go(func() error {
		var err error
		collaborations, err = s.collaborationReader.GetUserCollaborations(
			groupCtx,
			user.ID,
			collaborators_enums.InviteStatusAccepted,
		)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("failed to get user projects: %w", err)
	}

	rolesByProject := make(map[uuid.UUID]collaborators_enums.CollaboratorRole, len(collaborations))
	projectIDs := make([]uuid.UUID, 0, len(collaborations))
	for _, collaboration := range collaborations {
		rolesByProject[collaboration.ProjectID] = collaboration.Role
		projectIDs = append(projectIDs, collaboration.ProjectID)
	}

	shared, err := s.projectRepository.GetProjectsByIDs(ctx, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get collaboration projects: %w", err)
	}

	result := make([]*projects_dto.ProjectResponseDTO, 0, len(owned)+len(shared))
	for _, project := range owned {
		result = append(result, projects_dto.ToProjectResponse(project, collaborators_enums.CollaboratorRoleOwner))
	}
	for _, project := range shared {
		result = append(result, projects_dto.ToProjectResponse(project, rolesByProject[project.ID]))
	}

	slices.SortStableFunc(result, func(a, b *projects_dto.ProjectResponseDTO) int {
		return cmp.Compare(b.UpdatedAt.UnixNano(), a.UpdatedAt.UnixNano())
	})

	return &projects_dto.ListProjectsResponseDTO{Projects: result}, nil
}

// UpdateProject applies the present fields. Toggling shared is recorded
// as an activity.
func (s *ProjectService) UpdateProject(
	ctx context.Context,
	projectID uuid.UUID,
	request *projects_dto.UpdateProjectRequestDTO,
	user *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	access, err := s.accessResolver.ResolveAccess(ctx, projectID, user.ID)
	if err != nil {
		return nil, err
	}

	if err := access.RequireOwner("only the project owner can update the project"); err != nil {
		return nil, err
	}

	if request.Name != nil && strings.TrimSpace(*request.Name) == "" {
		return nil, apperrors.BadRequest("project name cannot be empty")
	}

	var project *projects_models.Project

	err = s.transactor.InTransaction(ctx, func(ctx context.Context) error {
		var err error

		project, err = s.projectRepository.GetProjectByID(ctx, projectID)
		if err != nil {
			return fmt.Errorf("failed to get project: %w", err)
		}

		if project == nil {
			return apperrors.NotFound("project not found")
		}

		wasShared := project.Shared

		if request.Name != nil {
			project.Name = strings.TrimSpace(*request.Name)
		}
		if request.Description != nil {
			project.Description = strings.TrimSpace(*request.Description)
		}
		if request.Shared != nil {
			project.Shared = *request.Shared
		}
		project.UpdatedAt = time.Now().UTC()

		if err := s.projectRepository.UpdateProject(ctx, project); err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}

		if project.Shared == wasShared {
			return nil
		}

		return s.activityWriter.Append(ctx, projectID, user.ID, activities.ProjectSharingChangedDetails{
			Shared: project.Shared,
		})
	})
	if err != nil {
		return nil, err
	}

	if s.projectCache != nil {
		s.projectCache.Invalidate(ctx, projectID)
	}

	return projects_dto.ToProjectResponse(project, collaborators_enums.CollaboratorRoleOwner), nil
}

// DeleteProject removes the project with all its collaborators, comments,
// activities, documents and tag links
func (s *ProjectService) DeleteProject(
	ctx context.Context,
	projectID uuid.UUID,
	user *users_models.User,
) error {
	access, err := s.accessResolver.ResolveAccess(ctx, projectID, user.ID)
	if err != nil {
		return err
	}

	if err := access.RequireOwner("only the project owner can delete the project"); err != nil {
		return err
	}

	if err := s.projectRepository.DeleteProject(ctx, projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if s.projectCache != nil {
		s.projectCache.Invalidate(ctx, projectID)
	}

	s.logger.Info("project deleted",
		slog.String("projectId", projectID.String()),
		slog.String("ownerId", user.ID.String()))

	return nil
}
