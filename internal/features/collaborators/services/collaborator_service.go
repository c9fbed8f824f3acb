package collaborators_services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SH20RAJ/sketchflow-sub001/internal/apperrors"
	"github.com/SH20RAJ/sketchflow-sub001/internal/email"
	"github.com/SH20RAJ/sketchflow-sub001/internal/features/activities"
	collaborators_dto "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/dto"
	collaborators_enums "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/enums"
	collaborators_interfaces "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/interfaces"
	collaborators_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/models"
	"github.com/SH20RAJ/sketchflow-sub001/internal/features/permissions"
	projects_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/models"
	users_dto "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/dto"
	users_interfaces "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/interfaces"
	users_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/models"
	"github.com/SH20RAJ/sketchflow-sub001/internal/storage"
	"github.com/SH20RAJ/sketchflow-sub001/internal/util/rate_limit"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const invitationEmailTimeout = 10 * time.Second

var inviteRateLimit = rate_limit.Limit{PerMinute: 30, Burst: 10}

type CollaboratorService struct {
	collaboratorRepository collaborators_interfaces.CollaboratorRepository
	userRepository         users_interfaces.UserRepository
	projectReader          collaborators_interfaces.ProjectReader
	accessResolver         permissions.AccessResolver
	activityWriter         collaborators_interfaces.ActivityWriter
	transactor             storage.Transactor
	notifier               collaborators_interfaces.InvitationNotifier
	rateLimiter            collaborators_interfaces.RateLimiter
	logger                 *slog.Logger
}

func NewCollaboratorService(
	collaboratorRepository collaborators_interfaces.CollaboratorRepository,
	userRepository users_interfaces.UserRepository,
	projectReader collaborators_interfaces.ProjectReader,
	accessResolver permissions.AccessResolver,
	activityWriter collaborators_interfaces.ActivityWriter,
	transactor storage.Transactor,
	notifier collaborators_interfaces.InvitationNotifier,
	rateLimiter collaborators_interfaces.RateLimiter,
	logger *slog.Logger,
) *CollaboratorService {
	return &CollaboratorService{
		collaboratorRepository: collaboratorRepository,
		userRepository:         userRepository,
		projectReader:          projectReader,
		accessResolver:         accessResolver,
		activityWriter:         activityWriter,
		transactor:             transactor,
		notifier:               notifier,
		rateLimiter:            rateLimiter,
		logger:                 logger,
	}
}

func (s *CollaboratorService) Invite(
	ctx context.Context,
	projectID uuid.UUID,
	inviter *users_models.User,
	request *collaborators_dto.InviteCollaboratorRequestDTO,
) (*collaborators_dto.CollaboratorResponseDTO, error) {
	access, err := s.accessResolver.ResolveAccess(ctx, projectID, inviter.ID)
	if err != nil {
		return nil, err
	}

	if err := access.RequireOwner("only the project owner can invite collaborators"); err != nil {
		return nil, err
	}

	role := request.Role
	if role == "" {
		role = collaborators_enums.CollaboratorRoleViewer
	}

	if !role.IsValid() {
		return nil, apperrors.BadRequest("invalid role, expected EDITOR, COMMENTER or VIEWER")
	}

	if err := s.checkRateLimit(ctx, "invite:"+inviter.ID.String(), inviteRateLimit); err != nil {
		return nil, err
	}

	invitee, err := s.userRepository.GetUserByEmail(ctx, request.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitee: %w", err)
	}

	if invitee == nil {
		return nil, apperrors.NotFound("user with this email does not exist")
	}

	if access.Project.IsOwnedBy(invitee.ID) {
		return nil, apperrors.BadRequest("project owner cannot be invited as a collaborator")
	}

	collaborator := &collaborators_models.ProjectCollaborator{
		ProjectID:    projectID,
		UserID:       invitee.ID,
		Role:         role,
		InviteStatus: collaborators_enums.InviteStatusPending,
		InvitedBy:    inviter.ID,
		InvitedAt:    time.Now().UTC(),
	}

	err = s.transactor.InTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.collaboratorRepository.GetCollaborator(ctx, projectID, invitee.ID)
		if err != nil {
			return fmt.Errorf("failed to check existing collaborator: %w", err)
		}

		if existing != nil {
			return apperrors.ErrAlreadyCollaborator.WithMessage(fmt.Sprintf(
				"user is already a collaborator on this project (invitation %s)",
				strings.ToLower(string(existing.InviteStatus)),
			))
		}

		if err := s.collaboratorRepository.CreateCollaborator(ctx, collaborator); err != nil {
			if storage.IsUniqueViolation(err) {
				return apperrors.ErrAlreadyCollaborator
			}

			return fmt.Errorf("failed to create collaborator: %w", err)
		}

		return s.activityWriter.Append(ctx, projectID, inviter.ID, activities.InvitedCollaboratorDetails{
			InviteeID:    invitee.ID,
			InviteeEmail: invitee.Email,
			Role:         role,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("collaborator invited",
		slog.String("projectId", projectID.String()),
		slog.String("inviteeId", invitee.ID.String()),
		slog.String("role", string(role)))

	s.sendInvitationEmail(ctx, access.Project, inviter, invitee, role)

	return collaborators_dto.ToCollaboratorResponse(collaborator, users_dto.ToPublicProfile(invitee)), nil
}

func (s *CollaboratorService) RespondToInvite(
	ctx context.Context,
	projectID uuid.UUID,
	user *users_models.User,
	request *collaborators_dto.RespondToInvitationRequestDTO,
) (*collaborators_dto.RespondToInvitationResponseDTO, error) {
	if !request.Status.IsDecision() {
		return nil, apperrors.BadRequest("status must be ACCEPTED or REJECTED")
	}

	var collaborator *collaborators_models.ProjectCollaborator

	err := s.transactor.InTransaction(ctx, func(ctx context.Context) error {
		var err error

		collaborator, err = s.collaboratorRepository.GetCollaboratorForUpdate(ctx, projectID, user.ID)
		if err != nil {
			return fmt.Errorf("failed to get invitation: %w", err)
		}

		if collaborator == nil {
			return apperrors.NotFound("invitation not found")
		}

		if !collaborator.IsPending() {
			return apperrors.ErrAlreadyProcessed
		}

		collaborator.InviteStatus = request.Status
		if request.Status == collaborators_enums.InviteStatusAccepted {
			acceptedAt := time.Now().UTC()
			collaborator.AcceptedAt = &acceptedAt
		}

		if err := s.collaboratorRepository.UpdateCollaborator(ctx, collaborator); err != nil {
			return fmt.Errorf("failed to update invitation: %w", err)
		}

		return s.activityWriter.Append(ctx, projectID, user.ID, activities.InvitationResponseDetails{
			Status: request.Status,
			Role:   collaborator.Role,
		})
	})
	if err != nil {
		return nil, err
	}

	message := "Invitation rejected"
	if request.Status == collaborators_enums.InviteStatusAccepted {
		message = "Invitation accepted"
	}

	return &collaborators_dto.RespondToInvitationResponseDTO{
		Collaborator: collaborators_dto.ToCollaboratorResponse(collaborator, users_dto.ToPublicProfile(user)),
		Message:      message,
	}, nil
}

// UpdateRole changes the role of any collaborator row, pending ones included.
// Setting the current role again is a no-op and records no activity.
func (s *CollaboratorService) UpdateRole(
	ctx context.Context,
	projectID uuid.UUID,
	requester *users_models.User,
	targetUserID uuid.UUID,
	request *collaborators_dto.UpdateCollaboratorRoleRequestDTO,
) (*collaborators_dto.CollaboratorResponseDTO, error) {
	access, err := s.accessResolver.ResolveAccess(ctx, projectID, requester.ID)
	if err != nil {
		return nil, err
	}

	if err := access.RequireOwner("only the project owner can change collaborator roles"); err != nil {
		return nil, err
	}

	if !request.Role.IsValid() {
		return nil, apperrors.BadRequest("invalid role, expected EDITOR, COMMENTER or VIEWER")
	}

	var collaborator *collaborators_models.ProjectCollaborator

	err = s.transactor.InTransaction(ctx, func(ctx context.Context) error {
		var err error

		collaborator, err = s.collaboratorRepository.GetCollaboratorForUpdate(ctx, projectID, targetUserID)
		if err != nil {
			return fmt.Errorf("failed to get collaborator: %w", err)
		}

		if collaborator == nil {
			return apperrors.NotFound("collaborator not found")
		}

		oldRole := collaborator.Role
		if oldRole == request.Role {
			return nil
		}

		collaborator.Role = request.Role
		if err := s.collaboratorRepository.UpdateCollaborator(ctx, collaborator); err != nil {
			return fmt.Errorf("failed to update collaborator: %w", err)
		}

		return s.activityWriter.Append(ctx, projectID, requester.ID, activities.RoleUpdatedDetails{
			TargetUserID: targetUserID,
			OldRole:      oldRole,
			NewRole:      request.Role,
		})
	})
	if err != nil {
		return nil, err
	}

	target, err := s.userRepository.GetUserByID(ctx, targetUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get collaborator profile: %w", err)
	}

	return collaborators_dto.ToCollaboratorResponse(collaborator, users_dto.ToPublicProfile(target)), nil
}

// Remove deletes a collaborator row. The owner may remove anyone, any other
// user may only remove themselves.
func (s *CollaboratorService) Remove(
	ctx context.Context,
	projectID uuid.UUID,
	requester *users_models.User,
	targetUserID uuid.UUID,
) error {
	access, err := s.accessResolver.ResolveAccess(ctx, projectID, requester.ID)
	if err != nil {
		return err
	}

	isSelf := requester.ID == targetUserID
	if !access.IsOwner() && !isSelf {
		return apperrors.Forbidden("only the project owner can remove other collaborators")
	}

	return s.transactor.InTransaction(ctx, func(ctx context.Context) error {
		collaborator, err := s.collaboratorRepository.GetCollaboratorForUpdate(ctx, projectID, targetUserID)
		if err != nil {
			return fmt.Errorf("failed to get collaborator: %w", err)
		}

		if collaborator == nil {
			return apperrors.NotFound("collaborator not found")
		}

		if err := s.collaboratorRepository.DeleteCollaborator(ctx, projectID, targetUserID); err != nil {
			return fmt.Errorf("failed to delete collaborator: %w", err)
		}

		return s.activityWriter.Append(ctx, projectID, requester.ID, activities.CollaboratorRemovedDetails{
			TargetUserID: targetUserID,
			Role:         collaborator.Role,
			SelfRemoval:  isSelf,
		})
	})
}

// List returns the owner first, then every collaborator row newest invitation first
func (s *CollaboratorService) List(
	ctx context.Context,
	projectID uuid.UUID,
	requester *users_models.User,
) (*collaborators_dto.ListCollaboratorsResponseDTO, error) {
	access, err := s.accessResolver.ResolveAccess(ctx, projectID, requester.ID)
	if err != nil {
		return nil, err
	}

	if err := access.RequireRead(); err != nil {
		return nil, err
	}

	var (
		owner         *users_models.User
		collaborators []*collaborators_models.ProjectCollaborator
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		owner, err = s.userRepository.GetUserByID(groupCtx, access.Project.OwnerID)
		return err
	})
	group.Go(func() error {
		var err error
		collaborators, err = s.collaboratorRepository.GetProjectCollaborators(groupCtx, projectID)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("failed to get collaborators: %w", err)
	}

	userIDs := make([]uuid.UUID, 0, len(collaborators))
	for _, collaborator := range collaborators {
		userIDs = append(userIDs, collaborator.UserID)
	}

	profiles, err := s.getProfiles(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	result := make([]*collaborators_dto.CollaboratorResponseDTO, 0, len(collaborators)+1)
	result = append(result, &collaborators_dto.CollaboratorResponseDTO{
		ProjectID: projectID,
		UserID:    access.Project.OwnerID,
		Role:      collaborators_enums.CollaboratorRoleOwner,
		IsOwner:   true,
		User:      users_dto.ToPublicProfile(owner),
	})

	for _, collaborator := range collaborators {
		result = append(result, collaborators_dto.ToCollaboratorResponse(collaborator, profiles[collaborator.UserID]))
	}

	return &collaborators_dto.ListCollaboratorsResponseDTO{
		Collaborators: result,
		IsOwner:       access.IsOwner(),
	}, nil
}

func (s *CollaboratorService) ListPendingInvitations(
	ctx context.Context,
	user *users_models.User,
) (*collaborators_dto.ListInvitationsResponseDTO, error) {
	pending, err := s.collaboratorRepository.GetUserCollaborations(
		ctx,
		user.ID,
		collaborators_enums.InviteStatusPending,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitations: %w", err)
	}

	projectIDs := make([]uuid.UUID, 0, len(pending))
	inviterIDs := make([]uuid.UUID, 0, len(pending))
	for _, invitation := range pending {
		projectIDs = append(projectIDs, invitation.ProjectID)
		inviterIDs = append(inviterIDs, invitation.InvitedBy)
	}

	var (
		projects []*projects_models.Project
		inviters map[uuid.UUID]*users_dto.PublicProfileDTO
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		projects, err = s.projectReader.GetProjectsByIDs(groupCtx, projectIDs)
		return err
	})
	group.Go(func() error {
		var err error
		inviters, err = s.getProfiles(groupCtx, inviterIDs)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("failed to get invitation details: %w", err)
	}

	projectsByID := make(map[uuid.UUID]*projects_models.Project, len(projects))
	for _, project := range projects {
		projectsByID[project.ID] = project
	}

	invitations := make([]*collaborators_dto.InvitationResponseDTO, 0, len(pending))
	for _, invitation := range pending {
		project, ok := projectsByID[invitation.ProjectID]
		if !ok {
			continue
		}

		invitations = append(invitations, &collaborators_dto.InvitationResponseDTO{
			ProjectID:   project.ID,
			ProjectName: project.Name,
			Role:        invitation.Role,
			InvitedAt:   invitation.InvitedAt,
			InvitedBy:   inviters[invitation.InvitedBy],
		})
	}

	return &collaborators_dto.ListInvitationsResponseDTO{Invitations: invitations}, nil
}

func (s *CollaboratorService) getProfiles(
	ctx context.Context,
	userIDs []uuid.UUID,
) (map[uuid.UUID]*users_dto.PublicProfileDTO, error) {
	users, err := s.userRepository.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get user profiles: %w", err)
	}

	profiles := make(map[uuid.UUID]*users_dto.PublicProfileDTO, len(users))
	for _, user := range users {
		profiles[user.ID] = users_dto.ToPublicProfile(user)
	}

	return profiles, nil
}

// checkRateLimit fails open when the limiter itself is unavailable
func (s *CollaboratorService) checkRateLimit(ctx context.Context, key string, limit rate_limit.Limit) error {
	if s.rateLimiter == nil {
		return nil
	}

	result, err := s.rateLimiter.CheckRateLimit(ctx, key, limit)
	if err != nil {
		s.logger.Warn("rate limiter unavailable, allowing request",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return nil
	}

	if !result.Allowed {
		return apperrors.RateLimited(fmt.Sprintf(
			"too many invitations, try again in %d seconds",
			result.RetryAfterSec,
		))
	}

	return nil
}

func (s *CollaboratorService) sendInvitationEmail(
	ctx context.Context,
	project *projects_models.Project,
	inviter *users_models.User,
	invitee *users_models.User,
	role collaborators_enums.CollaboratorRole,
) {
	if s.notifier == nil || !s.notifier.IsConfigured() {
		return
	}

	emailCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), invitationEmailTimeout)
	defer cancel()

	inviterName := inviter.Name
	if inviterName == "" {
		inviterName = inviter.Email
	}

	err := s.notifier.SendInvitation(emailCtx, email.InvitationData{
		InviteeName:  invitee.Name,
		InviteeEmail: invitee.Email,
		InviterName:  inviterName,
		ProjectName:  project.Name,
		Role:         string(role),
	})
	if err != nil {
		s.logger.Warn("failed to send invitation email",
			slog.String("projectId", project.ID.String()),
			slog.String("inviteeId", invitee.ID.String()),
			slog.String("error", err.Error()))
	}
}
