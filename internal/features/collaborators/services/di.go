package collaborators_services

import (
	"github.com/SH20RAJ/sketchflow-sub001/internal/email"
	"github.com/SH20RAJ/sketchflow-sub001/internal/features/activities"
	collaborators_repositories "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/repositories"
	"github.com/SH20RAJ/sketchflow-sub001/internal/features/permissions"
	projects_repositories "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/repositories"
	users_services "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/services"
	"github.com/SH20RAJ/sketchflow-sub001/internal/storage"
	"github.com/SH20RAJ/sketchflow-sub001/internal/util/logger"
	"github.com/SH20RAJ/sketchflow-sub001/internal/util/rate_limit"
)

var collaboratorService = &CollaboratorService{
	collaboratorRepository: &collaborators_repositories.CollaboratorRepository{},
	userRepository:         users_services.GetUserRepository(),
	projectReader:          projects_repositories.GetProjectCache(),
	accessResolver:         permissions.GetPermissionService(),
	activityWriter:         activities.GetActivityService(),
	transactor:             &storage.GormTransactor{},
	notifier:               email.GetEmailService(),
	rateLimiter:            rate_limit.NewRateLimiter(),
	logger:                 logger.GetLogger(),
}

func GetCollaboratorService() *CollaboratorService {
	return collaboratorService
}
