package projects_services

import (
	"github.com/SH20RAJ/sketchflow-sub001/internal/features/activities"
	collaborators_repositories "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/repositories"
	"github.com/SH20RAJ/sketchflow-sub001/internal/features/permissions"
	projects_repositories "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/repositories"
	"github.com/SH20RAJ/sketchflow-sub001/internal/storage"
	"github.com/SH20RAJ/sketchflow-sub001/internal/util/logger"
)

var projectRepository = &projects_repositories.ProjectRepository{}

var projectService = &ProjectService{
	projectRepository:   projectRepository,
	collaborationReader: &collaborators_repositories.CollaboratorRepository{},
	accessResolver:      permissions.GetPermissionService(),
	activityWriter:      activities.GetActivityService(),
	transactor:          &storage.GormTransactor{},
	projectCache:        projects_repositories.GetProjectCache(),
	logger:              logger.GetLogger(),
}

var tagService = &TagService{
	tagRepository:  &projects_repositories.TagRepository{},
	accessResolver: permissions.GetPermissionService(),
}

var documentService = &DocumentService{
	documentRepository: &projects_repositories.DocumentRepository{},
	accessResolver:     permissions.GetPermissionService(),
	activityWriter:     activities.GetActivityService(),
	transactor:         &storage.GormTransactor{},
}

func GetProjectService() *ProjectService {
	return projectService
}

func GetTagService() *TagService {
	return tagService
}

func GetDocumentService() *DocumentService {
	return documentService
}
