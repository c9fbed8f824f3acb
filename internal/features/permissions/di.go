package permissions

import (
	collaborators_repositories "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/repositories"
	projects_repositories "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/repositories"
)

var permissionService = &PermissionService{
	projectReader:      &projects_repositories.ProjectRepository{},
	collaboratorReader: &collaborators_repositories.CollaboratorRepository{},
}

func GetPermissionService() *PermissionService {
	return permissionService
}
