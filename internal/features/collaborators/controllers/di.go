package collaborators_controllers

import (
	collaborators_services "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/services"
	"github.com/SH20RAJ/sketchflow-sub001/internal/util/logger"
)

var collaboratorController = &CollaboratorController{
	collaboratorService: collaborators_services.GetCollaboratorService(),
	logger:              logger.GetLogger(),
}

func GetCollaboratorController() *CollaboratorController {
	return collaboratorController
}

func NewCollaboratorController(
	collaboratorService *collaborators_services.CollaboratorService,
) *CollaboratorController {
	return &CollaboratorController{
		collaboratorService: collaboratorService,
		logger:              logger.GetLogger(),
	}
}
