package projects_controllers

import (
	projects_services "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/services"
	"github.com/SH20RAJ/sketchflow-sub001/internal/util/logger"
)

var projectController = &ProjectController{
	projectService: projects_services.GetProjectService(),
	logger:         logger.GetLogger(),
}

var tagController = &TagController{
	tagService: projects_services.GetTagService(),
	logger:     logger.GetLogger(),
}

var documentController = &DocumentController{
	documentService: projects_services.GetDocumentService(),
	logger:          logger.GetLogger(),
}

func GetProjectController() *ProjectController {
	return projectController
}

func GetTagController() *TagController {
	return tagController
}

func GetDocumentController() *DocumentController {
	return documentController
}
