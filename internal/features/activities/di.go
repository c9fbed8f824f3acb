package activities

import (
	"github.com/SH20RAJ/sketchflow-sub001/internal/features/permissions"
	"github.com/SH20RAJ/sketchflow-sub001/internal/util/logger"
)

var activityRepository = &ActivityRepository{}
var activityService = &ActivityService{
	activityStore:  activityRepository,
	accessResolver: permissions.GetPermissionService(),
	logger:         logger.GetLogger(),
}
var activityController = &ActivityController{
	activityService: activityService,
	logger:          logger.GetLogger(),
}

func GetActivityService() *ActivityService {
	return activityService
}

func GetActivityController() *ActivityController {
	return activityController
}

func NewActivityController(activityService *ActivityService) *ActivityController {
	return &ActivityController{
		activityService: activityService,
		logger:          logger.GetLogger(),
	}
}
