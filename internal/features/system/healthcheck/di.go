package system_healthcheck

import (
	"context"
	"fmt"

	"github.com/SH20RAJ/sketchflow-sub001/internal/cache"
	"github.com/SH20RAJ/sketchflow-sub001/internal/config"
	"github.com/SH20RAJ/sketchflow-sub001/internal/storage"
	"github.com/SH20RAJ/sketchflow-sub001/internal/util/logger"
)

var healthcheckService = &HealthcheckService{
	checkDatabase: checkDatabase,
	checkCache:    checkCache,
	getDiskPath:   diskPath,
	logger:        logger.GetLogger(),
}
var healthcheckController = &HealthcheckController{
	healthcheckService,
}

func GetHealthcheckController() *HealthcheckController {
	return healthcheckController
}

func NewHealthcheckController(healthcheckService *HealthcheckService) *HealthcheckController {
	return &HealthcheckController{healthcheckService}
}

func checkDatabase(ctx context.Context) error {
	if err := storage.GetDb().WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}

	return nil
}

func checkCache(_ context.Context) error {
	if err := cache.Ping(cache.GetCache()); err != nil {
		return fmt.Errorf("cache check failed: %w", err)
	}

	return nil
}

// diskPath is the volume the backend runs from
func diskPath() string {
	return config.GetEnv().BackendRootPath
}
