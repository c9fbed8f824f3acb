package system_healthcheck

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shirou/gopsutil/v4/disk"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

// A disk with less free space than this is reported as degraded
const minFreeDiskPercent = 5.0

type DependencyCheck func(ctx context.Context) error

type HealthcheckService struct {
	checkDatabase DependencyCheck
	checkCache    DependencyCheck
	getDiskPath   func() string
	logger        *slog.Logger
}

func NewHealthcheckService(
	checkDatabase DependencyCheck,
	checkCache DependencyCheck,
	diskPath string,
	logger *slog.Logger,
) *HealthcheckService {
	return &HealthcheckService{
		checkDatabase: checkDatabase,
		checkCache:    checkCache,
		getDiskPath:   func() string { return diskPath },
		logger:        logger,
	}
}

func (s *HealthcheckService) GetHealth(ctx context.Context) *HealthcheckResponseDTO {
	response := &HealthcheckResponseDTO{
		Status:   StatusOK,
		Database: s.runCheck(ctx, "database", s.checkDatabase),
		Cache:    s.runCheck(ctx, "cache", s.checkCache),
	}

	diskStatus, err := s.getDiskStatus(ctx)
	if err != nil {
		s.logger.Warn("disk usage check failed", slog.String("error", err.Error()))
	}
	response.Disk = diskStatus

	if response.Database.Status != StatusOK || response.Cache.Status != StatusOK {
		response.Status = StatusDegraded
	}
	if diskStatus != nil && diskStatus.FreePercent < minFreeDiskPercent {
		response.Status = StatusDegraded
	}

	return response
}

func (s *HealthcheckService) runCheck(ctx context.Context, name string, check DependencyCheck) ComponentStatusDTO {
	if err := check(ctx); err != nil {
		s.logger.Warn("health check failed",
			slog.String("component", name),
			slog.String("error", err.Error()))

		return ComponentStatusDTO{Status: StatusDegraded, Error: err.Error()}
	}

	return ComponentStatusDTO{Status: StatusOK}
}

func (s *HealthcheckService) getDiskStatus(ctx context.Context) (*DiskStatusDTO, error) {
	path := s.getDiskPath()

	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read disk usage of %s: %w", path, err)
	}

	return &DiskStatusDTO{
		Path:        usage.Path,
		TotalBytes:  usage.Total,
		FreeBytes:   usage.Free,
		UsedPercent: usage.UsedPercent,
		FreePercent: 100 - usage.UsedPercent,
	}, nil
}
