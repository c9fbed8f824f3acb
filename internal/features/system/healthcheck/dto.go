package system_healthcheck

type ComponentStatusDTO struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type DiskStatusDTO struct {
	Path        string  `json:"path"`
	TotalBytes  uint64  `json:"totalBytes"`
	FreeBytes   uint64  `json:"freeBytes"`
	UsedPercent float64 `json:"usedPercent"`
	FreePercent float64 `json:"freePercent"`
}

type HealthcheckResponseDTO struct {
	Status   string             `json:"status"`
	Database ComponentStatusDTO `json:"database"`
	Cache    ComponentStatusDTO `json:"cache"`
	Disk     *DiskStatusDTO     `json:"disk"`
}
