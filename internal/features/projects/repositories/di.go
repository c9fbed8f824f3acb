package projects_repositories

import "github.com/SH20RAJ/sketchflow-sub001/internal/cache"

var projectCache = NewProjectCache(&ProjectRepository{}, cache.GetCache)

// GetProjectCache is read by the invitation listing and invalidated by the
// project service after updates and deletes
func GetProjectCache() *ProjectCache {
	return projectCache
}
