package projects_repositories

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	projects_models "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/models"
	cache_utils "github.com/SH20RAJ/sketchflow-sub001/internal/util/cache"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
	"golang.org/x/sync/singleflight"
)

const projectCacheExpiry = time.Minute

type ProjectLoader interface {
	GetProjectsByIDs(ctx context.Context, projectIDs []uuid.UUID) ([]*projects_models.Project, error)
}

// ProjectCache serves project rows for display, such as the names shown on
// pending invitations. Entries may lag behind the database until they expire,
// so authorization must never read through it.
type ProjectCache struct {
	loader    ProjectLoader
	cacheUtil *cache_utils.CacheUtil[projects_models.Project]
	group     singleflight.Group
}

func NewProjectCache(loader ProjectLoader, getClient func() valkey.Client) *ProjectCache {
	return &ProjectCache{
		loader:    loader,
		cacheUtil: cache_utils.NewCacheUtil[projects_models.Project](getClient, "sf_project:").WithExpiry(projectCacheExpiry),
	}
}

// GetProjectsByIDs returns the cached rows and loads the rest in one query.
// Ids that do not exist are left out of the result.
func (c *ProjectCache) GetProjectsByIDs(
	ctx context.Context,
	projectIDs []uuid.UUID,
) ([]*projects_models.Project, error) {
	projects := make([]*projects_models.Project, 0, len(projectIDs))
	missing := make([]uuid.UUID, 0)

	for _, projectID := range projectIDs {
		if cached := c.cacheUtil.Get(ctx, projectID.String()); cached != nil {
			projects = append(projects, cached)
			continue
		}

		missing = append(missing, projectID)
	}

	if len(missing) == 0 {
		return projects, nil
	}

	loaded, err := c.load(ctx, missing)
	if err != nil {
		return nil, err
	}

	return append(projects, loaded...), nil
}

func (c *ProjectCache) Set(ctx context.Context, project *projects_models.Project) {
	c.cacheUtil.Set(ctx, project.ID.String(), project)
}

func (c *ProjectCache) Invalidate(ctx context.Context, projectID uuid.UUID) {
	c.cacheUtil.Invalidate(ctx, projectID.String())
}

// load collapses concurrent loads of the same id set. The shared load must
// not fail because the request that started it went away.
func (c *ProjectCache) load(ctx context.Context, projectIDs []uuid.UUID) ([]*projects_models.Project, error) {
	keys := make([]string, 0, len(projectIDs))
	for _, projectID := range projectIDs {
		keys = append(keys, projectID.String())
	}
	slices.Sort(keys)

	result, err, _ := c.group.Do(strings.Join(keys, ","), func() (any, error) {
		loadCtx := context.WithoutCancel(ctx)

		projects, err := c.loader.GetProjectsByIDs(loadCtx, projectIDs)
		if err != nil {
			return nil, err
		}

		for _, project := range projects {
			c.Set(loadCtx, project)
		}

		return projects, nil
	})
	if err != nil {
		return nil, err
	}

	projects, ok := result.([]*projects_models.Project)
	if !ok {
		return nil, fmt.Errorf("unexpected project lookup result %T", result)
	}

	return projects, nil
}
