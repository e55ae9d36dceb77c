package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/aTrapDeer/portfolio/internal/cache"
	"github.com/aTrapDeer/portfolio/internal/models"
)

const (
	skillsKey     = "skills"
	projectsKey   = "projects"
	milestonesKey = "milestones"
)

// CachedStore serves list reads from a cache and drops a kind's cached
// lists whenever that kind is written. Every other call goes straight to
// the wrapped Store.
//
// Keys carry a per-kind generation that every write bumps, so a list fetched
// before a write and stored after it lands under a key no reader asks for.
// Generations are per process: with a shared Redis cache another instance's
// slow read can still repopulate a stale list until CACHE_TTL expires it.
type CachedStore struct {
	Store
	cache cache.Cache
	gens  map[string]*atomic.Uint64
}

// NewCached wraps next with a read-through list cache.
func NewCached(next Store, c cache.Cache) *CachedStore {
	return &CachedStore{
		Store: next,
		cache: c,
		gens: map[string]*atomic.Uint64{
			skillsKey:     new(atomic.Uint64),
			projectsKey:   new(atomic.Uint64),
			milestonesKey: new(atomic.Uint64),
		},
	}
}

// key is the cache key of a list of kind in the current generation.
func (s *CachedStore) key(kind, suffix string) string {
	return kind + "@" + strconv.FormatUint(s.gens[kind].Load(), 10) + suffix
}

func cachedList[T any](ctx context.Context, c cache.Cache, key string, fetch func() ([]T, error)) ([]T, error) {
	if raw, found := c.Get(ctx, key); found {
		var data []T
		if err := json.Unmarshal(raw, &data); err == nil && data != nil {
			return data, nil
		}
		slog.Warn("discarding unreadable cache entry", "key", key)
	}

	data, err := fetch()
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		slog.Warn("cache encode failed", "key", key, "err", err)
		return data, nil
	}
	c.Set(ctx, key, raw)
	return data, nil
}

func (s *CachedStore) invalidate(ctx context.Context, kind string, err error) {
	if err == nil {
		s.gens[kind].Add(1)
		s.cache.DeletePrefix(ctx, kind)
	}
}

// skills

func (s *CachedStore) ListSkills(ctx context.Context) ([]models.Skill, error) {
	return cachedList(ctx, s.cache, s.key(skillsKey, ""), func() ([]models.Skill, error) {
		return s.Store.ListSkills(ctx)
	})
}

func (s *CachedStore) CreateSkill(ctx context.Context, in models.NewSkill) (models.Skill, error) {
	rec, err := s.Store.CreateSkill(ctx, in)
	s.invalidate(ctx, skillsKey, err)
	return rec, err
}

func (s *CachedStore) UpdateSkill(ctx context.Context, id uint, patch models.SkillPatch) (models.Skill, bool, error) {
	rec, ok, err := s.Store.UpdateSkill(ctx, id, patch)
	s.invalidate(ctx, skillsKey, err)
	return rec, ok, err
}

func (s *CachedStore) DeleteSkill(ctx context.Context, id uint) error {
	err := s.Store.DeleteSkill(ctx, id)
	s.invalidate(ctx, skillsKey, err)
	return err
}

// projects

func (s *CachedStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	return cachedList(ctx, s.cache, s.key(projectsKey, ""), func() ([]models.Project, error) {
		return s.Store.ListProjects(ctx)
	})
}

func (s *CachedStore) ListProjectsByCategory(ctx context.Context, category string) ([]models.Project, error) {
	return cachedList(ctx, s.cache, s.key(projectsKey, ":category:"+category), func() ([]models.Project, error) {
		return s.Store.ListProjectsByCategory(ctx, category)
	})
}

func (s *CachedStore) CreateProject(ctx context.Context, in models.NewProject) (models.Project, error) {
	rec, err := s.Store.CreateProject(ctx, in)
	s.invalidate(ctx, projectsKey, err)
	return rec, err
}

func (s *CachedStore) UpdateProject(ctx context.Context, id uint, patch models.ProjectPatch) (models.Project, bool, error) {
	rec, ok, err := s.Store.UpdateProject(ctx, id, patch)
	s.invalidate(ctx, projectsKey, err)
	return rec, ok, err
}

func (s *CachedStore) DeleteProject(ctx context.Context, id uint) error {
	err := s.Store.DeleteProject(ctx, id)
	s.invalidate(ctx, projectsKey, err)
	return err
}

// milestones

func (s *CachedStore) ListMilestones(ctx context.Context) ([]models.Milestone, error) {
	return cachedList(ctx, s.cache, s.key(milestonesKey, ""), func() ([]models.Milestone, error) {
		return s.Store.ListMilestones(ctx)
	})
}

func (s *CachedStore) CreateMilestone(ctx context.Context, in models.NewMilestone) (models.Milestone, error) {
	rec, err := s.Store.CreateMilestone(ctx, in)
	s.invalidate(ctx, milestonesKey, err)
	return rec, err
}

func (s *CachedStore) UpdateMilestone(ctx context.Context, id uint, patch models.MilestonePatch) (models.Milestone, bool, error) {
	rec, ok, err := s.Store.UpdateMilestone(ctx, id, patch)
	s.invalidate(ctx, milestonesKey, err)
	return rec, ok, err
}

func (s *CachedStore) DeleteMilestone(ctx context.Context, id uint) error {
	err := s.Store.DeleteMilestone(ctx, id)
	s.invalidate(ctx, milestonesKey, err)
	return err
}
