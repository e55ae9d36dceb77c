package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aTrapDeer/portfolio/internal/cache"
	"github.com/aTrapDeer/portfolio/internal/models"
)

// countingStore counts list calls that reach the backing store.
type countingStore struct {
	Store
	skillLists    int
	projectLists  int
	categoryLists int
	failLists     bool
}

func (c *countingStore) ListSkills(ctx context.Context) ([]models.Skill, error) {
	c.skillLists++
	if c.failLists {
		return nil, &Error{Op: "list skills", Err: errors.New("connection refused")}
	}
	return c.Store.ListSkills(ctx)
}

func (c *countingStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	c.projectLists++
	return c.Store.ListProjects(ctx)
}

func (c *countingStore) ListProjectsByCategory(ctx context.Context, category string) ([]models.Project, error) {
	c.categoryLists++
	return c.Store.ListProjectsByCategory(ctx, category)
}

func TestCachedStoreServesRepeatListsFromCache(t *testing.T) {
	ctx := context.Background()
	backing := &countingStore{Store: NewMemoryStore()}
	s := NewCached(backing, cache.NewMemory(time.Minute))

	if _, err := s.CreateSkill(ctx, models.NewSkill{Name: "Go", Percentage: 90, ColorClass: "c"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	for i := 0; i < 3; i++ {
		list, err := s.ListSkills(ctx)
		if err != nil || len(list) != 1 {
			t.Fatalf("list #%d = %+v, %v", i, list, err)
		}
	}
	if backing.skillLists != 1 {
		t.Fatalf("expected 1 backing list call, got %d", backing.skillLists)
	}

	if _, err := s.CreateSkill(ctx, models.NewSkill{Name: "SQL", Percentage: 70, ColorClass: "c"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	list, err := s.ListSkills(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("list after create = %+v, %v", list, err)
	}
	if backing.skillLists != 2 {
		t.Fatalf("expected cache invalidation on create, got %d calls", backing.skillLists)
	}
}

func TestCachedStoreInvalidatesCategoryLists(t *testing.T) {
	ctx := context.Background()
	backing := &countingStore{Store: NewMemoryStore()}
	s := NewCached(backing, cache.NewMemory(time.Minute))

	p, err := s.CreateProject(ctx, models.NewProject{Title: "A", Description: "d", Category: "web", ImageURL: "u", BgColorClass: "b"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got, _ := s.ListProjectsByCategory(ctx, "web"); len(got) != 1 {
		t.Fatalf("expected 1 web project, got %d", len(got))
	}
	if got, _ := s.ListProjects(ctx); len(got) != 1 {
		t.Fatalf("expected 1 project, got %d", len(got))
	}

	if err := s.DeleteProject(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := s.ListProjectsByCategory(ctx, "web"); len(got) != 0 {
		t.Fatalf("stale category list after delete: %+v", got)
	}
	if got, _ := s.ListProjects(ctx); len(got) != 0 {
		t.Fatalf("stale list after delete: %+v", got)
	}
	if backing.categoryLists != 2 || backing.projectLists != 2 {
		t.Fatalf("unexpected backing calls: category=%d all=%d", backing.categoryLists, backing.projectLists)
	}
}

func TestCachedStoreDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	backing := &countingStore{Store: NewMemoryStore(), failLists: true}
	s := NewCached(backing, cache.NewMemory(time.Minute))

	var serr *Error
	if _, err := s.ListSkills(ctx); !errors.As(err, &serr) {
		t.Fatalf("expected store error, got %v", err)
	}
	backing.failLists = false
	if list, err := s.ListSkills(ctx); err != nil || len(list) != 0 {
		t.Fatalf("list after recovery = %+v, %v", list, err)
	}
	if backing.skillLists != 2 {
		t.Fatalf("expected errors to bypass the cache, got %d calls", backing.skillLists)
	}
}

// writeDuringListStore runs during once, after the list has been read from
// the backing store but before it is returned.
type writeDuringListStore struct {
	Store
	during func()
}

func (w *writeDuringListStore) ListSkills(ctx context.Context) ([]models.Skill, error) {
	list, err := w.Store.ListSkills(ctx)
	if f := w.during; f != nil {
		w.during = nil
		f()
	}
	return list, err
}

func TestCachedStoreDropsListFetchedAcrossWrite(t *testing.T) {
	ctx := context.Background()
	backing := &writeDuringListStore{Store: NewMemoryStore()}
	s := NewCached(backing, cache.NewMemory(time.Minute))

	if _, err := s.CreateSkill(ctx, models.NewSkill{Name: "Go", Percentage: 90, ColorClass: "c"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	backing.during = func() {
		if _, err := s.CreateSkill(ctx, models.NewSkill{Name: "SQL", Percentage: 70, ColorClass: "c"}); err != nil {
			t.Errorf("create during list: %v", err)
		}
	}
	if list, err := s.ListSkills(ctx); err != nil || len(list) != 1 {
		t.Fatalf("in-flight list = %+v, %v", list, err)
	}
	list, err := s.ListSkills(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("list after concurrent write = %+v, %v; stale list was cached", list, err)
	}
}
