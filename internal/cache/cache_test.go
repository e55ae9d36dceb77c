package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func exerciseCache(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, ok := c.Get(ctx, "skills"); ok {
		t.Fatalf("expected miss on empty cache")
	}
	c.Set(ctx, "skills", []byte(`[1]`))
	c.Set(ctx, "projects", []byte(`[2]`))
	c.Set(ctx, "projects:category:web", []byte(`[3]`))

	got, ok := c.Get(ctx, "skills")
	if !ok || string(got) != `[1]` {
		t.Fatalf("skills = %q, %v", got, ok)
	}

	c.DeletePrefix(ctx, "projects")
	if _, ok := c.Get(ctx, "projects"); ok {
		t.Fatalf("projects should be evicted")
	}
	if _, ok := c.Get(ctx, "projects:category:web"); ok {
		t.Fatalf("projects:category:web should be evicted")
	}
	if _, ok := c.Get(ctx, "skills"); !ok {
		t.Fatalf("skills should survive a projects eviction")
	}
}

func TestMemoryCache(t *testing.T) {
	exerciseCache(t, NewMemory(time.Minute))
}

func TestRedisCache(t *testing.T) {
	srv := miniredis.RunT(t)
	c := NewRedis(srv.Addr(), "", "portfolio:", time.Minute)
	defer c.Close()
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	exerciseCache(t, c)
	if !srv.Exists("portfolio:skills") {
		t.Fatalf("expected namespaced key in redis")
	}
}

func TestRedisCacheExpires(t *testing.T) {
	srv := miniredis.RunT(t)
	c := NewRedis(srv.Addr(), "", "", time.Minute)
	defer c.Close()

	ctx := context.Background()
	c.Set(ctx, "milestones", []byte(`[]`))
	srv.FastForward(2 * time.Minute)
	if _, ok := c.Get(ctx, "milestones"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestRedisCacheUnavailableIsMiss(t *testing.T) {
	srv, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	c := NewRedis(srv.Addr(), "", "", time.Minute)
	defer c.Close()
	srv.Close()

	ctx := context.Background()
	c.Set(ctx, "skills", []byte(`[]`))
	if _, ok := c.Get(ctx, "skills"); ok {
		t.Fatalf("expected miss when redis is down")
	}
}
