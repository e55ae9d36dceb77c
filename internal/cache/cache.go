// Package cache holds short-lived copies of list responses so repeated page
// loads do not hit the database.
package cache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultTTL matches how long list responses stay warm.
const DefaultTTL = 5 * time.Minute

// Cache stores encoded values by key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	// DeletePrefix drops every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string)
}

// Memory is a process-local Cache backed by go-cache.
type Memory struct {
	c *gocache.Cache
}

// NewMemory builds a Memory cache whose entries expire after ttl.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{c: gocache.New(ttl, 2*ttl)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	v, found := m.c.Get(key)
	if !found {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func (m *Memory) Set(_ context.Context, key string, value []byte) {
	m.c.Set(key, value, gocache.DefaultExpiration)
}

func (m *Memory) DeletePrefix(_ context.Context, prefix string) {
	for key := range m.c.Items() {
		if strings.HasPrefix(key, prefix) {
			m.c.Delete(key)
		}
	}
}
