// Package state holds the application's cached view of remote entities.
// The cache consumes synced events and replaces whole snapshots; it never
// patches a cached value in place, so readers always observe a fully
// formed record.
package state

import (
	"sync"

	"github.com/socialx/socialx-go/internal/events"
	"github.com/socialx/socialx-go/internal/models"
)

// Cache is the process-wide entity view. Construct with NewCache, which
// subscribes it to the bus; Close unsubscribes.
type Cache struct {
	mu sync.RWMutex

	current     *models.Profile
	profiles    map[string]models.Profile
	searched    []models.Profile
	suggestions []models.Profile

	unsub func()
}

func NewCache(bus *events.Bus) *Cache {
	c := &Cache{profiles: make(map[string]models.Profile)}
	c.unsub = bus.Subscribe(c.onEvent)
	return c
}

func (c *Cache) onEvent(e events.Event) {
	if e.Type != events.TypeSynced {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch e.Kind {
	case events.KindGetCurrentProfile:
		if p, ok := e.Payload.(*models.Profile); ok {
			snapshot := *p
			c.current = &snapshot
			c.profiles[snapshot.Alias] = snapshot
		}
	case events.KindGetProfileByUsername:
		if p, ok := e.Payload.(*models.Profile); ok {
			c.profiles[p.Alias] = *p
		}
	case events.KindGetProfilesByPosts:
		if list, ok := e.Payload.([]models.Profile); ok {
			for _, p := range list {
				c.profiles[p.Alias] = p
			}
		}
	case events.KindSearchProfilesByFullName:
		if list, ok := e.Payload.([]models.Profile); ok {
			c.searched = list
			for _, p := range list {
				c.profiles[p.Alias] = p
			}
		}
	case events.KindFindFriendsSuggestions:
		if list, ok := e.Payload.([]models.Profile); ok {
			c.suggestions = list
			for _, p := range list {
				c.profiles[p.Alias] = p
			}
		}
	}
}

// CurrentProfile returns a copy of the caller's cached profile.
func (c *Cache) CurrentProfile() (models.Profile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return models.Profile{}, false
	}
	return *c.current, true
}

// Profile returns the cached profile for alias.
func (c *Cache) Profile(alias string) (models.Profile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.profiles[alias]
	return p, ok
}

// SearchResults returns the last search result list.
func (c *Cache) SearchResults() []models.Profile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.searched
}

// Suggestions returns the last suggestions list.
func (c *Cache) Suggestions() []models.Profile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.suggestions
}

// Close detaches the cache from the bus.
func (c *Cache) Close() {
	if c.unsub != nil {
		c.unsub()
	}
}
