package services

import (
	"sync"
	"time"

	"github.com/priyasingh1501/untangle-backend/models"
)

// ResolverCache memoizes resolved external profiles for the resolver. It is an
// explicit dependency injected per resolver instance so tests can start from a
// clean cache; there is no module-level state.
type ResolverCache interface {
	Get(foodID string) (models.FoodNutrientProfile, bool)
	Set(foodID string, p models.FoodNutrientProfile)
}

type cacheEntry struct {
	profile   models.FoodNutrientProfile
	expiresAt time.Time
}

// TTLCache is an in-memory ResolverCache with a fixed TTL. Expired entries
// are dropped lazily on Get and swept opportunistically on Set.
type TTLCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewTTLCache(ttl time.Duration) *TTLCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &TTLCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *TTLCache) Get(foodID string) (models.FoodNutrientProfile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[foodID]
	if !ok {
		return models.FoodNutrientProfile{}, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, foodID)
		return models.FoodNutrientProfile{}, false
	}
	return e.profile, true
}

func (c *TTLCache) Set(foodID string, p models.FoodNutrientProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Sweep once the map grows; keeps memory bounded without a timer.
	if len(c.entries) > 2048 {
		now := c.now()
		for k, e := range c.entries {
			if now.After(e.expiresAt) {
				delete(c.entries, k)
			}
		}
	}
	c.entries[foodID] = cacheEntry{profile: p, expiresAt: c.now().Add(c.ttl)}
}
