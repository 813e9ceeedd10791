package services

import (
	"testing"
	"time"

	"github.com/priyasingh1501/untangle-backend/models"
	"github.com/stretchr/testify/assert"
)

func TestTTLCacheRoundTrip(t *testing.T) {
	c := NewTTLCache(time.Minute)

	_, ok := c.Get("usda_1")
	assert.False(t, ok)

	p := models.FoodNutrientProfile{Name: "Chicken", Protein: 31}
	c.Set("usda_1", p)

	got, ok := c.Get("usda_1")
	assert.True(t, ok)
	assert.Equal(t, p, got)
}

func TestTTLCacheExpiry(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewTTLCache(time.Minute)
	c.now = func() time.Time { return clock }

	c.Set("usda_1", models.FoodNutrientProfile{Name: "Chicken"})

	clock = clock.Add(59 * time.Second)
	_, ok := c.Get("usda_1")
	assert.True(t, ok)

	clock = clock.Add(2 * time.Second)
	_, ok = c.Get("usda_1")
	assert.False(t, ok, "entry past its TTL is dropped on Get")
}

func TestTTLCacheDefaultTTL(t *testing.T) {
	c := NewTTLCache(0)
	assert.Equal(t, 15*time.Minute, c.ttl)
}
