package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/priyasingh1501/untangle-backend/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// NutritionProvider is one external nutrition source, reached by a single GET
// per id. Implementations normalize their own wire format into the canonical
// profile; the resolver never sees provider shapes.
type NutritionProvider interface {
	Lookup(ctx context.Context, id string) (*models.FoodNutrientProfile, error)
}

// CatalogLookup is the local catalog collaborator (batched fetch by key).
type CatalogLookup interface {
	GetByKeys(keys []string) (map[string]models.FoodNutrientProfile, error)
}

// Resolution is the typed per-item outcome: either a resolved profile or a
// zero-valued placeholder with Degraded set, so downstream code distinguishes
// "resolved" from "placeholder" deliberately rather than by incidental zeros.
type Resolution struct {
	FoodID   string
	Profile  models.FoodNutrientProfile
	Degraded bool
	Reason   string
}

const (
	prefixUSDA = "usda_"
	prefixOFF  = "off_"
)

// Local catalog keys follow the seeded primary-key format.
var localKeyPattern = regexp.MustCompile(`^food_[a-z0-9_]+$`)

// FoodResolver turns meal-item food ids into canonical nutrient profiles.
// Local ids go through one batched catalog query; external ids fan out
// concurrently with settle-all semantics: a failed or timed-out fetch yields
// a placeholder, never an aborted meal.
type FoodResolver struct {
	catalog       CatalogLookup
	usda          NutritionProvider
	off           NutritionProvider
	cache         ResolverCache
	log           *zap.SugaredLogger
	lookupTimeout time.Duration
	maxInFlight   int
}

func NewFoodResolver(catalog CatalogLookup, usda, off NutritionProvider, cache ResolverCache, log *zap.SugaredLogger) *FoodResolver {
	return &FoodResolver{
		catalog:       catalog,
		usda:          usda,
		off:           off,
		cache:         cache,
		log:           log,
		lookupTimeout: 8 * time.Second,
		maxInFlight:   6,
	}
}

// ResolveAll resolves every requested item, in input order. It never fails:
// every id ends up with either a real profile or a placeholder.
func (r *FoodResolver) ResolveAll(ctx context.Context, items []MealItemRequest) []Resolution {
	out := make([]Resolution, len(items))

	// Partition ids.
	var localKeys []string
	externalSet := make(map[string]struct{})
	for _, it := range items {
		switch {
		case strings.HasPrefix(it.FoodID, prefixUSDA), strings.HasPrefix(it.FoodID, prefixOFF):
			externalSet[it.FoodID] = struct{}{}
		case localKeyPattern.MatchString(it.FoodID):
			localKeys = append(localKeys, it.FoodID)
		}
	}

	// Local: single batched catalog query. A failed batch degrades every
	// local item instead of failing the meal.
	localProfiles := map[string]models.FoodNutrientProfile{}
	if len(localKeys) > 0 {
		m, err := r.catalog.GetByKeys(localKeys)
		if err != nil {
			r.log.Warnw("catalog batch lookup degraded to placeholders", "error", err, "keys", len(localKeys))
		} else {
			localProfiles = m
		}
	}

	// External: settle-all fan-out over unique ids. Each task writes only
	// its own slot; no result is shared between tasks.
	externalProfiles := r.fetchExternal(ctx, externalSet)

	for i, it := range items {
		name := it.CustomName
		if name == "" {
			name = it.FoodID
		}
		switch {
		case strings.HasPrefix(it.FoodID, prefixUSDA), strings.HasPrefix(it.FoodID, prefixOFF):
			if p, ok := externalProfiles[it.FoodID]; ok {
				out[i] = Resolution{FoodID: it.FoodID, Profile: p}
			} else {
				out[i] = placeholderResolution(it.FoodID, name, "external lookup failed")
			}
		case localKeyPattern.MatchString(it.FoodID):
			if p, ok := localProfiles[it.FoodID]; ok {
				out[i] = Resolution{FoodID: it.FoodID, Profile: p}
			} else {
				out[i] = placeholderResolution(it.FoodID, name, "not in local catalog")
			}
		default:
			// Unsupported id format resolves like a fetch failure.
			out[i] = placeholderResolution(it.FoodID, name, "unsupported food id")
		}
		if it.CustomName != "" {
			out[i].Profile.Name = it.CustomName
		}
	}
	return out
}

// fetchExternal resolves the unique external ids concurrently. Worker funcs
// never return an error: failures are recorded by leaving the id out of the
// result map, which the caller turns into a placeholder.
func (r *FoodResolver) fetchExternal(ctx context.Context, ids map[string]struct{}) map[string]models.FoodNutrientProfile {
	results := make(map[string]models.FoodNutrientProfile, len(ids))
	if len(ids) == 0 {
		return results
	}

	ordered := make([]string, 0, len(ids))
	for id := range ids {
		if r.cache != nil {
			if p, ok := r.cache.Get(id); ok {
				results[id] = p
				continue
			}
		}
		ordered = append(ordered, id)
	}

	slots := make([]*models.FoodNutrientProfile, len(ordered))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.maxInFlight)
	for i, id := range ordered {
		i, id := i, id
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(gctx, r.lookupTimeout)
			defer cancel()

			var (
				p   *models.FoodNutrientProfile
				err error
			)
			switch {
			case strings.HasPrefix(id, prefixUSDA):
				p, err = r.usda.Lookup(cctx, strings.TrimPrefix(id, prefixUSDA))
			case strings.HasPrefix(id, prefixOFF):
				p, err = r.off.Lookup(cctx, strings.TrimPrefix(id, prefixOFF))
			}
			if err != nil || p == nil {
				r.log.Warnw("external food lookup failed", "food_id", id, "error", err)
				return nil
			}
			slots[i] = p
			if r.cache != nil {
				r.cache.Set(id, *p)
			}
			return nil
		})
	}
	_ = g.Wait()

	for i, id := range ordered {
		if slots[i] != nil {
			results[id] = *slots[i]
		}
	}
	return results
}

func placeholderResolution(foodID, name, reason string) Resolution {
	return Resolution{
		FoodID:   foodID,
		Profile:  models.PlaceholderProfile(name),
		Degraded: true,
		Reason:   reason,
	}
}
