package services

import (
	"context"
	"fmt"

	"github.com/priyasingh1501/untangle-backend/models"
)

// FoodService fronts food discovery: local catalog search, provider text
// search and photo recognition. Resolution for meal scoring goes through the
// FoodResolver instead.
type FoodService struct {
	catalog *CatalogService
	off     *OFFService
	rek     *RekognitionService
}

func NewFoodService(catalog *CatalogService, off *OFFService, rek *RekognitionService) *FoodService {
	return &FoodService{catalog: catalog, off: off, rek: rek}
}

// Search combines local catalog matches and OFF product matches. Catalog hits
// come first so seeded foods with full GI/FODMAP data are preferred.
func (s *FoodService) Search(ctx context.Context, query string) ([]FoodHit, error) {
	local, err := s.catalog.Search(query, 10)
	if err != nil {
		return nil, err
	}
	hits := make([]FoodHit, 0, len(local)+10)
	for i := range local {
		hits = append(hits, FoodHit{
			FoodID: local[i].FoodKey,
			Name:   local[i].Name,
			Nova:   local[i].NovaClass,
		})
	}

	remote, err := s.off.Search(ctx, query, 10)
	if err != nil {
		// Local results are still useful when the provider is down.
		if len(hits) > 0 {
			return hits, nil
		}
		return nil, err
	}
	return append(hits, remote...), nil
}

// Recognize runs image labels through the provider search.
func (s *FoodService) Recognize(ctx context.Context, dataURI string) ([]FoodHit, error) {
	if s.rek == nil {
		return nil, fmt.Errorf("image recognition is not configured")
	}
	labels, err := s.rek.RecognizeLabels(ctx, dataURI)
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("no labels detected")
	}
	return s.Search(ctx, labels[0])
}

// UpsertCatalogItem creates or replaces a catalog entry. Keys must follow the
// food_ format so the resolver treats them as local.
func (s *FoodService) UpsertCatalogItem(item *models.FoodItem) error {
	if !localKeyPattern.MatchString(item.FoodKey) {
		return fmt.Errorf("food key %q must match food_[a-z0-9_]+", item.FoodKey)
	}
	if item.Name == "" {
		return fmt.Errorf("catalog entry needs a name")
	}
	return s.catalog.Upsert(item)
}

// GetCatalogProfile fetches one seeded catalog entry as a canonical profile.
func (s *FoodService) GetCatalogProfile(key string) (*models.FoodNutrientProfile, error) {
	items, err := s.catalog.GetByKeys([]string{key})
	if err != nil {
		return nil, err
	}
	p, ok := items[key]
	if !ok {
		return nil, fmt.Errorf("food %s not found", key)
	}
	return &p, nil
}
