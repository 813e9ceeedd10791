package services

import (
	"fmt"
	"strings"

	"github.com/priyasingh1501/untangle-backend/models"
	"gorm.io/gorm"
)

// CatalogService is the local food catalog collaborator. Lookups for a meal
// are issued as a single batched query by key list.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// GetByKeys fetches catalog entries for the given keys in one query and
// returns them keyed by FoodKey. Missing keys are simply absent from the map.
func (s *CatalogService) GetByKeys(keys []string) (map[string]models.FoodNutrientProfile, error) {
	out := make(map[string]models.FoodNutrientProfile, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	var rows []models.FoodItem
	if err := s.db.Where("food_key IN ?", keys).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("catalog batch lookup failed: %w", err)
	}
	for i := range rows {
		out[rows[i].FoodKey] = rows[i].ToProfile()
	}
	return out, nil
}

// Search lists catalog entries whose name matches the query.
func (s *CatalogService) Search(query string, limit int) ([]models.FoodItem, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	var rows []models.FoodItem
	q := s.db.Order("name asc").Limit(limit)
	if query = strings.TrimSpace(query); query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	err := q.Find(&rows).Error
	return rows, err
}

// Upsert creates or updates a catalog entry by key.
func (s *CatalogService) Upsert(item *models.FoodItem) error {
	var existing models.FoodItem
	err := s.db.Where("food_key = ?", item.FoodKey).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return s.db.Create(item).Error
	}
	if err != nil {
		return err
	}
	item.ID = existing.ID
	return s.db.Save(item).Error
}
