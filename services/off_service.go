package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/priyasingh1501/untangle-backend/models"
	"github.com/priyasingh1501/untangle-backend/utils"
	"go.uber.org/zap"
)

// OFFService fetches product data from Open Food Facts. Unlike USDA's
// nutrient-id list, OFF exposes flat per-100g keys in `nutriments`; the
// mapping below is the only place that shape is known.
type OFFService struct {
	baseURL string
	client  *http.Client
	log     *zap.SugaredLogger
}

func NewOFFService(log *zap.SugaredLogger) *OFFService {
	return &OFFService{
		baseURL: "https://world.openfoodfacts.org",
		client:  &http.Client{Timeout: 8 * time.Second},
		log:     log,
	}
}

type offNutriments struct {
	EnergyKcal100g float64 `json:"energy-kcal_100g"`
	EnergyKJ100g   float64 `json:"energy-kj_100g"`
	Proteins100g   float64 `json:"proteins_100g"`
	Fat100g        float64 `json:"fat_100g"`
	Carbs100g      float64 `json:"carbohydrates_100g"`
	Fiber100g      float64 `json:"fiber_100g"`
	Sugars100g     float64 `json:"sugars_100g"`
	VitaminC100g   float64 `json:"vitamin-c_100g"` // grams on the wire
	Zinc100g       float64 `json:"zinc_100g"`      // grams on the wire
	Selenium100g   float64 `json:"selenium_100g"`  // grams on the wire
	Iron100g       float64 `json:"iron_100g"`      // grams on the wire
	Omega3100g     float64 `json:"omega-3-fat_100g"`
}

type offProduct struct {
	ProductName  string        `json:"product_name"`
	GenericName  string        `json:"generic_name"`
	NovaGroup    int           `json:"nova_group"`
	Nutriments   offNutriments `json:"nutriments"`
	CategoryTags []string      `json:"categories_tags"`
}

type offProductResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

// Lookup fetches one product by barcode and normalizes it into the canonical
// per-100g profile. Missing values decode as 0, which is exactly the
// normalization the canonical profile requires.
func (s *OFFService) Lookup(ctx context.Context, barcode string) (*models.FoodNutrientProfile, error) {
	u := fmt.Sprintf("%s/api/v2/product/%s.json", s.baseURL, url.PathEscape(barcode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create OFF request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call OFF: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFF response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OFF API error %d: %s", resp.StatusCode, string(body))
	}

	var pr offProductResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("failed to parse OFF JSON: %w", err)
	}
	if pr.Status != 1 {
		return nil, fmt.Errorf("OFF product %s not found", barcode)
	}

	n := pr.Product.Nutriments
	kcal := n.EnergyKcal100g
	if kcal == 0 && n.EnergyKJ100g > 0 {
		kcal = n.EnergyKJ100g / 4.184
	}
	name := pr.Product.ProductName
	if name == "" {
		name = pr.Product.GenericName
	}
	if name == "" {
		name = "off_" + barcode
	}

	p := models.FoodNutrientProfile{
		Name:      name,
		Source:    models.SourceOFF,
		Kcal:      kcal,
		Protein:   n.Proteins100g,
		Fat:       n.Fat100g,
		Carbs:     n.Carbs100g,
		Fiber:     n.Fiber100g,
		Sugar:     n.Sugars100g,
		VitaminC:  n.VitaminC100g * 1000, // g -> mg
		Zinc:      n.Zinc100g * 1000,     // g -> mg
		Selenium:  n.Selenium100g * 1e6,  // g -> mcg
		Iron:      n.Iron100g * 1000,     // g -> mg
		Omega3:    n.Omega3100g,
		Fodmap:    models.FodmapUnknown,
		NovaClass: pr.Product.NovaGroup,
		Tags:      pr.Product.CategoryTags,
	}
	utils.SanitizeProfile(&p)
	return &p, nil
}

type offSearchResponse struct {
	Products []struct {
		Code        string `json:"code"`
		ProductName string `json:"product_name"`
		NovaGroup   int    `json:"nova_group"`
	} `json:"products"`
}

// FoodHit is one result of a text search against OFF.
type FoodHit struct {
	FoodID string `json:"food_id"`
	Name   string `json:"name"`
	Nova   int    `json:"nova,omitempty"`
}

// Search runs a free-text product search and returns provider-prefixed ids
// that can be logged directly as meal items.
func (s *OFFService) Search(ctx context.Context, query string, limit int) ([]FoodHit, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	u := fmt.Sprintf("%s/cgi/search.pl?search_terms=%s&search_simple=1&action=process&json=1&page_size=%d",
		s.baseURL, url.QueryEscape(query), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create OFF search request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call OFF search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFF search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OFF search API error %d: %s", resp.StatusCode, string(body))
	}

	var sr offSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse OFF search JSON: %w", err)
	}

	hits := make([]FoodHit, 0, len(sr.Products))
	for _, p := range sr.Products {
		if p.Code == "" {
			continue
		}
		hits = append(hits, FoodHit{
			FoodID: "off_" + p.Code,
			Name:   p.ProductName,
			Nova:   p.NovaGroup,
		})
	}
	return hits, nil
}
