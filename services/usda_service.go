package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/priyasingh1501/untangle-backend/models"
	"github.com/priyasingh1501/untangle-backend/utils"
	"go.uber.org/zap"
)

// FDC nutrient ids for the canonical profile fields. The USDA wire format is
// a nutrient-id keyed list, so every lookup goes through this table; no code
// downstream of the resolver ever sees the provider shape.
const (
	fdcEnergyKcal = 1008
	fdcProtein    = 1003
	fdcTotalFat   = 1004
	fdcCarbs      = 1005
	fdcFiber      = 1079
	fdcSugars     = 2000
	fdcVitaminC   = 1162
	fdcZinc       = 1095
	fdcSelenium   = 1103
	fdcIron       = 1089
	fdcOmega3ALA  = 1404
	fdcOmega3EPA  = 1278
	fdcOmega3DHA  = 1272
)

// USDAService fetches nutrient data from the FoodData Central API.
type USDAService struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *zap.SugaredLogger
}

func NewUSDAService(apiKey string, log *zap.SugaredLogger) *USDAService {
	return &USDAService{
		baseURL: "https://api.nal.usda.gov/fdc/v1",
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 8 * time.Second},
		log:     log,
	}
}

type fdcFoodResponse struct {
	Description   string `json:"description"`
	FoodNutrients []struct {
		Nutrient struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"nutrient"`
		Amount float64 `json:"amount"`
	} `json:"foodNutrients"`
}

// Lookup fetches one food by FDC id and normalizes it into the canonical
// per-100g profile. Missing nutrients normalize to 0; USDA carries no GI or
// FODMAP data, so those stay nil/Unknown.
func (s *USDAService) Lookup(ctx context.Context, fdcID string) (*models.FoodNutrientProfile, error) {
	u := fmt.Sprintf("%s/food/%s?api_key=%s", s.baseURL, fdcID, s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create FDC request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call FDC: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read FDC response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("FDC API error %d: %s", resp.StatusCode, string(body))
	}

	var fr fdcFoodResponse
	if err := json.Unmarshal(body, &fr); err != nil {
		return nil, fmt.Errorf("failed to parse FDC JSON: %w", err)
	}

	byID := make(map[int]float64, len(fr.FoodNutrients))
	for _, n := range fr.FoodNutrients {
		if n.Amount > 0 {
			byID[n.Nutrient.ID] = n.Amount
		}
	}

	name := fr.Description
	if name == "" {
		name = "usda_" + fdcID
	}
	p := models.FoodNutrientProfile{
		Name:      name,
		Source:    models.SourceUSDA,
		Kcal:      byID[fdcEnergyKcal],
		Protein:   byID[fdcProtein],
		Fat:       byID[fdcTotalFat],
		Carbs:     byID[fdcCarbs],
		Fiber:     byID[fdcFiber],
		Sugar:     byID[fdcSugars],
		VitaminC:  byID[fdcVitaminC],
		Zinc:      byID[fdcZinc],
		Selenium:  byID[fdcSelenium],
		Iron:      byID[fdcIron],
		Omega3:    byID[fdcOmega3ALA] + byID[fdcOmega3EPA] + byID[fdcOmega3DHA],
		Fodmap:    models.FodmapUnknown,
		NovaClass: 1,
	}
	utils.SanitizeProfile(&p)
	return &p, nil
}
