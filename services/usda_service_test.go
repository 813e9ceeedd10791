package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/priyasingh1501/untangle-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestUSDAService(url string) *USDAService {
	return &USDAService{
		baseURL: url,
		apiKey:  "test-key",
		client:  &http.Client{Timeout: 2 * time.Second},
		log:     zap.NewNop().Sugar(),
	}
}

func TestUSDALookupMapsNutrientIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/food/171077", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		w.Write([]byte(`{
			"description": "Chicken, broilers or fryers, breast, meat only, cooked, roasted",
			"foodNutrients": [
				{"nutrient": {"id": 1008, "name": "Energy"}, "amount": 165},
				{"nutrient": {"id": 1003, "name": "Protein"}, "amount": 31},
				{"nutrient": {"id": 1004, "name": "Total lipid (fat)"}, "amount": 3.57},
				{"nutrient": {"id": 1103, "name": "Selenium, Se"}, "amount": 27.6},
				{"nutrient": {"id": 1095, "name": "Zinc, Zn"}, "amount": 1},
				{"nutrient": {"id": 1404, "name": "PUFA 18:3 n-3"}, "amount": 0.02},
				{"nutrient": {"id": 1278, "name": "PUFA 20:5 n-3"}, "amount": 0.01},
				{"nutrient": {"id": 1272, "name": "PUFA 22:6 n-3"}, "amount": 0.04},
				{"nutrient": {"id": 9999, "name": "Something unmapped"}, "amount": 12}
			]
		}`))
	}))
	defer srv.Close()

	p, err := newTestUSDAService(srv.URL).Lookup(context.Background(), "171077")
	require.NoError(t, err)

	assert.Equal(t, models.SourceUSDA, p.Source)
	assert.Equal(t, 165.0, p.Kcal)
	assert.Equal(t, 31.0, p.Protein)
	assert.Equal(t, 3.57, p.Fat)
	assert.Equal(t, 27.6, p.Selenium)
	assert.InDelta(t, 0.07, p.Omega3, 1e-9, "the three omega-3 fractions are summed")
	assert.Equal(t, 0.0, p.Carbs, "missing nutrients normalize to zero")
	assert.Nil(t, p.GI)
	assert.Equal(t, models.FodmapUnknown, p.Fodmap)
	assert.Equal(t, 1, p.NovaClass)
}

func TestUSDALookupFallbackName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"foodNutrients": []}`))
	}))
	defer srv.Close()

	p, err := newTestUSDAService(srv.URL).Lookup(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "usda_42", p.Name)
}

func TestUSDALookupAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "invalid key"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestUSDAService(srv.URL).Lookup(context.Background(), "171077")
	assert.Error(t, err)
}
