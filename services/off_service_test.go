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

func newTestOFFService(url string) *OFFService {
	return &OFFService{
		baseURL: url,
		client:  &http.Client{Timeout: 2 * time.Second},
		log:     zap.NewNop().Sugar(),
	}
}

func TestOFFLookupNormalizesUnits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/product/737628064502.json", r.URL.Path)
		w.Write([]byte(`{
			"status": 1,
			"product": {
				"product_name": "Rice noodles",
				"nova_group": 3,
				"categories_tags": ["en:noodles"],
				"nutriments": {
					"energy-kcal_100g": 380,
					"proteins_100g": 7.3,
					"carbohydrates_100g": 78,
					"sugars_100g": 2.1,
					"fiber_100g": 1.8,
					"vitamin-c_100g": 0.012,
					"zinc_100g": 0.0011,
					"selenium_100g": 0.0000151,
					"iron_100g": 0.0032
				}
			}
		}`))
	}))
	defer srv.Close()

	p, err := newTestOFFService(srv.URL).Lookup(context.Background(), "737628064502")
	require.NoError(t, err)

	assert.Equal(t, "Rice noodles", p.Name)
	assert.Equal(t, models.SourceOFF, p.Source)
	assert.Equal(t, 380.0, p.Kcal)
	assert.Equal(t, 7.3, p.Protein)
	assert.InDelta(t, 12.0, p.VitaminC, 0.001, "grams on the wire become mg")
	assert.InDelta(t, 1.1, p.Zinc, 0.001)
	assert.InDelta(t, 15.1, p.Selenium, 0.001, "grams on the wire become mcg")
	assert.InDelta(t, 3.2, p.Iron, 0.001)
	assert.Equal(t, 3, p.NovaClass)
	assert.Equal(t, []string{"en:noodles"}, p.Tags)
	assert.Nil(t, p.GI, "OFF carries no glycemic data")
	assert.Equal(t, models.FodmapUnknown, p.Fodmap)
}

func TestOFFLookupKilojouleFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": 1,
			"product": {
				"product_name": "Oat drink",
				"nutriments": {"energy-kj_100g": 196}
			}
		}`))
	}))
	defer srv.Close()

	p, err := newTestOFFService(srv.URL).Lookup(context.Background(), "123")
	require.NoError(t, err)
	assert.InDelta(t, 46.85, p.Kcal, 0.01)
}

func TestOFFLookupProductNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 0, "product": {}}`))
	}))
	defer srv.Close()

	_, err := newTestOFFService(srv.URL).Lookup(context.Background(), "000")
	assert.Error(t, err)
}

func TestOFFLookupHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestOFFService(srv.URL).Lookup(context.Background(), "123")
	assert.Error(t, err)
}

func TestOFFSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cgi/search.pl", r.URL.Path)
		assert.Equal(t, "dark chocolate", r.URL.Query().Get("search_terms"))
		w.Write([]byte(`{
			"products": [
				{"code": "3017620422003", "product_name": "Dark chocolate 70%", "nova_group": 4},
				{"code": "", "product_name": "No barcode"},
				{"code": "20724696", "product_name": "Dark chocolate 85%", "nova_group": 3}
			]
		}`))
	}))
	defer srv.Close()

	hits, err := newTestOFFService(srv.URL).Search(context.Background(), "dark chocolate", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2, "products without a barcode are dropped")
	assert.Equal(t, "off_3017620422003", hits[0].FoodID)
	assert.Equal(t, 4, hits[0].Nova)
	assert.Equal(t, "off_20724696", hits[1].FoodID)
}
