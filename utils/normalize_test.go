package utils

import (
	"math"
	"testing"

	"github.com/priyasingh1501/untangle-backend/models"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeProfileNumericFields(t *testing.T) {
	p := models.FoodNutrientProfile{
		Kcal:    math.NaN(),
		Protein: math.Inf(1),
		Fat:     -3,
		Carbs:   42,
	}
	SanitizeProfile(&p)

	assert.Equal(t, 0.0, p.Kcal)
	assert.Equal(t, 0.0, p.Protein)
	assert.Equal(t, 0.0, p.Fat)
	assert.Equal(t, 42.0, p.Carbs)
}

func TestSanitizeProfileEnums(t *testing.T) {
	p := models.FoodNutrientProfile{NovaClass: 7, Fodmap: "Spicy"}
	SanitizeProfile(&p)

	assert.Equal(t, 1, p.NovaClass)
	assert.Equal(t, models.FodmapUnknown, p.Fodmap)
}

func TestSanitizeProfileOutOfRangeGI(t *testing.T) {
	bad := 900
	good := 55

	p := models.FoodNutrientProfile{GI: &bad}
	SanitizeProfile(&p)
	assert.Nil(t, p.GI)

	p = models.FoodNutrientProfile{GI: &good}
	SanitizeProfile(&p)
	assert.Equal(t, 55, *p.GI)
}
