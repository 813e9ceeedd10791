package utils

import (
	"math"
	"testing"

	"github.com/priyasingh1501/untangle-backend/models"
	"github.com/stretchr/testify/assert"
)

func TestAggregateNutrients(t *testing.T) {
	chicken := &models.FoodNutrientProfile{Kcal: 165, Protein: 31, Fat: 3.6}
	rice := &models.FoodNutrientProfile{Kcal: 130, Protein: 2.7, Carbs: 28, Fiber: 0.4, Sugar: 0.1}

	totals := AggregateNutrients([]ProfileWithGrams{
		{Profile: chicken, Grams: 150},
		{Profile: rice, Grams: 200},
	})

	assert.Equal(t, 507.5, totals.Kcal)
	assert.Equal(t, 51.9, totals.Protein)
	assert.Equal(t, 5.4, totals.Fat)
	assert.Equal(t, 56.0, totals.Carbs)
	assert.Equal(t, 0.8, totals.Fiber)
	assert.Equal(t, 0.2, totals.Sugar)
}

func TestAggregateNutrientsEmpty(t *testing.T) {
	totals := AggregateNutrients(nil)
	assert.True(t, totals.IsZero())
}

func TestAggregateNutrientsSkipsInvalidItems(t *testing.T) {
	p := &models.FoodNutrientProfile{Kcal: 100, Protein: 10}

	totals := AggregateNutrients([]ProfileWithGrams{
		{Profile: nil, Grams: 100},
		{Profile: p, Grams: 0},
		{Profile: p, Grams: -50},
		{Profile: p, Grams: math.NaN()},
		{Profile: p, Grams: math.Inf(1)},
		{Profile: p, Grams: 100},
	})

	assert.Equal(t, 100.0, totals.Kcal)
	assert.Equal(t, 10.0, totals.Protein)
}

func TestAggregateNutrientsRoundsOnceAfterSummation(t *testing.T) {
	// Three portions of 33.333g at 1g/100g sum to 0.99999, which must round
	// to 1.0 rather than 0.33*3 = 0.99.
	p := &models.FoodNutrientProfile{Protein: 1}
	totals := AggregateNutrients([]ProfileWithGrams{
		{Profile: p, Grams: 33.333},
		{Profile: p, Grams: 33.333},
		{Profile: p, Grams: 33.334},
	})
	assert.Equal(t, 1.0, totals.Protein)
}

func TestAggregateNutrientsLinearInGrams(t *testing.T) {
	p := &models.FoodNutrientProfile{Kcal: 250, Carbs: 40}

	single := AggregateNutrients([]ProfileWithGrams{{Profile: p, Grams: 100}})
	double := AggregateNutrients([]ProfileWithGrams{{Profile: p, Grams: 200}})

	assert.Equal(t, single.Kcal*2, double.Kcal)
	assert.Equal(t, single.Carbs*2, double.Carbs)
}
