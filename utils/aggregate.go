package utils

import (
	"math"

	"github.com/priyasingh1501/untangle-backend/models"
)

// ProfileWithGrams pairs a resolved nutrient profile with the logged portion.
type ProfileWithGrams struct {
	Profile *models.FoodNutrientProfile
	Grams   float64
}

// AggregateNutrients computes the meal-level weighted nutrient totals.
// Items with a missing profile or a non-positive portion are skipped silently:
// upstream resolution failures already degrade to placeholders, so an error
// here would only turn a recoverable gap into a hard failure. Rounding to 2
// decimals happens once, after summation, to avoid compounding rounding error.
func AggregateNutrients(items []ProfileWithGrams) models.NutrientTotals {
	var t models.NutrientTotals
	for _, it := range items {
		if it.Profile == nil {
			continue
		}
		g := it.Grams
		if g <= 0 || math.IsNaN(g) || math.IsInf(g, 0) {
			continue
		}
		f := g / 100.0
		t.Kcal += it.Profile.Kcal * f
		t.Protein += it.Profile.Protein * f
		t.Fat += it.Profile.Fat * f
		t.Carbs += it.Profile.Carbs * f
		t.Fiber += it.Profile.Fiber * f
		t.Sugar += it.Profile.Sugar * f
		t.VitaminC += it.Profile.VitaminC * f
		t.Zinc += it.Profile.Zinc * f
		t.Selenium += it.Profile.Selenium * f
		t.Iron += it.Profile.Iron * f
		t.Omega3 += it.Profile.Omega3 * f
	}
	t.Kcal = round2(t.Kcal)
	t.Protein = round2(t.Protein)
	t.Fat = round2(t.Fat)
	t.Carbs = round2(t.Carbs)
	t.Fiber = round2(t.Fiber)
	t.Sugar = round2(t.Sugar)
	t.VitaminC = round2(t.VitaminC)
	t.Zinc = round2(t.Zinc)
	t.Selenium = round2(t.Selenium)
	t.Iron = round2(t.Iron)
	t.Omega3 = round2(t.Omega3)
	return t
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
