package utils

import (
	"math"

	"github.com/priyasingh1501/untangle-backend/models"
)

// SanitizeProfile enforces the canonical-profile invariant after provider
// normalization: every numeric nutrient is finite and non-negative, NOVA is
// within 1-4, and the FODMAP value is a member of the enum.
func SanitizeProfile(p *models.FoodNutrientProfile) {
	for _, f := range []*float64{
		&p.Kcal, &p.Protein, &p.Fat, &p.Carbs, &p.Fiber, &p.Sugar,
		&p.VitaminC, &p.Zinc, &p.Selenium, &p.Iron, &p.Omega3,
	} {
		if math.IsNaN(*f) || math.IsInf(*f, 0) || *f < 0 {
			*f = 0
		}
	}
	if p.NovaClass < 1 || p.NovaClass > 4 {
		p.NovaClass = 1
	}
	if models.FodmapRank(p.Fodmap) < 0 {
		p.Fodmap = models.FodmapUnknown
	}
	if p.GI != nil && (*p.GI < 0 || *p.GI > 150) {
		p.GI = nil
	}
}
