package utils

import (
	"github.com/priyasingh1501/untangle-backend/models"
)

// vegTags are the per-item tags that mark a vegetable contribution.
var vegTags = []string{"veg", "vegetable", "leafy", "salad", "greens"}

// InferBadges derives the discrete qualitative signals for a meal from its
// nutrient totals and the per-item metadata.
//
// Items that lack GI or FODMAP data are excluded from those badges rather
// than treated as zero, so "no data" stays distinguishable from a real
// low reading.
func InferBadges(totals models.NutrientTotals, items []ProfileWithGrams) models.Badges {
	b := models.Badges{
		Fodmap: models.FodmapUnknown,
		Nova:   1,
	}

	// Protein: absolute threshold, or density relative to calories.
	if totals.Protein >= 20 {
		b.Protein = true
	} else if totals.Kcal > 0 && (totals.Protein/totals.Kcal)*100 >= 0.12 {
		b.Protein = true
	}

	// Veg: any vegetable-tagged item, or enough fiber meal-wide.
	if totals.Fiber >= 5 {
		b.Veg = true
	}

	// GI: carbohydrate-weighted mean across items with both a GI value and
	// a positive carb contribution. nil when no item qualifies.
	var giWeighted, carbWeight float64

	for _, it := range items {
		p := it.Profile
		if p == nil || it.Grams <= 0 {
			continue
		}
		if !b.Veg {
			for _, tag := range vegTags {
				if p.HasTag(tag) {
					b.Veg = true
					break
				}
			}
		}
		carbs := p.Carbs * it.Grams / 100.0
		if p.GI != nil && carbs > 0 {
			giWeighted += float64(*p.GI) * carbs
			carbWeight += carbs
		}
		// Fodmap: single worst rating wins. Values outside the enum are
		// skipped so one bad item cannot abort the whole badge.
		if models.FodmapRank(p.Fodmap) > models.FodmapRank(b.Fodmap) {
			b.Fodmap = p.Fodmap
		}
		if p.NovaClass >= 1 && p.NovaClass <= 4 && p.NovaClass > b.Nova {
			b.Nova = p.NovaClass
		}
	}

	if carbWeight > 0 {
		gi := round2(giWeighted / carbWeight)
		b.GI = &gi
	}

	return b
}
