package utils

import (
	"testing"

	"github.com/priyasingh1501/untangle-backend/models"
	"github.com/stretchr/testify/assert"
)

func TestComputeEffectsAlwaysEightScores(t *testing.T) {
	set := ComputeEffects(models.NutrientTotals{}, models.Badges{Fodmap: models.FodmapUnknown, Nova: 1}, models.MealContext{})

	for name, r := range map[string]models.EffectResult{
		"fatForming":       set.FatForming,
		"strength":         set.Strength,
		"immunity":         set.Immunity,
		"inflammation":     set.Inflammation,
		"antiInflammatory": set.AntiInflammatory,
		"energizing":       set.Energizing,
		"gutFriendly":      set.GutFriendly,
		"moodLifting":      set.MoodLifting,
	} {
		assert.GreaterOrEqual(t, r.Score, 0.0, name)
		assert.LessOrEqual(t, r.Score, 10.0, name)
		assert.NotEmpty(t, r.Label, name)
		assert.NotNil(t, r.Why, name)
	}
}

func TestComputeEffectsStartingBias(t *testing.T) {
	// An empty meal exposes the per-effect starting points.
	set := ComputeEffects(models.NutrientTotals{}, models.Badges{Fodmap: models.FodmapUnknown, Nova: 1}, models.MealContext{})

	assert.Equal(t, 0.0, set.FatForming.Score)
	assert.Equal(t, 0.0, set.Strength.Score)
	assert.Equal(t, 0.0, set.Immunity.Score)
	assert.Equal(t, 0.0, set.Inflammation.Score)
	// Nova 1 gives antiInflammatory its minimally-processed credit.
	assert.Equal(t, 1.0, set.AntiInflammatory.Score)
	assert.Equal(t, 5.0, set.Energizing.Score)
	assert.Equal(t, 5.0, set.GutFriendly.Score)
	assert.Equal(t, 5.0, set.MoodLifting.Score)
}

func TestFatFormingSugaryUltraProcessedMeal(t *testing.T) {
	gi := 75.0
	totals := models.NutrientTotals{Kcal: 850, Sugar: 45, Fat: 32, Fiber: 2}
	badges := models.Badges{GI: &gi, Nova: 4, Fodmap: models.FodmapUnknown}
	ctx := models.MealContext{LateNightEating: true, SedentaryAfterMeal: true}

	r := fatFormingEffect(totals, badges, ctx)

	// 3 + 2 + 1.5 + 1.5 + 1 + 1 + 1 = 11, clamped to 10.
	assert.Equal(t, 10.0, r.Score)
	assert.Equal(t, "Very High", r.Label)
	assert.Contains(t, r.Why, "Very high sugar load (45.0g)")
	assert.Contains(t, r.Why, "Ultra-processed ingredients (NOVA 4)")
}

func TestFatFormingSugarBandsAreExclusive(t *testing.T) {
	base := models.Badges{Fodmap: models.FodmapUnknown, Nova: 1}

	high := fatFormingEffect(models.NutrientTotals{Sugar: 30}, base, models.MealContext{})
	mid := fatFormingEffect(models.NutrientTotals{Sugar: 15}, base, models.MealContext{})

	assert.Equal(t, 3.0, high.Score)
	assert.Equal(t, 2.0, mid.Score)
	assert.Len(t, high.Why, 1, "only one sugar band may fire")
	assert.Len(t, mid.Why, 1)
}

func TestStrengthProteinMeal(t *testing.T) {
	totals := models.NutrientTotals{Kcal: 520, Protein: 42, Zinc: 2.5, Iron: 3.5}
	ctx := models.MealContext{PostWorkout: true, BodyMassKg: 80}

	r := strengthEffect(totals, models.Badges{Protein: true}, ctx)

	// 4 + 2 + 1 (42 >= 0.4*80) + 1 + 1 + 0.5 = 9.5
	assert.Equal(t, 9.5, r.Score)
	assert.Equal(t, "Very High", r.Label)
}

func TestStrengthBodyMassRuleNeedsBodyMass(t *testing.T) {
	totals := models.NutrientTotals{Protein: 42}

	with := strengthEffect(totals, models.Badges{}, models.MealContext{BodyMassKg: 80})
	without := strengthEffect(totals, models.Badges{}, models.MealContext{})

	assert.Equal(t, with.Score, without.Score+1)
}

func TestInflammationOmega3Offset(t *testing.T) {
	totals := models.NutrientTotals{Sugar: 27, Omega3: 2.3}
	badges := models.Badges{Veg: true, Nova: 1, Fodmap: models.FodmapUnknown}

	r := inflammationEffect(totals, badges, models.MealContext{})

	// 2.5 - 1.5 - 1 = 0
	assert.Equal(t, 0.0, r.Score)
	assert.Equal(t, "Very Low", r.Label)
}

func TestGutFriendlyHighFodmapPenalty(t *testing.T) {
	totals := models.NutrientTotals{Fiber: 6}
	high := gutFriendlyEffect(totals, models.Badges{Fodmap: models.FodmapHigh, Nova: 1}, models.MealContext{})
	low := gutFriendlyEffect(totals, models.Badges{Fodmap: models.FodmapLow, Nova: 1}, models.MealContext{})

	assert.Equal(t, low.Score-2, high.Score)
}

func TestEnergizingSpikeAndCrash(t *testing.T) {
	gi := 78.0
	totals := models.NutrientTotals{Kcal: 950, Sugar: 40}
	r := energizingEffect(totals, models.Badges{GI: &gi}, models.MealContext{LateNightEating: true})

	// 5 - 1.5 - 1.5 - 1 - 1 = 0
	assert.Equal(t, 0.0, r.Score)
	assert.Equal(t, "Very Low", r.Label)
}

func TestMoodLiftingNeutralWithoutSignals(t *testing.T) {
	r := moodLiftingEffect(models.NutrientTotals{}, models.Badges{Nova: 1}, models.MealContext{})
	assert.Equal(t, 5.0, r.Score)
	assert.Equal(t, "Medium", r.Label)
	assert.Empty(t, r.Why)
}

func TestComputeEffectsIdempotent(t *testing.T) {
	gi := 60.0
	totals := models.NutrientTotals{Kcal: 600, Protein: 25, Carbs: 50, Fiber: 7, Sugar: 10, Omega3: 1.2}
	badges := models.Badges{Protein: true, Veg: true, GI: &gi, Fodmap: models.FodmapLow, Nova: 2}
	ctx := models.MealContext{PlantDiversity: 4, Fermented: true}

	a := ComputeEffects(totals, badges, ctx)
	b := ComputeEffects(totals, badges, ctx)

	assert.Equal(t, a, b)
}

func TestLabelBands(t *testing.T) {
	assert.Equal(t, "Very High", benefitLabel(8))
	assert.Equal(t, "High", benefitLabel(6))
	assert.Equal(t, "Medium", benefitLabel(4))
	assert.Equal(t, "Low", benefitLabel(2))
	assert.Equal(t, "Very Low", benefitLabel(1.9))

	assert.Equal(t, "Very High", riskLabel(7.5))
	assert.Equal(t, "Low", riskLabel(1.5))
	assert.Equal(t, "Very Low", riskLabel(1.4))

	assert.Equal(t, "Very Low", inflammationLabel(1.9))
	assert.Equal(t, "Moderate", inflammationLabel(5))
	assert.Equal(t, "Very High", inflammationLabel(8))
}
