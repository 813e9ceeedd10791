package utils

import (
	"fmt"

	"github.com/priyasingh1501/untangle-backend/models"
)

// ComputeEffects derives the eight independent 0-10 health-effect scores for
// a meal. Each effect is its own rule ladder: the qualifying bands differ per
// effect (fiber >= 8g means one thing for immunity and another for gut
// friendliness), so no thresholds are shared between ladders.
//
// Starting bias is deliberate and asymmetric: risk effects (fatForming,
// inflammation) start at 0 and accumulate; presence effects (strength,
// immunity, antiInflammatory) start at 0 and only add; context-relative
// effects (energizing, gutFriendly, moodLifting) start at the neutral
// midpoint 5 and move in either direction.
func ComputeEffects(totals models.NutrientTotals, badges models.Badges, ctx models.MealContext) models.EffectSet {
	return models.EffectSet{
		FatForming:       fatFormingEffect(totals, badges, ctx),
		Strength:         strengthEffect(totals, badges, ctx),
		Immunity:         immunityEffect(totals, badges, ctx),
		Inflammation:     inflammationEffect(totals, badges, ctx),
		AntiInflammatory: antiInflammatoryEffect(totals, badges, ctx),
		Energizing:       energizingEffect(totals, badges, ctx),
		GutFriendly:      gutFriendlyEffect(totals, badges, ctx),
		MoodLifting:      moodLiftingEffect(totals, badges, ctx),
	}
}

// effectLadder accumulates score and reasons for one effect.
type effectLadder struct {
	score float64
	why   []string
}

func (e *effectLadder) add(delta float64, reason string) {
	e.score += delta
	e.why = append(e.why, reason)
}

func (e *effectLadder) result(label func(float64) string) models.EffectResult {
	s := clampRange(e.score, 0, 10)
	why := e.why
	if why == nil {
		why = []string{}
	}
	return models.EffectResult{
		Score: round2(s),
		Label: label(s),
		Why:   why,
	}
}

// ---------------------------------------------------------
// fatForming: risk ladder, starts at 0, higher = worse.
// ---------------------------------------------------------
func fatFormingEffect(t models.NutrientTotals, b models.Badges, ctx models.MealContext) models.EffectResult {
	e := &effectLadder{}

	switch {
	case t.Sugar >= 30:
		e.add(3, fmt.Sprintf("Very high sugar load (%.1fg)", t.Sugar))
	case t.Sugar >= 15:
		e.add(2, fmt.Sprintf("High sugar (%.1fg)", t.Sugar))
	}
	if b.Nova == 4 {
		e.add(2, "Ultra-processed ingredients (NOVA 4)")
	}
	if b.GI != nil && *b.GI >= 70 {
		e.add(1.5, fmt.Sprintf("High glycemic index (%.0f)", *b.GI))
	}
	if t.Kcal >= 800 {
		e.add(1.5, fmt.Sprintf("Calorie-dense meal (%.0f kcal)", t.Kcal))
	}
	if t.Fat >= 30 && t.Fiber < 5 {
		e.add(1, "High fat with little fiber to slow absorption")
	}
	if ctx.LateNightEating {
		e.add(1, "Eaten late at night")
	}
	if ctx.SedentaryAfterMeal {
		e.add(1, "Sedentary after the meal")
	}
	if t.Fiber >= 8 {
		e.add(-1, "Plenty of fiber blunts the glucose spike")
	}
	if b.Protein {
		e.add(-1, "Protein supports satiety")
	}

	return e.result(riskLabel)
}

// ---------------------------------------------------------
// strength: presence ladder, starts at 0, add-only.
// ---------------------------------------------------------
func strengthEffect(t models.NutrientTotals, b models.Badges, ctx models.MealContext) models.EffectResult {
	e := &effectLadder{}

	switch {
	case t.Protein >= 30:
		e.add(4, fmt.Sprintf("Excellent protein (%.1fg)", t.Protein))
	case t.Protein >= 20:
		e.add(3, fmt.Sprintf("Strong protein content (%.1fg)", t.Protein))
	case t.Protein >= 12:
		e.add(1.5, fmt.Sprintf("Moderate protein (%.1fg)", t.Protein))
	}
	if ctx.PostWorkout && t.Protein >= 20 {
		e.add(2, "Protein timed after a workout")
	}
	if ctx.BodyMassKg > 0 && t.Protein >= 0.4*ctx.BodyMassKg {
		e.add(1, fmt.Sprintf("Meets the per-meal protein target for %.0fkg body mass", ctx.BodyMassKg))
	}
	if t.Zinc >= 2 {
		e.add(1, "Zinc supports muscle repair")
	}
	if t.Iron >= 3 {
		e.add(1, "Iron supports oxygen delivery to muscle")
	}
	if t.Kcal >= 400 && t.Protein >= 15 {
		e.add(0.5, "Enough energy to fuel training adaptation")
	}

	return e.result(benefitLabel)
}

// ---------------------------------------------------------
// immunity: presence ladder, starts at 0, add-only.
// ---------------------------------------------------------
func immunityEffect(t models.NutrientTotals, b models.Badges, ctx models.MealContext) models.EffectResult {
	e := &effectLadder{}

	switch {
	case t.VitaminC >= 30:
		e.add(2.5, fmt.Sprintf("Rich in vitamin C (%.0fmg)", t.VitaminC))
	case t.VitaminC >= 10:
		e.add(1, fmt.Sprintf("Some vitamin C (%.0fmg)", t.VitaminC))
	}
	switch {
	case t.Zinc >= 3:
		e.add(2, fmt.Sprintf("Good zinc content (%.1fmg)", t.Zinc))
	case t.Zinc >= 1.5:
		e.add(1, fmt.Sprintf("Some zinc (%.1fmg)", t.Zinc))
	}
	if t.Selenium >= 20 {
		e.add(1.5, fmt.Sprintf("Selenium present (%.0fmcg)", t.Selenium))
	}
	if b.Veg {
		e.add(1.5, "Vegetables supply phytonutrients")
	}
	if t.Fiber >= 8 {
		e.add(1, "Fiber feeds immune-supporting gut flora")
	}
	if ctx.Fermented {
		e.add(1.5, "Fermented foods add live cultures")
	}
	if ctx.PlantDiversity >= 3 {
		e.add(1, fmt.Sprintf("Plant diversity across %d sources", ctx.PlantDiversity))
	}

	return e.result(benefitLabel)
}

// ---------------------------------------------------------
// inflammation: risk ladder, starts at 0, lower band = better.
// ---------------------------------------------------------
func inflammationEffect(t models.NutrientTotals, b models.Badges, ctx models.MealContext) models.EffectResult {
	e := &effectLadder{}

	switch {
	case t.Sugar >= 25:
		e.add(2.5, fmt.Sprintf("High sugar drives glycation (%.1fg)", t.Sugar))
	case t.Sugar >= 15:
		e.add(1.5, fmt.Sprintf("Elevated sugar (%.1fg)", t.Sugar))
	}
	switch b.Nova {
	case 4:
		e.add(2, "Ultra-processed ingredients (NOVA 4)")
	case 3:
		e.add(1, "Processed ingredients (NOVA 3)")
	}
	if b.GI != nil && *b.GI >= 70 {
		e.add(1.5, "High-glycemic carbohydrates")
	}
	if t.Fat >= 35 && t.Omega3 < 0.5 {
		e.add(1.5, "Heavy in fats with almost no omega-3")
	}
	if ctx.StressEating {
		e.add(1, "Eaten under stress")
	}
	if ctx.PackagedStoredLong {
		e.add(1, "Packaged food stored for a long time")
	}
	if t.Omega3 >= 1 {
		e.add(-1.5, fmt.Sprintf("Omega-3 counters inflammation (%.1fg)", t.Omega3))
	}
	if b.Veg {
		e.add(-1, "Vegetables bring antioxidant cover")
	}

	return e.result(inflammationLabel)
}

// ---------------------------------------------------------
// antiInflammatory: presence ladder, starts at 0, add-only.
// ---------------------------------------------------------
func antiInflammatoryEffect(t models.NutrientTotals, b models.Badges, ctx models.MealContext) models.EffectResult {
	e := &effectLadder{}

	switch {
	case t.Omega3 >= 1.5:
		e.add(3, fmt.Sprintf("Strong omega-3 content (%.1fg)", t.Omega3))
	case t.Omega3 >= 0.5:
		e.add(1.5, fmt.Sprintf("Some omega-3 (%.1fg)", t.Omega3))
	}
	if t.VitaminC >= 30 {
		e.add(1.5, "Vitamin C supports antioxidant defence")
	}
	if b.Veg {
		e.add(2, "Vegetables carry anti-inflammatory compounds")
	}
	if t.Fiber >= 6 {
		e.add(1.5, fmt.Sprintf("Fiber supports an anti-inflammatory gut (%.1fg)", t.Fiber))
	}
	if ctx.Fermented {
		e.add(1, "Fermented foods calm the gut lining")
	}
	if b.Nova <= 2 {
		e.add(1, "Minimally processed ingredients")
	}
	if ctx.PlantDiversity >= 4 {
		e.add(1, "Wide plant diversity")
	}

	return e.result(benefitLabel)
}

// ---------------------------------------------------------
// energizing: context-relative, starts at the neutral midpoint 5.
// ---------------------------------------------------------
func energizingEffect(t models.NutrientTotals, b models.Badges, ctx models.MealContext) models.EffectResult {
	e := &effectLadder{score: 5}

	if b.Protein && t.Carbs >= 20 {
		e.add(1.5, "Protein with carbohydrate sustains energy release")
	}
	if t.Fiber >= 5 {
		e.add(1, "Fiber smooths the glucose curve")
	}
	if t.Iron >= 3 {
		e.add(1, "Iron supports oxygen transport")
	}
	if b.GI != nil && *b.GI >= 70 {
		e.add(-1.5, "High-GI carbs risk a spike-and-crash")
	}
	if t.Sugar >= 25 {
		e.add(-1.5, fmt.Sprintf("Sugar crash likely (%.1fg)", t.Sugar))
	}
	if t.Kcal >= 900 {
		e.add(-1, "Very heavy meal can cause sluggishness")
	}
	if t.Kcal > 0 && t.Kcal < 150 {
		e.add(-1, "Too light to sustain energy for long")
	}
	if ctx.LateNightEating {
		e.add(-1, "Late-night eating disrupts next-day energy")
	}

	return e.result(benefitLabel)
}

// ---------------------------------------------------------
// gutFriendly: context-relative, starts at the neutral midpoint 5.
// ---------------------------------------------------------
func gutFriendlyEffect(t models.NutrientTotals, b models.Badges, ctx models.MealContext) models.EffectResult {
	e := &effectLadder{score: 5}

	switch {
	case t.Fiber >= 8:
		e.add(2, fmt.Sprintf("Excellent fiber for gut flora (%.1fg)", t.Fiber))
	case t.Fiber >= 5:
		e.add(1, fmt.Sprintf("Good fiber (%.1fg)", t.Fiber))
	}
	if ctx.Fermented {
		e.add(1.5, "Fermented foods add probiotics")
	}
	if ctx.PlantDiversity >= 4 {
		e.add(1, "Plant diversity feeds a varied microbiome")
	}
	switch b.Fodmap {
	case models.FodmapHigh:
		e.add(-2, "High-FODMAP foods may trigger bloating")
	case models.FodmapMedium:
		e.add(-1, "Moderate FODMAP load")
	}
	if b.Nova == 4 {
		e.add(-1.5, "Ultra-processed additives stress the gut")
	}
	if t.Sugar >= 30 {
		e.add(-1, "Very high sugar feeds the wrong microbes")
	}
	if ctx.StressEating {
		e.add(-1, "Stress impairs digestion")
	}

	return e.result(benefitLabel)
}

// ---------------------------------------------------------
// moodLifting: context-relative, starts at the neutral midpoint 5.
// ---------------------------------------------------------
func moodLiftingEffect(t models.NutrientTotals, b models.Badges, ctx models.MealContext) models.EffectResult {
	e := &effectLadder{score: 5}

	if t.Omega3 >= 1 {
		e.add(1.5, fmt.Sprintf("Omega-3 supports mood regulation (%.1fg)", t.Omega3))
	}
	if b.Protein {
		e.add(1, "Amino acids feed neurotransmitter synthesis")
	}
	if t.Fiber >= 6 {
		e.add(1, "Fiber supports the gut-brain axis")
	}
	if b.Veg {
		e.add(1, "Vegetables are linked to better mood")
	}
	if t.Sugar >= 30 {
		e.add(-1.5, fmt.Sprintf("Sugar high then low can dip mood (%.1fg)", t.Sugar))
	}
	if b.Nova == 4 {
		e.add(-1, "Ultra-processed meals track with lower mood")
	}
	if ctx.StressEating {
		e.add(-1, "Eating under stress blunts the lift")
	}
	if ctx.MindlessEating {
		e.add(-1, "Mindless eating skips the satisfaction")
	}

	return e.result(benefitLabel)
}

// ---------------------------------------------------------
// Label bands
// ---------------------------------------------------------

// benefitLabel: higher = better.
func benefitLabel(score float64) string {
	switch {
	case score >= 8:
		return "Very High"
	case score >= 6:
		return "High"
	case score >= 4:
		return "Medium"
	case score >= 2:
		return "Low"
	default:
		return "Very Low"
	}
}

// riskLabel: higher = more risk; bands shifted so that small accumulations
// already read as Low rather than Very Low.
func riskLabel(score float64) string {
	switch {
	case score >= 7.5:
		return "Very High"
	case score >= 5.5:
		return "High"
	case score >= 3.5:
		return "Medium"
	case score >= 1.5:
		return "Low"
	default:
		return "Very Low"
	}
}

// inflammationLabel: lower band = better, with its own cut points.
func inflammationLabel(score float64) string {
	switch {
	case score < 2:
		return "Very Low"
	case score < 4:
		return "Low"
	case score < 6:
		return "Moderate"
	case score < 8:
		return "High"
	default:
		return "Very High"
	}
}
