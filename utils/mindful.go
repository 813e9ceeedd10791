package utils

import (
	"fmt"
	"sort"

	"github.com/priyasingh1501/untangle-backend/models"
)

// Tip priorities: when several rules fail, the primary tip is the one with
// the lowest number. Order is fixed by product intent.
const (
	tipPriorityProcessed = 1
	tipPriorityProtein   = 2
	tipPriorityVeg       = 3
	tipPrioritySugar     = 4
	tipPriorityGI        = 5
	tipPriorityOther     = 9
)

type tipCandidate struct {
	priority int
	text     string
}

// MindfulScore folds totals, badges and situational context into a single
// 0-5 meal quality score with a human-readable rationale and one primary tip.
func MindfulScore(totals models.NutrientTotals, badges models.Badges, ctx models.MealContext) models.MindfulScoreResult {
	if totals.IsZero() {
		return models.MindfulScoreResult{
			Score:     0,
			Quality:   "No data",
			Rationale: []string{"Empty meal: nothing to score yet."},
			Tip:       "Log what you ate to get a mindful meal score.",
			Tips:      []string{},
		}
	}

	var (
		score      float64
		rationale  []string
		candidates []tipCandidate
	)

	// 1) Protein
	if badges.Protein {
		score += 1
		rationale = append(rationale, fmt.Sprintf("+ Good protein content (%.1fg)", totals.Protein))
	} else {
		rationale = append(rationale, "- Low protein for this meal")
		candidates = append(candidates, tipCandidate{tipPriorityProtein,
			"Add a protein source such as eggs, dal, paneer, or chicken."})
	}

	// 2) Vegetables / fiber
	if badges.Veg {
		score += 1
		rationale = append(rationale, "+ Vegetables or fiber present")
	} else {
		rationale = append(rationale, "- No vegetables detected")
		candidates = append(candidates, tipCandidate{tipPriorityVeg,
			"Add a vegetable or salad for fiber and micronutrients."})
	}

	// 3) Sugar
	if totals.Sugar < 15 {
		score += 1
		rationale = append(rationale, "+ Sugar within a mindful range")
	} else {
		score -= 0.5
		rationale = append(rationale, fmt.Sprintf("- High sugar (%.1fg)", totals.Sugar))
		candidates = append(candidates, tipCandidate{tipPrioritySugar,
			"Cut back on sugary drinks or desserts to keep sugar under 15g."})
	}

	// 4) Carbohydrate balance
	if totals.Kcal > 0 {
		carbShare := (totals.Carbs * 4) / totals.Kcal
		if carbShare <= 0.45 || totals.Fiber >= 7 {
			score += 1
			rationale = append(rationale, "+ Balanced carbohydrate load")
		} else {
			score -= 0.5
			rationale = append(rationale, "- Carb-heavy with little fiber")
			candidates = append(candidates, tipCandidate{tipPriorityOther,
				"Add fiber or trim refined carbs to balance the meal."})
		}
	}

	// 5) Glycemic index (only when data exists)
	if badges.GI != nil {
		if *badges.GI >= 70 {
			score -= 0.5
			rationale = append(rationale, fmt.Sprintf("- High glycemic index (%.0f)", *badges.GI))
			candidates = append(candidates, tipCandidate{tipPriorityGI,
				"Swap fast-release carbs for whole grains or legumes."})
		} else {
			score += 0.5
			rationale = append(rationale, "+ Moderate glycemic index")
		}
	}

	// 6) Processing level
	switch {
	case badges.Nova == 4:
		score -= 1
		rationale = append(rationale, "- Ultra-processed ingredients (NOVA 4)")
		candidates = append(candidates, tipCandidate{tipPriorityProcessed,
			"Swap packaged or ultra-processed items for fresh whole foods."})
	case badges.Nova <= 2:
		score += 0.5
		rationale = append(rationale, "+ Minimally processed ingredients")
	}

	// 7) Situational context
	if ctx.AddedSugar >= 10 {
		score -= 0.5
		rationale = append(rationale, fmt.Sprintf("- Added sugar on top (%.0fg)", ctx.AddedSugar))
		candidates = append(candidates, tipCandidate{tipPriorityOther,
			"Skip the extra spoon of sugar; taste first."})
	}
	if ctx.MindlessEating {
		score -= 0.5
		rationale = append(rationale, "- Eaten without attention")
		candidates = append(candidates, tipCandidate{tipPriorityOther,
			"Put the screen away for your next meal and eat slowly."})
	}
	if ctx.LateNightEating {
		score -= 0.5
		rationale = append(rationale, "- Late-night meal")
	}

	score = clampRange(score, 0, 5)

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].priority < candidates[j].priority
	})
	tips := make([]string, 0, len(candidates))
	for _, c := range candidates {
		tips = append(tips, c.text)
	}
	tip := "Nice balance. Keep eating like this."
	if len(tips) > 0 {
		tip = tips[0]
	}

	return models.MindfulScoreResult{
		Score:     round2(score),
		Quality:   mindfulQuality(score),
		Rationale: rationale,
		Tip:       tip,
		Tips:      tips,
	}
}

func mindfulQuality(score float64) string {
	switch {
	case score >= 4.5:
		return "Excellent"
	case score >= 3.5:
		return "Great"
	case score >= 2.5:
		return "Good"
	case score >= 1.5:
		return "Fair"
	default:
		return "Needs work"
	}
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
