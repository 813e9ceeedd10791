package models

// FodmapClass is the fermentable-carbohydrate tolerance rating of a food.
type FodmapClass string

const (
	FodmapUnknown FodmapClass = "Unknown"
	FodmapLow     FodmapClass = "Low"
	FodmapMedium  FodmapClass = "Medium"
	FodmapHigh    FodmapClass = "High"
)

// FodmapRank orders classes by severity for worst-case badge selection.
// Returns -1 for values outside the enum so callers can skip them.
func FodmapRank(f FodmapClass) int {
	switch f {
	case FodmapUnknown:
		return 0
	case FodmapLow:
		return 1
	case FodmapMedium:
		return 2
	case FodmapHigh:
		return 3
	default:
		return -1
	}
}

// ProfileSource records where a nutrient profile came from.
type ProfileSource string

const (
	SourceLocal       ProfileSource = "local"
	SourceUSDA        ProfileSource = "usda"
	SourceOFF         ProfileSource = "openfoodfacts"
	SourcePlaceholder ProfileSource = "placeholder"
)

// FoodNutrientProfile is the canonical per-100g nutrient vector every data
// source is normalized into. Numeric fields are always present and
// non-negative; GI is nil when the source carries no glycemic data.
type FoodNutrientProfile struct {
	Name      string        `json:"name"`
	Source    ProfileSource `json:"source"`
	Kcal      float64       `json:"kcal"`
	Protein   float64       `json:"protein"`
	Fat       float64       `json:"fat"`
	Carbs     float64       `json:"carbs"`
	Fiber     float64       `json:"fiber"`
	Sugar     float64       `json:"sugar"`
	VitaminC  float64       `json:"vitaminC"`
	Zinc      float64       `json:"zinc"`
	Selenium  float64       `json:"selenium"`
	Iron      float64       `json:"iron"`
	Omega3    float64       `json:"omega3"`
	GI        *int          `json:"gi"`
	Fodmap    FodmapClass   `json:"fodmap"`
	NovaClass int           `json:"novaClass"`
	Tags      []string      `json:"tags,omitempty"`
}

// PlaceholderProfile is the zero-contribution profile substituted when a food
// cannot be resolved, so meal creation still completes.
func PlaceholderProfile(name string) FoodNutrientProfile {
	return FoodNutrientProfile{
		Name:      name,
		Source:    SourcePlaceholder,
		Fodmap:    FodmapUnknown,
		NovaClass: 1,
	}
}

// HasTag reports whether the profile carries the given tag.
func (p FoodNutrientProfile) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NutrientTotals is the meal-level weighted sum of item profiles
// (nutrient_per_100g * grams/100), rounded to 2 decimals after summation.
type NutrientTotals struct {
	Kcal     float64 `json:"kcal"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	VitaminC float64 `json:"vitaminC"`
	Zinc     float64 `json:"zinc"`
	Selenium float64 `json:"selenium"`
	Iron     float64 `json:"iron"`
	Omega3   float64 `json:"omega3"`
}

// IsZero reports an all-zero totals vector (empty or fully degraded meal).
func (t NutrientTotals) IsZero() bool {
	return t.Kcal == 0 && t.Protein == 0 && t.Fat == 0 && t.Carbs == 0 &&
		t.Fiber == 0 && t.Sugar == 0 && t.VitaminC == 0 && t.Zinc == 0 &&
		t.Selenium == 0 && t.Iron == 0 && t.Omega3 == 0
}

// Badges are the discrete qualitative signals derived from totals and
// per-item metadata. GI is nil when no item has usable glycemic data;
// absence must stay distinguishable from a GI of zero.
type Badges struct {
	Protein bool        `json:"protein"`
	Veg     bool        `json:"veg"`
	GI      *float64    `json:"gi"`
	Fodmap  FodmapClass `json:"fodmap"`
	Nova    int         `json:"nova"`
}

// EffectResult is one of the eight 0-10 health-effect scores with its
// auditable contributing reasons.
type EffectResult struct {
	Score      float64  `json:"score"`
	Label      string   `json:"label"`
	Why        []string `json:"why"`
	AIInsights string   `json:"aiInsights,omitempty"`
	AIEnhanced bool     `json:"aiEnhanced,omitempty"`
}

// EffectSet always carries exactly the eight named effects, whether or not
// AI augmentation ran, so consumers never branch on AI availability.
type EffectSet struct {
	FatForming       EffectResult `json:"fatForming"`
	Strength         EffectResult `json:"strength"`
	Immunity         EffectResult `json:"immunity"`
	Inflammation     EffectResult `json:"inflammation"`
	AntiInflammatory EffectResult `json:"antiInflammatory"`
	Energizing       EffectResult `json:"energizing"`
	GutFriendly      EffectResult `json:"gutFriendly"`
	MoodLifting      EffectResult `json:"moodLifting"`
}

// MindfulScoreResult is the 0-5 composite meal quality score.
type MindfulScoreResult struct {
	Score     float64  `json:"score"`
	Quality   string   `json:"quality"`
	Rationale []string `json:"rationale"`
	Tip       string   `json:"tip"`
	Tips      []string `json:"tips"`
}

// MealContext carries situational flags supplied by the caller. All fields
// are optional; absent means false/zero.
type MealContext struct {
	PostWorkout        bool    `json:"postWorkout"`
	BodyMassKg         float64 `json:"bodyMassKg"`
	PlantDiversity     int     `json:"plantDiversity"`
	Fermented          bool    `json:"fermented"`
	AddedSugar         float64 `json:"addedSugar"`
	LateNightEating    bool    `json:"lateNightEating"`
	SedentaryAfterMeal bool    `json:"sedentaryAfterMeal"`
	StressEating       bool    `json:"stressEating"`
	PackagedStoredLong bool    `json:"packagedStoredLong"`
	MindlessEating     bool    `json:"mindlessEating"`
}

// MealComputed is the block persisted on a meal. It is recomputed as a whole
// whenever the item list or context changes, never patched incrementally.
type MealComputed struct {
	Totals     NutrientTotals     `json:"totals"`
	Badges     Badges             `json:"badges"`
	Mindful    MindfulScoreResult `json:"mindfulMealScore"`
	Effects    EffectSet          `json:"effects"`
	AIInsights string             `json:"aiInsights,omitempty"`
}
