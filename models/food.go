package models

import (
	"strings"

	"gorm.io/gorm"
)

// FoodItem is a local catalog entry with the full canonical per-100g profile.
type FoodItem struct {
	gorm.Model
	FoodKey   string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name      string `gorm:"not null"`
	Kcal      float64
	Protein   float64
	Fat       float64
	Carbs     float64
	Fiber     float64
	Sugar     float64
	VitaminC  float64
	Zinc      float64
	Selenium  float64
	Iron      float64
	Omega3    float64
	GI        *int
	Fodmap    string `gorm:"size:10;default:Unknown"`
	NovaClass int    `gorm:"default:1"`
	Tags      string // comma-separated, e.g. "veg,leafy"
}

// ToProfile converts the catalog row into the canonical profile.
func (f *FoodItem) ToProfile() FoodNutrientProfile {
	fodmap := FodmapClass(f.Fodmap)
	if FodmapRank(fodmap) < 0 {
		fodmap = FodmapUnknown
	}
	nova := f.NovaClass
	if nova < 1 || nova > 4 {
		nova = 1
	}
	var tags []string
	for _, t := range strings.Split(f.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return FoodNutrientProfile{
		Name:      f.Name,
		Source:    SourceLocal,
		Kcal:      nonNegative(f.Kcal),
		Protein:   nonNegative(f.Protein),
		Fat:       nonNegative(f.Fat),
		Carbs:     nonNegative(f.Carbs),
		Fiber:     nonNegative(f.Fiber),
		Sugar:     nonNegative(f.Sugar),
		VitaminC:  nonNegative(f.VitaminC),
		Zinc:      nonNegative(f.Zinc),
		Selenium:  nonNegative(f.Selenium),
		Iron:      nonNegative(f.Iron),
		Omega3:    nonNegative(f.Omega3),
		GI:        f.GI,
		Fodmap:    fodmap,
		NovaClass: nova,
		Tags:      tags,
	}
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
