package config

import (
	"log"

	"github.com/priyasingh1501/untangle-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func intPtr(v int) *int { return &v }

// SeedCatalog upserts the starter food catalog. Runs at boot so fresh
// databases can resolve food_ ids immediately.
func SeedCatalog(db *gorm.DB) {
	items := []models.FoodItem{
		{FoodKey: "food_grilled_chicken_breast", Name: "Grilled chicken breast", Kcal: 165, Protein: 31, Fat: 3.6, Carbs: 0, Fiber: 0, Sugar: 0, Zinc: 1, Selenium: 27.6, Iron: 1, Omega3: 0.1, GI: intPtr(0), Fodmap: "Low", NovaClass: 1},
		{FoodKey: "food_white_rice_cooked", Name: "White rice, cooked", Kcal: 130, Protein: 2.7, Fat: 0.3, Carbs: 28, Fiber: 0.4, Sugar: 0.1, Iron: 0.2, GI: intPtr(73), Fodmap: "Low", NovaClass: 1},
		{FoodKey: "food_brown_rice_cooked", Name: "Brown rice, cooked", Kcal: 123, Protein: 2.7, Fat: 1, Carbs: 25.6, Fiber: 1.6, Sugar: 0.2, Iron: 0.6, GI: intPtr(68), Fodmap: "Low", NovaClass: 1},
		{FoodKey: "food_spinach_raw", Name: "Spinach, raw", Kcal: 23, Protein: 2.9, Fat: 0.4, Carbs: 3.6, Fiber: 2.2, Sugar: 0.4, VitaminC: 28.1, Zinc: 0.5, Iron: 2.7, GI: intPtr(15), Fodmap: "Low", NovaClass: 1, Tags: "veg,leafy,greens"},
		{FoodKey: "food_broccoli_steamed", Name: "Broccoli, steamed", Kcal: 35, Protein: 2.4, Fat: 0.4, Carbs: 7.2, Fiber: 3.3, Sugar: 1.4, VitaminC: 64.9, Zinc: 0.4, Iron: 0.7, GI: intPtr(15), Fodmap: "Low", NovaClass: 1, Tags: "veg"},
		{FoodKey: "food_salmon_fillet", Name: "Salmon fillet", Kcal: 208, Protein: 20, Fat: 13, Selenium: 36.5, Zinc: 0.6, Iron: 0.8, Omega3: 2.3, GI: intPtr(0), Fodmap: "Low", NovaClass: 1},
		{FoodKey: "food_lentils_cooked", Name: "Lentils, cooked", Kcal: 116, Protein: 9, Fat: 0.4, Carbs: 20.1, Fiber: 7.9, Sugar: 1.8, VitaminC: 1.5, Zinc: 1.3, Iron: 3.3, GI: intPtr(32), Fodmap: "Medium", NovaClass: 1, Tags: "legume"},
		{FoodKey: "food_greek_yogurt_plain", Name: "Greek yogurt, plain", Kcal: 59, Protein: 10, Fat: 0.4, Carbs: 3.6, Sugar: 3.2, Zinc: 0.5, Selenium: 9.7, GI: intPtr(11), Fodmap: "Medium", NovaClass: 1, Tags: "fermented"},
		{FoodKey: "food_kimchi", Name: "Kimchi", Kcal: 15, Protein: 1.1, Fat: 0.5, Carbs: 2.4, Fiber: 1.6, Sugar: 1.1, VitaminC: 18, Iron: 2.5, GI: intPtr(15), Fodmap: "High", NovaClass: 3, Tags: "veg,fermented"},
		{FoodKey: "food_banana", Name: "Banana", Kcal: 89, Protein: 1.1, Fat: 0.3, Carbs: 22.8, Fiber: 2.6, Sugar: 12.2, VitaminC: 8.7, GI: intPtr(51), Fodmap: "Medium", NovaClass: 1},
		{FoodKey: "food_oats_rolled", Name: "Rolled oats, dry", Kcal: 389, Protein: 16.9, Fat: 6.9, Carbs: 66.3, Fiber: 10.6, Sugar: 0.99, Zinc: 4, Iron: 4.7, GI: intPtr(55), Fodmap: "Low", NovaClass: 1},
		{FoodKey: "food_almonds", Name: "Almonds", Kcal: 579, Protein: 21.2, Fat: 49.9, Carbs: 21.6, Fiber: 12.5, Sugar: 4.4, VitaminC: 0, Zinc: 3.1, Selenium: 4.1, Iron: 3.7, GI: intPtr(0), Fodmap: "Medium", NovaClass: 1},
		{FoodKey: "food_instant_noodles", Name: "Instant noodles", Kcal: 436, Protein: 9.5, Fat: 15.5, Carbs: 63, Fiber: 2.4, Sugar: 1.7, Iron: 3.2, GI: intPtr(73), Fodmap: "Medium", NovaClass: 4},
		{FoodKey: "food_cola", Name: "Cola soft drink", Kcal: 42, Carbs: 10.6, Sugar: 10.6, GI: intPtr(63), Fodmap: "High", NovaClass: 4},
		{FoodKey: "food_milk_chocolate", Name: "Milk chocolate", Kcal: 535, Protein: 7.7, Fat: 29.7, Carbs: 59.4, Fiber: 3.4, Sugar: 51.5, Zinc: 2.3, Iron: 2.4, GI: intPtr(43), Fodmap: "High", NovaClass: 4},
		{FoodKey: "food_whole_egg_boiled", Name: "Boiled egg", Kcal: 155, Protein: 12.6, Fat: 10.6, Carbs: 1.1, Sugar: 1.1, Zinc: 1.1, Selenium: 30.8, Iron: 1.2, Omega3: 0.1, GI: intPtr(0), Fodmap: "Low", NovaClass: 1},
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "food_key"}},
		DoNothing: true,
	}).Create(&items).Error
	if err != nil {
		log.Printf("Catalog seed failed: %v", err)
	}
}
