package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Meal is one logged eating occasion. The computed block (totals, badges,
// mindful score, effects) is the only derived state persisted; it is fully
// recomputed whenever the item list or context changes.
type Meal struct {
	gorm.Model
	UserID   uint      `gorm:"index;not null"`
	Type     string    // "Breakfast" | "Lunch" | ...
	AteAt    time.Time // timestamp of the meal
	Items    []MealItem
	Context  datatypes.JSON // serialized MealContext
	Computed datatypes.JSON // serialized MealComputed
}

// MealItem is one food entry of a meal. Raw nutrient profiles are not stored
// with the item; they are resolved fresh (or from cache) on every recompute.
type MealItem struct {
	gorm.Model
	MealID     uint   `gorm:"index"`
	FoodID     string `gorm:"type:varchar(255);not null"`
	CustomName string
	Grams      float64
}

// SetComputed serializes the computed block onto the meal.
func (m *Meal) SetComputed(c MealComputed) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	m.Computed = datatypes.JSON(b)
	return nil
}

// GetComputed deserializes the computed block; zero value when absent.
func (m *Meal) GetComputed() (MealComputed, error) {
	var c MealComputed
	if len(m.Computed) == 0 {
		return c, nil
	}
	err := json.Unmarshal(m.Computed, &c)
	return c, err
}

// SetContext serializes the situational context onto the meal.
func (m *Meal) SetContext(ctx MealContext) error {
	b, err := json.Marshal(ctx)
	if err != nil {
		return err
	}
	m.Context = datatypes.JSON(b)
	return nil
}

// GetContext deserializes the situational context; zero value when absent.
func (m *Meal) GetContext() (MealContext, error) {
	var ctx MealContext
	if len(m.Context) == 0 {
		return ctx, nil
	}
	err := json.Unmarshal(m.Context, &ctx)
	return ctx, err
}
