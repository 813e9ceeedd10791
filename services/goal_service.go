package services

import (
	"errors"
	"time"

	"github.com/priyasingh1501/untangle-backend/models"
	"gorm.io/gorm"
)

// GoalService tracks daily nutrient targets and derives daily progress from
// the persisted computed totals of that day's meals.
type GoalService struct {
	db    *gorm.DB
	meals *MealService
}

func NewGoalService(db *gorm.DB, meals *MealService) *GoalService {
	return &GoalService{db: db, meals: meals}
}

// NutrientProgress is one target's consumed/goal pair.
type NutrientProgress struct {
	Consumed float64 `json:"consumed"`
	Goal     float64 `json:"goal"`
	Percent  float64 `json:"percent"`
}

// DayProgress is the day summary built from computed meal totals.
type DayProgress struct {
	Date     time.Time                   `json:"date"`
	Meals    int                         `json:"meals"`
	Totals   models.NutrientTotals       `json:"totals"`
	Progress map[string]NutrientProgress `json:"progress"`
}

func (s *GoalService) UpsertGoal(userID uint, goal models.DailyGoal) (*models.DailyGoal, error) {
	var existing models.DailyGoal
	err := s.db.Where("user_id = ?", userID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		goal.UserID = userID
		if err := s.db.Create(&goal).Error; err != nil {
			return nil, err
		}
		return &goal, nil
	}
	if err != nil {
		return nil, err
	}

	existing.Kcal = goal.Kcal
	existing.Protein = goal.Protein
	existing.Carbs = goal.Carbs
	existing.Fat = goal.Fat
	existing.Fiber = goal.Fiber
	existing.Sugar = goal.Sugar
	if err := s.db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// GetProgress sums the computed totals of every meal in the day window.
// Meals whose computed block cannot be decoded are skipped, not fatal.
func (s *GoalService) GetProgress(userID uint, date time.Time) (*models.DailyGoal, *DayProgress, error) {
	var goal models.DailyGoal
	err := s.db.Where("user_id = ?", userID).First(&goal).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24 * time.Hour)

	meals, err := s.meals.ListMealsByDateRange(userID, start, end)
	if err != nil {
		return &goal, nil, err
	}

	var day models.NutrientTotals
	counted := 0
	for i := range meals {
		c, err := meals[i].GetComputed()
		if err != nil {
			continue
		}
		day.Kcal += c.Totals.Kcal
		day.Protein += c.Totals.Protein
		day.Carbs += c.Totals.Carbs
		day.Fat += c.Totals.Fat
		day.Fiber += c.Totals.Fiber
		day.Sugar += c.Totals.Sugar
		day.VitaminC += c.Totals.VitaminC
		day.Zinc += c.Totals.Zinc
		day.Selenium += c.Totals.Selenium
		day.Iron += c.Totals.Iron
		day.Omega3 += c.Totals.Omega3
		counted++
	}

	pct := func(consumed, target float64) float64 {
		if target <= 0 {
			return 0
		}
		p := consumed / target
		if p > 1 {
			return 1
		}
		return p
	}

	progress := &DayProgress{
		Date:   start,
		Meals:  counted,
		Totals: day,
		Progress: map[string]NutrientProgress{
			"kcal":    {Consumed: day.Kcal, Goal: goal.Kcal, Percent: pct(day.Kcal, goal.Kcal)},
			"protein": {Consumed: day.Protein, Goal: goal.Protein, Percent: pct(day.Protein, goal.Protein)},
			"carbs":   {Consumed: day.Carbs, Goal: goal.Carbs, Percent: pct(day.Carbs, goal.Carbs)},
			"fat":     {Consumed: day.Fat, Goal: goal.Fat, Percent: pct(day.Fat, goal.Fat)},
			"fiber":   {Consumed: day.Fiber, Goal: goal.Fiber, Percent: pct(day.Fiber, goal.Fiber)},
			"sugar":   {Consumed: day.Sugar, Goal: goal.Sugar, Percent: pct(day.Sugar, goal.Sugar)},
		},
	}
	return &goal, progress, nil
}
