package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/priyasingh1501/untangle-backend/models"
	"github.com/priyasingh1501/untangle-backend/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Input validation failures are the only errors meal creation surfaces to the
// caller; everything past validation degrades instead of failing.
var (
	ErrNoItems      = errors.New("a meal needs at least one item")
	ErrMissingFood  = errors.New("every item needs a food_id")
	ErrInvalidGrams = errors.New("grams must be between 0 and 1000")
)

// MealItemRequest is one requested food entry.
type MealItemRequest struct {
	FoodID     string  `json:"food_id"`
	Grams      float64 `json:"grams"`
	CustomName string  `json:"custom_name,omitempty"`
}

type MealService struct {
	db       *gorm.DB
	resolver *FoodResolver
	ai       *AIAugmentService
	hub      *RealtimeHub
	log      *zap.SugaredLogger
}

func NewMealService(db *gorm.DB, resolver *FoodResolver, ai *AIAugmentService, hub *RealtimeHub, log *zap.SugaredLogger) *MealService {
	return &MealService{db: db, resolver: resolver, ai: ai, hub: hub, log: log}
}

func validateItems(items []MealItemRequest) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	for _, it := range items {
		if it.FoodID == "" {
			return ErrMissingFood
		}
		if it.Grams <= 0 || it.Grams > 1000 {
			return ErrInvalidGrams
		}
	}
	return nil
}

// AddMeal validates input, runs the full scoring pipeline and persists the
// meal with its computed block. Resolution and augmentation failures degrade;
// only validation errors reach the caller.
func (s *MealService) AddMeal(
	ctx context.Context,
	user *models.User,
	mealType string,
	ateAt time.Time,
	items []MealItemRequest,
	mealCtx models.MealContext,
	skipAI bool,
) (*models.Meal, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}

	computed, degraded := s.compute(ctx, user, items, mealCtx, skipAI)

	meal := &models.Meal{UserID: user.ID, Type: mealType, AteAt: ateAt}
	if err := meal.SetContext(mealCtx); err != nil {
		return nil, err
	}
	if err := meal.SetComputed(computed); err != nil {
		return nil, err
	}
	for _, it := range items {
		meal.Items = append(meal.Items, models.MealItem{
			FoodID:     it.FoodID,
			CustomName: it.CustomName,
			Grams:      it.Grams,
		})
	}
	if err := s.db.Create(meal).Error; err != nil {
		return nil, fmt.Errorf("failed to persist meal: %w", err)
	}

	s.maybeAlert(user.ID, computed, degraded)
	s.broadcastComputed(user.ID, meal.ID, computed)
	return meal, nil
}

// UpdateMeal replaces the item list, keeps the stored context unless the
// request supplies a new one, and recomputes the whole computed block. The
// block is never patched incrementally.
func (s *MealService) UpdateMeal(
	ctx context.Context,
	user *models.User,
	mealID uint,
	mealType string,
	ateAt time.Time,
	items []MealItemRequest,
	mealCtx *models.MealContext,
	skipAI bool,
) (*models.Meal, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}

	var meal models.Meal
	if err := s.db.
		Where("id = ? AND user_id = ?", mealID, user.ID).
		First(&meal).Error; err != nil {
		return nil, err
	}

	ctxVal := s.resolveContext(&meal, mealCtx)
	computed, degraded := s.compute(ctx, user, items, ctxVal, skipAI)

	meal.Type = mealType
	meal.AteAt = ateAt
	if err := meal.SetContext(ctxVal); err != nil {
		return nil, err
	}
	if err := meal.SetComputed(computed); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.MealItem{}).Error; err != nil {
			return err
		}
		for _, it := range items {
			mi := models.MealItem{
				MealID:     meal.ID,
				FoodID:     it.FoodID,
				CustomName: it.CustomName,
				Grams:      it.Grams,
			}
			if err := tx.Create(&mi).Error; err != nil {
				return err
			}
		}
		return tx.Save(&meal).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update meal: %w", err)
	}

	var updated models.Meal
	if err := s.db.Preload("Items").First(&updated, meal.ID).Error; err != nil {
		return nil, err
	}
	s.maybeAlert(user.ID, computed, degraded)
	s.broadcastComputed(user.ID, meal.ID, computed)
	return &updated, nil
}

// resolveContext picks the caller-supplied situational context, falling back
// to the one stored on the meal when the request omits it. An unreadable
// stored context recomputes with defaults rather than failing the update.
func (s *MealService) resolveContext(meal *models.Meal, override *models.MealContext) models.MealContext {
	if override != nil {
		return *override
	}
	stored, err := meal.GetContext()
	if err != nil {
		s.log.Warnw("stored meal context unreadable", "meal_id", meal.ID, "error", err)
		return models.MealContext{}
	}
	return stored
}

// compute runs resolver -> aggregator -> badges -> mindful + effects -> AI
// merge. It always returns a usable, internally consistent block, plus the
// number of items that resolved to placeholders.
func (s *MealService) compute(
	ctx context.Context,
	user *models.User,
	items []MealItemRequest,
	mealCtx models.MealContext,
	skipAI bool,
) (models.MealComputed, int) {
	if mealCtx.BodyMassKg == 0 && user != nil {
		mealCtx.BodyMassKg = user.BodyMassKg
	}

	resolutions := s.resolver.ResolveAll(ctx, items)

	degraded := 0
	pairs := make([]utils.ProfileWithGrams, len(items))
	summaries := make([]MealItemSummary, len(items))
	for i := range items {
		if resolutions[i].Degraded {
			degraded++
		}
		pairs[i] = utils.ProfileWithGrams{Profile: &resolutions[i].Profile, Grams: items[i].Grams}
		summaries[i] = MealItemSummary{Name: resolutions[i].Profile.Name, Grams: items[i].Grams}
	}
	if degraded > 0 {
		s.log.Infow("meal computed with placeholder items", "degraded", degraded, "total", len(items))
	}

	totals := utils.AggregateNutrients(pairs)
	badges := utils.InferBadges(totals, pairs)
	mindful := utils.MindfulScore(totals, badges, mealCtx)
	effects := utils.ComputeEffects(totals, badges, mealCtx)

	userHint := ""
	if user != nil {
		userHint = user.DietGoals
	}
	enhanced, insights := s.ai.Enhance(ctx, summaries, totals, mealCtx, userHint, effects, skipAI)

	return models.MealComputed{
		Totals:     totals,
		Badges:     badges,
		Mindful:    mindful,
		Effects:    enhanced,
		AIInsights: insights,
	}, degraded
}

// maybeAlert records a persistent nudge for meals that scored poorly or could
// not be fully resolved. Alert failures are logged, never surfaced.
func (s *MealService) maybeAlert(userID uint, computed models.MealComputed, degraded int) {
	var alerts []models.Alert
	if degraded > 0 {
		alerts = append(alerts, models.Alert{
			UserID:  userID,
			Type:    "info",
			Message: fmt.Sprintf("%d item(s) could not be resolved and did not count toward your totals.", degraded),
		})
	}
	if computed.Mindful.Quality != "No data" && computed.Mindful.Score < 1.5 {
		alerts = append(alerts, models.Alert{
			UserID:  userID,
			Type:    "warning",
			Message: "That meal scored low. " + computed.Mindful.Tip,
		})
	}
	if len(alerts) == 0 {
		return
	}
	if err := s.db.Create(&alerts).Error; err != nil {
		s.log.Warnw("failed to persist meal alerts", "error", err)
	}
}

func (s *MealService) ListAlerts(userID uint, limit int) ([]models.Alert, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var alerts []models.Alert
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts).Error
	return alerts, err
}

func (s *MealService) broadcastComputed(userID, mealID uint, computed models.MealComputed) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(userID, map[string]any{
		"kind":     "meal.computed",
		"meal_id":  mealID,
		"computed": computed,
	})
}

func (s *MealService) ListMeals(userID uint) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.
		Preload("Items").
		Where("user_id = ?", userID).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}

func (s *MealService) GetMeal(userID, mealID uint) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.
		Preload("Items").
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

// DeleteMeal removes a meal and its items. Ownership is checked before
// anything is touched: a meal id belonging to another user deletes nothing.
func (s *MealService) DeleteMeal(userID, mealID uint) error {
	var meal models.Meal
	if err := s.db.
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error; err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.MealItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&meal).Error
	})
}

func (s *MealService) ListMealsByDateRange(userID uint, from, to time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.
		Preload("Items").
		Where("user_id = ? AND ate_at >= ? AND ate_at < ?", userID, from, to).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}
