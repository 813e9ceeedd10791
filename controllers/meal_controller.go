package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/priyasingh1501/untangle-backend/models"
	"github.com/priyasingh1501/untangle-backend/services"
	"github.com/priyasingh1501/untangle-backend/utils"
	"gorm.io/gorm"
)

type MealController struct {
	meals *services.MealService
	auth  *services.AuthService
}

func NewMealController(meals *services.MealService, auth *services.AuthService) *MealController {
	return &MealController{meals: meals, auth: auth}
}

type mealRequest struct {
	Type    string                     `json:"type"`
	AteAt   time.Time                  `json:"ate_at"`
	Items   []services.MealItemRequest `json:"items"`
	Context *models.MealContext        `json:"context"`
	SkipAI  bool                       `json:"skip_ai"`
}

func isValidationError(err error) bool {
	return errors.Is(err, services.ErrNoItems) ||
		errors.Is(err, services.ErrMissingFood) ||
		errors.Is(err, services.ErrInvalidGrams)
}

// POST /meals
func (mc *MealController) Create(c *gin.Context) {
	var body mealRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := mc.auth.GetByID(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	if body.AteAt.IsZero() {
		body.AteAt = time.Now()
	}
	mealCtx := models.MealContext{}
	if body.Context != nil {
		mealCtx = *body.Context
	}

	meal, err := mc.meals.AddMeal(c.Request.Context(), user, body.Type, body.AteAt, body.Items, mealCtx, body.SkipAI)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// PUT /meals/:id
func (mc *MealController) Update(c *gin.Context) {
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}
	var body mealRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := mc.auth.GetByID(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	if body.AteAt.IsZero() {
		body.AteAt = time.Now()
	}

	meal, err := mc.meals.UpdateMeal(c.Request.Context(), user, uint(mealID), body.Type, body.AteAt, body.Items, body.Context, body.SkipAI)
	if err != nil {
		switch {
		case isValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, meal)
}

// GET /meals
func (mc *MealController) List(c *gin.Context) {
	userID := c.GetUint("userID")

	if from, to := c.Query("from"), c.Query("to"); from != "" && to != "" {
		f, err1 := time.Parse("2006-01-02", from)
		t, err2 := time.Parse("2006-01-02", to)
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be YYYY-MM-DD"})
			return
		}
		meals, err := mc.meals.ListMealsByDateRange(userID, f, t.Add(24*time.Hour))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, meals)
		return
	}

	meals, err := mc.meals.ListMeals(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}

// GET /meals/:id
func (mc *MealController) Get(c *gin.Context) {
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}
	meal, err := mc.meals.GetMeal(c.GetUint("userID"), uint(mealID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	c.JSON(http.StatusOK, meal)
}

// DELETE /meals/:id
func (mc *MealController) Delete(c *gin.Context) {
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}
	if err := mc.meals.DeleteMeal(c.GetUint("userID"), uint(mealID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /alerts
func (mc *MealController) Alerts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	alerts, err := mc.meals.ListAlerts(c.GetUint("userID"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// POST /meals/:id/email sends the computed breakdown to the user's inbox.
func (mc *MealController) EmailSummary(c *gin.Context) {
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}
	user, err := mc.auth.GetByID(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	meal, err := mc.meals.GetMeal(user.ID, uint(mealID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	computed, err := meal.GetComputed()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "meal has no computed data"})
		return
	}

	subject := fmt.Sprintf("Your %s breakdown", strings.ToLower(nonEmpty(meal.Type, "meal")))
	if err := utils.SendEmail(c.Request.Context(), user.Email, subject, formatMealSummary(meal, computed)); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": true})
}

func nonEmpty(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func formatMealSummary(meal *models.Meal, c models.MealComputed) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Meal logged at %s\n\n", meal.AteAt.Format("Mon, 2 Jan 15:04")))
	sb.WriteString(fmt.Sprintf("Totals: %.0f kcal, %.1fg protein, %.1fg carbs, %.1fg fat, %.1fg fiber, %.1fg sugar\n\n",
		c.Totals.Kcal, c.Totals.Protein, c.Totals.Carbs, c.Totals.Fat, c.Totals.Fiber, c.Totals.Sugar))
	sb.WriteString(fmt.Sprintf("Mindful meal score: %.1f/5 (%s)\n", c.Mindful.Score, c.Mindful.Quality))
	for _, r := range c.Mindful.Rationale {
		sb.WriteString("  " + r + "\n")
	}
	sb.WriteString("Tip: " + c.Mindful.Tip + "\n\n")

	sb.WriteString("Effects:\n")
	for _, e := range []struct {
		name string
		res  models.EffectResult
	}{
		{"Fat-forming", c.Effects.FatForming},
		{"Strength", c.Effects.Strength},
		{"Immunity", c.Effects.Immunity},
		{"Inflammation", c.Effects.Inflammation},
		{"Anti-inflammatory", c.Effects.AntiInflammatory},
		{"Energizing", c.Effects.Energizing},
		{"Gut-friendly", c.Effects.GutFriendly},
		{"Mood-lifting", c.Effects.MoodLifting},
	} {
		sb.WriteString(fmt.Sprintf("  %s: %.1f/10 (%s)\n", e.name, e.res.Score, e.res.Label))
	}
	if c.AIInsights != "" {
		sb.WriteString("\nInsights: " + c.AIInsights + "\n")
	}
	return sb.String()
}
