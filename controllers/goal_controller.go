package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/priyasingh1501/untangle-backend/models"
	"github.com/priyasingh1501/untangle-backend/services"
)

type GoalController struct {
	goals *services.GoalService
}

func NewGoalController(goals *services.GoalService) *GoalController {
	return &GoalController{goals: goals}
}

type goalRequest struct {
	Kcal    float64 `json:"kcal" binding:"min=0"`
	Protein float64 `json:"protein" binding:"min=0"`
	Carbs   float64 `json:"carbs" binding:"min=0"`
	Fat     float64 `json:"fat" binding:"min=0"`
	Fiber   float64 `json:"fiber" binding:"min=0"`
	Sugar   float64 `json:"sugar" binding:"min=0"`
}

// PUT /goals
func (gc *GoalController) Upsert(c *gin.Context) {
	var body goalRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	goal, err := gc.goals.UpsertGoal(c.GetUint("userID"), models.DailyGoal{
		Kcal:    body.Kcal,
		Protein: body.Protein,
		Carbs:   body.Carbs,
		Fat:     body.Fat,
		Fiber:   body.Fiber,
		Sugar:   body.Sugar,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, goal)
}

// GET /goals/progress?date=YYYY-MM-DD
func (gc *GoalController) Progress(c *gin.Context) {
	date := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}
	goal, progress, err := gc.goals.GetProgress(c.GetUint("userID"), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": goal, "progress": progress})
}
