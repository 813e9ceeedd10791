package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/priyasingh1501/untangle-backend/controllers"
	"github.com/priyasingh1501/untangle-backend/middlewares"
	"go.uber.org/zap"
)

type Controllers struct {
	Auth     *controllers.AuthController
	Food     *controllers.FoodController
	Meal     *controllers.MealController
	Goal     *controllers.GoalController
	Realtime *controllers.RealtimeController
}

func SetupRouter(c Controllers, log *zap.SugaredLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(log))

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", c.Auth.GetProfile)
		user.PUT("/profile", c.Auth.UpdateProfile)
	}

	// Food lookup and recognition
	food := r.Group("/foods")
	food.Use(middlewares.AuthMiddleware())
	{
		food.GET("/search", c.Food.Search)
		food.POST("/recognize", c.Food.Recognize)
		food.GET("/catalog/:key", c.Food.GetCatalogProfile)
		food.PUT("/catalog", c.Food.UpsertCatalogItem)
	}

	// Meal logging and scoring
	meals := r.Group("/meals")
	meals.Use(middlewares.AuthMiddleware())
	{
		meals.POST("", c.Meal.Create)
		meals.GET("", c.Meal.List)
		meals.GET("/:id", c.Meal.Get)
		meals.PUT("/:id", c.Meal.Update)
		meals.DELETE("/:id", c.Meal.Delete)
		meals.POST("/:id/email", c.Meal.EmailSummary)
	}

	// Alerts raised by meal scoring
	alerts := r.Group("/alerts")
	alerts.Use(middlewares.AuthMiddleware())
	{
		alerts.GET("", c.Meal.Alerts)
	}

	// Daily goals
	goals := r.Group("/goals")
	goals.Use(middlewares.AuthMiddleware())
	{
		goals.PUT("", c.Goal.Upsert)
		goals.GET("/progress", c.Goal.Progress)
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/meals", c.Realtime.Connect)
	}

	return r
}
