package main

import (
	"os"
	"time"

	"github.com/priyasingh1501/untangle-backend/config"
	"github.com/priyasingh1501/untangle-backend/controllers"
	"github.com/priyasingh1501/untangle-backend/routes"
	"github.com/priyasingh1501/untangle-backend/services"
	"github.com/priyasingh1501/untangle-backend/utils"
)

func main() {
	log := config.InitLogger()
	defer log.Sync()

	config.InitDB()
	config.SeedCatalog(config.DB)
	utils.InitSES()

	catalog := services.NewCatalogService(config.DB)
	usda := services.NewUSDAService(os.Getenv("USDA_API_KEY"), log)
	off := services.NewOFFService(log)
	cacheTTL := time.Duration(utils.GetEnvAsInt("RESOLVER_CACHE_TTL_MINUTES", 30)) * time.Minute
	cache := services.NewTTLCache(cacheTTL)
	resolver := services.NewFoodResolver(catalog, usda, off, cache, log)

	rek, err := services.NewRekognitionService()
	if err != nil {
		log.Warnw("rekognition disabled", "error", err)
	}

	hub := services.NewRealtimeHub()
	ai := services.NewAIAugmentService(log)
	auth := services.NewAuthService(config.DB)
	meals := services.NewMealService(config.DB, resolver, ai, hub, log)
	goals := services.NewGoalService(config.DB, meals)
	foods := services.NewFoodService(catalog, off, rek)

	r := routes.SetupRouter(routes.Controllers{
		Auth:     controllers.NewAuthController(auth),
		Food:     controllers.NewFoodController(foods),
		Meal:     controllers.NewMealController(meals, auth),
		Goal:     controllers.NewGoalController(goals),
		Realtime: controllers.NewRealtimeController(hub, log),
	}, log)

	port := utils.GetEnv("PORT", "8080")
	if err := r.Run(":" + port); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}
