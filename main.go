package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/samuelurones28/Proyecto/api"
	"github.com/samuelurones28/Proyecto/config"
	"github.com/samuelurones28/Proyecto/database"
	"github.com/samuelurones28/Proyecto/middleware"
	"github.com/samuelurones28/Proyecto/repository"
	"github.com/samuelurones28/Proyecto/services"
	"github.com/samuelurones28/Proyecto/utils"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("FATAL: [Main] %v", err)
	}

	planRepo := repository.NewPlanRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	measurementRepo := repository.NewMeasurementRepository(db)
	seriesRepo := repository.NewSeriesRepository(db)
	mealRepo := repository.NewMealRepository(db)
	chatRepo := repository.NewChatRepository(db)
	sessionRepo := repository.NewSessionRepository()
	log.Println("INFO: [Main] Repositories initialized.")

	clock := services.SystemClock()
	matcher := utils.NewMatcher(cfg.Matching.DiceThreshold, cfg.Matching.ContainmentRatio)

	catalogService := services.NewCatalogService(catalogRepo)
	if err := catalogService.SeedDefaults(); err != nil {
		log.Printf("WARN: [Main] Catalog seeding failed: %v", err)
	}
	planService := services.NewPlanService(planRepo, calendarRepo, profileRepo)
	calendarService := services.NewCalendarService(calendarRepo, seriesRepo)
	commandService := services.NewCommandService(planRepo, calendarRepo, catalogRepo, matcher, clock)
	coachService := services.NewCoachService(services.CoachDeps{
		ProfileRepo:  profileRepo,
		CalendarRepo: calendarRepo,
		CatalogRepo:  catalogRepo,
		ChatRepo:     chatRepo,
		Plans:        planService,
		Commands:     commandService,
		LLM:          services.NewLLMClient(cfg.LLM),
		Clock:        clock,
		HistoryLimit: cfg.LLM.HistoryLimit,
	})
	nutritionService := services.NewNutritionService(planService, profileRepo, measurementRepo, mealRepo, services.NewFoodClient(cfg.Food))
	notifier := services.NewLocalNotifier(nil)
	log.Println("INFO: [Main] Services initialized.")

	apiHandler := api.NewAPIHandler(api.Services{
		Coach:        coachService,
		Plans:        planService,
		Calendar:     calendarService,
		Nutrition:    nutritionService,
		Measurements: services.NewMeasurementService(measurementRepo, clock),
		Profiles:     services.NewProfileService(profileRepo),
		Catalog:      catalogService,
		Workouts:     services.NewWorkoutService(sessionRepo, seriesRepo, calendarService, clock),
		History:      services.NewHistoryService(seriesRepo, catalogRepo, matcher),
		Timers:       services.NewTimerService(clock, notifier, cfg.Timer),
		Clock:        clock,
	})
	log.Println("INFO: [Main] API Handler initialized.")

	r := gin.New()
	r.Use(gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("WARN: [Main] Failed to reset trusted proxies: %v", err)
	}
	r.Use(middleware.Logger())
	r.Use(middleware.Cors())
	api.RegisterRoutes(r, apiHandler)
	log.Println("INFO: [Main] Routes registered.")

	serverPort := ":" + cfg.Server.Port
	if cfg.Server.Port == "" {
		log.Println("WARN: [Main] Server port not configured, using default :8080.")
		serverPort = ":8080"
	}
	log.Printf("INFO: [Main] Starting server on port %s", serverPort)
	if err := r.Run(serverPort); err != nil {
		log.Fatalf("FATAL: [Main] Server failed to start: %v", err)
	}
}
