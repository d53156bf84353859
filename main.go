package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/DevSujal/level-quest-backend/handlers"
	"github.com/DevSujal/level-quest-backend/middleware"
	"github.com/DevSujal/level-quest-backend/models"
	"github.com/DevSujal/level-quest-backend/services"
	"github.com/DevSujal/level-quest-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: utils.ErrorHandler,
	})

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, Cache-Control",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	accessSecret := os.Getenv("ACCESS_TOKEN_SECRET")
	refreshSecret := os.Getenv("REFRESH_TOKEN_SECRET")
	if accessSecret == "" || refreshSecret == "" {
		log.Fatal("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET environment variables must be set")
	}

	r2Ready, err := utils.InitR2()
	if err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}
	if !r2Ready {
		log.Println("⚠️  R2 not configured, profile pictures will be stored locally")
	}

	// TranslateError turns driver duplicate-key failures into
	// gorm.ErrDuplicatedKey, which the error mapper relies on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Stat{},
		&models.Task{},
		&models.Quest{},
		&models.SubQuest{},
		&models.Reward{},
		&models.DailyChallenge{},
		&models.Challenge{},
		&models.DailyReward{},
		&models.ChallengeHistory{},
		&models.Item{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.EnsureUploadDir(); err != nil {
		log.Fatal("failed to ensure upload dir:", err)
	}

	tokens := services.NewTokenManager(accessSecret, refreshSecret)
	userService := services.NewUserService(db, tokens)
	taskService := services.NewTaskService(db)
	questService := services.NewQuestService(db)
	rewardService := services.NewRewardService(db)
	dailyService := services.NewDailyChallengeService(db)
	statService := services.NewStatService(db)
	itemService := services.NewItemService(db)

	dailyService.StartHistoryScheduler()

	api := app.Group("/api/v1")
	auth := middleware.RequireAuth(db, tokens)

	handlers.SetupUserRoutes(api, db, userService)
	handlers.SetupTaskRoutes(api, auth, taskService)
	handlers.SetupQuestRoutes(api, auth, questService, rewardService)
	handlers.SetupDailyChallengeRoutes(api, auth, dailyService)
	handlers.SetupStatRoutes(api, auth, statService)
	handlers.SetupItemRoutes(api, auth, itemService)

	app.Static("/uploads", "./uploads")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)
	log.Println("✅ Challenge history scheduler running (daily at 00:05)")

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
