package main

import (
	"log"

	"aicitybuilders/backend/config"
	"aicitybuilders/backend/middleware"
	"aicitybuilders/backend/models"
	"aicitybuilders/backend/routes"
	"aicitybuilders/backend/store"
	"aicitybuilders/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize account database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	// Record store for entitlements, progress and quiz results
	records := store.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Session cache for anonymous (preview) progress; process lifetime here,
	// page-session lifetime in the client rendition
	sessionCache := store.NewMemoryStore()

	// Initialize logger
	logger := utils.InitLogger()

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, records, sessionCache, cfg, logger)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
