package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"

	"moneypal-go-be/ai"
	"moneypal-go-be/categorizer"
	"moneypal-go-be/config"
	"moneypal-go-be/database"
	"moneypal-go-be/handlers"
	"moneypal-go-be/middleware"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	if cfg.Env != "local" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	// Connect to Database
	database.ConnectDB(cfg.DatabaseURL, log)

	if cfg.SeedDemoData {
		database.SeedDemoData(log)
	}

	// Optional Redis cache for financial summaries
	var cache *database.Cache
	if cfg.RedisAddr != "" {
		var err error
		cache, err = database.NewCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, running without summary cache")
			cache = nil
		}
	}

	// Remote reasoning client; without an API key the categorizer and coach
	// run in fallback-only mode.
	var completer ai.Completer
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel,
			time.Duration(cfg.AITimeoutSeconds)*time.Second, log)
		if err != nil {
			log.WithError(err).Warn("Failed to init AI client, running in fallback-only mode")
		} else {
			completer = gemini
		}
	} else {
		log.Warn("GEMINI_API_KEY not set, running in fallback-only mode")
	}

	cat := categorizer.New(categorizer.DefaultKeywords(), completer, log)
	handlers.Init(cfg, cat, completer, cache, log)

	// Initialize Fiber app
	app := fiber.New()

	// Middleware
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api")

	// Health Check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", handlers.Signup)
	authGroup.Post("/login", handlers.Login)

	protected := middleware.Protected(cfg.JWTSecret)

	users := api.Group("/users", protected)
	users.Get("/me", handlers.Me)
	users.Put("/me/budget", handlers.UpdateBudget)

	transactions := api.Group("/transactions", protected)
	transactions.Post("/add", handlers.AddTransaction)
	transactions.Get("/", handlers.ListTransactions)
	transactions.Get("/chart-data", handlers.ChartData)
	transactions.Post("/magic-parse", handlers.MagicParse)
	transactions.Post("/recategorize", handlers.Recategorize)

	goals := api.Group("/goals", protected)
	goals.Post("/create", handlers.CreateGoal)
	goals.Get("/list", handlers.ListGoals)
	goals.Put("/:id/add", handlers.AddFunds)
	goals.Delete("/:id", handlers.DeleteGoal)

	api.Post("/chat", protected, handlers.Chat)
	api.Post("/audit", protected, handlers.Audit)

	// Start Server
	log.Fatal(app.Listen(":" + cfg.Port))
}
