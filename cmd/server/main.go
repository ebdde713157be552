package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/terminaltitans/skillchain/internal/config"
	"github.com/terminaltitans/skillchain/internal/domain/fiber/handler"
	"github.com/terminaltitans/skillchain/internal/middleware"
	"github.com/terminaltitans/skillchain/internal/model"
	"github.com/terminaltitans/skillchain/internal/repository"
	"github.com/terminaltitans/skillchain/internal/service"
	"github.com/terminaltitans/skillchain/internal/usecase"
	"github.com/terminaltitans/skillchain/internal/util"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return config.LoadAppConfig().Env != "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	portalConfig := config.LoadPortalConfig()

	// The Gemini client also serves ledger embeddings, so build it even when
	// OpenRouter handles the analysis calls.
	var gateway service.AnalysisGateway
	var embedder service.EmbeddingGenerator
	gemini, geminiErr := service.NewGeminiService(ctx)
	if geminiErr == nil {
		embedder = gemini
	}
	switch portalConfig.Provider {
	case "openrouter":
		gateway = service.NewOpenRouterService()
	default:
		if geminiErr != nil {
			log.Fatal(geminiErr)
		}
		gateway = gemini
	}

	sessions := usecase.NewSessionStore()
	verifyUC := usecase.NewVerificationUsecase(sessions, gateway, util.MockIDGenerator{}, portalConfig)

	var resolver repository.LedgerResolver
	var ledgerRepo *repository.LedgerRepository
	if config.LoadDBConfig().Enabled() {
		db := ConnectDB()
		ledgerRepo = repository.NewLedgerRepository(db)
		if err := ledgerRepo.Seed(model.SeedLedgerRecords()); err != nil {
			log.Fatal("ledger seed failed: ", err)
		}
		resolver = ledgerRepo
	} else {
		resolver = repository.NewMemoryLedger(model.SeedLedgerRecords())
	}
	ledgerUC := usecase.NewLedgerUsecase(resolver, ledgerRepo, sessions, embedder)

	jwtService := service.NewJWTService()
	authMW := middleware.Auth(jwtService)

	handler.NewAuthHandler(jwtService, verifyUC).RegisterRoutes(app, authMW)
	handler.NewVerifyHandler(verifyUC).RegisterRoutes(app, authMW)
	handler.NewLedgerHandler(ledgerUC).RegisterRoutes(app)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			log.Printf("Active goroutines: %d", runtime.NumGoroutine())
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(&model.LedgerRecord{}); err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
