package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"synthara-api/config"
	"synthara-api/handlers"
	"synthara-api/models"
	"synthara-api/services"
	"synthara-api/store"
	"synthara-api/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openDatabase accepts a postgres DSN or "sqlite:<path>".
func openDatabase(url string) (*gorm.DB, error) {
	if path, ok := strings.CutPrefix(url, "sqlite:"); ok {
		return gorm.Open(sqlite.Open(path), &gorm.Config{})
	}
	return gorm.Open(postgres.Open(url), &gorm.Config{})
}

func openStateStore(ctx context.Context, cfg *config.Config, db *gorm.DB) (store.StateStore, error) {
	switch cfg.StateBackend {
	case config.StateBackendSQL:
		sqlStore := store.NewSQLStore(db)
		if err := sqlStore.Migrate(); err != nil {
			return nil, fmt.Errorf("migrate state tables: %w", err)
		}
		return sqlStore, nil
	case config.StateBackendRedis:
		client, err := store.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		return store.NewRedisStore(client), nil
	default:
		return store.NewMemoryStore(), nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.ModelProfile{},
		&models.LoRAAsset{},
		&models.GoldNFTDrop{},
		&models.Auction{},
		&models.GameEvent{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	stateStore, err := openStateStore(ctx, cfg, db)
	if err != nil {
		log.Fatal("failed to open state store:", err)
	}

	events := services.NewEventLog()
	tickets := services.NewTicketService(stateStore)
	economy := services.NewEconomyService(stateStore, events)

	svc := &handlers.Services{
		Config:       cfg,
		Users:        services.NewUserService(db),
		Games:        services.NewGameEventService(db),
		Models:       services.NewModelService(db),
		Economy:      economy,
		Tickets:      tickets,
		Entitlements: services.NewEntitlementService(tickets, economy),
		GamePreview:  services.NewGamePreviewService(tickets, events),
		Events:       events,
	}

	if cfg.R2Enabled() {
		uploader, err := utils.NewR2Uploader(ctx, cfg.R2)
		if err != nil {
			log.Fatal("failed to initialize R2 client:", err)
		}
		svc.Avatars = uploader
	} else {
		log.Println("⚠️  R2 is not configured, avatar uploads are disabled")
	}

	if cfg.TicketSweepInterval > 0 {
		sched, err := tickets.StartExpirySweeper(cfg.TicketSweepInterval)
		if err != nil {
			log.Fatal("failed to start ticket sweeper:", err)
		}
		defer func() {
			if err := sched.Shutdown(); err != nil {
				log.Printf("Scheduler shutdown error: %v", err)
			}
		}()
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.OriginsHeader(),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Admin-Key, Cache-Control",
		MaxAge:       86400,
	}))

	handlers.SetupRoutes(app, svc)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s (env=%s)", cfg.Port, cfg.AppEnv())
	log.Printf("✅ State backend: %s", cfg.StateBackend)
	log.Printf("✅ CORS configured for origins: %s", cfg.OriginsHeader())

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
