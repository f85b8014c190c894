package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/abuela-pos/internal/application/ports"
	"github.com/tu-usuario/abuela-pos/internal/application/usecase"
	infraai "github.com/tu-usuario/abuela-pos/internal/infrastructure/ai"
	"github.com/tu-usuario/abuela-pos/internal/infrastructure/storage"
	httpRouter "github.com/tu-usuario/abuela-pos/internal/interfaces/http"
	"github.com/tu-usuario/abuela-pos/pkg/config"
	"github.com/tu-usuario/abuela-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var store ports.SnapshotStore
	switch cfg.Store.Driver {
	case "postgres":
		pool, err := storage.NewPool(ctx, cfg.Store)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		store, err = storage.NewPostgresStore(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("inicializar store postgres")
		}
	case "memory":
		store = storage.NewMemoryStore()
	default:
		store, err = storage.NewFileStore(cfg.Store.DataDir)
		if err != nil {
			log.Fatal().Err(err).Msg("inicializar store de archivos")
		}
	}

	recordRepo, err := storage.NewRecordRepo(ctx, store, log)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar libro de registros")
	}
	productRepo, err := storage.NewProductRepo(ctx, store, log)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar catálogo")
	}
	configRepo, err := storage.NewConfigRepo(ctx, store, cfg.Shop, log)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar configuración de la tienda")
	}

	gemini := infraai.NewGeminiService(cfg.AI.APIKey, cfg.AI.Model)

	creditsUC := usecase.NewCreditsUseCase(configRepo)
	sessionUC := usecase.NewSessionUseCase(gemini, recordRepo, productRepo, configRepo, creditsUC)
	posUC := usecase.NewPOSUseCase(gemini, recordRepo, productRepo, configRepo, creditsUC)
	ledgerUC := usecase.NewLedgerUseCase(recordRepo, configRepo, creditsUC)
	catalogUC := usecase.NewCatalogUseCase(productRepo)
	authUC := usecase.NewAuthUseCase(configRepo, usecase.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Abuela POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		CatalogUC: catalogUC,
		LedgerUC:  ledgerUC,
		SessionUC: sessionUC,
		POSUC:     posUC,
		CreditsUC: creditsUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
