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

	"github.com/jhoicas/Llantas-api/internal/application/fitment"
	"github.com/jhoicas/Llantas-api/internal/application/inspection"
	"github.com/jhoicas/Llantas-api/internal/application/inventory"
	"github.com/jhoicas/Llantas-api/internal/application/registry"
	"github.com/jhoicas/Llantas-api/internal/application/reports"
	"github.com/jhoicas/Llantas-api/internal/domain/tyre"
	"github.com/jhoicas/Llantas-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Llantas-api/internal/interfaces/http"
	"github.com/jhoicas/Llantas-api/pkg/config"
	"github.com/jhoicas/Llantas-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tyreRepo := postgres.NewTyreRepository(pool)
	specRepo := postgres.NewTyreSpecRepository(pool)
	levelRepo := postgres.NewStockLevelRepository(pool)
	fitmentRepo := postgres.NewFitmentRepository(pool)
	inspectionRepo := postgres.NewInspectionRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	scoreParams := tyre.ScoreParams{
		TreadWeight:    cfg.Inspection.TreadWeight,
		PressureWeight: cfg.Inspection.PressureWeight,
		VisualWeight:   cfg.Inspection.VisualWeight,
		WarnThreshold:  cfg.Inspection.WarnThreshold,
		FailThreshold:  cfg.Inspection.FailThreshold,
	}

	specUC := registry.NewSpecUseCase(specRepo)
	registryUC := registry.NewTyreRegistryUseCase(txRunner, tyreRepo, specRepo)
	ledgerUC := inventory.NewLedgerUseCase(txRunner, specRepo, levelRepo)
	reconcileUC := inventory.NewReconcileUseCase(txRunner, log)
	fitmentUC := fitment.NewCoordinatorUseCase(txRunner, fitmentRepo)
	engineUC := inspection.NewEngineUseCase(txRunner, inspectionRepo, tyreRepo, scoreParams, log)
	reportsUC := reports.NewAggregatorUseCase(reportRepo, scoreParams)

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
		Title:    "Llantas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SpecUC:      specUC,
		RegistryUC:  registryUC,
		LedgerUC:    ledgerUC,
		ReconcileUC: reconcileUC,
		FitmentUC:   fitmentUC,
		EngineUC:    engineUC,
		ReportsUC:   reportsUC,
		JWTSecret:   cfg.JWT.Secret,
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
