package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Llantas-api/internal/application/fitment"
	"github.com/jhoicas/Llantas-api/internal/application/inspection"
	"github.com/jhoicas/Llantas-api/internal/application/inventory"
	"github.com/jhoicas/Llantas-api/internal/application/registry"
	"github.com/jhoicas/Llantas-api/internal/application/reports"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SpecUC      *registry.SpecUseCase
	RegistryUC  *registry.TyreRegistryUseCase
	LedgerUC    *inventory.LedgerUseCase
	ReconcileUC *inventory.ReconcileUseCase
	FitmentUC   *fitment.CoordinatorUseCase
	EngineUC    *inspection.EngineUseCase
	ReportsUC   *reports.AggregatorUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Todas las rutas requieren Bearer Token: el actor atribuye movimientos,
	// inspecciones y auditoría.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo de referencias
	specs := protected.Group("/specs")
	specHandler := NewSpecHandler(deps.SpecUC)
	specs.Post("/", specHandler.Create)
	specs.Get("/", specHandler.List)
	specs.Get("/:id", specHandler.GetByID)

	// Registro de llantas
	tyres := protected.Group("/tyres")
	tyreHandler := NewTyreHandler(deps.RegistryUC, deps.EngineUC)
	tyres.Post("/", tyreHandler.Register)
	tyres.Get("/", tyreHandler.List)
	tyres.Get("/:id", tyreHandler.GetByID)
	tyres.Post("/:id/scrap", tyreHandler.Scrap)
	tyres.Get("/:id/inspections", tyreHandler.InspectionHistory)

	// Libro de inventario
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.ReconcileUC)
	invGroup.Post("/movements", inventoryHandler.RecordMovement)
	invGroup.Get("/on-hand", inventoryHandler.OnHand)
	invGroup.Post("/reconcile", inventoryHandler.Reconcile)

	// Coordinador de montaje
	fitments := protected.Group("/fitments")
	fitmentHandler := NewFitmentHandler(deps.FitmentUC)
	fitments.Post("/", fitmentHandler.Fit)
	fitments.Post("/remove", fitmentHandler.Remove)
	fitments.Get("/", fitmentHandler.CurrentAssignment)

	// Inspecciones
	inspections := protected.Group("/inspections")
	inspectionHandler := NewInspectionHandler(deps.EngineUC)
	inspections.Post("/", inspectionHandler.Record)

	// Reportes
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportsGroup.Get("/low-stock", reportHandler.LowStock)
	reportsGroup.Get("/due-replacement", reportHandler.DueForReplacement)
	reportsGroup.Get("/fleet-condition", reportHandler.FleetCondition)
}
