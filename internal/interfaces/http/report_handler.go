package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Llantas-api/internal/application/reports"
)

// ReportHandler maneja las peticiones HTTP del agregador de reportes (protegido).
type ReportHandler struct {
	uc *reports.AggregatorUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.AggregatorUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// LowStock godoc
// @Summary      Reporte de stock bajo
// @Description  Pares (referencia, ubicación) bajo su umbral mínimo, mayor quiebre primero.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LowStockReportResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DueForReplacement godoc
// @Summary      Llantas candidatas a reemplazo
// @Description  Última inspección con puntaje en la banda de advertencia, peor puntaje primero.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DueForReplacementResponse
// @Router       /api/reports/due-replacement [get]
func (h *ReportHandler) DueForReplacement(c *fiber.Ctx) error {
	out, err := h.uc.DueForReplacement(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// FleetCondition godoc
// @Summary      Histograma de condición de la flota
// @Description  Distribución de puntajes de las llantas montadas en cinco bandas de 20 puntos.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FleetConditionSummaryResponse
// @Router       /api/reports/fleet-condition [get]
func (h *ReportHandler) FleetCondition(c *fiber.Ctx) error {
	out, err := h.uc.FleetConditionSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
