package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Llantas-api/internal/application/dto"
	"github.com/jhoicas/Llantas-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP del libro de inventario (protegido).
type InventoryHandler struct {
	ledger    *inventory.LedgerUseCase
	reconcile *inventory.ReconcileUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, reconcile *inventory.ReconcileUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, reconcile: reconcile}
}

// RecordMovement godoc
// @Summary      Registrar movimiento manual
// @Description  Solo RECEIPT y ADJUSTMENT entran por API; los movimientos unitarios los generan montaje y baja.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.ledger.RecordMovement(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// OnHand godoc
// @Summary      Saldo por referencia y ubicación
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        spec_id   query  string  true  "ID de la referencia"
// @Param        location  query  string  true  "Código de ubicación"
// @Success      200       {object}  dto.OnHandResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/inventory/on-hand [get]
func (h *InventoryHandler) OnHand(c *fiber.Ctx) error {
	specID := c.Query("spec_id")
	location := c.Query("location")
	if specID == "" || location == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "spec_id y location son requeridos"})
	}
	out, err := h.ledger.OnHand(c.UserContext(), specID, location)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Conciliar saldos contra el libro
// @Description  Compara cada saldo cacheado contra la suma real de movimientos; marca descuadres como sospechosos, nunca los corrige.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconcileResponse
// @Router       /api/inventory/reconcile [post]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.reconcile.Reconcile(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
