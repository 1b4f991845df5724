package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Llantas-api/internal/application/dto"
	"github.com/jhoicas/Llantas-api/internal/application/inspection"
)

// InspectionHandler maneja las peticiones HTTP del motor de inspecciones (protegido).
type InspectionHandler struct {
	uc *inspection.EngineUseCase
}

// NewInspectionHandler construye el handler.
func NewInspectionHandler(uc *inspection.EngineUseCase) *InspectionHandler {
	return &InspectionHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar inspección
// @Description  Calcula el puntaje de condición y aplica la política de falla: bajo el umbral, la llanta se desmonta y se da de baja en la misma transacción.
// @Tags         inspections
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordInspectionRequest  true  "Medición"
// @Success      201   {object}  dto.InspectionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inspections [post]
func (h *InspectionHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordInspectionRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.RecordInspection(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
