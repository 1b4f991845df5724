package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Llantas-api/internal/application/dto"
	"github.com/jhoicas/Llantas-api/internal/application/fitment"
)

// FitmentHandler maneja las peticiones HTTP del coordinador de montaje (protegido).
type FitmentHandler struct {
	uc *fitment.CoordinatorUseCase
}

// NewFitmentHandler construye el handler.
func NewFitmentHandler(uc *fitment.CoordinatorUseCase) *FitmentHandler {
	return &FitmentHandler{uc: uc}
}

// Fit godoc
// @Summary      Montar llanta en vehículo
// @Description  Valida posición libre y labrado sobre el mínimo legal; crea la asignación y asienta el FITMENT (-1) atómicamente.
// @Tags         fitments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FitTyreRequest  true  "Montaje"
// @Success      201   {object}  dto.FitmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/fitments [post]
func (h *FitmentHandler) Fit(c *fiber.Ctx) error {
	var in dto.FitTyreRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Fit(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Remove godoc
// @Summary      Desmontar llanta
// @Description  Motivo CONDITION deja la llanta UNDER_INSPECTION; cualquier otro la devuelve a stock con REMOVAL (+1).
// @Tags         fitments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RemoveTyreRequest  true  "Desmontaje"
// @Success      200   {object}  dto.TyreResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/fitments/remove [post]
func (h *FitmentHandler) Remove(c *fiber.Ctx) error {
	var in dto.RemoveTyreRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Remove(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CurrentAssignment godoc
// @Summary      Asignación vigente de una posición
// @Tags         fitments
// @Security     Bearer
// @Produce      json
// @Param        vehicle_id  query  string  true  "ID del vehículo"
// @Param        position    query  string  true  "Posición de eje"
// @Success      200  {object}  dto.FitmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fitments [get]
func (h *FitmentHandler) CurrentAssignment(c *fiber.Ctx) error {
	vehicleID := c.Query("vehicle_id")
	position := c.Query("position")
	if vehicleID == "" || position == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "vehicle_id y position son requeridos"})
	}
	out, err := h.uc.CurrentAssignment(c.UserContext(), vehicleID, position)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "posición sin llanta asignada"})
	}
	return c.JSON(out)
}
