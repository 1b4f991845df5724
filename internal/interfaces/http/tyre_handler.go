package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Llantas-api/internal/application/dto"
	"github.com/jhoicas/Llantas-api/internal/application/inspection"
	"github.com/jhoicas/Llantas-api/internal/application/registry"
)

// TyreHandler maneja las peticiones HTTP del registro de llantas (protegido).
type TyreHandler struct {
	uc     *registry.TyreRegistryUseCase
	engine *inspection.EngineUseCase
}

// NewTyreHandler construye el handler.
func NewTyreHandler(uc *registry.TyreRegistryUseCase, engine *inspection.EngineUseCase) *TyreHandler {
	return &TyreHandler{uc: uc, engine: engine}
}

// Register godoc
// @Summary      Registrar llanta (recepción)
// @Description  Crea la llanta EN stock y asienta el RECEIPT unitario en el libro, atómicamente.
// @Tags         tyres
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterTyreRequest  true  "Datos de la llanta"
// @Success      201   {object}  dto.TyreResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tyres [post]
func (h *TyreHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterTyreRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Register(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener llanta por ID
// @Tags         tyres
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la llanta"
// @Success      200  {object}  dto.TyreResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tyres/{id} [get]
func (h *TyreHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "llanta no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar llantas
// @Tags         tyres
// @Security     Bearer
// @Produce      json
// @Param        state    query  string  false  "Filtro por estado"
// @Param        spec_id  query  string  false  "Filtro por referencia"
// @Param        limit    query  int     false  "Límite"   default(20)
// @Param        offset   query  int     false  "Offset"   default(0)
// @Success      200      {object}  dto.TyreListResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/tyres [get]
func (h *TyreHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.uc.List(c.UserContext(), c.Query("state"), c.Query("spec_id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Scrap godoc
// @Summary      Dar de baja una llanta
// @Description  Transición terminal a SCRAPPED con asiento SCRAP (-1) en el libro. Si estaba montada, primero se desmonta.
// @Tags         tyres
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la llanta"
// @Param        body  body  dto.ScrapTyreRequest  true  "Motivo de baja"
// @Success      200   {object}  dto.TyreResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tyres/{id}/scrap [post]
func (h *TyreHandler) Scrap(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.ScrapTyreRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Scrap(c.UserContext(), id, in.Reason, GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// InspectionHistory godoc
// @Summary      Historial de inspecciones de una llanta
// @Tags         tyres
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la llanta"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.InspectionListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/tyres/{id}/inspections [get]
func (h *TyreHandler) InspectionHistory(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.engine.History(c.UserContext(), id, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
