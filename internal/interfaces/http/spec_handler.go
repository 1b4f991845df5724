package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Llantas-api/internal/application/dto"
	"github.com/jhoicas/Llantas-api/internal/application/registry"
)

// SpecHandler maneja las peticiones HTTP del catálogo de referencias (protegido).
type SpecHandler struct {
	uc *registry.SpecUseCase
}

// NewSpecHandler construye el handler.
func NewSpecHandler(uc *registry.SpecUseCase) *SpecHandler {
	return &SpecHandler{uc: uc}
}

// Create godoc
// @Summary      Crear referencia de llanta
// @Tags         specs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSpecRequest  true  "Datos de la referencia"
// @Success      201   {object}  dto.SpecResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/specs [post]
func (h *SpecHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSpecRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener referencia por ID
// @Tags         specs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la referencia"
// @Success      200  {object}  dto.SpecResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/specs/{id} [get]
func (h *SpecHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "referencia no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar referencias del catálogo
// @Tags         specs
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.SpecListResponse
// @Router       /api/specs [get]
func (h *SpecHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.uc.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
