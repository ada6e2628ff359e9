package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invorya-access-api/internal/application/usecase"
)

// BusinessUnitHandler lista las unidades de negocio de la empresa.
type BusinessUnitHandler struct {
	uc *usecase.BusinessUnitUseCase
}

// NewBusinessUnitHandler construye el handler.
func NewBusinessUnitHandler(uc *usecase.BusinessUnitUseCase) *BusinessUnitHandler {
	return &BusinessUnitHandler{uc: uc}
}

// List godoc
// @Summary      Listar unidades de negocio
// @Tags         business-units
// @Produce      json
// @Success      200  {object}  dto.BusinessUnitListResponse
// @Security     BearerAuth
// @Router       /api/business-units [get]
func (h *BusinessUnitHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
