package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invorya-access-api/internal/application/dto"
	"github.com/jhoicas/Invorya-access-api/internal/application/usecase"
)

// AccessHandler permisos, menú y diagnóstico del usuario en sesión.
type AccessHandler struct {
	uc *usecase.AccessUseCase
}

// NewAccessHandler construye el handler inyectando el caso de uso.
func NewAccessHandler(uc *usecase.AccessUseCase) *AccessHandler {
	return &AccessHandler{uc: uc}
}

// Check godoc
// @Summary      Consultar un permiso
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PermissionCheckRequest  true  "Recurso y acción"
// @Success      200  {object}  dto.PermissionCheckResponse
// @Security     BearerAuth
// @Router       /api/permissions/check [post]
func (h *AccessHandler) Check(c *fiber.Ctx) error {
	var in dto.PermissionCheckRequest
	if ok, err := parseAndValidate(c, &in, false); !ok {
		return err
	}
	out, err := h.uc.Check(c.UserContext(), sessionFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Menu godoc
// @Summary      Menú visible
// @Tags         permissions
// @Produce      json
// @Param        X-Business-Unit  header  string  false  "Unidad de negocio activa"
// @Success      200  {object}  dto.MenuResponse
// @Security     BearerAuth
// @Router       /api/menu [get]
func (h *AccessHandler) Menu(c *fiber.Ctx) error {
	out, err := h.uc.Menu(c.UserContext(), sessionFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Health godoc
// @Summary      Diagnóstico de permisos del usuario
// @Tags         permissions
// @Produce      json
// @Success      200  {object}  dto.PermissionHealthResponse
// @Security     BearerAuth
// @Router       /api/permissions/health [get]
func (h *AccessHandler) Health(c *fiber.Ctx) error {
	out, err := h.uc.Diagnostics(c.UserContext(), sessionFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CompanyHealth godoc
// @Summary      Diagnóstico de permisos de los usuarios de la empresa
// @Tags         permissions
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.CompanyHealthResponse
// @Security     BearerAuth
// @Router       /api/permissions/health/users [get]
func (h *AccessHandler) CompanyHealth(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	if page.Limit > 100 {
		page.Limit = 100
	}
	if page.Offset < 0 {
		page.Offset = 0
	}
	out, err := h.uc.CompanyHealth(c.UserContext(), sessionFrom(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// HealthReport godoc
// @Summary      Reporte PDF de salud de permisos
// @Tags         permissions
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/permissions/health/report [get]
func (h *AccessHandler) HealthReport(c *fiber.Ctx) error {
	pdf, err := h.uc.HealthReport(c.UserContext(), sessionFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="salud-permisos.pdf"`)
	return c.Send(pdf)
}
