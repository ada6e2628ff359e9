package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invorya-access-api/internal/application/dto"
	"github.com/jhoicas/Invorya-access-api/internal/application/usecase"
)

// SettingsHandler expone el catálogo y la configuración de módulos.
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler construye el handler inyectando el caso de uso.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Catalog godoc
// @Summary      Catálogo de módulos
// @Tags         modules
// @Produce      json
// @Success      200  {object}  dto.ModuleCatalogResponse
// @Router       /api/modules/catalog [get]
func (h *SettingsHandler) Catalog(c *fiber.Ctx) error {
	return c.JSON(h.uc.Catalog())
}

// Get godoc
// @Summary      Configuración de módulos resuelta
// @Tags         modules
// @Produce      json
// @Param        scope_type  query  string  true   "platform | company | business_unit | catalog_item"
// @Param        scope_id    query  string  false  "ID del ámbito (por defecto el de la sesión)"
// @Success      200  {object}  dto.ModuleSettingsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/settings/modules [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	var q dto.ScopeQuery
	if ok, err := parseAndValidate(c, &q, true); !ok {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), sessionFrom(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Toggle godoc
// @Summary      Validar el cambio de un módulo sobre el borrador
// @Description  No persiste. Un cambio rechazado responde 422 con el borrador sin modificar.
// @Tags         modules
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ToggleModuleRequest  true  "Borrador e intención"
// @Success      200  {object}  dto.ToggleModuleResponse
// @Failure      422  {object}  dto.ToggleModuleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/settings/modules/toggle [post]
func (h *SettingsHandler) Toggle(c *fiber.Ctx) error {
	var in dto.ToggleModuleRequest
	if ok, err := parseAndValidate(c, &in, false); !ok {
		return err
	}
	out, err := h.uc.Toggle(c.UserContext(), sessionFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	if !out.Valid {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(out)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar la configuración de módulos
// @Description  Resuelve el borrador (ERP y requeridos quedan activos) y lo persiste.
// @Tags         modules
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveModuleSettingsRequest  true  "Ámbito y módulos"
// @Success      200  {object}  dto.ModuleSettingsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/settings/modules [put]
func (h *SettingsHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveModuleSettingsRequest
	if ok, err := parseAndValidate(c, &in, false); !ok {
		return err
	}
	out, err := h.uc.Save(c.UserContext(), sessionFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
