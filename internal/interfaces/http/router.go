package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invorya-access-api/internal/application/usecase"
	"github.com/jhoicas/Invorya-access-api/internal/domain/entity"
	"github.com/jhoicas/Invorya-access-api/internal/domain/module"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SettingsUC     *usecase.SettingsUseCase
	AccessUC       *usecase.AccessUseCase
	BusinessUnitUC *usecase.BusinessUnitUseCase
	ModuleService  *usecase.ModuleService
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	accessHandler := NewAccessHandler(deps.AccessUC)

	// Catálogo (público)
	api.Get("/modules/catalog", settingsHandler.Catalog)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	settings := protected.Group("/settings/modules")
	settings.Get("/", RequirePermission("system_settings", "read", deps.AccessUC), settingsHandler.Get)
	settings.Post("/toggle", RequirePermission("system_settings", "update", deps.AccessUC), settingsHandler.Toggle)
	settings.Put("/", RequirePermission("system_settings", "update", deps.AccessUC), settingsHandler.Save)

	protected.Get("/menu", accessHandler.Menu)

	perms := protected.Group("/permissions")
	perms.Post("/check", accessHandler.Check)
	perms.Get("/health", accessHandler.Health)
	perms.Get("/health/users",
		RequireRole(entity.RoleAdmin, entity.RoleSuperAdmin),
		RequirePermission("user", "read", deps.AccessUC),
		accessHandler.CompanyHealth,
	)
	perms.Get("/health/report",
		RequireModule(string(module.Governance), deps.ModuleService),
		accessHandler.HealthReport,
	)

	businessUnits := protected.Group("/business-units")
	businessUnitHandler := NewBusinessUnitHandler(deps.BusinessUnitUC)
	businessUnits.Get("/", RequirePermission("business_unit", "read", deps.AccessUC), businessUnitHandler.List)
}
