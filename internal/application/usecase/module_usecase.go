package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Invorya-access-api/internal/domain/entity"
	"github.com/jhoicas/Invorya-access-api/internal/domain/module"
)

// ModuleResolver entrega el mapa resuelto de un ámbito (SettingsUseCase).
type ModuleResolver interface {
	Resolved(ctx context.Context, scope entity.Scope) (module.EnabledMap, *entity.ModuleSettings, error)
}

// ModuleService verifica qué módulos SaaS tiene activos una empresa.
// Es el único punto de la aplicación que conoce la lógica de activación de módulos.
type ModuleService struct {
	settings ModuleResolver
}

// NewModuleService construye el servicio de módulos.
func NewModuleService(settings ModuleResolver) *ModuleService {
	return &ModuleService{settings: settings}
}

// HasActiveModule informa si el módulo está activo en el mapa resuelto de la
// empresa (los obligatorios siempre lo están).
// Devuelve error solo ante fallos de infraestructura (DB caída, timeout, etc.).
func (s *ModuleService) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	if companyID == "" || moduleName == "" {
		return false, fmt.Errorf("module: companyID y moduleName son obligatorios")
	}
	resolved, _, err := s.settings.Resolved(ctx, entity.Scope{Type: entity.ScopeCompany, ID: companyID})
	if err != nil {
		return false, err
	}
	return resolved[module.Key(strings.ToLower(moduleName))], nil
}
