package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ModuleDefinitionResponse un módulo del catálogo.
type ModuleDefinitionResponse struct {
	Key          string          `json:"key"`
	Name         string          `json:"name"`
	Mandatory    bool            `json:"mandatory"`
	Requires     []string        `json:"requires,omitempty"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
}

// ModuleCatalogResponse catálogo completo de módulos.
type ModuleCatalogResponse struct {
	Items []ModuleDefinitionResponse `json:"items"`
}

// ScopeQuery ámbito de configuración en query string.
type ScopeQuery struct {
	ScopeType string `query:"scope_type" json:"scope_type" validate:"required,oneof=platform company business_unit catalog_item"`
	ScopeID   string `query:"scope_id" json:"scope_id"`
}

// ModuleSettingsResponse mapa de módulos ya resuelto de un ámbito.
type ModuleSettingsResponse struct {
	ScopeType    string          `json:"scope_type"`
	ScopeID      string          `json:"scope_id"`
	Modules      map[string]bool `json:"modules"`
	Enabled      []string        `json:"enabled"`
	MonthlyTotal decimal.Decimal `json:"monthly_total"`
	Persisted    bool            `json:"persisted"`
	UpdatedBy    string          `json:"updated_by,omitempty"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
}

// ToggleModuleRequest intención de activar o desactivar un módulo sobre el
// borrador que mantiene el cliente.
type ToggleModuleRequest struct {
	Modules map[string]bool `json:"modules"`
	Key     string          `json:"key" validate:"required"`
	Enabled *bool           `json:"enabled" validate:"required"`
}

// ToggleModuleResponse veredicto del validador y borrador resultante. Si el
// cambio se rechaza, Modules es el borrador resuelto sin el cambio.
type ToggleModuleResponse struct {
	Valid        bool            `json:"valid"`
	Message      string          `json:"message,omitempty"`
	Modules      map[string]bool `json:"modules"`
	Changes      []string        `json:"changes"`
	MonthlyTotal decimal.Decimal `json:"monthly_total"`
}

// SaveModuleSettingsRequest guardado explícito del borrador.
type SaveModuleSettingsRequest struct {
	ScopeType string          `json:"scope_type" validate:"required,oneof=platform company business_unit catalog_item"`
	ScopeID   string          `json:"scope_id"`
	Modules   map[string]bool `json:"modules" validate:"required"`
}
