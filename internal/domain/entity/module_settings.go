package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Invorya-access-api/internal/domain/module"
)

// ScopeType es el tipo de entidad dueña de un mapa de módulos.
type ScopeType string

const (
	ScopePlatform     ScopeType = "platform"
	ScopeCompany      ScopeType = "company"
	ScopeBusinessUnit ScopeType = "business_unit"
	ScopeCatalogItem  ScopeType = "catalog_item"
)

// Scope identifica la entidad. Para ScopePlatform el ID es siempre "global".
type Scope struct {
	Type ScopeType
	ID   string
}

// PlatformScopeID es el ID fijo del ámbito de plataforma.
const PlatformScopeID = "global"

// Valid informa si el tipo es conocido y trae ID.
func (s Scope) Valid() bool {
	switch s.Type {
	case ScopePlatform, ScopeCompany, ScopeBusinessUnit, ScopeCatalogItem:
		return s.ID != ""
	}
	return false
}

func (s Scope) String() string { return string(s.Type) + ":" + s.ID }

// ModuleSettings es el mapa de módulos persistido de un ámbito.
type ModuleSettings struct {
	ID           string
	Scope        Scope
	Modules      module.EnabledMap
	MonthlyTotal decimal.Decimal // suma de precios de los módulos activos (COP)
	UpdatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
