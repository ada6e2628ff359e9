package dto

import "github.com/jhoicas/Invorya-access-api/internal/domain/menu"

// PermissionCheckRequest consulta de un permiso para el usuario en sesión.
type PermissionCheckRequest struct {
	Resource string `json:"resource" validate:"max=100"`
	Action   string `json:"action" validate:"max=50"`
}

// PermissionCheckResponse resultado de la consulta.
type PermissionCheckResponse struct {
	Allowed bool `json:"allowed"`
}

// MenuResponse menú visible del usuario en la unidad de negocio activa.
type MenuResponse struct {
	Role             string      `json:"role"`
	BusinessUnitSlug string      `json:"business_unit_slug"`
	Items            []menu.Node `json:"items"`
}

// PermissionHealthResponse diagnóstico de permisos de un usuario.
type PermissionHealthResponse struct {
	UserID           string               `json:"user_id"`
	Name             string               `json:"name,omitempty"`
	Role             string               `json:"role"`
	BusinessUnitSlug string               `json:"business_unit_slug,omitempty"`
	UsesEffective    bool                 `json:"uses_effective_permissions"`
	Stats            menu.DiagnosticStats `json:"stats"`
}

// CompanyHealthResponse diagnóstico de los usuarios de la empresa.
type CompanyHealthResponse struct {
	Items     []PermissionHealthResponse `json:"items"`
	Unhealthy int                        `json:"unhealthy"`
	Page      PageResponse               `json:"page"`
}
