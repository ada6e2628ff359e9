package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/Invorya-access-api/internal/domain/permission"
)

// Roles válidos para User. Cada rol tiene un menú estático propio.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleCashier    = "cashier"
	RoleViewer     = "viewer"
)

// NormalizeRole lleva el rol del token a la forma de las constantes.
func NormalizeRole(role string) string { return strings.ToLower(strings.TrimSpace(role)) }

// User representa un usuario del panel (pertenece a una Company).
type User struct {
	ID             string
	CompanyID      string
	BusinessUnitID string // unidad de negocio por defecto; vacío si no tiene
	Email          string
	Name           string
	Role           string // super_admin, admin, manager, cashier, viewer
	Status         string // active, inactive, suspended
	// Permissions son los permisos asignados; EffectivePermissions los que
	// calcula el backend tras combinar roles. nil significa "no calculado".
	Permissions          permission.Grants
	EffectivePermissions permission.Grants
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Grants devuelve los permisos que se usan para filtrar el menú: los efectivos
// si existen, si no los asignados.
func (u *User) Grants() permission.Grants {
	return permission.Effective(u.EffectivePermissions, u.Permissions)
}

// IsActive informa si el usuario puede operar.
func (u *User) IsActive() bool { return u.Status == "" || u.Status == "active" }
