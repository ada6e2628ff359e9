package usecase

import "github.com/jhoicas/Invorya-access-api/internal/domain/entity"

// Session identifica al usuario autenticado que invoca el caso de uso.
type Session struct {
	UserID         string
	CompanyID      string
	Role           string
	BusinessUnitID string
}

// IsSuperAdmin informa si la sesión administra la plataforma.
func (s Session) IsSuperAdmin() bool { return entity.NormalizeRole(s.Role) == entity.RoleSuperAdmin }
