package permission

import "strings"

// Wildcard otorga cualquier recurso con acción.
const Wildcard = "*"

// Requirement es el permiso que declara un ítem de menú o una ruta.
// Resource vacío significa ítem público.
type Requirement struct {
	Resource string `json:"resource,omitempty"`
	Action   string `json:"action,omitempty"`
}

// IsPublic informa si el requisito no exige permiso alguno.
func (r Requirement) IsPublic() bool { return r.Resource == "" }

// HasPermission decide si algún permiso satisface el requisito.
//
// Con acción, un permiso plano vale si es "recurso:acción", "recurso_acción"
// o "*"; sin acción, si es el recurso o empieza por "recurso:" o "recurso_".
// Un permiso objeto vale si coincide el recurso y, con acción, si la acción
// coincide o es "*". La comparación no distingue mayúsculas.
func HasPermission(req Requirement, grants Grants) bool {
	if req.IsPublic() {
		return true
	}
	resource := strings.ToLower(req.Resource)
	action := strings.ToLower(req.Action)

	for _, g := range grants {
		switch v := g.(type) {
		case StringGrant:
			if matchString(strings.ToLower(string(v)), resource, action) {
				return true
			}
		case ObjectGrant:
			if v.Resource == "" {
				continue
			}
			if strings.ToLower(v.Resource) != resource {
				continue
			}
			if action == "" {
				return true
			}
			ga := strings.ToLower(v.Action)
			if ga == action || ga == Wildcard {
				return true
			}
		}
	}
	return false
}

func matchString(p, resource, action string) bool {
	if action != "" {
		return p == resource+":"+action || p == resource+"_"+action || p == Wildcard
	}
	return p == resource || strings.HasPrefix(p, resource+":") || strings.HasPrefix(p, resource+"_")
}

// Effective devuelve los permisos efectivos si vienen informados y, si no, los
// permisos base del usuario. Una lista vacía pero no nil sigue siendo efectiva.
func Effective(effective, fallback Grants) Grants {
	if effective != nil {
		return effective
	}
	return fallback
}
