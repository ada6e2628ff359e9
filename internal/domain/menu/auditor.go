// Package menu modela el árbol de navegación del panel y audita cuántos ítems
// ve un usuario frente a los recursos que le otorga el backend.
package menu

import (
	"strings"

	"github.com/jhoicas/Invorya-access-api/internal/domain/permission"
)

// Node es un ítem del menú. Sin Children es una hoja.
// Resource vacío indica un ítem público.
type Node struct {
	Title    string `json:"title"`
	Path     string `json:"path,omitempty"`
	Icon     string `json:"icon,omitempty"`
	Resource string `json:"resource,omitempty"`
	Action   string `json:"action,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// Requirement devuelve el permiso que exige el nodo.
func (n Node) Requirement() permission.Requirement {
	return permission.Requirement{Resource: n.Resource, Action: n.Action}
}

// IsLeaf informa si el nodo no tiene hijos.
func (n Node) IsLeaf() bool { return len(n.Children) == 0 }

// DiagnosticStats compara el menú visible con los permisos del backend.
type DiagnosticStats struct {
	BackendGrantCount          int  `json:"backend_grant_count"`
	UniqueBackendResourceCount int  `json:"unique_backend_resource_count"`
	VisibleLeafCount           int  `json:"visible_leaf_count"`
	Discrepancy                int  `json:"discrepancy"`
	ExpectedDiscrepancy        int  `json:"expected_discrepancy"`
	IsHealthy                  bool `json:"is_healthy"`
}

// CountVisibleLeaves recorre el árbol en profundidad. Un nodo sin permiso poda
// todo su subárbol aunque los hijos sean públicos; un padre visible no cuenta,
// solo sus hojas alcanzables.
func CountVisibleLeaves(tree []Node, grants permission.Grants) int {
	total := 0
	for _, n := range tree {
		if !permission.HasPermission(n.Requirement(), grants) {
			continue
		}
		if n.IsLeaf() {
			total++
			continue
		}
		total += CountVisibleLeaves(n.Children, grants)
	}
	return total
}

// CountUniqueResources cuenta los recursos distintos de los permisos planos,
// tomando el segmento previo al primer ':'. Los permisos objeto no se cuentan.
func CountUniqueResources(grants permission.Grants) int {
	seen := make(map[string]struct{}, len(grants))
	for _, g := range grants {
		s, ok := g.(permission.StringGrant)
		if !ok {
			continue
		}
		resource, _, _ := strings.Cut(string(s), ":")
		if resource == "" {
			continue
		}
		seen[resource] = struct{}{}
	}
	return len(seen)
}

// ComputeDiagnostics combina los conteos. expectedDelta es la discrepancia
// considerada sana para el despliegue (ítems públicos y compartidos del menú).
func ComputeDiagnostics(grants permission.Grants, tree []Node, expectedDelta int) DiagnosticStats {
	unique := CountUniqueResources(grants)
	visible := CountVisibleLeaves(tree, grants)
	discrepancy := visible - unique
	return DiagnosticStats{
		BackendGrantCount:          len(grants),
		UniqueBackendResourceCount: unique,
		VisibleLeafCount:           visible,
		Discrepancy:                discrepancy,
		ExpectedDiscrepancy:        expectedDelta,
		IsHealthy:                  discrepancy == expectedDelta,
	}
}

// Filter devuelve una copia del árbol con solo lo visible. Aplica la misma
// poda que CountVisibleLeaves y descarta los padres que quedan sin hijos.
func Filter(tree []Node, grants permission.Grants) []Node {
	out := make([]Node, 0, len(tree))
	for _, n := range tree {
		if !permission.HasPermission(n.Requirement(), grants) {
			continue
		}
		if n.IsLeaf() {
			n.Children = nil
			out = append(out, n)
			continue
		}
		children := Filter(n.Children, grants)
		if len(children) == 0 {
			continue
		}
		n.Children = children
		out = append(out, n)
	}
	return out
}

// LeafPaths devuelve "Título (ruta)" de cada hoja del árbol, en orden de recorrido.
func LeafPaths(tree []Node) []string {
	var out []string
	var walk func([]Node, string)
	walk = func(nodes []Node, parent string) {
		for _, n := range nodes {
			title := n.Title
			if parent != "" {
				title = parent + " / " + n.Title
			}
			if n.IsLeaf() {
				if n.Path != "" {
					title += " (" + n.Path + ")"
				}
				out = append(out, title)
				continue
			}
			walk(n.Children, title)
		}
	}
	walk(tree, "")
	return out
}
