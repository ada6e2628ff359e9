package module

import (
	"fmt"
	"strings"
)

// ToggleResult es el veredicto sobre una activación o desactivación propuesta.
// Un rechazo no es un error: Message se muestra al usuario y el cambio se descarta.
type ToggleResult struct {
	Valid   bool
	Message string
}

// ToggleRule evalúa un cambio propuesto. Devuelve ok=false y el mensaje de rechazo
// cuando el cambio no es legal.
type ToggleRule func(g *Graph, current EnabledMap, k Key, next bool) (msg string, ok bool)

// Validator aplica las reglas en orden; la primera que rechaza gana.
type Validator struct {
	graph *Graph
	rules []ToggleRule
}

// NewValidator construye el validador con las reglas base (obligatorios y
// dependientes) seguidas de las reglas extra.
func NewValidator(g *Graph, extra ...ToggleRule) *Validator {
	rules := []ToggleRule{MandatoryRule, DependentsRule}
	rules = append(rules, extra...)
	return &Validator{graph: g, rules: rules}
}

// ValidateToggle decide si el cambio de k a next es legal sobre current.
func (v *Validator) ValidateToggle(current EnabledMap, k Key, next bool) ToggleResult {
	for _, rule := range v.rules {
		if msg, ok := rule(v.graph, current, k, next); !ok {
			return ToggleResult{Valid: false, Message: msg}
		}
	}
	return ToggleResult{Valid: true}
}

// MandatoryRule rechaza desactivar un módulo obligatorio.
func MandatoryRule(g *Graph, _ EnabledMap, k Key, next bool) (string, bool) {
	if next || !g.IsMandatory(k) {
		return "", true
	}
	return fmt.Sprintf("El módulo %s es obligatorio y no puede desactivarse", g.Name(k)), false
}

// DependentsRule rechaza desactivar un módulo mientras otro módulo activo lo requiera.
func DependentsRule(g *Graph, current EnabledMap, k Key, next bool) (string, bool) {
	if next {
		return "", true
	}
	var active []string
	for _, d := range g.Dependents(k) {
		if current[d] {
			active = append(active, g.Name(d))
		}
	}
	if len(active) == 0 {
		return "", true
	}
	return fmt.Sprintf("No se puede desactivar %s mientras %s esté activo", g.Name(k), strings.Join(active, ", ")), false
}
