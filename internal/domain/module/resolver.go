package module

import (
	"fmt"
	"sort"
	"strings"
)

// EnabledMap es el estado activado/desactivado de los módulos de una entidad
// (plataforma, empresa, unidad de negocio o ítem de catálogo).
// Las claves fuera del catálogo se conservan tal cual.
type EnabledMap map[Key]bool

// Clone devuelve una copia; un mapa nil produce un mapa vacío.
func (m EnabledMap) Clone() EnabledMap {
	out := make(EnabledMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Enabled devuelve las claves activas ordenadas.
func (m EnabledMap) Enabled() []Key {
	out := make([]Key, 0, len(m))
	for k, v := range m {
		if v {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Resolver calcula el mapa consistente a partir de uno parcial o inconsistente.
type Resolver struct {
	graph *Graph
}

// NewResolver construye el resolvedor sobre el grafo.
func NewResolver(g *Graph) *Resolver {
	return &Resolver{graph: g}
}

// Resolve devuelve un mapa nuevo igual a m salvo que los módulos obligatorios
// quedan activos y cada módulo activo arrastra sus requeridos transitivos.
// Idempotente: Resolve(Resolve(m)) == Resolve(m).
func (r *Resolver) Resolve(m EnabledMap) EnabledMap {
	out := m.Clone()
	for _, k := range r.graph.order {
		if r.graph.defs[k].Mandatory {
			out[k] = true
		}
	}
	for _, k := range r.graph.order {
		if !out[k] {
			continue
		}
		for _, req := range r.graph.closure[k] {
			out[req] = true
		}
	}
	return out
}

// Apply aplica una intención de cambio sobre m y resuelve el resultado.
// No valida: el llamador debe pasar antes por Validator.ValidateToggle.
func (r *Resolver) Apply(m EnabledMap, k Key, next bool) EnabledMap {
	out := m.Clone()
	out[k] = next
	return r.Resolve(out)
}

// ParseRules interpreta reglas de dependencia en formato de configuración:
//
//	"ecommerce:erp;crm:erp,marketing"
//
// Cada regla va separada por ';' y los requeridos por ','.
func ParseRules(s string) ([]Rule, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var rules []Rule
	for _, chunk := range strings.Split(s, ";") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		mod, reqs, ok := strings.Cut(chunk, ":")
		mod = strings.ToLower(strings.TrimSpace(mod))
		if !ok || mod == "" {
			return nil, fmt.Errorf("module: regla inválida %q (formato modulo:req1,req2)", chunk)
		}
		rule := Rule{Module: Key(mod)}
		for _, req := range strings.Split(reqs, ",") {
			req = strings.ToLower(strings.TrimSpace(req))
			if req != "" {
				rule.Requires = append(rule.Requires, Key(req))
			}
		}
		if len(rule.Requires) == 0 {
			return nil, fmt.Errorf("module: la regla %q no declara requeridos", chunk)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
