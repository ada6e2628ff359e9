package module

import "sort"

// Engine agrupa grafo, resolvedor y validador para los casos de uso.
type Engine struct {
	graph     *Graph
	resolver  *Resolver
	validator *Validator
}

// NewEngine construye el motor sobre el grafo dado.
func NewEngine(g *Graph, extra ...ToggleRule) *Engine {
	return &Engine{
		graph:     g,
		resolver:  NewResolver(g),
		validator: NewValidator(g, extra...),
	}
}

func (e *Engine) Graph() *Graph { return e.graph }

// Resolve ver Resolver.Resolve.
func (e *Engine) Resolve(m EnabledMap) EnabledMap { return e.resolver.Resolve(m) }

// ValidateToggle ver Validator.ValidateToggle.
func (e *Engine) ValidateToggle(current EnabledMap, k Key, next bool) ToggleResult {
	return e.validator.ValidateToggle(current, k, next)
}

// NewDraft abre un borrador sobre el mapa cargado del almacén de configuración.
func (e *Engine) NewDraft(loaded EnabledMap) *Draft {
	base := e.resolver.Resolve(loaded)
	return &Draft{engine: e, base: base, current: base.Clone()}
}

// Draft es la copia de trabajo de un mapa de módulos. Solo cambia por Toggle y
// solo si el validador acepta; se persiste de forma explícita con Commit.
type Draft struct {
	engine  *Engine
	base    EnabledMap
	current EnabledMap
}

// Toggle valida el cambio y, si es legal, lo aplica resolviendo dependencias.
// Ante un rechazo el borrador queda intacto.
func (d *Draft) Toggle(k Key, next bool) ToggleResult {
	res := d.engine.validator.ValidateToggle(d.current, k, next)
	if !res.Valid {
		return res
	}
	d.current = d.engine.resolver.Apply(d.current, k, next)
	return res
}

// Modules devuelve una copia del estado actual del borrador.
func (d *Draft) Modules() EnabledMap { return d.current.Clone() }

// Dirty informa si hay cambios sin confirmar.
func (d *Draft) Dirty() bool { return len(d.Changes()) > 0 }

// Changes devuelve, ordenadas, las claves cuyo valor difiere del estado base.
func (d *Draft) Changes() []Key { return Diff(d.base, d.current) }

// Diff devuelve, ordenadas, las claves cuyo valor efectivo difiere entre a y b.
// Una clave ausente equivale a false.
func Diff(a, b EnabledMap) []Key {
	var out []Key
	for k, v := range b {
		if a[k] != v {
			out = append(out, k)
		}
	}
	for k, v := range a {
		if _, ok := b[k]; !ok && v {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Commit fija el estado actual como nuevo estado base y lo devuelve.
func (d *Draft) Commit() EnabledMap {
	d.base = d.current.Clone()
	return d.current.Clone()
}
