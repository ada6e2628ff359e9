// Package module contiene el motor de módulos SaaS: catálogo estático, reglas de
// dependencia, resolución del mapa de módulos activos y validación de activaciones.
//
// Todo el paquete es puro: no hace I/O y nunca muta los mapas que recibe.
package module

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Key identifica un módulo SaaS de la plataforma (conjunto cerrado).
type Key string

const (
	POS          Key = "pos"
	ERP          Key = "erp"
	HRM          Key = "hrm"
	Ecommerce    Key = "ecommerce"
	CRM          Key = "crm"
	Logistics    Key = "logistics"
	Finance      Key = "finance"
	Marketing    Key = "marketing"
	Integrations Key = "integrations"
	Governance   Key = "governance"
	SaaS         Key = "saas"
)

// AllKeys lista los módulos en orden de presentación.
var AllKeys = []Key{POS, ERP, HRM, Ecommerce, CRM, Logistics, Finance, Marketing, Integrations, Governance, SaaS}

var (
	ErrUnknownModule      = errors.New("module: módulo desconocido")
	ErrDuplicateModule    = errors.New("module: módulo duplicado en el catálogo")
	ErrSelfDependency     = errors.New("module: un módulo no puede depender de sí mismo")
	ErrCircularDependency = errors.New("module: dependencia circular detectada")
)

// Definition describe un módulo del catálogo.
type Definition struct {
	Key          Key
	Name         string
	Mandatory    bool // nunca puede desactivarse
	Requires     []Key
	MonthlyPrice decimal.Decimal // COP por entidad y mes
}

// Rule declara que Module requiere Requires: activar Module fuerza los requeridos.
type Rule struct {
	Module   Key
	Requires []Key
}

// Graph es el grafo inmutable de módulos y dependencias.
type Graph struct {
	order      []Key
	defs       map[Key]Definition
	closure    map[Key][]Key // requeridos transitivos, en orden de recorrido
	dependents map[Key][]Key // aristas inversas directas
}

// DefaultDefinitions devuelve el catálogo observado en producción: ERP es el único
// módulo obligatorio y no hay reglas de dependencia adicionales.
func DefaultDefinitions() []Definition {
	price := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
	return []Definition{
		{Key: POS, Name: "Punto de venta", MonthlyPrice: price(59000)},
		{Key: ERP, Name: "ERP", Mandatory: true, MonthlyPrice: price(0)},
		{Key: HRM, Name: "Recursos humanos", MonthlyPrice: price(39000)},
		{Key: Ecommerce, Name: "Comercio electrónico", MonthlyPrice: price(79000)},
		{Key: CRM, Name: "CRM", MonthlyPrice: price(49000)},
		{Key: Logistics, Name: "Logística", MonthlyPrice: price(45000)},
		{Key: Finance, Name: "Finanzas", MonthlyPrice: price(55000)},
		{Key: Marketing, Name: "Marketing", MonthlyPrice: price(35000)},
		{Key: Integrations, Name: "Integraciones", MonthlyPrice: price(29000)},
		{Key: Governance, Name: "Gobierno y auditoría", MonthlyPrice: price(25000)},
		{Key: SaaS, Name: "Administración SaaS", MonthlyPrice: price(0)},
	}
}

// DefaultGraph construye el grafo con el catálogo por defecto y las reglas dadas.
// Entra en pánico si las reglas son inválidas; úsese solo con reglas conocidas.
func DefaultGraph(rules ...Rule) *Graph {
	g, err := NewGraph(DefaultDefinitions(), rules...)
	if err != nil {
		panic(err)
	}
	return g
}

// NewGraph valida definiciones y reglas y construye el grafo.
// Las reglas se suman a los Requires de cada definición (sin duplicados).
func NewGraph(defs []Definition, rules ...Rule) (*Graph, error) {
	g := &Graph{
		order:      make([]Key, 0, len(defs)),
		defs:       make(map[Key]Definition, len(defs)),
		closure:    make(map[Key][]Key, len(defs)),
		dependents: make(map[Key][]Key, len(defs)),
	}
	for _, d := range defs {
		if _, dup := g.defs[d.Key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateModule, d.Key)
		}
		d.Requires = append([]Key(nil), d.Requires...)
		g.defs[d.Key] = d
		g.order = append(g.order, d.Key)
	}

	for _, r := range rules {
		d, ok := g.defs[r.Module]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownModule, r.Module)
		}
		d.Requires = append(d.Requires, r.Requires...)
		g.defs[r.Module] = d
	}

	for _, k := range g.order {
		d := g.defs[k]
		reqs, err := normaliseRequires(d.Key, d.Requires, g.defs)
		if err != nil {
			return nil, err
		}
		d.Requires = reqs
		g.defs[k] = d
		for _, req := range reqs {
			g.dependents[req] = append(g.dependents[req], k)
		}
	}

	for _, k := range g.order {
		chain, err := g.walk(k)
		if err != nil {
			return nil, err
		}
		g.closure[k] = chain
	}
	return g, nil
}

// walk recorre en profundidad los requeridos de root con pila de recursión para
// detectar ciclos. Devuelve los requeridos transitivos sin incluir root.
func (g *Graph) walk(root Key) ([]Key, error) {
	visited := make(map[Key]bool, len(g.defs))
	stack := make(map[Key]bool, len(g.defs))
	var out []Key

	var visit func(Key) error
	visit = func(k Key) error {
		if stack[k] {
			return fmt.Errorf("%w en %s", ErrCircularDependency, k)
		}
		if visited[k] {
			return nil
		}
		stack[k] = true
		for _, dep := range g.defs[k].Requires {
			if err := visit(dep); err != nil {
				return err
			}
		}
		stack[k] = false
		visited[k] = true
		if k != root {
			out = append(out, k)
		}
		return nil
	}
	if err := visit(root); err != nil {
		return nil, err
	}
	return out, nil
}

func normaliseRequires(self Key, reqs []Key, defs map[Key]Definition) ([]Key, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	seen := make(map[Key]struct{}, len(reqs))
	out := make([]Key, 0, len(reqs))
	for _, r := range reqs {
		if r == self {
			return nil, fmt.Errorf("%w: %s", ErrSelfDependency, self)
		}
		if _, ok := defs[r]; !ok {
			return nil, fmt.Errorf("%w: %s requiere %s", ErrUnknownModule, self, r)
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out, nil
}

// Has informa si la clave pertenece al catálogo.
func (g *Graph) Has(k Key) bool {
	_, ok := g.defs[k]
	return ok
}

// IsMandatory informa si el módulo nunca puede desactivarse.
func (g *Graph) IsMandatory(k Key) bool {
	return g.defs[k].Mandatory
}

// Definition devuelve la definición del módulo.
func (g *Graph) Definition(k Key) (Definition, bool) {
	d, ok := g.defs[k]
	if !ok {
		return Definition{}, false
	}
	d.Requires = append([]Key(nil), d.Requires...)
	return d, true
}

// Definitions devuelve una copia del catálogo en orden de presentación.
func (g *Graph) Definitions() []Definition {
	out := make([]Definition, 0, len(g.order))
	for _, k := range g.order {
		d, _ := g.Definition(k)
		out = append(out, d)
	}
	return out
}

// Keys devuelve las claves del catálogo en orden.
func (g *Graph) Keys() []Key {
	return append([]Key(nil), g.order...)
}

// Requirements devuelve los módulos que k requiere, directa o transitivamente.
func (g *Graph) Requirements(k Key) []Key {
	return append([]Key(nil), g.closure[k]...)
}

// Dependents devuelve los módulos que requieren k directamente.
func (g *Graph) Dependents(k Key) []Key {
	return append([]Key(nil), g.dependents[k]...)
}

// Name devuelve el nombre legible del módulo, o la clave si no está en el catálogo.
func (g *Graph) Name(k Key) string {
	if d, ok := g.defs[k]; ok && d.Name != "" {
		return d.Name
	}
	return string(k)
}

// MonthlyTotal suma el precio mensual de los módulos activos del catálogo.
func (g *Graph) MonthlyTotal(m EnabledMap) decimal.Decimal {
	total := decimal.Zero
	for _, k := range g.order {
		if m[k] {
			total = total.Add(g.defs[k].MonthlyPrice)
		}
	}
	return total
}
