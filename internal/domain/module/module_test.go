package module_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Invorya-access-api/internal/domain/module"
)

// ── Resolver ──────────────────────────────────────────────────────────────────

func TestResolve_ERPSiempreActivo(t *testing.T) {
	r := module.NewResolver(module.DefaultGraph())

	casos := map[string]module.EnabledMap{
		"nil":           nil,
		"vacío":         {},
		"erp apagado":   {module.ERP: false},
		"solo pos":      {module.POS: true},
		"todo apagado":  {module.POS: false, module.ERP: false, module.CRM: false},
		"clave foránea": {"wms": true},
	}
	for nombre, m := range casos {
		t.Run(nombre, func(t *testing.T) {
			assert.True(t, r.Resolve(m)[module.ERP], "erp debe quedar activo")
		})
	}
}

func TestResolve_Idempotente(t *testing.T) {
	g := module.DefaultGraph(module.Rule{Module: module.Ecommerce, Requires: []module.Key{module.CRM}})
	r := module.NewResolver(g)

	maps := []module.EnabledMap{
		nil,
		{module.Ecommerce: true},
		{module.POS: true, module.ERP: false, "legacy": false},
	}
	for _, m := range maps {
		once := r.Resolve(m)
		assert.Equal(t, once, r.Resolve(once))
	}
}

// Escenario: carga {pos:true, erp:false, hrm:false} → resolve → {pos:true, erp:true, hrm:false}.
func TestResolve_RoundTripGuardado(t *testing.T) {
	r := module.NewResolver(module.DefaultGraph())

	got := r.Resolve(module.EnabledMap{module.POS: true, module.ERP: false, module.HRM: false})

	assert.Equal(t, module.EnabledMap{module.POS: true, module.ERP: true, module.HRM: false}, got)
}

func TestResolve_NoMutaLaEntrada(t *testing.T) {
	r := module.NewResolver(module.DefaultGraph())
	in := module.EnabledMap{module.ERP: false}

	_ = r.Resolve(in)

	assert.False(t, in[module.ERP], "la entrada no debe modificarse")
}

func TestResolve_ClavesDesconocidasSeConservan(t *testing.T) {
	r := module.NewResolver(module.DefaultGraph())

	got := r.Resolve(module.EnabledMap{"wms": true, "legacy": false})

	assert.Equal(t, true, got["wms"])
	v, ok := got["legacy"]
	assert.True(t, ok)
	assert.False(t, v)
}

func TestResolve_DependenciasTransitivas(t *testing.T) {
	g := module.DefaultGraph(
		module.Rule{Module: module.Ecommerce, Requires: []module.Key{module.CRM}},
		module.Rule{Module: module.CRM, Requires: []module.Key{module.Marketing}},
	)
	r := module.NewResolver(g)

	got := r.Resolve(module.EnabledMap{module.Ecommerce: true})

	assert.True(t, got[module.CRM])
	assert.True(t, got[module.Marketing])
	assert.False(t, got[module.POS])
}

func TestApply_ActivarArrastraRequeridos(t *testing.T) {
	g := module.DefaultGraph(module.Rule{Module: module.Logistics, Requires: []module.Key{module.POS}})
	r := module.NewResolver(g)

	got := r.Apply(module.EnabledMap{}, module.Logistics, true)

	assert.True(t, got[module.Logistics])
	assert.True(t, got[module.POS])
	assert.True(t, got[module.ERP])
}

// ── Graph ─────────────────────────────────────────────────────────────────────

func TestNewGraph_ErroresDeConfiguracion(t *testing.T) {
	defs := module.DefaultDefinitions()

	_, err := module.NewGraph(defs, module.Rule{Module: module.CRM, Requires: []module.Key{module.CRM}})
	assert.ErrorIs(t, err, module.ErrSelfDependency)

	_, err = module.NewGraph(defs, module.Rule{Module: "wms", Requires: []module.Key{module.ERP}})
	assert.ErrorIs(t, err, module.ErrUnknownModule)

	_, err = module.NewGraph(defs, module.Rule{Module: module.CRM, Requires: []module.Key{"wms"}})
	assert.ErrorIs(t, err, module.ErrUnknownModule)

	_, err = module.NewGraph(defs,
		module.Rule{Module: module.CRM, Requires: []module.Key{module.Marketing}},
		module.Rule{Module: module.Marketing, Requires: []module.Key{module.Ecommerce}},
		module.Rule{Module: module.Ecommerce, Requires: []module.Key{module.CRM}},
	)
	assert.ErrorIs(t, err, module.ErrCircularDependency)

	_, err = module.NewGraph(append(defs, module.Definition{Key: module.POS}))
	assert.ErrorIs(t, err, module.ErrDuplicateModule)
}

func TestGraph_Consultas(t *testing.T) {
	g := module.DefaultGraph(
		module.Rule{Module: module.Ecommerce, Requires: []module.Key{module.CRM, module.CRM}},
		module.Rule{Module: module.Marketing, Requires: []module.Key{module.CRM}},
	)

	assert.True(t, g.IsMandatory(module.ERP))
	assert.False(t, g.IsMandatory(module.POS))
	assert.False(t, g.IsMandatory("wms"))
	assert.Equal(t, module.AllKeys, g.Keys())
	assert.Equal(t, []module.Key{module.Ecommerce, module.Marketing}, g.Dependents(module.CRM))
	assert.Equal(t, []module.Key{module.CRM}, g.Requirements(module.Ecommerce), "requeridos sin duplicados")
	assert.Equal(t, "wms", g.Name("wms"))
}

func TestGraph_MonthlyTotal(t *testing.T) {
	g := module.DefaultGraph()

	total := g.MonthlyTotal(module.EnabledMap{module.POS: true, module.CRM: true, module.HRM: false, "wms": true})

	assert.True(t, decimal.NewFromInt(108000).Equal(total), "59000 + 49000, got %s", total)
}

// ── Validator ─────────────────────────────────────────────────────────────────

func TestValidateToggle_ERPNoSePuedeDesactivar(t *testing.T) {
	v := module.NewValidator(module.DefaultGraph())

	for _, current := range []module.EnabledMap{nil, {module.ERP: true}, {module.ERP: false, module.POS: true}} {
		res := v.ValidateToggle(current, module.ERP, false)
		assert.False(t, res.Valid)
		assert.NotEmpty(t, res.Message)
		assert.Contains(t, res.Message, "ERP")
	}
}

func TestValidateToggle_POSLibre(t *testing.T) {
	v := module.NewValidator(module.DefaultGraph())

	for _, current := range []module.EnabledMap{nil, {module.POS: true}, {module.POS: false}} {
		assert.True(t, v.ValidateToggle(current, module.POS, false).Valid)
		assert.True(t, v.ValidateToggle(current, module.POS, true).Valid)
	}
	assert.True(t, v.ValidateToggle(nil, module.ERP, true).Valid, "activar erp siempre es legal")
}

func TestValidateToggle_DependientesActivosBloquean(t *testing.T) {
	g := module.DefaultGraph(module.Rule{Module: module.Ecommerce, Requires: []module.Key{module.CRM}})
	v := module.NewValidator(g)

	res := v.ValidateToggle(module.EnabledMap{module.Ecommerce: true, module.CRM: true}, module.CRM, false)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Message, "Comercio electrónico")

	res = v.ValidateToggle(module.EnabledMap{module.Ecommerce: false, module.CRM: true}, module.CRM, false)
	assert.True(t, res.Valid, "si el dependiente está apagado se puede desactivar")
}

func TestValidateToggle_ReglaExtraNoRompeObligatorios(t *testing.T) {
	soloLectura := func(_ *module.Graph, _ module.EnabledMap, k module.Key, _ bool) (string, bool) {
		if k == module.SaaS {
			return "saas se administra desde la plataforma", false
		}
		return "", true
	}
	v := module.NewValidator(module.DefaultGraph(), soloLectura)

	assert.Contains(t, v.ValidateToggle(nil, module.ERP, false).Message, "obligatorio")
	assert.False(t, v.ValidateToggle(nil, module.SaaS, true).Valid)
	assert.True(t, v.ValidateToggle(nil, module.POS, true).Valid)
}

// ── Draft ─────────────────────────────────────────────────────────────────────

func TestDraft_RechazoNoModificaEstado(t *testing.T) {
	e := module.NewEngine(module.DefaultGraph())
	d := e.NewDraft(module.EnabledMap{module.POS: true})
	before := d.Modules()

	res := d.Toggle(module.ERP, false)

	assert.False(t, res.Valid)
	assert.Equal(t, before, d.Modules())
	assert.False(t, d.Dirty())
}

func TestDraft_CambiosYCommit(t *testing.T) {
	e := module.NewEngine(module.DefaultGraph())
	d := e.NewDraft(nil)
	require.True(t, d.Modules()[module.ERP], "el borrador parte del mapa resuelto")

	require.True(t, d.Toggle(module.POS, true).Valid)
	require.True(t, d.Toggle(module.CRM, true).Valid)
	require.True(t, d.Toggle(module.CRM, false).Valid)

	assert.True(t, d.Dirty())
	assert.Equal(t, []module.Key{module.POS}, d.Changes(), "crm volvió a su valor base")

	committed := d.Commit()
	assert.True(t, committed[module.POS])
	assert.False(t, d.Dirty())
}

// ── ParseRules ────────────────────────────────────────────────────────────────

func TestParseRules(t *testing.T) {
	rules, err := module.ParseRules(" ecommerce:erp ; CRM:erp, marketing ;")
	require.NoError(t, err)
	assert.Equal(t, []module.Rule{
		{Module: module.Ecommerce, Requires: []module.Key{module.ERP}},
		{Module: module.CRM, Requires: []module.Key{module.ERP, module.Marketing}},
	}, rules)

	rules, err = module.ParseRules("")
	require.NoError(t, err)
	assert.Nil(t, rules)

	_, err = module.ParseRules("ecommerce")
	assert.Error(t, err)
	_, err = module.ParseRules("ecommerce:")
	assert.Error(t, err)
}

func TestDiff(t *testing.T) {
	a := module.EnabledMap{module.ERP: true, module.POS: true, module.CRM: false}
	b := module.EnabledMap{module.ERP: true, module.HRM: true}

	assert.Equal(t, []module.Key{module.HRM, module.POS}, module.Diff(a, b))
	assert.Empty(t, module.Diff(nil, module.EnabledMap{module.CRM: false}))
}
