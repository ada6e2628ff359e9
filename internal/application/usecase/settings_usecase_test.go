package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Invorya-access-api/internal/application/dto"
	"github.com/jhoicas/Invorya-access-api/internal/application/ports"
	"github.com/jhoicas/Invorya-access-api/internal/application/usecase"
	"github.com/jhoicas/Invorya-access-api/internal/domain"
	"github.com/jhoicas/Invorya-access-api/internal/domain/entity"
	"github.com/jhoicas/Invorya-access-api/internal/domain/module"
	"github.com/jhoicas/Invorya-access-api/pkg/logger"
)

type settingsFixture struct {
	uc          *usecase.SettingsUseCase
	repo        *fakeSettingsRepo
	tx          *fakeTx
	invalidator *fakeInvalidator
	notifier    *fakeNotifier
}

func newSettingsFixture(rules ...module.Rule) settingsFixture {
	repo := newFakeSettingsRepo()
	f := settingsFixture{
		repo:        repo,
		tx:          &fakeTx{repo: repo},
		invalidator: &fakeInvalidator{},
		notifier:    &fakeNotifier{},
	}
	units := &fakeUnits{data: map[string]*entity.BusinessUnit{
		"bu-1": {ID: "bu-1", CompanyID: "c-1", Name: "Sede Norte"},
		"bu-x": {ID: "bu-x", CompanyID: "c-2", Name: "Ajena"},
	}}
	f.uc = usecase.NewSettingsUseCase(module.NewEngine(module.DefaultGraph(rules...)), repo, f.tx, f.invalidator, units, f.notifier, logger.Nop())
	return f
}

var adminSession = usecase.Session{UserID: "u-admin", CompanyID: "c-1", Role: entity.RoleAdmin, BusinessUnitID: "bu-1"}

func enabled(v bool) *bool { return &v }

func TestSettingsGet_SinGuardarSoloObligatorios(t *testing.T) {
	f := newSettingsFixture()

	got, err := f.uc.Get(context.Background(), adminSession, dto.ScopeQuery{ScopeType: "company"})
	require.NoError(t, err)

	assert.Equal(t, "c-1", got.ScopeID, "el ámbito de empresa toma la empresa de la sesión")
	assert.Equal(t, map[string]bool{"erp": true}, got.Modules)
	assert.False(t, got.Persisted)
	assert.True(t, got.MonthlyTotal.IsZero())
}

func TestSettingsGet_ResuelveMapaGuardado(t *testing.T) {
	f := newSettingsFixture()
	scope := entity.Scope{Type: entity.ScopeCompany, ID: "c-1"}
	f.repo.data[scope] = &entity.ModuleSettings{ID: "s-1", Scope: scope,
		Modules: module.EnabledMap{module.POS: true, module.ERP: false, module.HRM: false}}

	got, err := f.uc.Get(context.Background(), adminSession, dto.ScopeQuery{ScopeType: "company", ScopeID: "c-1"})
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{"pos": true, "erp": true, "hrm": false}, got.Modules)
	assert.Equal(t, []string{"erp", "pos"}, got.Enabled)
	assert.True(t, got.Persisted)
}

func TestSettingsGet_AmbitosNoPermitidos(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()

	_, err := f.uc.Get(ctx, adminSession, dto.ScopeQuery{ScopeType: "company", ScopeID: "c-2"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Get(ctx, adminSession, dto.ScopeQuery{ScopeType: "platform"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Get(ctx, adminSession, dto.ScopeQuery{ScopeType: "business_unit", ScopeID: "bu-x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Get(ctx, adminSession, dto.ScopeQuery{ScopeType: "business_unit", ScopeID: "bu-404"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Get(ctx, adminSession, dto.ScopeQuery{ScopeType: "catalog_item", ScopeID: "c-2:sku-9"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Get(ctx, adminSession, dto.ScopeQuery{ScopeType: "tenant", ScopeID: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidScope)
}

func TestSettingsGet_SuperAdminPlataforma(t *testing.T) {
	f := newSettingsFixture()
	sess := usecase.Session{UserID: "root", CompanyID: "c-0", Role: entity.RoleSuperAdmin}

	got, err := f.uc.Get(context.Background(), sess, dto.ScopeQuery{ScopeType: "platform", ScopeID: "ignorado"})
	require.NoError(t, err)
	assert.Equal(t, entity.PlatformScopeID, got.ScopeID)
}

func TestSettingsGet_RolSuperAdminSinDistinguirMayusculas(t *testing.T) {
	f := newSettingsFixture()
	sess := usecase.Session{UserID: "root", CompanyID: "c-0", Role: " SUPER_ADMIN "}

	got, err := f.uc.Get(context.Background(), sess, dto.ScopeQuery{ScopeType: "platform"})
	require.NoError(t, err)
	assert.Equal(t, entity.PlatformScopeID, got.ScopeID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Toggle
// ──────────────────────────────────────────────────────────────────────────────

func TestToggle_ERPRechazadoYNotificado(t *testing.T) {
	f := newSettingsFixture()

	got, err := f.uc.Toggle(context.Background(), adminSession, dto.ToggleModuleRequest{
		Modules: map[string]bool{"erp": true, "pos": true}, Key: "erp", Enabled: enabled(false),
	})
	require.NoError(t, err)

	assert.False(t, got.Valid)
	assert.NotEmpty(t, got.Message)
	assert.True(t, got.Modules["erp"], "el borrador no cambia")
	assert.Empty(t, got.Changes)
	assert.Equal(t, ports.LevelWarning, f.notifier.last().Level)
	assert.Equal(t, got.Message, f.notifier.last().Message)
}

func TestToggle_AceptadoArrastraRequeridos(t *testing.T) {
	f := newSettingsFixture(module.Rule{Module: module.Ecommerce, Requires: []module.Key{module.CRM}})

	got, err := f.uc.Toggle(context.Background(), adminSession, dto.ToggleModuleRequest{
		Modules: map[string]bool{"erp": true}, Key: " Ecommerce ", Enabled: enabled(true),
	})
	require.NoError(t, err)

	assert.True(t, got.Valid)
	assert.True(t, got.Modules["crm"])
	assert.Equal(t, []string{"crm", "ecommerce"}, got.Changes)
	assert.True(t, decimal.NewFromInt(128000).Equal(got.MonthlyTotal))
	assert.Empty(t, f.notifier.sent)
}

func TestToggle_ModuloDesconocido(t *testing.T) {
	f := newSettingsFixture()

	_, err := f.uc.Toggle(context.Background(), adminSession, dto.ToggleModuleRequest{Key: "wms", Enabled: enabled(true)})
	assert.ErrorIs(t, err, domain.ErrUnknownModule)

	_, err = f.uc.Toggle(context.Background(), adminSession, dto.ToggleModuleRequest{Key: "pos"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Save
// ──────────────────────────────────────────────────────────────────────────────

func TestSave_ResuelvePersisteEInvalida(t *testing.T) {
	f := newSettingsFixture()

	got, err := f.uc.Save(context.Background(), adminSession, dto.SaveModuleSettingsRequest{
		ScopeType: "company", Modules: map[string]bool{"pos": true, "erp": false, "hrm": false},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{"pos": true, "erp": true, "hrm": false}, got.Modules)
	assert.True(t, got.Persisted)
	assert.Equal(t, "u-admin", got.UpdatedBy)
	assert.True(t, decimal.NewFromInt(59000).Equal(got.MonthlyTotal))

	scope := entity.Scope{Type: entity.ScopeCompany, ID: "c-1"}
	stored := f.repo.data[scope]
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.ID)
	assert.True(t, stored.Modules[module.ERP])
	assert.Equal(t, []entity.Scope{scope}, f.repo.locked, "se lee con bloqueo dentro de la tx")
	assert.Equal(t, []entity.Scope{scope}, f.invalidator.scopes)
	assert.Equal(t, ports.LevelInfo, f.notifier.last().Level)
}

func TestSave_ConservaIDExistente(t *testing.T) {
	f := newSettingsFixture()
	scope := entity.Scope{Type: entity.ScopeBusinessUnit, ID: "bu-1"}
	f.repo.data[scope] = &entity.ModuleSettings{ID: "s-previo", Scope: scope, Modules: module.EnabledMap{module.ERP: true}}

	_, err := f.uc.Save(context.Background(), adminSession, dto.SaveModuleSettingsRequest{
		ScopeType: "business_unit", Modules: map[string]bool{"crm": true},
	})
	require.NoError(t, err)

	assert.Equal(t, "s-previo", f.repo.data[scope].ID)
	assert.True(t, f.repo.data[scope].Modules[module.CRM])
}

func TestSave_ErrorDeRepositorioNotificaYNoInvalida(t *testing.T) {
	f := newSettingsFixture()
	f.repo.saveErr = errDB

	_, err := f.uc.Save(context.Background(), adminSession, dto.SaveModuleSettingsRequest{
		ScopeType: "company", Modules: map[string]bool{"pos": true},
	})

	assert.ErrorIs(t, err, errDB)
	assert.Empty(t, f.invalidator.scopes)
	assert.Equal(t, ports.LevelError, f.notifier.last().Level)
}

func TestSave_RoundTripConClaveFueraDelCatalogo(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()
	scope := entity.Scope{Type: entity.ScopeCompany, ID: "c-1"}
	f.repo.data[scope] = &entity.ModuleSettings{ID: "s-1", Scope: scope,
		Modules: module.EnabledMap{module.POS: true, "wms": true}}

	loaded, err := f.uc.Get(ctx, adminSession, dto.ScopeQuery{ScopeType: "company"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"pos": true, "erp": true, "wms": true}, loaded.Modules)

	saved, err := f.uc.Save(ctx, adminSession, dto.SaveModuleSettingsRequest{ScopeType: "company", Modules: loaded.Modules})
	require.NoError(t, err)

	assert.Equal(t, loaded.Modules, saved.Modules)
	assert.True(t, f.repo.data[scope].Modules["wms"], "la clave desconocida se conserva")
	assert.Equal(t, 1, f.tx.runs)
	assert.True(t, decimal.NewFromInt(59000).Equal(saved.MonthlyTotal), "solo suman los módulos del catálogo")
}

func TestCatalog_OrdenYObligatorios(t *testing.T) {
	f := newSettingsFixture()

	got := f.uc.Catalog()

	require.Len(t, got.Items, len(module.AllKeys))
	assert.Equal(t, "pos", got.Items[0].Key)
	assert.True(t, got.Items[1].Mandatory)
	assert.Equal(t, "erp", got.Items[1].Key)
}

func TestModuleService_HasActiveModule(t *testing.T) {
	f := newSettingsFixture()
	scope := entity.Scope{Type: entity.ScopeCompany, ID: "c-1"}
	f.repo.data[scope] = &entity.ModuleSettings{Scope: scope, Modules: module.EnabledMap{module.Governance: true}}
	svc := usecase.NewModuleService(f.uc)
	ctx := context.Background()

	ok, err := svc.HasActiveModule(ctx, "c-1", "governance")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasActiveModule(ctx, "c-1", "ERP")
	require.NoError(t, err)
	assert.True(t, ok, "obligatorio aunque no esté guardado")

	ok, err = svc.HasActiveModule(ctx, "c-1", "crm")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.HasActiveModule(ctx, "", "crm")
	assert.Error(t, err)
}
