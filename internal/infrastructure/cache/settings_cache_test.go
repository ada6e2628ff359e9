package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Invorya-access-api/internal/domain/entity"
	"github.com/jhoicas/Invorya-access-api/internal/domain/module"
	"github.com/jhoicas/Invorya-access-api/internal/infrastructure/cache"
	"github.com/jhoicas/Invorya-access-api/pkg/logger"
)

type fakeSettingsRepo struct {
	data    map[entity.Scope]*entity.ModuleSettings
	gets    int
	saveErr error
}

func (f *fakeSettingsRepo) Get(_ context.Context, scope entity.Scope) (*entity.ModuleSettings, error) {
	f.gets++
	return f.data[scope], nil
}

func (f *fakeSettingsRepo) Save(_ context.Context, s *entity.ModuleSettings) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.data[s.Scope] = s
	return nil
}

var companyScope = entity.Scope{Type: entity.ScopeCompany, ID: "c-1"}

func setup(t *testing.T) (*cache.SettingsCache, *fakeSettingsRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &fakeSettingsRepo{data: map[entity.Scope]*entity.ModuleSettings{
		companyScope: {
			ID:           "s-1",
			Scope:        companyScope,
			Modules:      module.EnabledMap{module.ERP: true, module.POS: true},
			MonthlyTotal: decimal.NewFromInt(59000),
		},
	}}
	return cache.NewSettingsCache(repo, client, time.Minute, logger.Nop()), repo, mr
}

func TestSettingsCache_LecturaCacheada(t *testing.T) {
	c, repo, mr := setup(t)
	ctx := context.Background()

	first, err := c.Get(ctx, companyScope)
	require.NoError(t, err)
	second, err := c.Get(ctx, companyScope)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.gets, "la segunda lectura sale de redis")
	assert.Equal(t, first.Modules, second.Modules)
	assert.True(t, decimal.NewFromInt(59000).Equal(second.MonthlyTotal))
	assert.True(t, mr.Exists("module_settings:company:c-1"))
}

func TestSettingsCache_AmbitoInexistenteTambienSeCachea(t *testing.T) {
	c, repo, _ := setup(t)
	scope := entity.Scope{Type: entity.ScopeBusinessUnit, ID: "bu-404"}

	for i := 0; i < 3; i++ {
		s, err := c.Get(context.Background(), scope)
		require.NoError(t, err)
		assert.Nil(t, s)
	}
	assert.Equal(t, 1, repo.gets)
}

func TestSettingsCache_SaveInvalida(t *testing.T) {
	c, repo, mr := setup(t)
	ctx := context.Background()
	_, err := c.Get(ctx, companyScope)
	require.NoError(t, err)

	updated := &entity.ModuleSettings{ID: "s-1", Scope: companyScope, Modules: module.EnabledMap{module.ERP: true}}
	require.NoError(t, c.Save(ctx, updated))
	assert.False(t, mr.Exists("module_settings:company:c-1"))

	got, err := c.Get(ctx, companyScope)
	require.NoError(t, err)
	assert.False(t, got.Modules[module.POS])
	assert.Equal(t, 2, repo.gets)
}

func TestSettingsCache_ErrorAlGuardarNoInvalida(t *testing.T) {
	c, repo, mr := setup(t)
	ctx := context.Background()
	_, err := c.Get(ctx, companyScope)
	require.NoError(t, err)

	repo.saveErr = errors.New("db caída")
	assert.Error(t, c.Save(ctx, &entity.ModuleSettings{Scope: companyScope}))
	assert.True(t, mr.Exists("module_settings:company:c-1"))
}

func TestSettingsCache_RedisCaidoLeeDelRepositorio(t *testing.T) {
	c, repo, mr := setup(t)
	mr.Close()

	got, err := c.Get(context.Background(), companyScope)
	require.NoError(t, err)
	assert.True(t, got.Modules[module.POS])
	assert.Equal(t, 1, repo.gets)
}

func TestSettingsCache_SinClienteDelegaDirecto(t *testing.T) {
	repo := &fakeSettingsRepo{data: map[entity.Scope]*entity.ModuleSettings{}}
	c := cache.NewSettingsCache(repo, nil, time.Minute, nil)

	_, err := c.Get(context.Background(), companyScope)
	require.NoError(t, err)
	_, err = c.Get(context.Background(), companyScope)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.gets)
}
