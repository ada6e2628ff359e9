package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Invorya-access-api/internal/domain/entity"
	"github.com/jhoicas/Invorya-access-api/internal/domain/module"
	"github.com/jhoicas/Invorya-access-api/internal/domain/repository"
	"github.com/jhoicas/Invorya-access-api/pkg/logger"
)

const settingsKeyPrefix = "module_settings:"

// missing marca en caché un ámbito que nunca se ha guardado.
const missing = "-"

var _ repository.ModuleSettingsRepository = (*SettingsCache)(nil)

// SettingsCache es una caché de lectura delante del repositorio de
// configuración. Si Redis falla se registra y se lee directo del repositorio.
type SettingsCache struct {
	inner  repository.ModuleSettingsRepository
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewSettingsCache decora inner. client nil desactiva la caché.
func NewSettingsCache(inner repository.ModuleSettingsRepository, client *redis.Client, ttl time.Duration, log *logger.Logger) *SettingsCache {
	if log == nil {
		log = logger.Nop()
	}
	return &SettingsCache{inner: inner, client: client, ttl: ttl, log: log.Component("settings_cache")}
}

type cachedSettings struct {
	ID           string            `json:"id"`
	ScopeType    entity.ScopeType  `json:"scope_type"`
	ScopeID      string            `json:"scope_id"`
	Modules      module.EnabledMap `json:"modules"`
	MonthlyTotal decimal.Decimal   `json:"monthly_total"`
	UpdatedBy    string            `json:"updated_by,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func settingsKey(scope entity.Scope) string {
	return settingsKeyPrefix + string(scope.Type) + ":" + scope.ID
}

// Get lee de Redis y, si no está, del repositorio; el resultado (incluido
// "no existe") queda en caché durante el TTL.
func (c *SettingsCache) Get(ctx context.Context, scope entity.Scope) (*entity.ModuleSettings, error) {
	if c.client == nil {
		return c.inner.Get(ctx, scope)
	}
	key := settingsKey(scope)
	payload, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(payload) == missing {
			return nil, nil
		}
		var cs cachedSettings
		if jerr := json.Unmarshal(payload, &cs); jerr == nil {
			return cs.toEntity(), nil
		}
		c.log.Warn().Str("key", key).Msg("entrada de caché corrupta, se descarta")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("redis no disponible, lectura directa")
		return c.inner.Get(ctx, scope)
	}

	s, err := c.inner.Get(ctx, scope)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, s)
	return s, nil
}

// Save persiste en el repositorio e invalida la entrada.
func (c *SettingsCache) Save(ctx context.Context, s *entity.ModuleSettings) error {
	if err := c.inner.Save(ctx, s); err != nil {
		return err
	}
	c.Invalidate(ctx, s.Scope)
	return nil
}

// Invalidate borra la entrada del ámbito. Los errores solo se registran.
func (c *SettingsCache) Invalidate(ctx context.Context, scope entity.Scope) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, settingsKey(scope)).Err(); err != nil {
		c.log.Warn().Err(err).Str("scope", scope.String()).Msg("no se pudo invalidar la caché")
	}
}

func (c *SettingsCache) store(ctx context.Context, key string, s *entity.ModuleSettings) {
	var raw []byte
	if s == nil {
		raw = []byte(missing)
	} else {
		var err error
		raw, err = json.Marshal(fromEntity(s))
		if err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("no se pudo serializar la configuración")
			return
		}
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("no se pudo escribir en caché")
	}
}

func fromEntity(s *entity.ModuleSettings) cachedSettings {
	return cachedSettings{
		ID:           s.ID,
		ScopeType:    s.Scope.Type,
		ScopeID:      s.Scope.ID,
		Modules:      s.Modules,
		MonthlyTotal: s.MonthlyTotal,
		UpdatedBy:    s.UpdatedBy,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (cs cachedSettings) toEntity() *entity.ModuleSettings {
	return &entity.ModuleSettings{
		ID:           cs.ID,
		Scope:        entity.Scope{Type: cs.ScopeType, ID: cs.ScopeID},
		Modules:      cs.Modules,
		MonthlyTotal: cs.MonthlyTotal,
		UpdatedBy:    cs.UpdatedBy,
		CreatedAt:    cs.CreatedAt,
		UpdatedAt:    cs.UpdatedAt,
	}
}
