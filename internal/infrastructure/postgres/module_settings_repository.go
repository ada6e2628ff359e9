package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Invorya-access-api/internal/domain/entity"
	"github.com/jhoicas/Invorya-access-api/internal/domain/module"
	"github.com/jhoicas/Invorya-access-api/internal/domain/repository"
)

var _ repository.ModuleSettingsTxRepository = (*ModuleSettingsRepo)(nil)

// ModuleSettingsRepo persiste los mapas de módulos en module_settings
// (modules JSONB, monthly_total NUMERIC). Usable con pool o tx.
type ModuleSettingsRepo struct {
	q Querier
}

// NewModuleSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewModuleSettingsRepository(q Querier) *ModuleSettingsRepo {
	return &ModuleSettingsRepo{q: q}
}

const settingsColumns = `id, scope_type, scope_id, modules, monthly_total, COALESCE(updated_by::TEXT, ''), created_at, updated_at`

// Get devuelve la configuración del ámbito o nil, nil si no existe.
func (r *ModuleSettingsRepo) Get(ctx context.Context, scope entity.Scope) (*entity.ModuleSettings, error) {
	q := `SELECT ` + settingsColumns + ` FROM module_settings WHERE scope_type = $1 AND scope_id = $2`
	return r.get(ctx, q, scope)
}

// GetForUpdate igual que Get pero bloquea la fila; solo tiene sentido dentro de una tx.
func (r *ModuleSettingsRepo) GetForUpdate(ctx context.Context, scope entity.Scope) (*entity.ModuleSettings, error) {
	q := `SELECT ` + settingsColumns + ` FROM module_settings WHERE scope_type = $1 AND scope_id = $2 FOR UPDATE`
	return r.get(ctx, q, scope)
}

func (r *ModuleSettingsRepo) get(ctx context.Context, q string, scope entity.Scope) (*entity.ModuleSettings, error) {
	s, err := scanSettings(r.q.QueryRow(ctx, q, string(scope.Type), scope.ID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get module_settings %s: %w", scope, err)
	}
	return s, nil
}

// Save inserta o actualiza la configuración del ámbito (una fila por ámbito).
func (r *ModuleSettingsRepo) Save(ctx context.Context, s *entity.ModuleSettings) error {
	modules, err := json.Marshal(s.Modules)
	if err != nil {
		return fmt.Errorf("encode modules: %w", err)
	}
	const q = `
		INSERT INTO module_settings (id, scope_type, scope_id, modules, monthly_total, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::UUID, $7, $8)
		ON CONFLICT (scope_type, scope_id) DO UPDATE SET
			modules       = EXCLUDED.modules,
			monthly_total = EXCLUDED.monthly_total,
			updated_by    = EXCLUDED.updated_by,
			updated_at    = EXCLUDED.updated_at`
	_, err = r.q.Exec(ctx, q,
		s.ID, string(s.Scope.Type), s.Scope.ID, modules, s.MonthlyTotal, s.UpdatedBy, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert module_settings: %w", err)
	}
	return nil
}

func scanSettings(row pgx.Row) (*entity.ModuleSettings, error) {
	var (
		s         entity.ModuleSettings
		scopeType string
		raw       []byte
	)
	if err := row.Scan(&s.ID, &scopeType, &s.Scope.ID, &raw, &s.MonthlyTotal, &s.UpdatedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Scope.Type = entity.ScopeType(scopeType)
	if raw != nil {
		var m module.EnabledMap
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("decode modules: %w", err)
		}
		s.Modules = m
	}
	return &s, nil
}
