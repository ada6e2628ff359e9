package repository

import (
	"context"

	"github.com/jhoicas/Invorya-access-api/internal/domain/entity"
)

// ModuleSettingsRepository es el almacén de configuración de módulos.
// Get devuelve nil, nil cuando el ámbito nunca se ha guardado.
type ModuleSettingsRepository interface {
	Get(ctx context.Context, scope entity.Scope) (*entity.ModuleSettings, error)
	Save(ctx context.Context, s *entity.ModuleSettings) error
}

// ModuleSettingsTxRepository agrega la lectura con bloqueo para guardar dentro
// de una transacción.
type ModuleSettingsTxRepository interface {
	ModuleSettingsRepository
	GetForUpdate(ctx context.Context, scope entity.Scope) (*entity.ModuleSettings, error)
}
