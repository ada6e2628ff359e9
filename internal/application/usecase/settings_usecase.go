package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Invorya-access-api/internal/application/dto"
	"github.com/jhoicas/Invorya-access-api/internal/application/ports"
	"github.com/jhoicas/Invorya-access-api/internal/domain"
	"github.com/jhoicas/Invorya-access-api/internal/domain/entity"
	"github.com/jhoicas/Invorya-access-api/internal/domain/module"
	"github.com/jhoicas/Invorya-access-api/internal/domain/repository"
	"github.com/jhoicas/Invorya-access-api/pkg/logger"
)

// SettingsTxRunner ejecuta fn dentro de una transacción con el repositorio de
// configuración atado a ella.
type SettingsTxRunner interface {
	RunSettings(ctx context.Context, fn func(repo repository.ModuleSettingsTxRepository) error) error
}

// SettingsInvalidator limpia la caché de lectura tras un guardado.
type SettingsInvalidator interface {
	Invalidate(ctx context.Context, scope entity.Scope)
}

// SettingsUseCase carga, valida cambios y guarda la configuración de módulos.
type SettingsUseCase struct {
	engine      *module.Engine
	repo        repository.ModuleSettingsRepository
	tx          SettingsTxRunner
	invalidator SettingsInvalidator
	units       repository.BusinessUnitRepository
	notifier    ports.Notifier
	log         *logger.Logger
	now         func() time.Time
}

// NewSettingsUseCase construye el caso de uso. invalidator puede ser nil.
func NewSettingsUseCase(
	engine *module.Engine,
	repo repository.ModuleSettingsRepository,
	tx SettingsTxRunner,
	invalidator SettingsInvalidator,
	units repository.BusinessUnitRepository,
	notifier ports.Notifier,
	log *logger.Logger,
) *SettingsUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SettingsUseCase{
		engine:      engine,
		repo:        repo,
		tx:          tx,
		invalidator: invalidator,
		units:       units,
		notifier:    notifier,
		log:         log.Component("settings"),
		now:         time.Now,
	}
}

// Catalog devuelve el catálogo de módulos en orden de presentación.
func (uc *SettingsUseCase) Catalog() dto.ModuleCatalogResponse {
	defs := uc.engine.Graph().Definitions()
	items := make([]dto.ModuleDefinitionResponse, 0, len(defs))
	for _, d := range defs {
		items = append(items, dto.ModuleDefinitionResponse{
			Key:          string(d.Key),
			Name:         d.Name,
			Mandatory:    d.Mandatory,
			Requires:     keysToStrings(uc.engine.Graph().Requirements(d.Key)),
			MonthlyPrice: d.MonthlyPrice,
		})
	}
	return dto.ModuleCatalogResponse{Items: items}
}

// Resolved devuelve el mapa resuelto del ámbito. Un ámbito sin guardar se
// trata como mapa vacío (solo obligatorios activos).
func (uc *SettingsUseCase) Resolved(ctx context.Context, scope entity.Scope) (module.EnabledMap, *entity.ModuleSettings, error) {
	s, err := uc.repo.Get(ctx, scope)
	if err != nil {
		return nil, nil, fmt.Errorf("settings: cargar %s: %w", scope, err)
	}
	var loaded module.EnabledMap
	if s != nil {
		loaded = s.Modules
	}
	return uc.engine.Resolve(loaded), s, nil
}

// Get devuelve la configuración resuelta del ámbito para la sesión.
func (uc *SettingsUseCase) Get(ctx context.Context, sess Session, q dto.ScopeQuery) (*dto.ModuleSettingsResponse, error) {
	scope, err := uc.authorizeScope(ctx, sess, q.ScopeType, q.ScopeID)
	if err != nil {
		return nil, err
	}
	resolved, stored, err := uc.Resolved(ctx, scope)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(scope, resolved, stored), nil
}

// Toggle valida un cambio sobre el borrador del cliente. Si el validador lo
// rechaza, notifica el mensaje y devuelve el borrador sin el cambio; no es un error.
func (uc *SettingsUseCase) Toggle(ctx context.Context, sess Session, in dto.ToggleModuleRequest) (*dto.ToggleModuleResponse, error) {
	key := module.Key(strings.ToLower(strings.TrimSpace(in.Key)))
	if !uc.engine.Graph().Has(key) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownModule, in.Key)
	}
	if in.Enabled == nil {
		return nil, fmt.Errorf("%w: enabled es obligatorio", domain.ErrInvalidInput)
	}

	draft := uc.engine.NewDraft(toEnabledMap(in.Modules))
	res := draft.Toggle(key, *in.Enabled)
	if !res.Valid {
		uc.log.Info().Str("user_id", sess.UserID).Str("module", string(key)).Msg("cambio de módulo rechazado")
		uc.notify(ctx, sess, ports.LevelWarning, "Cambio no permitido", res.Message)
	}
	modules := draft.Modules()
	return &dto.ToggleModuleResponse{
		Valid:        res.Valid,
		Message:      res.Message,
		Modules:      fromEnabledMap(modules),
		Changes:      keysToStrings(draft.Changes()),
		MonthlyTotal: uc.engine.Graph().MonthlyTotal(modules),
	}, nil
}

// Save resuelve el borrador (obligatorios y requeridos quedan activos) y lo
// persiste en una transacción. La caché del ámbito se invalida tras el commit.
func (uc *SettingsUseCase) Save(ctx context.Context, sess Session, in dto.SaveModuleSettingsRequest) (*dto.ModuleSettingsResponse, error) {
	scope, err := uc.authorizeScope(ctx, sess, in.ScopeType, in.ScopeID)
	if err != nil {
		return nil, err
	}
	draft := toEnabledMap(in.Modules)
	// las claves fuera del catálogo se conservan tal como llegan, igual que al cargar.
	if unknown := uc.unknownKeys(draft); len(unknown) > 0 {
		uc.log.Warn().Str("scope", scope.String()).Strs("modules", unknown).
			Msg("se guardan módulos fuera del catálogo sin resolver")
	}
	resolved := uc.engine.Resolve(draft)

	var saved *entity.ModuleSettings
	err = uc.tx.RunSettings(ctx, func(repo repository.ModuleSettingsTxRepository) error {
		current, err := repo.GetForUpdate(ctx, scope)
		if err != nil {
			return err
		}
		now := uc.now()
		if current == nil {
			current = &entity.ModuleSettings{ID: uuid.New().String(), Scope: scope, CreatedAt: now}
		}
		current.Modules = resolved
		current.MonthlyTotal = uc.engine.Graph().MonthlyTotal(resolved)
		current.UpdatedBy = sess.UserID
		current.UpdatedAt = now
		if err := repo.Save(ctx, current); err != nil {
			return err
		}
		saved = current
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).Str("scope", scope.String()).Msg("no se pudo guardar la configuración de módulos")
		uc.notify(ctx, sess, ports.LevelError, "Error al guardar", "No se pudo guardar la configuración de módulos")
		return nil, fmt.Errorf("settings: guardar %s: %w", scope, err)
	}
	if uc.invalidator != nil {
		uc.invalidator.Invalidate(ctx, scope)
	}

	uc.log.Info().Str("scope", scope.String()).Str("user_id", sess.UserID).
		Strs("enabled", keysToStrings(resolved.Enabled())).Msg("configuración de módulos guardada")
	uc.notify(ctx, sess, ports.LevelInfo, "Configuración guardada", "Los módulos se actualizaron correctamente")
	return uc.toResponse(scope, resolved, saved), nil
}

// authorizeScope valida el ámbito pedido y que la sesión pueda operar sobre él.
func (uc *SettingsUseCase) authorizeScope(ctx context.Context, sess Session, scopeType, scopeID string) (entity.Scope, error) {
	scope := entity.Scope{Type: entity.ScopeType(scopeType), ID: strings.TrimSpace(scopeID)}
	switch scope.Type {
	case entity.ScopePlatform:
		if !sess.IsSuperAdmin() {
			return scope, domain.ErrForbidden
		}
		scope.ID = entity.PlatformScopeID
	case entity.ScopeCompany:
		if scope.ID == "" {
			scope.ID = sess.CompanyID
		}
		if scope.ID != sess.CompanyID && !sess.IsSuperAdmin() {
			return scope, domain.ErrForbidden
		}
	case entity.ScopeBusinessUnit:
		if scope.ID == "" {
			scope.ID = sess.BusinessUnitID
		}
		if scope.ID == "" {
			return scope, domain.ErrInvalidScope
		}
		bu, err := uc.units.GetByID(ctx, scope.ID)
		if err != nil {
			return scope, err
		}
		if bu == nil {
			return scope, domain.ErrNotFound
		}
		if bu.CompanyID != sess.CompanyID && !sess.IsSuperAdmin() {
			return scope, domain.ErrForbidden
		}
	case entity.ScopeCatalogItem:
		// los ítems de catálogo se identifican como "{company_id}:{item_id}".
		if !strings.HasPrefix(scope.ID, sess.CompanyID+":") && !sess.IsSuperAdmin() {
			return scope, domain.ErrForbidden
		}
	}
	if !scope.Valid() {
		return scope, domain.ErrInvalidScope
	}
	return scope, nil
}

func (uc *SettingsUseCase) notify(ctx context.Context, sess Session, level ports.Level, title, msg string) {
	if uc.notifier == nil {
		return
	}
	uc.notifier.Notify(ctx, ports.Notification{
		Level: level, Title: title, Message: msg, UserID: sess.UserID, CompanyID: sess.CompanyID,
	})
}

func (uc *SettingsUseCase) toResponse(scope entity.Scope, resolved module.EnabledMap, stored *entity.ModuleSettings) *dto.ModuleSettingsResponse {
	out := &dto.ModuleSettingsResponse{
		ScopeType:    string(scope.Type),
		ScopeID:      scope.ID,
		Modules:      fromEnabledMap(resolved),
		Enabled:      keysToStrings(resolved.Enabled()),
		MonthlyTotal: uc.engine.Graph().MonthlyTotal(resolved),
	}
	if stored != nil {
		out.Persisted = true
		out.UpdatedBy = stored.UpdatedBy
		t := stored.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

func (uc *SettingsUseCase) unknownKeys(m module.EnabledMap) []string {
	var out []string
	for k := range m {
		if !uc.engine.Graph().Has(k) {
			out = append(out, string(k))
		}
	}
	sort.Strings(out)
	return out
}

func toEnabledMap(in map[string]bool) module.EnabledMap {
	if in == nil {
		return nil
	}
	out := make(module.EnabledMap, len(in))
	for k, v := range in {
		out[module.Key(strings.ToLower(strings.TrimSpace(k)))] = v
	}
	return out
}

func fromEnabledMap(in module.EnabledMap) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[string(k)] = v
	}
	return out
}

func keysToStrings(keys []module.Key) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, string(k))
	}
	return out
}
