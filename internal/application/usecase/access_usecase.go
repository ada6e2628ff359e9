package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Invorya-access-api/internal/application/dto"
	"github.com/jhoicas/Invorya-access-api/internal/application/ports"
	"github.com/jhoicas/Invorya-access-api/internal/domain"
	"github.com/jhoicas/Invorya-access-api/internal/domain/entity"
	"github.com/jhoicas/Invorya-access-api/internal/domain/menu"
	"github.com/jhoicas/Invorya-access-api/internal/domain/module"
	"github.com/jhoicas/Invorya-access-api/internal/domain/permission"
	"github.com/jhoicas/Invorya-access-api/internal/domain/repository"
	"github.com/jhoicas/Invorya-access-api/pkg/logger"
)

// AccessUseCase resuelve lo que ve cada usuario del panel: permisos, menú
// visible y diagnóstico de discrepancias.
type AccessUseCase struct {
	users         repository.UserRepository
	units         repository.BusinessUnitRepository
	companies     repository.CompanyRepository
	modules       ModuleResolver
	graph         *module.Graph
	reports       ports.HealthReportGenerator
	expectedDelta int
	log           *logger.Logger
}

// NewAccessUseCase construye el caso de uso. expectedDelta es la discrepancia
// sana del despliegue (DIAGNOSTICS_EXPECTED_DELTA).
func NewAccessUseCase(
	users repository.UserRepository,
	units repository.BusinessUnitRepository,
	companies repository.CompanyRepository,
	modules ModuleResolver,
	graph *module.Graph,
	reports ports.HealthReportGenerator,
	expectedDelta int,
	log *logger.Logger,
) *AccessUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AccessUseCase{
		users:         users,
		units:         units,
		companies:     companies,
		modules:       modules,
		graph:         graph,
		reports:       reports,
		expectedDelta: expectedDelta,
		log:           log.Component("access"),
	}
}

// viewer agrupa el usuario de la sesión y su unidad de negocio activa.
type viewer struct {
	user *entity.User
	unit *entity.BusinessUnit
	slug string
}

// load trae en paralelo el usuario y la unidad de negocio de la sesión.
func (uc *AccessUseCase) load(ctx context.Context, sess Session) (*viewer, error) {
	var v viewer
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := uc.users.GetByID(gctx, sess.UserID)
		if err != nil {
			return fmt.Errorf("access: cargar usuario: %w", err)
		}
		if u == nil || u.CompanyID != sess.CompanyID {
			return domain.ErrUserNotFound
		}
		if !u.IsActive() {
			return fmt.Errorf("%w: usuario %s", domain.ErrUnauthorized, u.Status)
		}
		v.user = u
		return nil
	})
	if sess.BusinessUnitID != "" {
		g.Go(func() error {
			bu, err := uc.units.GetByID(gctx, sess.BusinessUnitID)
			if err != nil {
				return fmt.Errorf("access: cargar unidad de negocio: %w", err)
			}
			if bu != nil && bu.CompanyID == sess.CompanyID {
				v.unit = bu
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	v.slug = RouteSlug(v.unit)
	return &v, nil
}

// Grants devuelve los permisos efectivos del usuario (o los asignados si no
// hay efectivos calculados). Un usuario inactivo no tiene permisos.
func (uc *AccessUseCase) Grants(ctx context.Context, userID string) (permission.Grants, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("access: cargar usuario: %w", err)
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if !u.IsActive() {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrUnauthorized, u.Status)
	}
	return u.Grants(), nil
}

// Check decide si el usuario de la sesión satisface el requisito.
func (uc *AccessUseCase) Check(ctx context.Context, sess Session, in dto.PermissionCheckRequest) (*dto.PermissionCheckResponse, error) {
	grants, err := uc.Grants(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	req := permission.Requirement{Resource: in.Resource, Action: in.Action}
	return &dto.PermissionCheckResponse{Allowed: permission.HasPermission(req, grants)}, nil
}

// Menu devuelve el menú visible del usuario en su unidad de negocio.
func (uc *AccessUseCase) Menu(ctx context.Context, sess Session) (*dto.MenuResponse, error) {
	v, err := uc.load(ctx, sess)
	if err != nil {
		return nil, err
	}
	tree := menu.ForRole(v.user.Role, v.slug)
	return &dto.MenuResponse{
		Role:             v.user.Role,
		BusinessUnitSlug: v.slug,
		Items:            menu.Filter(tree, v.user.Grants()),
	}, nil
}

// Diagnostics compara las hojas visibles del menú con los recursos únicos que
// otorga el backend al usuario de la sesión.
func (uc *AccessUseCase) Diagnostics(ctx context.Context, sess Session) (*dto.PermissionHealthResponse, error) {
	v, err := uc.load(ctx, sess)
	if err != nil {
		return nil, err
	}
	out := uc.diagnose(v.user, v.slug)
	if !out.Stats.IsHealthy {
		uc.log.Debug().Str("user_id", v.user.ID).Int("discrepancy", out.Stats.Discrepancy).
			Int("expected", uc.expectedDelta).Msg("discrepancia de permisos fuera de lo esperado")
	}
	return &out, nil
}

// CompanyHealth diagnostica una página de usuarios de la empresa de la sesión.
func (uc *AccessUseCase) CompanyHealth(ctx context.Context, sess Session, page dto.PageRequest) (*dto.CompanyHealthResponse, error) {
	page.DefaultPage()
	var (
		users []*entity.User
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if users, err = uc.users.ListByCompany(gctx, sess.CompanyID, page.Limit, page.Offset); err != nil {
			return fmt.Errorf("access: listar usuarios: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if total, err = uc.users.CountByCompany(gctx, sess.CompanyID); err != nil {
			return fmt.Errorf("access: contar usuarios: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := &dto.CompanyHealthResponse{
		Items: make([]dto.PermissionHealthResponse, 0, len(users)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, u := range users {
		d := uc.diagnose(u, "")
		if !d.Stats.IsHealthy {
			out.Unhealthy++
		}
		out.Items = append(out.Items, d)
	}
	return out, nil
}

// HealthReport genera el PDF con el diagnóstico del usuario, los módulos
// activos de la empresa y el menú visible.
func (uc *AccessUseCase) HealthReport(ctx context.Context, sess Session) ([]byte, error) {
	if uc.reports == nil {
		return nil, fmt.Errorf("access: generador de reportes no configurado")
	}
	var (
		v        *viewer
		company  *entity.Company
		resolved module.EnabledMap
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		v, err = uc.load(gctx, sess)
		return err
	})
	g.Go(func() error {
		c, err := uc.companies.GetByID(gctx, sess.CompanyID)
		if err != nil {
			return fmt.Errorf("access: cargar empresa: %w", err)
		}
		if c == nil {
			return domain.ErrNotFound
		}
		company = c
		return nil
	})
	g.Go(func() error {
		m, _, err := uc.modules.Resolved(gctx, entity.Scope{Type: entity.ScopeCompany, ID: sess.CompanyID})
		resolved = m
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := uc.diagnose(v.user, v.slug)
	report := &ports.HealthReport{
		ReportID:     uuid.New().String(),
		GeneratedAt:  time.Now(),
		Company:      company,
		User:         v.user,
		BusinessUnit: v.slug,
		Stats:        d.Stats,
		MonthlyTotal: uc.graph.MonthlyTotal(resolved),
		VisibleMenu:  menu.LeafPaths(menu.Filter(menu.ForRole(v.user.Role, v.slug), v.user.Grants())),
	}
	if v.unit != nil {
		report.BusinessUnit = v.unit.Name
	}
	for _, def := range uc.graph.Definitions() {
		if resolved[def.Key] {
			report.Modules = append(report.Modules, ports.ModuleLine{
				Name: def.Name, Mandatory: def.Mandatory, MonthlyPrice: def.MonthlyPrice,
			})
		}
	}
	return uc.reports.GenerateHealthReport(ctx, report)
}

func (uc *AccessUseCase) diagnose(u *entity.User, slug string) dto.PermissionHealthResponse {
	grants := u.Grants()
	return dto.PermissionHealthResponse{
		UserID:           u.ID,
		Name:             u.Name,
		Role:             u.Role,
		BusinessUnitSlug: slug,
		UsesEffective:    u.EffectivePermissions != nil,
		Stats:            menu.ComputeDiagnostics(grants, menu.ForRole(u.Role, slug), uc.expectedDelta),
	}
}

// RouteSlug resuelve el segmento de ruta de la unidad de negocio: el slug
// guardado, si no el nombre normalizado, si no el ID.
func RouteSlug(bu *entity.BusinessUnit) string {
	if bu == nil {
		return ""
	}
	if bu.Slug != "" {
		return bu.Slug
	}
	if s := menu.Slugify(bu.Name); s != "" {
		return s
	}
	return bu.ID
}
