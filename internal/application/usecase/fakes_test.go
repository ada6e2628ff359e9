package usecase_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/Invorya-access-api/internal/application/ports"
	"github.com/jhoicas/Invorya-access-api/internal/domain/entity"
	"github.com/jhoicas/Invorya-access-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de repositorios y puertos
// ──────────────────────────────────────────────────────────────────────────────

type fakeSettingsRepo struct {
	mu      sync.Mutex
	data    map[entity.Scope]*entity.ModuleSettings
	saveErr error
	locked  []entity.Scope
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{data: map[entity.Scope]*entity.ModuleSettings{}}
}

func (f *fakeSettingsRepo) Get(_ context.Context, scope entity.Scope) (*entity.ModuleSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.data[scope]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSettingsRepo) GetForUpdate(ctx context.Context, scope entity.Scope) (*entity.ModuleSettings, error) {
	f.mu.Lock()
	f.locked = append(f.locked, scope)
	f.mu.Unlock()
	return f.Get(ctx, scope)
}

func (f *fakeSettingsRepo) Save(_ context.Context, s *entity.ModuleSettings) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.data[s.Scope] = &cp
	return nil
}

type fakeTx struct {
	repo *fakeSettingsRepo
	runs int
}

func (f *fakeTx) RunSettings(_ context.Context, fn func(repo repository.ModuleSettingsTxRepository) error) error {
	f.runs++
	return fn(f.repo)
}

type fakeInvalidator struct {
	scopes []entity.Scope
}

func (f *fakeInvalidator) Invalidate(_ context.Context, scope entity.Scope) {
	f.scopes = append(f.scopes, scope)
}

type fakeUnits struct {
	data map[string]*entity.BusinessUnit
	err  error
}

func (f *fakeUnits) GetByID(_ context.Context, id string) (*entity.BusinessUnit, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.data[id], nil
}

func (f *fakeUnits) ListByCompany(_ context.Context, companyID string) ([]*entity.BusinessUnit, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.BusinessUnit
	for _, bu := range f.data {
		if bu.CompanyID == companyID {
			out = append(out, bu)
		}
	}
	return out, nil
}

type fakeUsers struct {
	data map[string]*entity.User
	err  error
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.data[id], nil
}

func (f *fakeUsers) byCompany(companyID string) []*entity.User {
	var out []*entity.User
	for _, id := range []string{"u-admin", "u-cajero", "u-otro"} {
		if u, ok := f.data[id]; ok && u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return out
}

func (f *fakeUsers) CountByCompany(_ context.Context, companyID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.byCompany(companyID)), nil
}

func (f *fakeUsers) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := f.byCompany(companyID)
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeCompanies struct {
	data map[string]*entity.Company
}

func (f *fakeCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return f.data[id], nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []ports.Notification
}

func (f *fakeNotifier) Notify(_ context.Context, n ports.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
}

func (f *fakeNotifier) last() ports.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return ports.Notification{}
	}
	return f.sent[len(f.sent)-1]
}

type fakeReports struct {
	got *ports.HealthReport
}

func (f *fakeReports) GenerateHealthReport(_ context.Context, r *ports.HealthReport) ([]byte, error) {
	f.got = r
	return []byte("%PDF-fake"), nil
}

var errDB = errors.New("db caída")
