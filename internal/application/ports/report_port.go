package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Invorya-access-api/internal/domain/entity"
	"github.com/jhoicas/Invorya-access-api/internal/domain/menu"
)

// ModuleLine un módulo activo con su precio mensual.
type ModuleLine struct {
	Name         string
	Mandatory    bool
	MonthlyPrice decimal.Decimal
}

// HealthReport datos del reporte de salud de permisos.
type HealthReport struct {
	ReportID     string
	GeneratedAt  time.Time
	Company      *entity.Company
	User         *entity.User
	BusinessUnit string // nombre o slug; vacío si no aplica
	Stats        menu.DiagnosticStats
	Modules      []ModuleLine
	MonthlyTotal decimal.Decimal
	VisibleMenu  []string // rutas de las hojas visibles
}

// HealthReportGenerator genera el PDF del reporte.
type HealthReportGenerator interface {
	GenerateHealthReport(ctx context.Context, r *HealthReport) ([]byte, error)
}
