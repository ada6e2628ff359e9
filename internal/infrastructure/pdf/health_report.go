// Package pdf genera el reporte de salud de permisos de un usuario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + NIT       │  Reporte + Fecha             │
//	│  USUARIO: Nombre / Rol / Unidad de negocio                  │
//	│  DIAGNÓSTICO: permisos | recursos | hojas | discrepancia    │
//	│  MÓDULOS: Módulo | Obligatorio | Precio + TOTAL MENSUAL     │
//	│  MENÚ VISIBLE: una línea por hoja                           │
//	│  FOOTER: QR con el ID del reporte                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Invorya-access-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorOK      = &props.Color{Red: 20, Green: 120, Blue: 60}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// HealthReportGenerator implementa ports.HealthReportGenerator usando Maroto v2.
type HealthReportGenerator struct{}

var _ ports.HealthReportGenerator = (*HealthReportGenerator)(nil)

// NewHealthReportGenerator construye el generador.
func NewHealthReportGenerator() *HealthReportGenerator { return &HealthReportGenerator{} }

// GenerateHealthReport genera el PDF y devuelve sus bytes.
func (g *HealthReportGenerator) GenerateHealthReport(_ context.Context, r *ports.HealthReport) ([]byte, error) {
	if r == nil || r.Company == nil || r.User == nil {
		return nil, fmt.Errorf("pdf: reporte incompleto")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Salud de permisos", true).
		WithAuthor(r.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(userRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("DIAGNÓSTICO"))
	m.AddRows(statsRows(r)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("MÓDULOS ACTIVOS"))
	m.AddRows(tableHeaderRow())
	m.AddRows(moduleRows(r.Modules)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(r))

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("MENÚ VISIBLE"))
	m.AddRows(menuRows(r.VisibleMenu)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(r))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r *ports.HealthReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(r.Company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+nonEmpty(r.Company.NIT, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE SALUD DE PERMISOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func userRow(r *ports.HealthReport) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("USUARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(r.User.Name, r.User.ID), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Rol: %s   |   Unidad de negocio: %s",
				nonEmpty(r.User.Email, "-"),
				nonEmpty(r.User.Role, "-"),
				nonEmpty(r.BusinessUnit, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

// statsRows: una fila por métrica y el veredicto al final.
func statsRows(r *ports.HealthReport) []core.Row {
	s := r.Stats
	metric := func(label string, v int) core.Row {
		return row.New(5).Add(
			col.New(8).Add(text.New(label, props.Text{Size: 8, Left: 2})),
			col.New(4).Add(text.New(strconv.Itoa(v), props.Text{Size: 8, Align: align.Right, Right: 1})),
		)
	}
	verdict, color := "SANO", colorOK
	if !s.IsHealthy {
		verdict, color = "REVISAR", colorAlert
	}
	return []core.Row{
		metric("Permisos otorgados por el backend", s.BackendGrantCount),
		metric("Recursos únicos", s.UniqueBackendResourceCount),
		metric("Hojas visibles del menú", s.VisibleLeafCount),
		metric("Discrepancia", s.Discrepancy),
		metric("Discrepancia esperada", s.ExpectedDiscrepancy),
		row.New(7).Add(col.New(12).Add(text.New("Estado: "+verdict, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: color, Top: 1, Right: 1,
		}))),
	}
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Módulo", 6, align.Left),
		h("Obligatorio", 3, align.Center),
		h("Precio mensual", 3, align.Right),
	)
}

func moduleRows(lines []ports.ModuleLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		mandatory := "No"
		if l.Mandatory {
			mandatory = "Sí"
		}
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(l.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(mandatory, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New("$"+formatMoney(l.MonthlyPrice.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalRow(r *ports.HealthReport) core.Row {
	return row.New(9).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL MENSUAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1, Right: 2,
		})),
		col.New(3).Add(text.New("$"+formatMoney(r.MonthlyTotal.StringFixed(0)), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1, Right: 1,
		})),
	)
}

func menuRows(paths []string) []core.Row {
	if len(paths) == 0 {
		return []core.Row{row.New(5).Add(col.New(12).Add(
			text.New("El usuario no ve ningún ítem del menú.", props.Text{Size: 8, Color: colorGray, Left: 2}),
		))}
	}
	rows := make([]core.Row, 0, len(paths))
	for _, p := range paths {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New("• "+p, props.Text{Size: 7.5, Left: 2}),
		)))
	}
	return rows
}

// footerRow: QR con el ID del reporte para rastrearlo en los logs.
func footerRow(r *ports.HealthReport) core.Row {
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(r.ReportID, props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New("ID del reporte:", props.Text{Style: fontstyle.Bold, Size: 8, Top: 4, Left: 3}),
			text.New(r.ReportID, props.Text{Size: 7, Top: 9, Left: 3, Color: colorGray}),
			text.New("Generado automáticamente por el panel de administración.", props.Text{
				Size: 7, Top: 18, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	neg := len(s) > 0 && s[0] == '-'
	if neg {
		s = s[1:]
	}
	n := len(s)
	buf := make([]byte, 0, n+n/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
