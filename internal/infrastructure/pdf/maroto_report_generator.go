// Package pdf implementa el reporte PDF del inventario de la nevera.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la app      │  Fecha de corte              │
//	│  RESUMEN: alimentos / unidades / vencidos / por vencer        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Alimento | Cant | Vence | Días | Estado               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/jhoicas/Nevera-api/internal/domain/entity"
)

// Días antes del vencimiento en que un alimento se marca "por vencer".
const soonDays = 3

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 110, Blue: 80}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorAmber   = &props.Color{Red: 200, Green: 120, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.InventoryReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	title string
}

// NewMarotoReportGenerator construye el generador; title va en el encabezado.
func NewMarotoReportGenerator(title string) *MarotoReportGenerator {
	if title == "" {
		title = "Nevera"
	}
	return &MarotoReportGenerator{title: title}
}

// GenerateInventoryPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryPDF(
	_ context.Context,
	records []*entity.InventoryRecord,
	asOf time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Inventario "+g.title, true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, asOf))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(summarize(records, asOf)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(records) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("La nevera está vacía.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	for _, r := range tableDetailRows(records, asOf) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

type summary struct {
	items    int
	units    int
	expired  int
	expiring int
}

func summarize(records []*entity.InventoryRecord, asOf time.Time) summary {
	s := summary{items: len(records)}
	for _, r := range records {
		s.units += r.Quantity
		switch status(r, asOf) {
		case statusExpired:
			s.expired++
		case statusSoon:
			s.expiring++
		}
	}
	return s
}

func headerRow(title string, asOf time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Inventario de alimentos", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("FECHA DE CORTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(asOf.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
		),
	)
}

func summaryRow(s summary) core.Row {
	cell := func(label string, value int, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(fmt.Sprintf("%d", value), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: c, Top: 5,
			}),
		)
	}
	return row.New(14).Add(
		cell("Alimentos", s.items, colorPrimary),
		cell("Unidades", s.units, colorPrimary),
		cell("Vencidos", s.expired, colorRed),
		cell(fmt.Sprintf("Vencen en %d días", soonDays), s.expiring, colorAmber),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo de color.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Alimento", 5, align.Left),
		h("Cant.", 1, align.Center),
		h("Vence", 2, align.Center),
		h("Días", 2, align.Center),
		h("Estado", 2, align.Center),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por alimento, en el orden del almacén.
func tableDetailRows(records []*entity.InventoryRecord, asOf time.Time) []core.Row {
	result := make([]core.Row, 0, len(records))
	for _, r := range records {
		st := status(r, asOf)
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(r.Item, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(entity.FormatDate(r.Expiry), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", daysLeft(r, asOf)), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(st.label(), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: st.color(),
			})),
		))
	}
	return result
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Un alimento está vencido cuando su fecha de vencimiento es anterior a la fecha de corte. "+
				"Las fechas sin indicar se estiman con la vida útil típica de cada alimento.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

type itemStatus int

const (
	statusOK itemStatus = iota
	statusSoon
	statusExpired
)

func status(r *entity.InventoryRecord, asOf time.Time) itemStatus {
	switch d := daysLeft(r, asOf); {
	case d < 0:
		return statusExpired
	case d <= soonDays:
		return statusSoon
	default:
		return statusOK
	}
}

func (s itemStatus) label() string {
	switch s {
	case statusExpired:
		return "VENCIDO"
	case statusSoon:
		return "POR VENCER"
	default:
		return "OK"
	}
}

func (s itemStatus) color() *props.Color {
	switch s {
	case statusExpired:
		return colorRed
	case statusSoon:
		return colorAmber
	default:
		return colorGray
	}
}

// daysLeft días de calendario entre asOf y el vencimiento (negativo si ya venció).
func daysLeft(r *entity.InventoryRecord, asOf time.Time) int {
	return int(entity.Date(r.Expiry).Sub(entity.Date(asOf)).Hours() / 24)
}
