// Package pdf genera la representación imprimible del reporte de saldos:
// una tabla (producto, ubicación, cantidad neta) sobre página A4.
package pdf

import (
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

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// BalanceReportRenderer genera el PDF del reporte usando Maroto v2.
type BalanceReportRenderer struct{}

// NewBalanceReportRenderer construye el renderer.
func NewBalanceReportRenderer() *BalanceReportRenderer { return &BalanceReportRenderer{} }

// RenderBalanceReport genera el documento y devuelve sus bytes.
func (g *BalanceReportRenderer) RenderBalanceReport(rows []dto.ReportRow) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de saldos de inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(tableRow(r))
	}
	if len(rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin saldos distintos de cero", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título a la izquierda y fecha de generación a la derecha.
func headerRow() core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("REPORTE DE SALDOS DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Saldos netos por producto y ubicación, derivados del ledger", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 3, align.Left),
		h("Nombre", 3, align.Left),
		h("Ubicación", 2, align.Left),
		h("Nombre", 2, align.Left),
		h("Cantidad", 2, align.Right),
	)
}

func tableRow(r dto.ReportRow) core.Row {
	return row.New(7).Add(
		col.New(3).Add(text.New(r.ProductID, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(3).Add(text.New(orDash(r.ProductName), props.Text{Size: 8, Align: align.Left, Top: 1})),
		col.New(2).Add(text.New(r.LocationID, props.Text{Size: 8, Align: align.Left, Top: 1})),
		col.New(2).Add(text.New(orDash(r.LocationName), props.Text{Size: 8, Align: align.Left, Top: 1})),
		col.New(2).Add(text.New(fmt.Sprintf("%d", r.Qty), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "—"
	}
	return *s
}
