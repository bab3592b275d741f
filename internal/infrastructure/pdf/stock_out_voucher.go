// Package pdf genera el comprobante de una salida de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + título     │  N° referencia + fecha       │
//	│  RESPONSABLE: empleado                                      │
//	│  TABLA: SKU | Producto | Variación | Cant. | Motivo         │
//	│  TOTAL UNIDADES                                             │
//	│  FOOTER: QR con la referencia + firma                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ inventory.StockOutPDFGenerator = (*StockOutVoucherGenerator)(nil)

// StockOutVoucherGenerator implementa inventory.StockOutPDFGenerator con Maroto v2.
type StockOutVoucherGenerator struct {
	storeName string
}

// NewStockOutVoucherGenerator construye el generador. storeName aparece en la cabecera.
func NewStockOutVoucherGenerator(storeName string) *StockOutVoucherGenerator {
	return &StockOutVoucherGenerator{storeName: storeName}
}

// GenerateStockOutPDF genera el comprobante. rows son las filas del historial de una misma salida.
func (g *StockOutVoucherGenerator) GenerateStockOutPDF(_ context.Context, rows []*entity.StockOutMovement) ([]byte, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("pdf: salida sin ítems")
	}
	first := rows[0]

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de salida "+first.ReferenceNumber, true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.storeName, first))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(employeeRow(first))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableItemRows(rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(rows))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(first.ReferenceNumber))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(storeName string, so *entity.StockOutMovement) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("COMPROBANTE DE SALIDA DE INVENTARIO", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("N° SALIDA "+fmt.Sprint(so.StockOutID), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(so.ReferenceNumber, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+so.StockOutDate, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func employeeRow(so *entity.StockOutMovement) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("RESPONSABLE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s (empleado #%d)", so.EmployeeName, so.EmployeeID), props.Text{
				Size: 9, Top: 6,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Variación", 2, align.Left),
		h("Cant.", 1, align.Center),
		h("Motivo", 3, align.Left),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableItemRows(rows []*entity.StockOutMovement) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, row.New(7).Add(
			cell(r.SKU, 2, align.Left),
			cell(r.Name, 4, align.Left),
			cell(r.Type+": "+r.Value, 2, align.Left),
			cell(fmt.Sprint(r.Quantity), 1, align.Center),
			cell(nonEmpty(r.Reason, "—"), 3, align.Left),
		))
	}
	return out
}

func totalRow(rows []*entity.StockOutMovement) core.Row {
	total := 0
	for _, r := range rows {
		total += r.Quantity
	}
	return row.New(10).Add(
		col.New(8).Add(text.New("TOTAL UNIDADES:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(1).Add(text.New(fmt.Sprint(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Center, Color: colorPrimary, Top: 2,
		})),
		col.New(3),
	)
}

func footerRow(reference string) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(reference, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Referencia: "+reference, props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New("Firma del responsable: ______________________________", props.Text{
				Size: 9, Top: 24, Left: 3,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
