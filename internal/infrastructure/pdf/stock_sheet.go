// Package pdf genera la hoja de stock imprimible de la vista rápida de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de carga   │  Filtro aplicado        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Categoría | Stock | Mín | Máx | Precio | Estado │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: filas visibles / productos cargados               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
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

	appinventory "github.com/jhoicas/inventario-rapido/internal/application/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorWarning = &props.Color{Red: 191, Green: 120, Blue: 0}
	colorError   = &props.Color{Red: 190, Green: 30, Blue: 45}
	colorSuccess = &props.Color{Red: 20, Green: 130, Blue: 60}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// Verificar en tiempo de compilación que StockSheetGenerator implementa el puerto.
var _ appinventory.StockSheetGenerator = (*StockSheetGenerator)(nil)

// StockSheetGenerator implementa inventory.StockSheetGenerator usando Maroto v2.
type StockSheetGenerator struct {
	title string
}

// NewStockSheetGenerator construye el generador; title aparece en la cabecera y en los metadatos.
func NewStockSheetGenerator(title string) *StockSheetGenerator {
	if title == "" {
		title = "Inventario rápido"
	}
	return &StockSheetGenerator{title: title}
}

// GenerateStockSheet genera el PDF con las filas visibles y devuelve sus bytes.
func (g *StockSheetGenerator) GenerateStockSheet(_ context.Context, view appinventory.ViewModel) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(view))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(view.Rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(view))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar hoja de stock: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y fecha de carga (izq), filtro aplicado (der).
func (g *StockSheetGenerator) headerRow(view appinventory.ViewModel) core.Row {
	loaded := "—"
	if view.Loaded && !view.LoadedAt.IsZero() {
		loaded = view.LoadedAt.Local().Format("02/01/2006 15:04")
	}

	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Datos cargados: "+loaded, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Búsqueda: "+nonEmpty(view.Filter.Search, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Categoría: "+nonEmpty(view.Filter.Category, appinventory.AllCategoriesLabel), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo primario.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Stock", 1, align.Center),
		h("Mín", 1, align.Center),
		h("Máx", 1, align.Center),
		h("Precio", 2, align.Right),
		h("Estado", 1, align.Center),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows: una fila por producto visible, en el orden de la vista.
func tableRows(rows []appinventory.Row) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		name := r.Name
		if r.Model != "" {
			name += " (" + r.Model + ")"
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(r.Category, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(r.CurrentStock), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(strconv.Itoa(r.MinStock), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(strconv.Itoa(r.MaxStock), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New("$"+r.Price, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(string(r.Status), props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Center, Top: 1, Color: badgeColor(r.BadgeClass),
			})),
		))
	}
	return result
}

// totalsRow: conteo de filas visibles frente al total cargado.
func totalsRow(view appinventory.ViewModel) core.Row {
	return row.New(10).Add(
		col.New(6).Add(text.New(
			fmt.Sprintf("Generado: %s", time.Now().Format("02/01/2006 15:04")),
			props.Text{Size: 7, Top: 2, Color: colorGray},
		)),
		col.New(6).Add(text.New(
			fmt.Sprintf("Mostrando %d de %d productos", len(view.Rows), view.Total),
			props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Color: colorPrimary},
		)),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func badgeColor(class string) *props.Color {
	switch class {
	case "badge-warning":
		return colorWarning
	case "badge-error":
		return colorError
	default:
		return colorSuccess
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
