package inventory

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/jhoicas/inventario-rapido/internal/domain/entity"
)

// DefaultNoImageURL imagen de reemplazo cuando el producto no tiene imagen principal.
const DefaultNoImageURL = "/static/images/no-image.svg"

// AllCategoriesLabel etiqueta de la opción centinela "todas las categorías".
const AllCategoriesLabel = "Todas las categorías"

// RenderOptions parámetros de presentación que no dependen del estado.
type RenderOptions struct {
	NoImageURL string
}

// Row fila visible de la tabla de inventario.
type Row struct {
	ID           string             `json:"id"`
	ImageURL     string             `json:"image_url"`
	Name         string             `json:"name"`
	Model        string             `json:"model"`
	Category     string             `json:"category"`
	CurrentStock int                `json:"current_stock"`
	MinStock     int                `json:"min_stock_level"`
	MaxStock     int                `json:"max_stock_level"`
	Price        string             `json:"selling_price"`
	Status       entity.StockStatus `json:"stock_status"`
	BadgeClass   string             `json:"badge_class"`
	Adjust       AdjustAction       `json:"adjust"`
}

// AdjustAction acción "Ajustar" asociada a una fila.
type AdjustAction struct {
	ProductID    string `json:"product_id"`
	CurrentStock int    `json:"current_stock"`
}

// CategoryOption opción del selector de categoría.
type CategoryOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// ViewModel descripción declarativa de la vista completa.
type ViewModel struct {
	Rows            []Row            `json:"rows"`
	CategoryOptions []CategoryOption `json:"category_options"`
	Filter          Filter           `json:"filter"`
	Dialog          Dialog           `json:"dialog"`
	Error           string           `json:"error,omitempty"`
	Total           int              `json:"total"`
	Loaded          bool             `json:"loaded"`
	LoadedAt        time.Time        `json:"loaded_at,omitempty"`
}

// Render es una función pura de (snapshot, estado): no consulta la red ni guarda nada.
// Conserva el orden de la API y no ordena en el cliente.
func Render(snap Snapshot, state ViewState, opts RenderOptions) ViewModel {
	noImage := opts.NoImageURL
	if noImage == "" {
		noImage = DefaultNoImageURL
	}

	// cases.Caser no es seguro entre goroutines: uno por llamada.
	fold := cases.Fold()
	needle := fold.String(state.Filter.Search)

	rows := make([]Row, 0, len(snap.Products))
	for _, p := range snap.Products {
		if state.Filter.Category != "" && p.CategoryName != state.Filter.Category {
			continue
		}
		if needle != "" &&
			!strings.Contains(fold.String(p.Name), needle) &&
			!strings.Contains(fold.String(p.Model), needle) {
			continue
		}
		rows = append(rows, toRow(p, noImage))
	}

	dialog := state.Dialog
	if dialog.State == "" {
		dialog.State = DialogHidden
	}

	return ViewModel{
		Rows:            rows,
		CategoryOptions: categoryOptions(snap.Categories, state.Filter.Category),
		Filter:          state.Filter,
		Dialog:          dialog,
		Error:           state.Error,
		Total:           len(snap.Products),
		Loaded:          snap.Loaded,
		LoadedAt:        snap.LoadedAt,
	}
}

// BadgeClass clase visual del badge de estado.
func BadgeClass(s entity.StockStatus) string {
	return "badge-" + s.Severity()
}

func toRow(p entity.Product, noImage string) Row {
	img := p.MainImage
	if img == "" {
		img = noImage
	}
	return Row{
		ID:           p.ID,
		ImageURL:     img,
		Name:         p.Name,
		Model:        p.Model,
		Category:     p.CategoryName,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStockLevel,
		MaxStock:     p.MaxStockLevel,
		Price:        p.SellingPrice.StringFixed(2),
		Status:       p.StockStatus,
		BadgeClass:   BadgeClass(p.StockStatus),
		Adjust:       AdjustAction{ProductID: p.ID, CurrentStock: p.CurrentStock},
	}
}

func categoryOptions(categories []string, selected string) []CategoryOption {
	opts := make([]CategoryOption, 0, len(categories)+1)
	opts = append(opts, CategoryOption{Value: "", Label: AllCategoriesLabel, Selected: selected == ""})
	for _, c := range categories {
		opts = append(opts, CategoryOption{Value: c, Label: c, Selected: c == selected})
	}
	return opts
}
