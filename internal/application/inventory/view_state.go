package inventory

import "strconv"

// Filter filtro local de la tabla: texto libre y categoría opcional.
type Filter struct {
	Search   string `json:"search"`
	Category string `json:"category"` // vacío = todas las categorías
}

// DialogState estado del diálogo de ajuste de stock.
type DialogState string

const (
	DialogHidden DialogState = "hidden"
	DialogOpen   DialogState = "open"
)

// Dialog diálogo de ajuste. Solo existen dos estados; no hay estado "enviando".
type Dialog struct {
	State     DialogState `json:"state"`
	ProductID string      `json:"product_id"`
	NewStock  string      `json:"new_stock"` // valor del campo tal como lo ve el formulario
}

// IsOpen indica si el diálogo está visible.
func (d Dialog) IsOpen() bool { return d.State == DialogOpen }

// Open abre el diálogo sembrando id y stock actual, sin importar el estado previo.
func (d Dialog) Open(productID string, currentStock int) Dialog {
	return Dialog{
		State:     DialogOpen,
		ProductID: productID,
		NewStock:  strconv.Itoa(currentStock),
	}
}

// Cancel oculta el diálogo. Los campos se limpian porque Open siempre los vuelve a sembrar.
func (d Dialog) Cancel() Dialog {
	return Dialog{State: DialogHidden}
}

// Close oculta el diálogo tras un ajuste exitoso.
func (d Dialog) Close() Dialog {
	return Dialog{State: DialogHidden}
}

// ViewState estado efímero de la vista: filtro, diálogo y el slot de error de la UI.
type ViewState struct {
	Filter Filter
	Dialog Dialog
	Error  string
}

// NewViewState estado inicial: sin filtro y con el diálogo oculto.
func NewViewState() ViewState {
	return ViewState{Dialog: Dialog{State: DialogHidden}}
}
