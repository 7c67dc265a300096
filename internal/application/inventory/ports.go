package inventory

import (
	"context"

	"github.com/jhoicas/inventario-rapido/internal/domain/entity"
)

// InventoryAPI puerto de salida hacia la API de inventario externa.
// La vista solo conoce este contrato; el adaptador HTTP vive en infrastructure.
type InventoryAPI interface {
	// ListProducts devuelve la lista completa de productos en el orden de la API.
	ListProducts(ctx context.Context) ([]entity.Product, error)
	// AdjustStock fija el stock actual del producto en newStock (no es un delta).
	AdjustStock(ctx context.Context, productID string, newStock int) error
	// ExportURL URL absoluta del endpoint de exportación (navegación completa).
	ExportURL() string
}

// StockSheetGenerator genera la hoja de stock imprimible de las filas visibles.
type StockSheetGenerator interface {
	GenerateStockSheet(ctx context.Context, view ViewModel) ([]byte, error)
}
