package entity

import "github.com/shopspring/decimal"

// StockStatus clasificación del nivel de inventario calculada por la API.
// Se trata como un valor opaco: nunca se deriva a partir de las cantidades.
type StockStatus string

const (
	StockOK  StockStatus = "ok"
	StockLow StockStatus = "low"
	StockOut StockStatus = "out"

	// Valores que emite el backend de inventario original.
	StockInStock    StockStatus = "in_stock"
	StockLowStock   StockStatus = "low_stock"
	StockOutOfStock StockStatus = "out_of_stock"
	StockOverstock  StockStatus = "overstock"
)

// Severity nivel visual del estado: "warning", "error" o "success".
// Cualquier valor desconocido se muestra como success.
func (s StockStatus) Severity() string {
	switch s {
	case StockLow, StockLowStock:
		return "warning"
	case StockOut, StockOutOfStock:
		return "error"
	default:
		return "success"
	}
}

// Product copia de solo lectura de un producto servido por la API de inventario.
// La vista nunca la modifica: la lista completa se reemplaza en cada consulta.
type Product struct {
	ID            string // identificador opaco y estable
	Name          string
	Model         string
	CategoryName  string
	CurrentStock  int
	MinStockLevel int
	MaxStockLevel int
	SellingPrice  decimal.Decimal
	MainImage     string // vacío si el producto no tiene imagen
	StockStatus   StockStatus
}
