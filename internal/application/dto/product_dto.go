package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductID identificador opaco de producto. La API lo envía como número
// (autoincremental) o como string; internamente siempre se maneja como string.
type ProductID string

// UnmarshalJSON acepta tanto 42 como "42".
func (id *ProductID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ProductID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("product id: %w", err)
	}
	*id = ProductID(n.String())
	return nil
}

// ProductDTO producto tal como lo devuelve GET /inventory/api/products/.
type ProductDTO struct {
	ID            ProductID       `json:"id"`
	Name          string          `json:"name"`
	Model         string          `json:"model"`
	CategoryName  string          `json:"category_name"`
	CurrentStock  int             `json:"current_stock"`
	MinStockLevel int             `json:"min_stock_level"`
	MaxStockLevel int             `json:"max_stock_level"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	MainImage     *string         `json:"main_image"`
	StockStatus   string          `json:"stock_status"`
}

// ProductListResponse cuerpo de GET /inventory/api/products/.
// Success es opcional: si viene en false la respuesta se considera fallida.
type ProductListResponse struct {
	Success  *bool        `json:"success,omitempty"`
	Products []ProductDTO `json:"products"`
	Error    string       `json:"error,omitempty"`
}

// AdjustStockRequest body de PUT /inventory/api/products/{id}/adjust_stock/.
type AdjustStockRequest struct {
	NewStock int `json:"new_stock"`
}

// AdjustStockResponse respuesta opcional del ajuste; la vista solo mira Success/Error.
type AdjustStockResponse struct {
	Success *bool  `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}
