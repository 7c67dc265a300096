package inventory_test

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-rapido/internal/domain/entity"
)

// fakeAPI implementa InventoryAPI en memoria y registra cada llamada.
type fakeAPI struct {
	mu          sync.Mutex
	products    []entity.Product
	listErr     error
	adjustErr   error
	listCalls   int
	adjustCalls []adjustCall
}

type adjustCall struct {
	ProductID string
	NewStock  int
}

func (f *fakeAPI) ListProducts(_ context.Context) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]entity.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeAPI) AdjustStock(_ context.Context, productID string, newStock int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adjustCalls = append(f.adjustCalls, adjustCall{ProductID: productID, NewStock: newStock})
	if f.adjustErr != nil {
		return f.adjustErr
	}
	for i := range f.products {
		if f.products[i].ID == productID {
			f.products[i].CurrentStock = newStock
		}
	}
	return nil
}

func (f *fakeAPI) ExportURL() string { return "http://inventario.test/inventory/export_inventory/" }

func (f *fakeAPI) ListCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}
