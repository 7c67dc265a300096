package inventory

import (
	"sync"
	"time"

	"github.com/jhoicas/inventario-rapido/internal/domain/entity"
)

// Snapshot copia en caché de la lista de productos y sus categorías derivadas.
// Un Snapshot nunca se modifica después de publicarse.
type Snapshot struct {
	Products   []entity.Product
	Categories []string // categorías distintas en orden de aparición
	Loaded     bool
	LoadedAt   time.Time
}

// Catalog guarda el último Snapshot recibido de la API.
// Replace lo sustituye completo: si dos consultas se solapan gana la última en llegar.
type Catalog struct {
	mu   sync.RWMutex
	snap Snapshot
	now  func() time.Time
}

// NewCatalog construye un catálogo vacío (todavía no cargado).
func NewCatalog() *Catalog {
	return &Catalog{now: time.Now}
}

// Replace publica una nueva lista y recalcula el conjunto de categorías.
func (c *Catalog) Replace(products []entity.Product) Snapshot {
	list := make([]entity.Product, len(products))
	copy(list, products)

	snap := Snapshot{
		Products:   list,
		Categories: distinctCategories(list),
		Loaded:     true,
		LoadedAt:   c.now(),
	}

	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()
	return snap
}

// Snapshot devuelve la lista vigente. El llamador no debe modificarla.
func (c *Catalog) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Find busca un producto por id en la lista vigente.
func (c *Catalog) Find(id string) (entity.Product, bool) {
	snap := c.Snapshot()
	for _, p := range snap.Products {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}

func distinctCategories(products []entity.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.CategoryName]; ok {
			continue
		}
		seen[p.CategoryName] = struct{}{}
		out = append(out, p.CategoryName)
	}
	return out
}
