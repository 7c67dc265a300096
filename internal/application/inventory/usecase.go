package inventory

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/inventario-rapido/internal/domain"
	"github.com/jhoicas/inventario-rapido/pkg/logger"
)

// Mensajes que se muestran en el slot de error de la UI.
const (
	MsgLoadFailed    = "No se pudo cargar el inventario. Se muestran los últimos datos disponibles."
	MsgAdjustFailed  = "No se pudo ajustar el stock. Intente de nuevo."
	MsgInvalidStock  = "El nuevo stock debe ser un número entero mayor o igual a 0."
	MsgUnknownItem   = "El producto seleccionado ya no está en la lista."
	MsgRefreshFailed = "Stock ajustado, pero no se pudo recargar el inventario."
)

// ViewUseCase controlador de la vista rápida de inventario.
// Es dueño de la lista en caché; el filtro y el diálogo viajan en ViewState.
type ViewUseCase struct {
	api     InventoryAPI
	catalog *Catalog
	sheets  StockSheetGenerator
	log     *logger.Logger
	opts    RenderOptions
}

// NewViewUseCase construye el controlador.
func NewViewUseCase(
	api InventoryAPI,
	catalog *Catalog,
	sheets StockSheetGenerator,
	log *logger.Logger,
	opts RenderOptions,
) *ViewUseCase {
	return &ViewUseCase{
		api:     api,
		catalog: catalog,
		sheets:  sheets,
		log:     log,
		opts:    opts,
	}
}

// Refresh consulta la lista completa y la publica en el catálogo.
// Si la API falla el catálogo queda intacto y se devuelve un error envuelto en ErrUpstream.
func (uc *ViewUseCase) Refresh(ctx context.Context) (Snapshot, error) {
	products, err := uc.api.ListProducts(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("inventario: cargar productos")
		return uc.catalog.Snapshot(), fmt.Errorf("%w: listar productos: %w", domain.ErrUpstream, err)
	}
	snap := uc.catalog.Replace(products)
	uc.log.Debug().Int("productos", len(snap.Products)).Msg("inventario: lista recargada")
	return snap, nil
}

// EnsureLoaded hace la carga inicial solo si nunca se cargó nada.
func (uc *ViewUseCase) EnsureLoaded(ctx context.Context) error {
	if uc.catalog.Snapshot().Loaded {
		return nil
	}
	_, err := uc.Refresh(ctx)
	return err
}

// View aplica Render sobre la lista en caché. Cambiar el filtro solo requiere llamar a View de nuevo.
func (uc *ViewUseCase) View(state ViewState) ViewModel {
	return Render(uc.catalog.Snapshot(), state, uc.opts)
}

// OpenAdjust abre el diálogo sembrado con el id y el stock actual de la fila.
func (uc *ViewUseCase) OpenAdjust(state ViewState, productID string) (ViewState, error) {
	p, ok := uc.catalog.Find(productID)
	if !ok {
		state.Error = MsgUnknownItem
		return state, fmt.Errorf("abrir ajuste %q: %w", productID, domain.ErrNotFound)
	}
	state.Dialog = state.Dialog.Open(p.ID, p.CurrentStock)
	return state, nil
}

// CancelAdjust oculta el diálogo sin llamar a la API.
func (uc *ViewUseCase) CancelAdjust(state ViewState) ViewState {
	state.Dialog = state.Dialog.Cancel()
	return state
}

// SubmitAdjust envía el nuevo stock y, si la API lo acepta, cierra el diálogo y
// recarga la lista una única vez. El valor nunca se aplica de forma optimista.
func (uc *ViewUseCase) SubmitAdjust(ctx context.Context, state ViewState, productID, newStock string) (ViewState, error) {
	state.Dialog = Dialog{State: DialogOpen, ProductID: productID, NewStock: newStock}

	productID = strings.TrimSpace(productID)
	value, err := strconv.Atoi(strings.TrimSpace(newStock))
	if productID == "" || err != nil || value < 0 {
		state.Error = MsgInvalidStock
		return state, fmt.Errorf("ajustar stock: %w", domain.ErrInvalidInput)
	}

	if err := uc.api.AdjustStock(ctx, productID, value); err != nil {
		uc.log.Error().Err(err).Str("product_id", productID).Int("new_stock", value).Msg("inventario: ajustar stock")
		state.Error = MsgAdjustFailed
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			return state, fmt.Errorf("ajustar stock %s: %w", productID, err)
		}
		return state, fmt.Errorf("%w: ajustar stock %s: %w", domain.ErrUpstream, productID, err)
	}
	uc.log.Info().Str("product_id", productID).Int("new_stock", value).Msg("inventario: stock ajustado")

	state.Dialog = state.Dialog.Close()
	state.Error = ""
	if _, err := uc.Refresh(ctx); err != nil {
		state.Error = MsgRefreshFailed
		return state, err
	}
	return state, nil
}

// ExportURL URL del endpoint de exportación; la UI navega a ella directamente.
func (uc *ViewUseCase) ExportURL() string {
	return uc.api.ExportURL()
}

// StockSheet genera el PDF con las filas visibles para el estado dado.
func (uc *ViewUseCase) StockSheet(ctx context.Context, state ViewState) ([]byte, error) {
	if uc.sheets == nil {
		return nil, errors.New("inventario: generador de hoja de stock no configurado")
	}
	doc, err := uc.sheets.GenerateStockSheet(ctx, uc.View(state))
	if err != nil {
		uc.log.Error().Err(err).Msg("inventario: generar hoja de stock")
		return nil, err
	}
	return doc, nil
}
