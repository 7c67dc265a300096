package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/inventario-rapido/internal/application/inventory"
	"github.com/jhoicas/inventario-rapido/internal/domain/entity"
	infrapdf "github.com/jhoicas/inventario-rapido/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/inventario-rapido/internal/interfaces/http"
	"github.com/jhoicas/inventario-rapido/pkg/logger"
	"github.com/jhoicas/inventario-rapido/pkg/requestid"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testExportURL = "http://inventario.test/inventory/export_inventory/"

// stubAPI API de inventario en memoria.
type stubAPI struct {
	mu         sync.Mutex
	products   []entity.Product
	listErr    error
	adjustErr  error
	listCalls  int
	adjusted   map[string]int
	requestIDs []string
}

func (s *stubAPI) ListProducts(ctx context.Context) ([]entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	s.requestIDs = append(s.requestIDs, requestid.FromContext(ctx))
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]entity.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *stubAPI) AdjustStock(_ context.Context, productID string, newStock int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.adjustErr != nil {
		return s.adjustErr
	}
	if s.adjusted == nil {
		s.adjusted = map[string]int{}
	}
	s.adjusted[productID] = newStock
	for i := range s.products {
		if s.products[i].ID == productID {
			s.products[i].CurrentStock = newStock
		}
	}
	return nil
}

func (s *stubAPI) ExportURL() string { return testExportURL }

func (s *stubAPI) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

func newStubAPI() *stubAPI {
	return &stubAPI{products: []entity.Product{
		{ID: "1", Name: "Widget", Model: "W-100", CategoryName: "Tools", CurrentStock: 5,
			MinStockLevel: 2, MaxStockLevel: 20, SellingPrice: decimal.NewFromInt(12), StockStatus: entity.StockOK},
		{ID: "2", Name: "Gadget", Model: "G-7", CategoryName: "Electronics", CurrentStock: 0,
			MinStockLevel: 1, MaxStockLevel: 10, SellingPrice: decimal.NewFromInt(99), StockStatus: entity.StockOut},
	}}
}

func buildTestApp(t *testing.T, api *stubAPI) *fiber.App {
	t.Helper()
	uc := appinventory.NewViewUseCase(
		api,
		appinventory.NewCatalog(),
		infrapdf.NewStockSheetGenerator("Inventario de prueba"),
		logger.Nop(),
		appinventory.RenderOptions{},
	)
	page, err := apphttp.NewPageRenderer("Inventario de prueba")
	require.NoError(t, err)

	app := fiber.New()
	require.NoError(t, apphttp.Router(app, apphttp.RouterDeps{AppName: "inventario-test", ViewUC: uc, Page: page}))
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(body)
}

func get(t *testing.T, app *fiber.App, target string) (*http.Response, string) {
	t.Helper()
	return do(t, app, httptest.NewRequest(http.MethodGet, target, nil))
}

func postForm(t *testing.T, app *fiber.App, target string, form url.Values) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	return do(t, app, req)
}

// ──────────────────────────────────────────────────────────────────────────────
// Página
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildTestApp(t, newStubAPI())
	resp, body := get(t, app, "/health")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","service":"inventario-test"}`, body)
}

func TestPage_CargaInicialMuestraTodasLasFilas(t *testing.T) {
	api := newStubAPI()
	app := buildTestApp(t, api)

	resp, body := get(t, app, "/inventory/")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Widget")
	assert.Contains(t, body, "Gadget")
	assert.Contains(t, body, "badge-error")
	assert.Contains(t, body, appinventory.DefaultNoImageURL)
	assert.NotContains(t, body, `id="adjustModal"`)
	assert.Equal(t, 1, api.calls())
}

func TestPage_FiltroNoVuelveAConsultarLaAPI(t *testing.T) {
	api := newStubAPI()
	app := buildTestApp(t, api)
	get(t, app, "/inventory/")

	_, body := get(t, app, "/inventory/?q=wid")
	assert.Contains(t, body, "Widget")
	assert.NotContains(t, body, "Gadget")

	_, body = get(t, app, "/inventory/?category=Electronics")
	assert.Contains(t, body, "Gadget")
	assert.NotContains(t, body, "<td>Widget</td>")

	assert.Equal(t, 1, api.calls())
}

func TestPage_AbrirDialogoSiembraCampos(t *testing.T) {
	app := buildTestApp(t, newStubAPI())

	resp, body := get(t, app, "/inventory/?adjust=1")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `id="adjustModal"`)
	assert.Contains(t, body, `id="adjustProductId" name="product_id" value="1"`)
	assert.Contains(t, body, `id="newStock" name="new_stock" value="5"`)
}

func TestPage_AbrirDialogoProductoDesconocido(t *testing.T) {
	app := buildTestApp(t, newStubAPI())

	resp, body := get(t, app, "/inventory/?adjust=999")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotContains(t, body, `id="adjustModal"`)
}

func TestPage_FalloDeCargaMuestraSlotDeError(t *testing.T) {
	api := newStubAPI()
	api.listErr = errors.New("conexión rechazada")
	app := buildTestApp(t, api)

	resp, body := get(t, app, "/inventory/")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "alert-error")
}

func TestPage_FalloDeCargaConDialogoConservaMensaje(t *testing.T) {
	api := newStubAPI()
	api.listErr = errors.New("conexión rechazada")
	app := buildTestApp(t, api)

	resp, body := get(t, app, "/inventory/?adjust=1")

	assert.Equal(t, http.StatusOK, resp.StatusCode, "la falla de carga no se convierte en 404")
	assert.Contains(t, body, appinventory.MsgLoadFailed)
	assert.NotContains(t, body, appinventory.MsgUnknownItem)
	assert.NotContains(t, body, `id="adjustModal"`)
}

func TestView_JSONFalloDeCargaConDialogoConservaMensaje(t *testing.T) {
	api := newStubAPI()
	api.listErr = errors.New("conexión rechazada")
	app := buildTestApp(t, api)

	resp, body := get(t, app, "/inventory/api/view?adjust=1")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var vm appinventory.ViewModel
	require.NoError(t, json.Unmarshal([]byte(body), &vm))
	assert.Equal(t, appinventory.MsgLoadFailed, vm.Error)
	assert.Equal(t, appinventory.DialogHidden, vm.Dialog.State)
}

func TestPage_PropagaRequestID(t *testing.T) {
	api := newStubAPI()
	app := buildTestApp(t, api)

	req := httptest.NewRequest(http.MethodGet, "/inventory/", nil)
	req.Header.Set(requestid.Header, "abc-123")
	resp, _ := do(t, app, req)

	assert.Equal(t, "abc-123", resp.Header.Get(requestid.Header))
	require.Len(t, api.requestIDs, 1)
	assert.Equal(t, "abc-123", api.requestIDs[0])
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajuste de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_ExitoRedirigeYRecarga(t *testing.T) {
	api := newStubAPI()
	app := buildTestApp(t, api)
	get(t, app, "/inventory/")

	resp, _ := postForm(t, app, "/inventory/adjust", url.Values{
		"product_id": {"1"}, "new_stock": {"10"}, "q": {"wid"},
	})

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/inventory/?q=wid", resp.Header.Get("Location"))
	assert.Equal(t, map[string]int{"1": 10}, api.adjusted)
	assert.Equal(t, 2, api.calls(), "exactamente una recarga tras el ajuste")

	_, body := get(t, app, "/inventory/api/view?q=wid")
	var vm appinventory.ViewModel
	require.NoError(t, json.Unmarshal([]byte(body), &vm))
	require.Len(t, vm.Rows, 1)
	assert.Equal(t, 10, vm.Rows[0].CurrentStock)
	assert.Equal(t, appinventory.DialogHidden, vm.Dialog.State)
}

func TestAdjust_StockInvalido(t *testing.T) {
	api := newStubAPI()
	app := buildTestApp(t, api)
	get(t, app, "/inventory/")

	resp, body := postForm(t, app, "/inventory/adjust", url.Values{"product_id": {"1"}, "new_stock": {"-3"}})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, `id="adjustModal"`, "el diálogo sigue abierto")
	assert.Contains(t, body, "alert-error")
	assert.Nil(t, api.adjusted)
}

func TestAdjust_FalloDeAPI(t *testing.T) {
	api := newStubAPI()
	api.adjustErr = errors.New("HTTP 500")
	app := buildTestApp(t, api)
	get(t, app, "/inventory/")

	resp, body := postForm(t, app, "/inventory/adjust", url.Values{"product_id": {"1"}, "new_stock": {"7"}})

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, `id="adjustModal"`)
	assert.Contains(t, body, `value="7"`)
	assert.Equal(t, 1, api.calls())
}

func TestAdjust_RecargaFallidaRedirigeConAviso(t *testing.T) {
	api := newStubAPI()
	app := buildTestApp(t, api)
	get(t, app, "/inventory/")

	api.mu.Lock()
	api.listErr = errors.New("timeout")
	api.mu.Unlock()
	resp, _ := postForm(t, app, "/inventory/adjust", url.Values{
		"product_id": {"1"}, "new_stock": {"10"}, "category": {"Tools"},
	})

	require.Equal(t, http.StatusSeeOther, resp.StatusCode, "el ajuste ya se aplicó: no se reenvía el formulario")
	location := resp.Header.Get("Location")
	assert.Equal(t, "/inventory/?aviso=recarga-fallida&category=Tools", location)
	assert.Equal(t, map[string]int{"1": 10}, api.adjusted)

	resp, body := get(t, app, location)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, appinventory.MsgRefreshFailed)
	assert.NotContains(t, body, `id="adjustModal"`)
	assert.Contains(t, body, "Widget", "se conservan los últimos datos válidos")
}

func TestPage_AvisoDesconocidoSeIgnora(t *testing.T) {
	app := buildTestApp(t, newStubAPI())

	resp, body := get(t, app, "/inventory/?aviso=otro")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "alert-error")
}

// ──────────────────────────────────────────────────────────────────────────────
// Recarga, exportación, JSON y PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestRefresh_RedirigeConservandoFiltro(t *testing.T) {
	api := newStubAPI()
	app := buildTestApp(t, api)

	resp, _ := postForm(t, app, "/inventory/refresh", url.Values{"category": {"Tools"}})

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/inventory/?category=Tools", resp.Header.Get("Location"))
	assert.Equal(t, 1, api.calls())
}

func TestRefresh_FalloDevuelve502YConservaDatos(t *testing.T) {
	api := newStubAPI()
	app := buildTestApp(t, api)
	get(t, app, "/inventory/")

	api.mu.Lock()
	api.listErr = errors.New("timeout")
	api.mu.Unlock()
	resp, body := postForm(t, app, "/inventory/refresh", url.Values{})

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, "alert-error")
	assert.Contains(t, body, "Widget", "se conservan los últimos datos válidos")
}

func TestExport_Redirige(t *testing.T) {
	app := buildTestApp(t, newStubAPI())

	resp, _ := get(t, app, "/inventory/export")

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, testExportURL, resp.Header.Get("Location"))
}

func TestView_JSONConFiltroYCategorias(t *testing.T) {
	app := buildTestApp(t, newStubAPI())

	resp, body := get(t, app, "/inventory/api/view?category=Electronics")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var vm appinventory.ViewModel
	require.NoError(t, json.Unmarshal([]byte(body), &vm))
	require.Len(t, vm.Rows, 1)
	assert.Equal(t, "2", vm.Rows[0].ID)
	assert.Equal(t, "badge-error", vm.Rows[0].BadgeClass)
	assert.Equal(t, 2, vm.Total)
	require.Len(t, vm.CategoryOptions, 3)
	assert.Equal(t, "", vm.CategoryOptions[0].Value)
}

func TestView_JSONDialogoDesconocido(t *testing.T) {
	app := buildTestApp(t, newStubAPI())

	resp, body := get(t, app, "/inventory/api/view?adjust=nope")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "NOT_FOUND")
}

func TestStockSheet_PDF(t *testing.T) {
	app := buildTestApp(t, newStubAPI())

	resp, body := get(t, app, "/inventory/stock-sheet.pdf?category=Tools")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(body, "%PDF"), "el cuerpo debe ser un PDF")
}

func TestStatic_Placeholder(t *testing.T) {
	app := buildTestApp(t, newStubAPI())

	resp, body := get(t, app, "/static/images/no-image.svg")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<svg")
}

func TestStatic_FiltradoEnVivo(t *testing.T) {
	app := buildTestApp(t, newStubAPI())

	_, page := get(t, app, "/inventory/")
	assert.Contains(t, page, `<script src="/static/js/inventory.js" defer></script>`)
	assert.Contains(t, page, `id="inventoryCount"`)
	assert.Contains(t, page, `id="stockSheet"`)
	assert.Contains(t, page, `id="refreshForm"`)

	resp, script := get(t, app, "/static/js/inventory.js")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, script, "/inventory/api/view")
	assert.Contains(t, script, "inventoryTableBody")
	assert.Contains(t, script, "addEventListener('change'")
	assert.Contains(t, script, "addEventListener('input'")
}
