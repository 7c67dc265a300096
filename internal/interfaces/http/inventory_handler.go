package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-rapido/internal/application/dto"
	appinventory "github.com/jhoicas/inventario-rapido/internal/application/inventory"
	"github.com/jhoicas/inventario-rapido/internal/domain"
)

// InventoryHandler presenta la vista rápida de inventario (HTML, JSON y PDF).
type InventoryHandler struct {
	uc   *appinventory.ViewUseCase
	page *PageRenderer
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *appinventory.ViewUseCase, page *PageRenderer) *InventoryHandler {
	return &InventoryHandler{uc: uc, page: page}
}

// Page godoc
// @Summary      Vista rápida de inventario (HTML)
// @Tags         inventory
// @Produce      html
// @Param        q         query  string  false  "Texto a buscar en nombre o modelo"
// @Param        category  query  string  false  "Categoría exacta"
// @Param        adjust    query  string  false  "Abre el diálogo de ajuste para este producto"
// @Param        aviso     query  string  false  "recarga-fallida: el último ajuste se aplicó pero la lista no se pudo recargar"
// @Success      200
// @Failure      404
// @Router       /inventory/ [get]
func (h *InventoryHandler) Page(c *fiber.Ctx) error {
	state, loaded := h.loadState(c)
	if c.Query(noticeParam) == noticeRefreshFailed && state.Error == "" {
		state.Error = appinventory.MsgRefreshFailed
	}

	status := fiber.StatusOK
	// Sin datos no hay fila que sembrar: se conserva el mensaje de carga fallida.
	if id := c.Query("adjust"); id != "" && loaded {
		next, err := h.uc.OpenAdjust(state, id)
		if err != nil {
			status = errorStatus(err)
		}
		state = next
	}
	return h.page.Render(c, status, h.uc.View(state))
}

// Refresh godoc
// @Summary      Recargar la lista de productos desde la API de inventario
// @Tags         inventory
// @Accept       x-www-form-urlencoded
// @Param        q         formData  string  false  "Filtro de texto a conservar"
// @Param        category  formData  string  false  "Categoría a conservar"
// @Success      303
// @Failure      502
// @Router       /inventory/refresh [post]
func (h *InventoryHandler) Refresh(c *fiber.Ctx) error {
	state := appinventory.NewViewState()
	state.Filter = filterFromForm(c)
	if _, err := h.uc.Refresh(c.UserContext()); err != nil {
		state.Error = appinventory.MsgLoadFailed
		return h.page.Render(c, errorStatus(err), h.uc.View(state))
	}
	return c.Redirect(pageURL(state.Filter), fiber.StatusSeeOther)
}

// Adjust godoc
// @Summary      Ajustar el stock de un producto
// @Description  Fija el stock actual (no es un incremento). Si la API acepta el cambio
//
//	la lista se recarga una vez y el diálogo se cierra.
//
// @Tags         inventory
// @Accept       x-www-form-urlencoded
// @Param        product_id  formData  string  true   "ID del producto"
// @Param        new_stock   formData  int     true   "Nuevo stock (>= 0)"
// @Param        q           formData  string  false  "Filtro de texto a conservar"
// @Param        category    formData  string  false  "Categoría a conservar"
// @Success      303
// @Failure      400
// @Failure      404
// @Failure      502
// @Router       /inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	state := appinventory.NewViewState()
	state.Filter = filterFromForm(c)

	next, err := h.uc.SubmitAdjust(c.UserContext(), state, c.FormValue("product_id"), c.FormValue("new_stock"))
	if err != nil && next.Dialog.IsOpen() {
		return h.page.Render(c, errorStatus(err), h.uc.View(next))
	}
	if err != nil {
		// El ajuste se aplicó y solo falló la recarga: redirigir igual para no reenviar el PUT.
		return c.Redirect(noticeURL(next.Filter, noticeRefreshFailed), fiber.StatusSeeOther)
	}
	return c.Redirect(pageURL(next.Filter), fiber.StatusSeeOther)
}

// Export godoc
// @Summary      Exportar inventario
// @Description  Redirige al endpoint de exportación de la API de inventario.
// @Tags         inventory
// @Success      302
// @Router       /inventory/export [get]
func (h *InventoryHandler) Export(c *fiber.Ctx) error {
	return c.Redirect(h.uc.ExportURL(), fiber.StatusFound)
}

// StockSheet godoc
// @Summary      Hoja de stock en PDF con las filas visibles
// @Tags         inventory
// @Produce      application/pdf
// @Param        q         query  string  false  "Texto a buscar en nombre o modelo"
// @Param        category  query  string  false  "Categoría exacta"
// @Success      200
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /inventory/stock-sheet.pdf [get]
func (h *InventoryHandler) StockSheet(c *fiber.Ctx) error {
	state := stateFromQuery(c)
	if err := h.uc.EnsureLoaded(c.UserContext()); err != nil {
		return c.Status(errorStatus(err)).JSON(dto.ErrorResponse{Code: "UPSTREAM", Message: appinventory.MsgLoadFailed})
	}
	doc, err := h.uc.StockSheet(c.UserContext(), state)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="hoja-de-stock.pdf"`)
	return c.Send(doc)
}

// View godoc
// @Summary      Descripción declarativa de la vista
// @Description  Mismo modelo que usa la página HTML: filas filtradas, opciones de categoría,
//
//	diálogo y slot de error.
//
// @Tags         inventory
// @Produce      json
// @Param        q         query  string  false  "Texto a buscar en nombre o modelo"
// @Param        category  query  string  false  "Categoría exacta"
// @Param        adjust    query  string  false  "Abre el diálogo de ajuste para este producto"
// @Success      200  {object}  inventory.ViewModel
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /inventory/api/view [get]
func (h *InventoryHandler) View(c *fiber.Ctx) error {
	state, loaded := h.loadState(c)
	if id := c.Query("adjust"); id != "" && loaded {
		next, err := h.uc.OpenAdjust(state, id)
		if err != nil {
			return c.Status(errorStatus(err)).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		state = next
	}
	return c.JSON(h.uc.View(state))
}

// loadState arma el estado desde la query y hace la carga inicial si hace falta.
// loaded es false cuando la carga falló; el slot de error ya trae el motivo.
func (h *InventoryHandler) loadState(c *fiber.Ctx) (appinventory.ViewState, bool) {
	state := stateFromQuery(c)
	if err := h.uc.EnsureLoaded(c.UserContext()); err != nil {
		state.Error = appinventory.MsgLoadFailed
		return state, false
	}
	return state, true
}

func stateFromQuery(c *fiber.Ctx) appinventory.ViewState {
	state := appinventory.NewViewState()
	state.Filter = appinventory.Filter{
		Search:   c.Query("q"),
		Category: c.Query("category"),
	}
	return state
}

func filterFromForm(c *fiber.Ctx) appinventory.Filter {
	return appinventory.Filter{
		Search:   c.FormValue("q"),
		Category: c.FormValue("category"),
	}
}

// errorStatus traduce errores de dominio a códigos HTTP.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUpstream), errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
