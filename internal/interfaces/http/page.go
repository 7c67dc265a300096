package http

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"

	"github.com/gofiber/fiber/v2"
	appinventory "github.com/jhoicas/inventario-rapido/internal/application/inventory"
	"github.com/jhoicas/inventario-rapido/web"
)

// PageRenderer pinta el ViewModel como página HTML.
type PageRenderer struct {
	title string
	tmpl  *template.Template
}

type pageData struct {
	Title string
	View  appinventory.ViewModel
}

// NewPageRenderer carga la plantilla embebida.
func NewPageRenderer(title string) (*PageRenderer, error) {
	tmpl, err := template.New("inventory.html").Funcs(template.FuncMap{
		"pageURL":   pageURL,
		"adjustURL": adjustURL,
		"sheetURL":  sheetURL,
	}).ParseFS(web.FS, "templates/inventory.html")
	if err != nil {
		return nil, fmt.Errorf("plantilla de inventario: %w", err)
	}
	return &PageRenderer{title: title, tmpl: tmpl}, nil
}

// Render escribe la página con el código de estado indicado.
func (r *PageRenderer) Render(c *fiber.Ctx, status int, view appinventory.ViewModel) error {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, pageData{Title: r.title, View: view}); err != nil {
		return fmt.Errorf("renderizar inventario: %w", err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

func filterQuery(f appinventory.Filter) url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("q", f.Search)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	return q
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// Aviso que sobrevive a la redirección tras un ajuste cuya recarga falló.
const (
	noticeParam         = "aviso"
	noticeRefreshFailed = "recarga-fallida"
)

// noticeURL URL de la página con el filtro y un aviso.
func noticeURL(f appinventory.Filter, notice string) string {
	q := filterQuery(f)
	q.Set(noticeParam, notice)
	return withQuery("/inventory/", q)
}

// pageURL URL de la página conservando el filtro.
func pageURL(f appinventory.Filter) string {
	return withQuery("/inventory/", filterQuery(f))
}

// adjustURL URL que abre el diálogo de ajuste para productID.
func adjustURL(f appinventory.Filter, productID string) string {
	q := filterQuery(f)
	q.Set("adjust", productID)
	return withQuery("/inventory/", q)
}

func sheetURL(f appinventory.Filter) string {
	return withQuery("/inventory/stock-sheet.pdf", filterQuery(f))
}
