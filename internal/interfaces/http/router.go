package http

import (
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	appinventory "github.com/jhoicas/inventario-rapido/internal/application/inventory"
	"github.com/jhoicas/inventario-rapido/web"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName string
	ViewUC  *appinventory.ViewUseCase
	Page    *PageRenderer
}

// Router registra las rutas de la vista de inventario.
func Router(app *fiber.App, deps RouterDeps) error {
	for _, mw := range RequestID() {
		app.Use(mw)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		return err
	}
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   http.FS(static),
		MaxAge: 3600,
	}))

	inv := app.Group("/inventory")
	handler := NewInventoryHandler(deps.ViewUC, deps.Page)
	inv.Get("/", handler.Page)
	inv.Post("/refresh", handler.Refresh)
	inv.Post("/adjust", handler.Adjust)
	inv.Get("/export", handler.Export)
	inv.Get("/stock-sheet.pdf", handler.StockSheet)
	inv.Get("/api/view", handler.View)
	return nil
}
