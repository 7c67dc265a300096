package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appinventory "github.com/jhoicas/inventario-rapido/internal/application/inventory"
	"github.com/jhoicas/inventario-rapido/internal/infrastructure/inventoryapi"
	infrapdf "github.com/jhoicas/inventario-rapido/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/inventario-rapido/internal/interfaces/http"
	"github.com/jhoicas/inventario-rapido/pkg/config"
	"github.com/jhoicas/inventario-rapido/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("inventory_api", cfg.InventoryAPI.BaseURL).
		Msg("iniciando aplicación")

	apiClient := inventoryapi.NewClient(inventoryapi.Config{
		BaseURL:    cfg.InventoryAPI.BaseURL,
		Timeout:    cfg.InventoryAPI.Timeout(),
		JWTSecret:  cfg.InventoryAPI.JWTSecret,
		JWTIssuer:  cfg.InventoryAPI.JWTIssuer,
		JWTSubject: cfg.InventoryAPI.JWTSubject,
		JWTTTL:     time.Duration(cfg.InventoryAPI.JWTTTLMinutes) * time.Minute,
	}, nil)

	viewUC := appinventory.NewViewUseCase(
		apiClient,
		appinventory.NewCatalog(),
		infrapdf.NewStockSheetGenerator("Inventario rápido"),
		log.Component("inventory_view"),
		appinventory.RenderOptions{NoImageURL: cfg.Assets.NoImageURL},
	)

	page, err := httpRouter.NewPageRenderer("Inventario rápido")
	if err != nil {
		log.Fatal().Err(err).Msg("cargar plantillas")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Docs.SwaggerPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.SwaggerPath,
			Path:     "docs",
			Title:    "Inventario rápido",
		}))
	} else {
		log.Warn().Str("path", cfg.Docs.SwaggerPath).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	if err := httpRouter.Router(app, httpRouter.RouterDeps{
		AppName: cfg.App.Name,
		ViewUC:  viewUC,
		Page:    page,
	}); err != nil {
		log.Fatal().Err(err).Msg("registrar rutas")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
