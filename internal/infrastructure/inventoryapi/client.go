// Package inventoryapi implementa el puerto InventoryAPI sobre la API REST de inventario.
package inventoryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	appinventory "github.com/jhoicas/inventario-rapido/internal/application/inventory"
	"github.com/jhoicas/inventario-rapido/internal/application/dto"
	"github.com/jhoicas/inventario-rapido/internal/domain"
	"github.com/jhoicas/inventario-rapido/internal/domain/entity"
	pkgjwt "github.com/jhoicas/inventario-rapido/pkg/jwt"
	"github.com/jhoicas/inventario-rapido/pkg/requestid"
)

// Verificar en tiempo de compilación que Client implementa InventoryAPI.
var _ appinventory.InventoryAPI = (*Client)(nil)

const (
	productsPath = "/inventory/api/products/"
	adjustPath   = "/inventory/api/products/%s/adjust_stock/"
	exportPath   = "/inventory/export_inventory/"

	maxBodyBytes = 8 << 20
)

// Config parámetros del cliente.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// Token de servicio opcional (HS256). Vacío = sin Authorization.
	JWTSecret  string
	JWTIssuer  string
	JWTSubject string
	JWTTTL     time.Duration
}

// Client adaptador HTTP de la API de inventario.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient construye el cliente. Si httpClient es nil se crea uno con cfg.Timeout.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if cfg.JWTTTL <= 0 {
		cfg.JWTTTL = 5 * time.Minute
	}
	return &Client{cfg: cfg, httpClient: httpClient}
}

// ListProducts GET /inventory/api/products/.
func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	status, raw, err := c.do(ctx, http.MethodGet, productsPath, nil)
	if err != nil {
		return nil, err
	}
	if err := statusError(status, raw); err != nil {
		return nil, fmt.Errorf("inventoryapi: listar productos: %w", err)
	}

	var body dto.ProductListResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("inventoryapi: deserializar productos: %w", err)
	}
	if body.Success != nil && !*body.Success {
		return nil, fmt.Errorf("inventoryapi: listar productos: %s", nonEmpty(body.Error, "success=false"))
	}

	products := make([]entity.Product, 0, len(body.Products))
	for _, p := range body.Products {
		products = append(products, c.toEntity(p))
	}
	return products, nil
}

// AdjustStock PUT /inventory/api/products/{id}/adjust_stock/ con {"new_stock": n}.
func (c *Client) AdjustStock(ctx context.Context, productID string, newStock int) error {
	payload, err := json.Marshal(dto.AdjustStockRequest{NewStock: newStock})
	if err != nil {
		return fmt.Errorf("inventoryapi: serializar ajuste: %w", err)
	}
	path := fmt.Sprintf(adjustPath, url.PathEscape(productID))
	status, raw, err := c.do(ctx, http.MethodPut, path, payload)
	if err != nil {
		return err
	}
	if err := statusError(status, raw); err != nil {
		return fmt.Errorf("inventoryapi: ajustar stock %s: %w", productID, err)
	}

	// El cuerpo es opcional; solo se respeta un success=false explícito.
	var body dto.AdjustStockResponse
	if len(bytes.TrimSpace(raw)) > 0 && json.Unmarshal(raw, &body) == nil {
		if body.Success != nil && !*body.Success {
			return fmt.Errorf("inventoryapi: ajustar stock %s: %s", productID, nonEmpty(body.Error, "success=false"))
		}
	}
	return nil
}

// ExportURL URL absoluta del endpoint de exportación.
func (c *Client) ExportURL() string {
	return c.cfg.BaseURL + exportPath
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("inventoryapi: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}
	if c.cfg.JWTSecret != "" {
		tok, err := pkgjwt.Generate(c.cfg.JWTSecret, c.cfg.JWTSubject, c.cfg.JWTIssuer, pkgjwt.ScopeInventory, c.cfg.JWTTTL)
		if err != nil {
			return 0, nil, fmt.Errorf("inventoryapi: firmar token de servicio: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, fmt.Errorf("inventoryapi: timeout o cancelación: %w", ctx.Err())
		}
		return 0, nil, fmt.Errorf("inventoryapi: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("inventoryapi: leer respuesta: %w", err)
	}
	return resp.StatusCode, raw, nil
}

// statusError traduce códigos HTTP a errores de dominio.
func statusError(status int, raw []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	msg := upstreamMessage(raw)
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: HTTP %d", domain.ErrUnauthorized, status)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
	default:
		return fmt.Errorf("HTTP %d: %s", status, msg)
	}
}

func upstreamMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	if len(raw) > 200 {
		raw = raw[:200]
	}
	return string(raw)
}

func (c *Client) toEntity(p dto.ProductDTO) entity.Product {
	var img string
	if p.MainImage != nil {
		img = c.absoluteURL(*p.MainImage)
	}
	return entity.Product{
		ID:            string(p.ID),
		Name:          p.Name,
		Model:         p.Model,
		CategoryName:  p.CategoryName,
		CurrentStock:  p.CurrentStock,
		MinStockLevel: p.MinStockLevel,
		MaxStockLevel: p.MaxStockLevel,
		SellingPrice:  p.SellingPrice,
		MainImage:     img,
		StockStatus:   entity.StockStatus(p.StockStatus),
	}
}

// absoluteURL resuelve rutas relativas (p. ej. /media/...) contra BaseURL.
// Las URLs absolutas se devuelven tal cual; "" sigue significando "sin imagen".
func (c *Client) absoluteURL(ref string) string {
	if ref == "" {
		return ""
	}
	base, err := url.Parse(c.cfg.BaseURL + "/")
	if err != nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}

func nonEmpty(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
