package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App          AppConfig
	HTTP         HTTPConfig
	InventoryAPI InventoryAPIConfig
	Assets       AssetsConfig
	Docs         DocsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// InventoryAPIConfig conexión con la API de inventario externa.
// Si JWTSecret está vacío las peticiones salen sin Authorization.
type InventoryAPIConfig struct {
	BaseURL        string
	TimeoutSeconds int
	JWTSecret      string
	JWTIssuer      string
	JWTSubject     string
	JWTTTLMinutes  int
}

// Timeout duración del timeout del cliente HTTP.
func (c InventoryAPIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AssetsConfig rutas de recursos estáticos.
type AssetsConfig struct {
	NoImageURL string // imagen de reemplazo para productos sin imagen
}

// DocsConfig documentación Swagger.
type DocsConfig struct {
	SwaggerPath string // vacío = /docs deshabilitado
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, INVENTORY_API_BASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventario-rapido"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		InventoryAPI: InventoryAPIConfig{
			BaseURL:        strings.TrimRight(getString(v, "INVENTORY_API_BASE_URL", "http://localhost:8000"), "/"),
			TimeoutSeconds: getInt(v, "INVENTORY_API_TIMEOUT_SECONDS", 10),
			JWTSecret:      getString(v, "INVENTORY_API_JWT_SECRET", ""),
			JWTIssuer:      getString(v, "INVENTORY_API_JWT_ISSUER", "inventario-rapido"),
			JWTSubject:     getString(v, "INVENTORY_API_JWT_SUBJECT", "inventory-view"),
			JWTTTLMinutes:  getInt(v, "INVENTORY_API_JWT_TTL_MINUTES", 5),
		},
		Assets: AssetsConfig{
			NoImageURL: getString(v, "ASSETS_NO_IMAGE_URL", "/static/images/no-image.svg"),
		},
		Docs: DocsConfig{
			SwaggerPath: getString(v, "DOCS_SWAGGER_PATH", "./docs/swagger.json"),
		},
	}

	if cfg.InventoryAPI.BaseURL == "" {
		return nil, fmt.Errorf("config: INVENTORY_API_BASE_URL es requerido")
	}
	if cfg.HTTP.Port <= 0 {
		return nil, fmt.Errorf("config: HTTP_PORT inválido: %d", cfg.HTTP.Port)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
