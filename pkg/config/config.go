package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env
// y opcionalmente archivo .env).
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Store     StoreConfig
	Inventory InventoryConfig
	Sheets    SheetsConfig
	DB        DBConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // debug, info, warn, error
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

// StoreConfig selecciona el backend de persistencia.
type StoreConfig struct {
	Backend string // sheets | postgres
}

// InventoryConfig reglas del motor de movimientos.
type InventoryConfig struct {
	BalanceStrategy string // cached | logsum
	StrictCodes     bool   // rechazar códigos duplicados del catálogo
	UTCOffsetHours  int    // zona del negocio, offset fijo (Colombia: -5)
}

// SheetsConfig acceso a la hoja de cálculo de Google (variante sheets).
type SheetsConfig struct {
	CredentialsFile string // ruta al JSON del service account
	CredentialsJSON string // contenido del JSON (prioridad sobre el archivo)
	SpreadsheetID   string
	CatalogSheet    string // pestaña del catálogo
	MovementsSheet  string // pestaña del log de movimientos
}

// DBConfig configuración de PostgreSQL (variante postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no
// el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN construye el connection string con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde
// archivo .env). Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "almacen-herramientas"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Store: StoreConfig{
			Backend: getString(v, "STORE_BACKEND", "sheets"),
		},
		Inventory: InventoryConfig{
			BalanceStrategy: getString(v, "BALANCE_STRATEGY", "cached"),
			StrictCodes:     getBool(v, "STRICT_CODES", false),
			UTCOffsetHours:  getInt(v, "UTC_OFFSET_HOURS", -5),
		},
		Sheets: SheetsConfig{
			CredentialsFile: getString(v, "SHEETS_CREDENTIALS_FILE", ""),
			CredentialsJSON: getString(v, "SHEETS_CREDENTIALS_JSON", ""),
			SpreadsheetID:   getString(v, "SHEETS_SPREADSHEET_ID", ""),
			CatalogSheet:    getString(v, "SHEETS_CATALOG_SHEET", "inventario"),
			MovementsSheet:  getString(v, "SHEETS_MOVEMENTS_SHEET", "movimientos"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "almacen"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
	}

	switch cfg.Store.Backend {
	case "sheets", "postgres":
	default:
		return nil, fmt.Errorf("STORE_BACKEND desconocido: %q (usar sheets o postgres)", cfg.Store.Backend)
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

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
