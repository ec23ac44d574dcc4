package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	DB     DBConfig
	JWT    JWTConfig
	HTTP   HTTPConfig
	Store  StoreConfig
	Orders OrderConfig
	Chat   ChatConfig
	DNI    DNIConfig
	Geo    GeoConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	Storage  string // postgres | memory
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	Migrate     bool // aplicar el esquema embebido al iniciar
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
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

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig datos públicos de la tienda usados en confirmaciones y en el panel.
type StoreConfig struct {
	Name                 string
	WhatsApp             string // número internacional sin '+', ej. 51999999999
	AdminRedirectSeconds int    // cuenta regresiva antes de volver al sitio público
}

// OrderConfig formato y política de reintento del secuenciador de pedidos.
type OrderConfig struct {
	Prefix        string
	PadWidth      int
	MaxTxAttempts int
}

// ChatConfig endpoint de chat completion compatible con OpenAI (OpenRouter).
type ChatConfig struct {
	APIKey  string
	BaseURL string
	Models  []string // orden de preferencia declarado en la petición
	Referer string
	Title   string
	Timeout time.Duration
}

// DNIConfig servicio de consulta de DNI (RENIEC vía proveedor externo).
type DNIConfig struct {
	BaseURL string
	Token   string
}

// GeoConfig servicios de geocodificación (Nominatim) y rutas (OSRM).
type GeoConfig struct {
	NominatimURL string
	OSRMURL      string
	UserAgent    string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, ORDER_PREFIX, etc.
func Load() (*Config, error) {
	v := viper.New()

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

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "muebleria-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			Storage:  strings.ToLower(getString(v, "APP_STORAGE", "postgres")),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "muebleria"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			Migrate:     getBool(v, "DB_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 120),
			Issuer:     getString(v, "JWT_ISSUER", "muebleria-api"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			CORSOrigins: getString(v, "CORS_ORIGINS", "*"),
		},
		Store: StoreConfig{
			Name:                 getString(v, "STORE_NAME", "Mueblería José"),
			WhatsApp:             getString(v, "STORE_WHATSAPP", "51999999999"),
			AdminRedirectSeconds: getInt(v, "ADMIN_REDIRECT_SECONDS", 5),
		},
		Orders: OrderConfig{
			Prefix:        getString(v, "ORDER_PREFIX", "PED-"),
			PadWidth:      getInt(v, "ORDER_PAD_WIDTH", 6),
			MaxTxAttempts: getInt(v, "ORDER_TX_MAX_ATTEMPTS", 5),
		},
		Chat: ChatConfig{
			APIKey:  getString(v, "OPENROUTER_API_KEY", ""),
			BaseURL: getString(v, "OPENROUTER_URL", "https://openrouter.ai/api/v1/chat/completions"),
			Models:  getStrings(v, "OPENROUTER_MODELS", []string{"google/gemma-3-12b-it:free"}),
			Referer: getString(v, "OPENROUTER_REFERER", "http://localhost:5173"),
			Title:   getString(v, "OPENROUTER_TITLE", "Chatbot Muebleria"),
			Timeout: getDuration(v, "CHAT_TIMEOUT", 10*time.Second),
		},
		DNI: DNIConfig{
			BaseURL: getString(v, "DNI_API_URL", "https://api.apis.net.pe/v2/reniec/dni"),
			Token:   getString(v, "DNI_API_TOKEN", ""),
		},
		Geo: GeoConfig{
			NominatimURL: getString(v, "NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
			OSRMURL:      getString(v, "OSRM_URL", "https://router.project-osrm.org"),
			UserAgent:    getString(v, "GEO_USER_AGENT", "muebleria-api/1.0"),
		},
	}

	if cfg.App.Storage != "postgres" && cfg.App.Storage != "memory" {
		return nil, fmt.Errorf("config: APP_STORAGE inválido %q (postgres|memory)", cfg.App.Storage)
	}
	if cfg.Orders.PadWidth <= 0 {
		cfg.Orders.PadWidth = 6
	}
	if cfg.Orders.MaxTxAttempts <= 0 {
		cfg.Orders.MaxTxAttempts = 1
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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

func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if v.IsSet(key) {
		if d := v.GetDuration(key); d > 0 {
			return d
		}
	}
	return def
}

// getStrings lee una lista separada por comas (ej. OPENROUTER_MODELS=a,b,c) respetando el orden.
func getStrings(v *viper.Viper, key string, def []string) []string {
	if !v.IsSet(key) {
		return def
	}
	var out []string
	for _, s := range strings.Split(v.GetString(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
