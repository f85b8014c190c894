package config

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env
// y opcionalmente archivo .env).
type Config struct {
	App   AppConfig
	HTTP  HTTPConfig
	JWT   JWTConfig
	AI    AIConfig
	Store StoreConfig
	Shop  ShopConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
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

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// AIConfig configuración del adaptador de IA (Gemini).
// Si APIKey está vacío, las llamadas fallan con un error claro en runtime.
type AIConfig struct {
	APIKey string
	Model  string
}

// StoreConfig configuración del almacén de snapshots.
// Driver: "file" (por defecto), "memory" (tests) o "postgres".
type StoreConfig struct {
	Driver      string
	DataDir     string // para el driver file
	DatabaseURL string // para el driver postgres; DSN completo
	DBHost      string
	DBPort      int
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido,
// si no el construido desde los campos DB_*.
func (c StoreConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.DBSSLMode),
	}
	return u.String()
}

// ShopConfig valores iniciales de la tienda (solo se usan la primera vez,
// cuando el snapshot persistido aún no existe).
type ShopConfig struct {
	WeekStart         string // sunday | monday
	IntakeMatchPolicy string // exact | fuzzy
	InitialCredits    int
}

// Load lee la configuración desde variables de entorno (y opcionalmente .env).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT,
// JWT_SECRET, GEMINI_API_KEY, STORE_DRIVER, DATA_DIR, WEEK_START, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración .env en el directorio de trabajo
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "abuela-pos"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 720),
			Issuer:     getString(v, "JWT_ISSUER", "abuela-pos"),
		},
		AI: AIConfig{
			APIKey: getString(v, "GEMINI_API_KEY", ""),
			Model:  getString(v, "GEMINI_MODEL", "gemini-1.5-flash"),
		},
		Store: StoreConfig{
			Driver:      getString(v, "STORE_DRIVER", "file"),
			DataDir:     getString(v, "DATA_DIR", "./data"),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			DBHost:      getString(v, "DB_HOST", "localhost"),
			DBPort:      getInt(v, "DB_PORT", 5432),
			DBUser:      getString(v, "DB_USER", "postgres"),
			DBPassword:  getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "abuela_pos"),
			DBSSLMode:   getString(v, "DB_SSLMODE", "disable"),
		},
		Shop: ShopConfig{
			WeekStart:         getString(v, "WEEK_START", "sunday"),
			IntakeMatchPolicy: getString(v, "INTAKE_MATCH_POLICY", "exact"),
			InitialCredits:    getInt(v, "INITIAL_AI_CREDITS", 100),
		},
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
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
