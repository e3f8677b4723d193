package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	Session   SessionConfig
	CORS      CORSConfig
	Log       LogConfig
	Boards    BoardsConfig
	Calendar  CalendarConfig
	Generator GeneratorConfig
	Classroom ClassroomConfig
	Share     ShareConfig
	Exports   ExportsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig governs sign-in exchange tokens and session records.
type SessionConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// BoardsConfig tunes lesson board autosave behaviour.
type BoardsConfig struct {
	DebounceInterval time.Duration
	DefaultThemeID   string
}

// CalendarConfig points at the external calendar feed used for bell-schedule
// detection.
type CalendarConfig struct {
	BaseURL    string
	CalendarID string
	APIKey     string
	Timeout    time.Duration
	CacheTTL   time.Duration
}

// GeneratorConfig configures the AI completion collaborator.
type GeneratorConfig struct {
	Enabled bool
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// ClassroomConfig points at the external classroom service.
type ClassroomConfig struct {
	Enabled bool
	BaseURL string
	Timeout time.Duration
}

// ShareConfig controls where public read-only share links point.
type ShareConfig struct {
	BaseURL string
}

// ExportsConfig controls asynchronous board PDF exports.
type ExportsConfig struct {
	Enabled           bool
	StorageDir        string
	SignedURLSecret   string
	SignedURLTTL      time.Duration
	WorkerConcurrency int
	WorkerRetries     int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Session = SessionConfig{
		Secret:     v.GetString("SESSION_SECRET"),
		Expiration: parseDuration(v.GetString("SESSION_EXPIRATION"), 12*time.Hour),
		Issuer:     v.GetString("SESSION_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Boards = BoardsConfig{
		DebounceInterval: parseDuration(v.GetString("BOARDS_DEBOUNCE_INTERVAL"), 1500*time.Millisecond),
		DefaultThemeID:   v.GetString("BOARDS_DEFAULT_THEME"),
	}

	cfg.Calendar = CalendarConfig{
		BaseURL:    v.GetString("CALENDAR_BASE_URL"),
		CalendarID: v.GetString("CALENDAR_ID"),
		APIKey:     v.GetString("CALENDAR_API_KEY"),
		Timeout:    parseDuration(v.GetString("CALENDAR_TIMEOUT"), 5*time.Second),
		CacheTTL:   parseDuration(v.GetString("CALENDAR_CACHE_TTL"), 15*time.Minute),
	}

	cfg.Generator = GeneratorConfig{
		Enabled: v.GetBool("ENABLE_GENERATOR"),
		BaseURL: v.GetString("GENERATOR_BASE_URL"),
		APIKey:  v.GetString("GENERATOR_API_KEY"),
		Model:   v.GetString("GENERATOR_MODEL"),
		Timeout: parseDuration(v.GetString("GENERATOR_TIMEOUT"), 30*time.Second),
	}

	cfg.Classroom = ClassroomConfig{
		Enabled: v.GetBool("ENABLE_CLASSROOM"),
		BaseURL: v.GetString("CLASSROOM_BASE_URL"),
		Timeout: parseDuration(v.GetString("CLASSROOM_TIMEOUT"), 10*time.Second),
	}

	cfg.Share = ShareConfig{
		BaseURL: v.GetString("SHARE_BASE_URL"),
	}

	cfg.Exports = ExportsConfig{
		Enabled:           v.GetBool("ENABLE_EXPORTS"),
		StorageDir:        v.GetString("EXPORTS_STORAGE_DIR"),
		SignedURLSecret:   v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:      parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), 24*time.Hour),
		WorkerConcurrency: v.GetInt("EXPORTS_WORKER_CONCURRENCY"),
		WorkerRetries:     v.GetInt("EXPORTS_WORKER_RETRIES"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "classdeck")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_SECRET", "dev_secret")
	v.SetDefault("SESSION_EXPIRATION", "12h")
	v.SetDefault("SESSION_ISSUER", "classdeck-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("BOARDS_DEBOUNCE_INTERVAL", "1500ms")
	v.SetDefault("BOARDS_DEFAULT_THEME", "standard")

	v.SetDefault("CALENDAR_BASE_URL", "https://www.googleapis.com/calendar/v3")
	v.SetDefault("CALENDAR_ID", "")
	v.SetDefault("CALENDAR_API_KEY", "")
	v.SetDefault("CALENDAR_TIMEOUT", "5s")
	v.SetDefault("CALENDAR_CACHE_TTL", "15m")

	v.SetDefault("ENABLE_GENERATOR", false)
	v.SetDefault("GENERATOR_BASE_URL", "https://api.groq.com/openai/v1")
	v.SetDefault("GENERATOR_API_KEY", "")
	v.SetDefault("GENERATOR_MODEL", "llama3-70b-8192")
	v.SetDefault("GENERATOR_TIMEOUT", "30s")

	v.SetDefault("ENABLE_CLASSROOM", false)
	v.SetDefault("CLASSROOM_BASE_URL", "https://classroom.googleapis.com/v1")
	v.SetDefault("CLASSROOM_TIMEOUT", "10s")

	v.SetDefault("SHARE_BASE_URL", "http://localhost:3000")

	v.SetDefault("ENABLE_EXPORTS", false)
	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORTS_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "24h")
	v.SetDefault("EXPORTS_WORKER_CONCURRENCY", 1)
	v.SetDefault("EXPORTS_WORKER_RETRIES", 3)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
