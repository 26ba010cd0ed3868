package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Admin     AdminConfig
	Gemini    GeminiConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Catalog   CatalogConfig
	Affiliate AffiliateConfig
	Fanout    FanoutConfig
	Proxy     ProxyConfig
	Reconcile ReconcileConfig
}

type AdminConfig struct {
	Token string // Token for log access and maintenance endpoints
}

type AppConfig struct {
	Name   string
	Port   string
	Env    string
	LogDir string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type GeminiConfig struct {
	APIKey         string // Gemini API Key
	Model          string // Model name (e.g., gemini-2.0-flash)
	TimeoutSeconds int    // Applies to image download and generation calls
}

type CORSConfig struct {
	AllowOrigins string
}

type RateLimitConfig struct {
	Enabled       bool
	MaxRequests   int
	WindowSeconds int
	// Stricter limit applied to routes that call the model
	AIMaxRequests   int
	AIWindowSeconds int
}

type CatalogConfig struct {
	Candidates int // Placeholder products synthesized per detected item
}

type AffiliateConfig struct {
	AmazonTag  string
	WayfairRef string
}

type FanoutConfig struct {
	BatchSize int
	DelayMS   int
}

type ProxyConfig struct {
	MaxBytes        int64
	TimeoutSeconds  int
	CacheTTLSeconds int
}

type ReconcileConfig struct {
	Enabled bool
	Cron    string
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists (optional for production)
	_ = godotenv.Load()

	config := &Config{
		App: AppConfig{
			Name:   getEnv("APP_NAME", "Decorlens API"),
			Port:   getEnv("APP_PORT", "3000"),
			Env:    getEnv("APP_ENV", "development"),
			LogDir: getEnv("LOG_DIR", "logs"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "decorlens"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Admin: AdminConfig{
			Token: getEnv("ADMIN_TOKEN", ""),
		},
		Gemini: GeminiConfig{
			APIKey:         getEnv("GEMINI_API_KEY", ""),
			Model:          getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			TimeoutSeconds: getEnvInt("GEMINI_TIMEOUT_SECONDS", 60),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		RateLimit: RateLimitConfig{
			Enabled:         getEnvBool("RATE_LIMIT_ENABLED", true),
			MaxRequests:     getEnvInt("RATE_LIMIT_MAX", 120),
			WindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
			AIMaxRequests:   getEnvInt("RATE_LIMIT_AI_MAX", 20),
			AIWindowSeconds: getEnvInt("RATE_LIMIT_AI_WINDOW_SECONDS", 60),
		},
		Catalog: CatalogConfig{
			Candidates: getEnvInt("CATALOG_CANDIDATES", 4),
		},
		Affiliate: AffiliateConfig{
			AmazonTag:  getEnv("AFFILIATE_AMAZON_TAG", ""),
			WayfairRef: getEnv("AFFILIATE_WAYFAIR_REF", ""),
		},
		Fanout: FanoutConfig{
			BatchSize: getEnvInt("FANOUT_BATCH_SIZE", 3),
			DelayMS:   getEnvInt("FANOUT_DELAY_MS", 1000),
		},
		Proxy: ProxyConfig{
			MaxBytes:        int64(getEnvInt("PROXY_MAX_BYTES", 10<<20)),
			TimeoutSeconds:  getEnvInt("PROXY_TIMEOUT_SECONDS", 20),
			CacheTTLSeconds: getEnvInt("PROXY_CACHE_TTL_SECONDS", 3600),
		},
		Reconcile: ReconcileConfig{
			Enabled: getEnvBool("RECONCILE_ENABLED", true),
			Cron:    getEnv("RECONCILE_CRON", "*/15 * * * *"),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch value {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultValue
}
