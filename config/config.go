package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	Port     string `mapstructure:"PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Database. DATABASE_URL / MYSQL_URL win over the DB_* parts.
	DBDriver    string `mapstructure:"DB_DRIVER"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	MySQLURL    string `mapstructure:"MYSQL_URL"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPass      string `mapstructure:"DB_PASS"`
	DBName      string `mapstructure:"DB_NAME"`
	SQLitePath  string `mapstructure:"SQLITE_PATH"`
	SeedDB      bool   `mapstructure:"SEED_DATABASE"`

	// Redis room-listing cache. Empty address disables it.
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int           `mapstructure:"REDIS_CACHE_DB"`
	RoomCacheTTL  time.Duration `mapstructure:"ROOM_CACHE_TTL"`

	JWTSecret string `mapstructure:"JWT_SECRET"`

	// Stripe card payments.
	StripeSecretKey     string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	PaymentSuccessURL   string `mapstructure:"PAYMENT_SUCCESS_URL"`
	PaymentCancelURL    string `mapstructure:"PAYMENT_CANCEL_URL"`
	PaymentCurrency     string `mapstructure:"PAYMENT_CURRENCY"`

	// StrictCheckIn only allows check-in from PENDING.
	StrictCheckIn bool `mapstructure:"STRICT_CHECKIN"`

	CORSOrigins     string `mapstructure:"CORS_ORIGINS"`
	RateLimitPerMin int    `mapstructure:"RATE_LIMIT_PER_MIN"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("MYSQL_URL", "")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_NAME", "hotel_db")
	v.SetDefault("SQLITE_PATH", "./hotel.db")
	v.SetDefault("SEED_DATABASE", true)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("ROOM_CACHE_TTL", 500*time.Second)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("STRIPE_SECRET_KEY", "")
	v.SetDefault("STRIPE_WEBHOOK_SECRET", "")
	v.SetDefault("PAYMENT_SUCCESS_URL", "http://localhost:3000/payment?status=success")
	v.SetDefault("PAYMENT_CANCEL_URL", "http://localhost:3000/payment?status=failed")
	v.SetDefault("PAYMENT_CURRENCY", "thb")
	v.SetDefault("STRICT_CHECKIN", false)
	v.SetDefault("CORS_ORIGINS", "")
	v.SetDefault("RATE_LIMIT_PER_MIN", 30)
}

// Load reads config.yaml (optional, from . or ./config) and the environment.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	cfg.PaymentCurrency = strings.ToLower(strings.TrimSpace(cfg.PaymentCurrency))
	return cfg, nil
}

// LoadConfig fills AppConfig, exiting on failure.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Origins splits CORS_ORIGINS; empty means any origin.
func (c Config) Origins() []string {
	raw := strings.TrimSpace(c.CORSOrigins)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
