// Package config loads runtime settings from the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the assembled runtime configuration of the storefront server.
type Config struct {
	Env                string
	Port               string
	CORSOrigins        string
	PublicBaseURL      string
	ReservedSubdomains []string

	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSSLMode       string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration

	RedisHost      string
	RedisPort      string
	RedisPassword  string
	RedisDB        int
	TenantCacheTTL time.Duration

	JWTSecret string

	MercadoPagoBaseURL string
	MercadoPagoTimeout time.Duration
	TokenSealingKey    string
	Currency           string

	KafkaBrokers    []string
	OrderEventTopic string

	CheckoutRateLimit int
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads the environment into a Config.
func Load() Config {
	return Config{
		Env:                GetEnv("ENV", "development"),
		Port:               GetEnv("PORT", "3000"),
		CORSOrigins:        GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		PublicBaseURL:      strings.TrimRight(GetEnv("PUBLIC_BASE_URL", "http://localhost:5173"), "/"),
		ReservedSubdomains: GetListEnv("RESERVED_SUBDOMAINS", []string{"www", "app", "api"}),

		DBHost:          GetEnv("DB_HOST", "localhost"),
		DBPort:          GetEnv("DB_PORT", "5432"),
		DBUser:          GetEnv("DB_USER", "postgres"),
		DBPassword:      GetEnv("DB_PASSWORD", "postgres"),
		DBName:          GetEnv("DB_NAME", "storefront"),
		DBSSLMode:       GetEnv("DB_SSLMODE", "disable"),
		MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
		MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
		ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),

		RedisHost:      GetEnv("REDIS_HOST", "localhost"),
		RedisPort:      GetEnv("REDIS_PORT", "6379"),
		RedisPassword:  GetEnv("REDIS_PASSWORD", ""),
		RedisDB:        GetIntEnv("REDIS_DB", 0),
		TenantCacheTTL: GetDurationEnv("TENANT_CACHE_TTL", 5*time.Minute),

		JWTSecret: GetEnv("JWT_SECRET", "storefront"),

		MercadoPagoBaseURL: GetEnv("MP_API_URL", "https://api.mercadopago.com"),
		MercadoPagoTimeout: GetDurationEnv("MP_TIMEOUT", 15*time.Second),
		TokenSealingKey:    GetEnv("MP_TOKEN_KEY", ""),
		Currency:           GetEnv("CURRENCY", "ARS"),

		KafkaBrokers:    GetListEnv("KAFKA_BROKERS", nil),
		OrderEventTopic: GetEnv("ORDER_EVENTS_TOPIC", "storefront.orders"),

		CheckoutRateLimit: GetIntEnv("CHECKOUT_RATE_LIMIT", 10),
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// GetListEnv splits a comma separated variable, dropping blank entries.
func GetListEnv(key string, defaultVal []string) []string {
	val, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(val) == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

