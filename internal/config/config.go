package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the service. It is built once at
// startup and passed by reference into the components that need it.
type Config struct {
	// App
	AppEnv string
	Port   string

	// Postgres
	PgHost     string
	PgPort     string
	PgUser     string
	PgPassword string
	PgDB       string

	// Redis (optional; in-memory cache is used when empty)
	RedisAddr     string
	RedisPassword string

	// Cache
	CacheTTLSeconds     int
	CacheCleanupSeconds int

	Search SearchConfig

	// Rate limiting for the search endpoint
	SearchRatePerSecond float64
	SearchRateBurst     int
}

// SearchConfig carries the connection-time rules and result limits used by
// the search core.
type SearchConfig struct {
	// Minimum connection time in minutes. Only the domestic value is
	// applied today; the international value is carried for parity with
	// the fare sources but intentionally unused until product confirms
	// the intended semantics.
	MCTDomesticMinutes      int
	MCTInternationalMinutes int

	// Maximum layover between legs in minutes.
	MaxLayoverMinutes int

	DefaultMaxHops    int
	DefaultMaxResults int
	MaxResultsCeiling int

	// Fan-out caps for route chain enumeration. These bound the one-stop
	// and two-stop join work and are load-bearing for latency.
	RoutePairLimit    int
	RouteTripletLimit int

	// Penalty applied in triplet ranking when a route has no recorded
	// average duration.
	UnknownDurationPenalty float64

	DefaultCurrency string
}

// Load reads configuration from the environment, with a .env file as an
// optional source for local development.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "8080"),

		PgHost:     getEnv("PG_HOST", "localhost"),
		PgPort:     getEnv("PG_PORT", "5432"),
		PgUser:     getEnv("PG_USER", "postgres"),
		PgPassword: getEnv("PG_PASSWORD", ""),
		PgDB:       getEnv("PG_DB", "flight_search"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		CacheTTLSeconds:     getEnvAsInt("CACHE_TTL_SECONDS", 300),
		CacheCleanupSeconds: getEnvAsInt("CACHE_CLEANUP_SECONDS", 600),

		Search: SearchConfig{
			MCTDomesticMinutes:      getEnvAsInt("MCT_DOMESTIC_MINUTES", 45),
			MCTInternationalMinutes: getEnvAsInt("MCT_INTERNATIONAL_MINUTES", 90),
			MaxLayoverMinutes:       getEnvAsInt("MAX_LAYOVER_MINUTES", 720),
			DefaultMaxHops:          getEnvAsInt("DEFAULT_MAX_HOPS", 2),
			DefaultMaxResults:       getEnvAsInt("DEFAULT_MAX_RESULTS", 50),
			MaxResultsCeiling:       getEnvAsInt("MAX_RESULTS_CEILING", 250),
			RoutePairLimit:          getEnvAsInt("ROUTE_PAIR_LIMIT", 100),
			RouteTripletLimit:       getEnvAsInt("ROUTE_TRIPLET_LIMIT", 50),
			UnknownDurationPenalty:  10000,
			DefaultCurrency:         getEnv("DEFAULT_CURRENCY", "INR"),
		},

		SearchRatePerSecond: getEnvAsFloat("SEARCH_RATE_PER_SECOND", 10),
		SearchRateBurst:     getEnvAsInt("SEARCH_RATE_BURST", 20),
	}

	return cfg, nil
}

// PostgresDSN builds the connection string shared by sqlx and GORM.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PgUser, c.PgPassword, c.PgHost, c.PgPort, c.PgDB)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return value
	}
	return defaultValue
}
