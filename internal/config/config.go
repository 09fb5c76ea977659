package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers understood by the db package.
const (
	DriverMongo     = "mongo"
	DriverMySQL     = "mysql"
	DriverPostgres  = "postgres"
	DriverSQLite    = "sqlite"
	DriverSQLServer = "sqlserver"
)

// Selection window policies.
const (
	PolicyAlwaysOpen = "open"
	PolicyMealBands  = "meal_bands"
)

// Config holds application level configuration loaded from environment variables.
// It is built once at process start and passed by reference.
type Config struct {
	ServerPort string

	StoreDriver string
	MongoURL    string
	DBName      string
	DatabaseDSN string
	DBTimeout   time.Duration
	ResetDB     bool

	RedisAddr    string
	RedisDB      int
	RedisPass    string
	UserCacheTTL time.Duration

	JWTSecret  string
	BcryptCost int

	CORSOrigins     []string
	SelectionPolicy string

	LogLevel  string
	LogFormat string
}

// Load builds Config from environment with sensible defaults. A .env file in the
// working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8000"),
		StoreDriver:     strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		MongoURL:        getEnv("MONGO_URL", "mongodb://localhost:27017"),
		DBName:          getEnv("DB_NAME", "hostel_food_db"),
		DatabaseDSN:     getEnv("DATABASE_DSN", "user:password@tcp(localhost:3306)/hostel_food_db?charset=utf8mb4&parseTime=True&loc=UTC"),
		DBTimeout:       getEnvDuration("DB_TIMEOUT", 5*time.Second),
		ResetDB:         os.Getenv("RESET_DB") == "true",
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		UserCacheTTL:    getEnvDuration("USER_CACHE_TTL", 5*time.Minute),
		JWTSecret:       getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		BcryptCost:      getEnvInt("BCRYPT_COST", 10),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		SelectionPolicy: strings.ToLower(getEnv("SELECTION_POLICY", PolicyAlwaysOpen)),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
