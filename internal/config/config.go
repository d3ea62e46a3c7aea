package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string

	MongoURI         string
	MongoDBName      string
	MongoMaxPoolSize int
	MongoMinPoolSize int

	RedisAddr     string
	RedisPassword string

	CatalogBaseURL string
	CatalogTimeout time.Duration

	PostgresHost      string
	PostgresPort      int
	PostgresUser      string
	PostgresPassword  string
	PostgresDB        string
	MigrationsDirPath string

	KafkaBrokers []string

	RequestTimeout  time.Duration
	CheckoutTimeout time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, with an optional .env file
// for local development.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: skipping .env: %v", err)
	}

	return &Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),

		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:      getEnv("MONGO_DB_NAME", "unibeez"),
		MongoMaxPoolSize: getInt("MONGO_MAX_POOL_SIZE", 100),
		MongoMinPoolSize: getInt("MONGO_MIN_POOL_SIZE", 10),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		CatalogBaseURL: getEnv("CATALOG_BASE_URL", "http://localhost:8081"),
		CatalogTimeout: getDuration("CATALOG_TIMEOUT", 3*time.Second),

		PostgresHost:      getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:      getInt("POSTGRES_PORT", 5432),
		PostgresUser:      getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword:  getEnv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:        getEnv("POSTGRES_DB", "unibeez_orders"),
		MigrationsDirPath: getEnv("MIGRATIONS_DIR", "internal/orders/migrations"),

		KafkaBrokers: []string{getEnv("KAFKA_BROKER", "localhost:9092")},

		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 30*time.Second),
		CheckoutTimeout: getDuration("CHECKOUT_TIMEOUT", 5*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("config: invalid %s=%q, using %d", key, value, defaultValue)
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("config: invalid %s=%q, using %s", key, value, defaultValue)
	}
	return defaultValue
}
