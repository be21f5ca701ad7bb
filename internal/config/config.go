package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// StorageConfig selects where uploaded documents are kept.
// Driver is "local" or "minio".
type StorageConfig struct {
	Driver    string
	LocalPath string
	MinIO     MinIOConfig
}

// NATSConfig configures job status events. An empty URL disables publishing.
type NATSConfig struct {
	URL           string
	StatusSubject string
	EventsSubject string
	QueueGroup    string
}

// ResilienceConfig tunes retries and the circuit breaker around upstream calls.
type ResilienceConfig struct {
	MaxRetries       int
	BaseDelay        time.Duration
	MaxDelay         time.Duration
	FailureThreshold int
	OpenTimeout      time.Duration
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost         string
	Port            string
	WorkerPort      string
	LogLevel        string
	Timezone        string
	UploadMaxBytes  int64
	DefaultRadiusKm float64
	PrinterCacheTTL time.Duration
	// StoreDriver is "memory" or "postgres".
	StoreDriver string
	Database    DatabaseConfig
	Storage     StorageConfig
	NATS        NATSConfig
	Resilience  ResilienceConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:         getEnv("APP_HOST", "localhost:8080"),
		Port:            getEnv("PORT", "8080"),
		WorkerPort:      getEnv("WORKER_PORT", "9091"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Timezone:        getEnv("APP_TIMEZONE", "UTC"),
		UploadMaxBytes:  int64(getEnvInt("UPLOAD_MAX_BYTES", 10<<20)),
		DefaultRadiusKm: getEnvFloat("DEFAULT_RADIUS_KM", 10),
		PrinterCacheTTL: getEnvDuration("PRINTER_CACHE_TTL", 30*time.Second),
		StoreDriver:     getEnv("STORE_DRIVER", "memory"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Storage: StorageConfig{
			Driver:    getEnv("STORAGE_DRIVER", "local"),
			LocalPath: getEnv("STORAGE_LOCAL_PATH", "./data/uploads"),
			MinIO: MinIOConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", ""),
				AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
				SecretKey: getEnv("MINIO_SECRET_KEY", ""),
				Bucket:    getEnv("MINIO_BUCKET", ""),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			},
		},
		NATS: NATSConfig{
			URL:           getEnv("NATS_URL", ""),
			StatusSubject: getEnv("NATS_STATUS_SUBJECT", "printshop.jobs.status"),
			EventsSubject: getEnv("NATS_EVENTS_SUBJECT", "printshop.printer.events"),
			QueueGroup:    getEnv("NATS_QUEUE_GROUP", "workers"),
		},
		Resilience: ResilienceConfig{
			MaxRetries:       getEnvInt("UPSTREAM_MAX_RETRIES", 3),
			BaseDelay:        getEnvDuration("UPSTREAM_RETRY_BASE_DELAY", 100*time.Millisecond),
			MaxDelay:         getEnvDuration("UPSTREAM_RETRY_MAX_DELAY", 2*time.Second),
			FailureThreshold: getEnvInt("UPSTREAM_BREAKER_FAILURES", 5),
			OpenTimeout:      getEnvDuration("UPSTREAM_BREAKER_TIMEOUT", 30*time.Second),
		},
	}
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}
