package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DB     DBConfig
	Server ServerConfig
	Sync   SyncConfig
	MinIO  MinIOConfig
	Export ExportConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type ServerConfig struct {
	Port string
}

// SyncConfig holds the shared secret trusted clients send in the
// api-key header on every push.
type SyncConfig struct {
	APIKey string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type ExportConfig struct {
	Enabled  bool
	Interval time.Duration
}

func Load() *Config {
	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "nexuite"),
			Password: getEnv("DB_PASSWORD", "nexuite_secret"),
			Name:     getEnv("DB_NAME", "nexuite"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Sync: SyncConfig{
			APIKey: getEnv("SYNC_API_KEY", ""),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "nexuite"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "nexuite_secret"),
			Bucket:    getEnv("MINIO_BUCKET", "nexuite-audit"),
			UseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
		},
		Export: ExportConfig{
			Enabled:  getEnvAsBool("SYNC_EXPORT_ENABLED", false),
			Interval: getEnvAsDuration("SYNC_EXPORT_INTERVAL", 1*time.Hour),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
