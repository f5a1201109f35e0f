package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends understood by the application.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendS3       = "s3"
	BackendMongo    = "mongo"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerPort     string
	ServerHost     string
	AllowedOrigins []string

	// Storage configuration
	StorageBackend    string
	StorageKey        string
	StorageQuotaBytes int
	DataDir           string
	SQLitePath        string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string
	RedisPrefix   string

	// S3 configuration
	S3Bucket string
	S3Region string
	S3Prefix string

	// Mongo configuration
	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	// RateLimitCreate is the number of recipe submissions allowed per client
	// per hour. Zero disables the limiter.
	RateLimitCreate int
}

// LoadConfig creates a new Config from the environment, an optional .env
// file (ENV_FILE, default ".env") and Docker secrets.
func LoadConfig() (*Config, error) {
	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg := &Config{
		Env:             GetEnvironment(),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		ServerHost:      getEnv("SERVER_HOST", ""),
		AllowedOrigins:  getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		StorageBackend:  strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile)),
		StorageKey:      getEnv("STORAGE_KEY", "recipes"),
		DataDir:         getEnv("DATA_DIR", "data"),
		SQLitePath:      getEnv("SQLITE_PATH", "recipes.db"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getSecret("DB_PASSWORD"),
		DBName:          getEnv("DB_NAME", "recipes"),
		DBSSLMode:       getEnv("DB_SSL_MODE", "disable"),
		RedisHost:       getEnv("REDIS_HOST", "localhost"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		RedisPassword:   getSecret("REDIS_PASSWORD"),
		RedisURL:        getEnv("REDIS_URL", ""),
		RedisPrefix:     getEnv("REDIS_PREFIX", "recipebox:"),
		S3Bucket:        getEnv("S3_BUCKET_NAME", ""),
		S3Region:        getEnv("AWS_REGION", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		MongoURI:        getSecret("MONGO_URI"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "recipebox"),
		MongoCollection: getEnv("MONGO_COLLECTION", "kv"),
	}

	var err error
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	if cfg.StorageQuotaBytes, err = getEnvInt("STORAGE_QUOTA_BYTES", 0); err != nil {
		return nil, fmt.Errorf("invalid STORAGE_QUOTA_BYTES: %w", err)
	}
	if cfg.RateLimitCreate, err = getEnvInt("RATE_LIMIT_CREATE", 0); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_CREATE: %w", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LogMode returns the logger mode matching the environment.
func (c *Config) LogMode() string {
	if c.Env == Production {
		return "production"
	}
	return "development"
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// SQLiteFile resolves a relative SQLITE_PATH against DATA_DIR.
func (c *Config) SQLiteFile() string {
	if filepath.IsAbs(c.SQLitePath) || c.DataDir == "" {
		return c.SQLitePath
	}
	return filepath.Join(c.DataDir, c.SQLitePath)
}

// RedisEnabled reports whether enough Redis settings exist to connect.
func (c *Config) RedisEnabled() bool {
	return c.StorageBackend == BackendRedis || c.RedisURL != ""
}

// PostgresDSN builds a lib/pq connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// redacted is used when logging the DSN.
func (c *Config) redacted() string {
	return strings.Replace(c.PostgresDSN(), "password="+c.DBPassword, "password=***", 1)
}

// String renders the configuration without secrets.
func (c *Config) String() string {
	return fmt.Sprintf("env=%s addr=%s backend=%s key=%s db=%q", c.Env, c.Addr(), c.StorageBackend, c.StorageKey, c.redacted())
}
