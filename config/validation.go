package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// requiredFields lists the settings each storage backend cannot run without.
var requiredFields = map[string]func(*Config) []ValidationError{
	BackendMemory: func(*Config) []ValidationError { return nil },
	BackendFile: func(c *Config) []ValidationError {
		return requiredField(ValidationError{"DATA_DIR", "is required for the file backend"}, c.DataDir)
	},
	BackendSQLite: func(c *Config) []ValidationError {
		return requiredField(ValidationError{"SQLITE_PATH", "is required for the sqlite backend"}, c.SQLitePath)
	},
	BackendPostgres: func(c *Config) []ValidationError {
		var errs []ValidationError
		errs = append(errs, requiredField(ValidationError{"DB_HOST", "is required for the postgres backend"}, c.DBHost)...)
		errs = append(errs, requiredField(ValidationError{"DB_NAME", "is required for the postgres backend"}, c.DBName)...)
		errs = append(errs, requiredField(ValidationError{"DB_USER", "is required for the postgres backend"}, c.DBUser)...)
		if c.Env == Production || c.Env == CI {
			errs = append(errs, requiredField(ValidationError{"DB_PASSWORD", "is required in " + string(c.Env)}, c.DBPassword)...)
		}
		return errs
	},
	BackendRedis: func(c *Config) []ValidationError {
		if c.RedisURL != "" {
			return nil
		}
		return requiredField(ValidationError{"REDIS_HOST", "or REDIS_URL is required for the redis backend"}, c.RedisHost)
	},
	BackendS3: func(c *Config) []ValidationError {
		return requiredField(ValidationError{"S3_BUCKET_NAME", "is required for the s3 backend"}, c.S3Bucket)
	},
	BackendMongo: func(c *Config) []ValidationError {
		var errs []ValidationError
		errs = append(errs, requiredField(ValidationError{"MONGO_URI", "is required for the mongo backend"}, c.MongoURI)...)
		errs = append(errs, requiredField(ValidationError{"MONGO_DATABASE", "is required for the mongo backend"}, c.MongoDatabase)...)
		return errs
	},
}

func requiredField(e ValidationError, value string) []ValidationError {
	if strings.TrimSpace(value) == "" {
		return []ValidationError{e}
	}
	return nil
}

// ValidateConfig checks the configuration for the selected storage backend.
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	check, ok := requiredFields[cfg.StorageBackend]
	if !ok {
		errs = append(errs, ValidationError{"STORAGE_BACKEND", fmt.Sprintf("unknown backend %q", cfg.StorageBackend)})
	} else {
		errs = append(errs, check(cfg)...)
	}

	if strings.TrimSpace(cfg.StorageKey) == "" {
		errs = append(errs, ValidationError{"STORAGE_KEY", "must not be empty"})
	}
	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		errs = append(errs, ValidationError{"SERVER_PORT", fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}
	if len(cfg.AllowedOrigins) == 0 {
		errs = append(errs, ValidationError{"ALLOWED_ORIGINS", "must not be empty"})
	}
	if cfg.StorageQuotaBytes < 0 {
		errs = append(errs, ValidationError{"STORAGE_QUOTA_BYTES", "must not be negative"})
	}
	if cfg.RateLimitCreate < 0 {
		errs = append(errs, ValidationError{"RATE_LIMIT_CREATE", "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
