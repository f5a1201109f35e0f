package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable LoadConfig reads, restoring them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"CI", "ENV", "SERVER_PORT", "SERVER_HOST", "ALLOWED_ORIGINS",
		"STORAGE_BACKEND", "STORAGE_KEY", "STORAGE_QUOTA_BYTES", "DATA_DIR", "SQLITE_PATH",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "REDIS_URL", "REDIS_PREFIX",
		"S3_BUCKET_NAME", "AWS_REGION", "S3_PREFIX",
		"MONGO_URI", "MONGO_DATABASE", "MONGO_COLLECTION", "RATE_LIMIT_CREATE",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestLoadConfigWithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Env)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, BackendFile, cfg.StorageBackend)
	assert.Equal(t, "recipes", cfg.StorageKey)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, 0, cfg.StorageQuotaBytes)
	assert.Equal(t, "development", cfg.LogMode())
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("STORAGE_BACKEND", "Postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("STORAGE_QUOTA_BYTES", "5242880")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Production, cfg.Env)
	assert.Equal(t, BackendPostgres, cfg.StorageBackend)
	assert.Equal(t, 5242880, cfg.StorageQuotaBytes)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "host=db.internal port=5432 user=postgres password=s3cret dbname=recipes sslmode=disable", cfg.PostgresDSN())
	assert.NotContains(t, cfg.String(), "s3cret")
	assert.Equal(t, "production", cfg.LogMode())
}

func TestLoadConfigReadsDockerSecrets(t *testing.T) {
	clearEnv(t)
	secrets := t.TempDir()
	t.Setenv("SECRETS_DIR", secrets)
	require.NoError(t, os.WriteFile(filepath.Join(secrets, "db_password"), []byte("from-secret\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.DBPassword)
}

func TestLoadConfigReadsEnvFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("STORAGE_BACKEND=memory\nSTORAGE_KEY=catalog\n"), 0o600))
	t.Setenv("ENV_FILE", envFile)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
	assert.Equal(t, "catalog", cfg.StorageKey)
}

func TestLoadConfigRejectsBadInteger(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_QUOTA_BYTES", "lots")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	base := func() *Config {
		return &Config{
			Env:            Development,
			ServerPort:     "8080",
			StorageBackend: BackendMemory,
			StorageKey:     "recipes",
			AllowedOrigins: []string{"http://localhost:5173"},
		}
	}

	assert.NoError(t, ValidateConfig(base()))

	cfg := base()
	cfg.StorageBackend = "floppy"
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_BACKEND")

	cfg = base()
	cfg.StorageBackend = BackendS3
	cfg.ServerPort = "http"
	cfg.StorageKey = " "
	err = ValidateConfig(cfg)
	require.Error(t, err)
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 3)

	cfg = base()
	cfg.Env = Production
	cfg.StorageBackend = BackendPostgres
	cfg.DBHost, cfg.DBName, cfg.DBUser = "h", "n", "u"
	err = ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")

	cfg = base()
	cfg.StorageBackend = BackendMongo
	cfg.MongoURI = "mongodb://localhost:27017"
	cfg.MongoDatabase = "recipebox"
	assert.NoError(t, ValidateConfig(cfg))
}

func TestSQLiteFile(t *testing.T) {
	cfg := &Config{DataDir: "data", SQLitePath: "recipes.db"}
	assert.Equal(t, filepath.Join("data", "recipes.db"), cfg.SQLiteFile())

	cfg.SQLitePath = "/var/lib/recipes.db"
	assert.Equal(t, "/var/lib/recipes.db", cfg.SQLiteFile())

	cfg = &Config{SQLitePath: "recipes.db"}
	assert.Equal(t, "recipes.db", cfg.SQLiteFile())
}

func TestLoadConfigRejectsEmptyOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOWED_ORIGINS", " , ")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ALLOWED_ORIGINS: must not be empty")
}
