package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads so the host environment cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENVIRONMENT", "LOG_LEVEL",
		"DATASOURCE_TYPE", "DATASOURCE_HOST", "DATASOURCE_PORT", "DATASOURCE_USER",
		"DATASOURCE_PASSWORD", "DATASOURCE_DATABASE", "DATASOURCE_SSL_MODE", "DATASOURCE_PATH",
		"DATASOURCE_AUTH_METHOD", "DATASOURCE_TENANT_ID", "DATASOURCE_CLIENT_ID", "DATASOURCE_CLIENT_SECRET",
		"SAMPLING_SOURCE_SCHEMA", "SAMPLING_DESTINATION_SCHEMA", "SAMPLING_INSERT_BATCH_SIZE", "SAMPLING_OUTPUT_FORMAT",
	} {
		if value, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { os.Setenv(key, value) })
		}
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sampler.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
env: "dev"
log_level: "debug"
datasource:
  type: "postgres"
  host: "db.example.com"
  port: 5433
  user: "sampler"
  database: "analytics"
  ssl_mode: "require"
sampling:
  source_schema: "sales"
  destination_schema: "scratch"
  insert_batch_size: 100
  output_format: "json"
`)

	cfg, err := Load(path, "v1.2.3")
	require.NoError(t, err)

	assert.Equal(t, "v1.2.3", cfg.Version)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "postgres", cfg.Datasource.Type)
	assert.Equal(t, "db.example.com", cfg.Datasource.Host)
	assert.Equal(t, 5433, cfg.Datasource.Port)
	assert.Equal(t, "sampler", cfg.Datasource.User)
	assert.Equal(t, "analytics", cfg.Datasource.Database)
	assert.Equal(t, "require", cfg.Datasource.SSLMode)
	assert.Equal(t, "sales", cfg.Sampling.SourceSchema)
	assert.Equal(t, "scratch", cfg.Sampling.DestinationSchema)
	assert.Equal(t, 100, cfg.Sampling.InsertBatchSize)
	assert.Equal(t, "json", cfg.Sampling.OutputFormat)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
datasource:
  type: "postgres"
  host: "db.example.com"
sampling:
  insert_batch_size: 100
`)

	t.Setenv("DATASOURCE_HOST", "other.example.com")
	t.Setenv("SAMPLING_INSERT_BATCH_SIZE", "25")

	cfg, err := Load(path, "test")
	require.NoError(t, err)

	assert.Equal(t, "other.example.com", cfg.Datasource.Host)
	assert.Equal(t, 25, cfg.Sampling.InsertBatchSize)
}

func TestLoad_PasswordOnlyFromEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
datasource:
  type: "postgres"
  password: "from-yaml"
`)

	cfg, err := Load(path, "test")
	require.NoError(t, err)
	assert.Empty(t, cfg.Datasource.Password, "password must not be read from YAML")

	t.Setenv("DATASOURCE_PASSWORD", "from-env")
	cfg, err = Load(path, "test")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Datasource.Password)
}

func TestLoad_EnvOnlyDefaults(t *testing.T) {
	clearEnv(t)

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(originalDir) })

	cfg, err := Load("", "test")
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "postgres", cfg.Datasource.Type)
	assert.Equal(t, "localhost", cfg.Datasource.Host)
	assert.Equal(t, 500, cfg.Sampling.InsertBatchSize)
	assert.Equal(t, "table", cfg.Sampling.OutputFormat)
}

func TestLoad_DefaultConfigFileInWorkingDir(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigPath), []byte(`
datasource:
  type: "sqlite"
  path: "/tmp/sample.db"
`), 0o644))

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(originalDir) })

	cfg, err := Load("", "test")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Datasource.Type)
	assert.Equal(t, "/tmp/sample.db", cfg.Datasource.Path)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "test")
	assert.Error(t, err)
}

func TestLoad_InvalidBatchSize(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
datasource:
  type: "postgres"
sampling:
  insert_batch_size: -1
`)

	_, err := Load(path, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert_batch_size")
}

func TestDatasourceConfig_ToMap(t *testing.T) {
	ds := DatasourceConfig{
		Type:     "postgres",
		Host:     "db",
		Port:     5432,
		User:     "u",
		Password: "p",
		Database: "d",
	}

	m := ds.ToMap()
	assert.Equal(t, map[string]any{
		"host":     "db",
		"port":     5432,
		"user":     "u",
		"password": "p",
		"database": "d",
	}, m)
}

func TestDatasourceConfig_ToMap_FileBased(t *testing.T) {
	ds := DatasourceConfig{Type: "sqlite", Path: ":memory:"}
	assert.Equal(t, map[string]any{"path": ":memory:"}, ds.ToMap())
}
