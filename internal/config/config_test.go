package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = `
app:
  name: orderhub
  http_addr: ":9091"
  log_level: info
http:
  read_timeout: 5s
storage:
  driver: memory
orders:
  hub_ids: [1, 2]
seed:
  hubs:
    - { id: 1, name: North }
  customers:
    - { id: 1, name: Alice }
  products:
    - { id: 3, name: Mug, image_path: /img/mug.png, price: "9.50" }
`

func writeConfig(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestLoad_Base(t *testing.T) {
	dir := writeConfig(t, map[string]string{"base.yaml": testBase})

	cfg, err := Load(dir, "dev")
	require.NoError(t, err)

	assert.Equal(t, ":9091", cfg.App.HTTPAddr)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, []int64{1, 2}, cfg.Orders.HubIDs)
	assert.False(t, cfg.Orders.ReconcileTotal)

	data, err := cfg.Seed.Data()
	require.NoError(t, err)
	require.Len(t, data.Products, 1)
	assert.True(t, data.Products[0].Price.Equal(decimal.RequireFromString("9.5")))
	assert.Equal(t, "Alice", data.Customers[0].Name)
	assert.Equal(t, "North", data.Hubs[0].Name)
}

func TestLoad_EnvFileAndVariablesOverride(t *testing.T) {
	dir := writeConfig(t, map[string]string{
		"base.yaml":    testBase,
		"staging.yaml": "app:\n  log_level: debug\norders:\n  reconcile_total: true\n",
	})
	t.Setenv("ORDERHUB_APP__HTTP_ADDR", ":8080")

	cfg, err := Load(dir, "staging")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.True(t, cfg.Orders.ReconcileTotal)
	assert.Equal(t, ":8080", cfg.App.HTTPAddr)
}

func TestLoad_MissingBase(t *testing.T) {
	_, err := Load(t.TempDir(), "dev")
	assert.Error(t, err)
}

func TestLoad_MalformedEnvFile(t *testing.T) {
	dir := writeConfig(t, map[string]string{
		"base.yaml": testBase,
		"dev.yaml":  "app: [unclosed\n",
	})
	_, err := Load(dir, "dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load dev")

	_, err = Load(dir, "prod")
	assert.NoError(t, err, "a missing env file is optional")
}

func TestValidate(t *testing.T) {
	dir := writeConfig(t, map[string]string{"base.yaml": testBase})
	cfg, err := Load(dir, "dev")
	require.NoError(t, err)

	bad := cfg
	bad.Storage.Driver = "postgres"
	assert.ErrorContains(t, bad.Validate(), "postgres_dsn")

	bad = cfg
	bad.Storage.Driver = "mongo"
	assert.ErrorContains(t, bad.Validate(), "storage.driver")

	bad = cfg
	bad.Orders.HubIDs = nil
	assert.ErrorContains(t, bad.Validate(), "hub_ids")

	bad = cfg
	bad.Redis.Enabled = true
	bad.Redis.Addr = ""
	assert.ErrorContains(t, bad.Validate(), "redis.addr")
}
