package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	return dir
}

func TestLoadFrom(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 9090
  mode: release
database:
  driver: sqlite
  sqlite_path: "file::memory:"
warehouse:
  low_stock_threshold: 3
`)

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file::memory:", cfg.Database.SQLitePath)
	assert.Equal(t, 3, cfg.Warehouse.LowStockThreshold)

	// 未配置的项使用默认值
	assert.Equal(t, "storekeeper", cfg.Warehouse.DefaultOperator)
	assert.Equal(t, 30*time.Second, cfg.Warehouse.StatsCacheTTL)
	assert.Equal(t, "warehouse.journal", cfg.MQ.Exchange)
	assert.Equal(t, uint32(5), cfg.MQ.BreakerFailures)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadFrom_EnvOverride(t *testing.T) {
	dir := writeConfig(t, `
database:
  driver: sqlite
`)
	t.Setenv("WAREHOUSE_WAREHOUSE_DEFAULT_OPERATOR", "night-shift")
	t.Setenv("WAREHOUSE_SERVER_PORT", "8181")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "night-shift", cfg.Warehouse.DefaultOperator)
	assert.Equal(t, 8181, cfg.Server.Port)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"不支持的驱动", "database:\n  driver: oracle\n"},
		{"端口越界", "server:\n  port: 70000\n"},
		{"启用MQ但缺少URL", "mq:\n  enabled: true\n"},
		{"熔断阈值为0", "mq:\n  breaker_failures: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		User: "root", Password: "secret", Host: "127.0.0.1", Port: 3306,
		DBName: "warehouse", Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
	}
	assert.Equal(t,
		"root:secret@tcp(127.0.0.1:3306)/warehouse?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai",
		d.DSN())
}
