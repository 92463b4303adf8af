package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warehouse.log")

	l, err := New(Options{Level: "warn", Format: "json", Output: path})
	require.NoError(t, err)

	l.Info("不应输出")
	zap.L().Warn("部分出库", zap.Int("unfulfilled", 5))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "不应输出")
	assert.Contains(t, string(data), `"unfulfilled":5`)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}
