package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/cadpay/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSettings_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	s, err := ReadSettings(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "ON", s.Jurisdiction)
	assert.Equal(t, "console", s.Format)
	assert.Equal(t, "warn", s.LogLevel)
	assert.Equal(t, "text", s.LogFormat)
	assert.Equal(t, ":8080", s.ServerAddr)
	assert.Zero(t, s.Year)
	assert.Empty(t, s.TablesPath)
}

func TestReadSettings_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cadpay.yaml")
	content := "jurisdiction: QC\nyear: 2025\nformat: json\nlog:\n  level: debug\nserver:\n  addr: \":9090\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("CADPAY_JURISDICTION", "BC")
	t.Setenv("CADPAY_LOG_FORMAT", "json")

	s, err := ReadSettings(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "BC", s.Jurisdiction, "environment overrides file")
	assert.Equal(t, 2025, s.Year)
	assert.Equal(t, "json", s.Format)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "json", s.LogFormat)
	assert.Equal(t, ":9090", s.ServerAddr)
}

func TestReadSettings_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jurisdiction: [unclosed"), 0o644))

	_, err := ReadSettings(viper.New(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestSettings_Tables(t *testing.T) {
	tables, err := Settings{}.Tables()
	require.NoError(t, err)
	assert.NotEmpty(t, tables)

	_, err = Settings{TablesPath: filepath.Join(t.TempDir(), "missing.yaml")}.Tables()
	assert.Error(t, err)
}

func TestSettings_TaxYear(t *testing.T) {
	tables := domain.TaxTables{2024: {}, 2025: {}}
	assert.Equal(t, domain.TaxYear(2025), Settings{}.TaxYear(tables))
	assert.Equal(t, domain.TaxYear(2024), Settings{Year: 2024}.TaxYear(tables))
}

func TestSettings_SlogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		level, err := Settings{LogLevel: tt.level}.SlogLevel()
		require.NoError(t, err)
		assert.Equal(t, tt.expected, level, "level %q", tt.level)
	}

	_, err := Settings{LogLevel: "verbose"}.SlogLevel()
	assert.Error(t, err)
}
