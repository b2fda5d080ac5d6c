package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "data/delivery_data.csv", cfg.Paths.DataFile)
	assert.Equal(t, "output/reports", cfg.Paths.ReportsDir)

	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "port too large",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "missing data file path",
			mutate:  func(c *Config) { c.Paths.DataFile = "" },
			wantErr: true,
		},
		{
			name:    "negative read timeout",
			mutate:  func(c *Config) { c.Server.ReadTimeout = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
server:
  port: 9090
paths:
  data_file: testdata/orders.csv
  reports_dir: out/reports
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := loadFromFile(configPath)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "testdata/orders.csv", cfg.Paths.DataFile)
	assert.Equal(t, "out/reports", cfg.Paths.ReportsDir)

	// Defaults survive for fields the file does not set
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestEnsureDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := Default()
	cfg.Paths.ReportsDir = filepath.Join(tmpDir, "reports")
	cfg.Paths.LogsDir = filepath.Join(tmpDir, "logs")

	require.NoError(t, cfg.EnsureDirectories())

	for _, dir := range []string{cfg.Paths.ReportsDir, cfg.Paths.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestAddrAndReportPath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "localhost:8080", cfg.Addr())

	assert.Equal(t, filepath.Join("output/reports", "r.pdf"), cfg.ReportPath("r.pdf"))
	assert.Equal(t, "/tmp/abs.pdf", cfg.ReportPath("/tmp/abs.pdf"))
}
