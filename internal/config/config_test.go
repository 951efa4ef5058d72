package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
[database]
host = "localhost"
dbname = "ads_booking"

[wallet_service]
url = "http://wallet:8081"

[geo_service]
url = "http://geo:8082"

[asset_store]
url = "http://assets:8083"
`

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.WalletService.Timeout)
	assert.Equal(t, 15, cfg.AssetStore.Timeout)
	assert.Equal(t, 5, cfg.Redis.PricingTTLSeconds)
	assert.Equal(t, 10, cfg.Booking.ReserveTimeoutSeconds)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "ads-booking-service", cfg.Metrics.ServiceName)
}

func TestLoad_ExplicitValuesWin(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
[server]
http_port = 9090

[booking]
reserve_timeout_seconds = 3
`))

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 3, cfg.Booking.ReserveTimeoutSeconds)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{
			name: "missing database host",
			config: `
[database]
dbname = "ads_booking"
[wallet_service]
url = "http://wallet:8081"
[geo_service]
url = "http://geo:8082"
[asset_store]
url = "http://assets:8083"
`,
		},
		{
			name: "missing wallet url",
			config: `
[database]
host = "localhost"
dbname = "ads_booking"
[geo_service]
url = "http://geo:8082"
[asset_store]
url = "http://assets:8083"
`,
		},
		{
			name: "redis enabled without addr",
			config: minimalConfig + `
[redis]
enabled = true
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.config))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "svc",
		Password: "secret",
		DBName:   "ads_booking",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=db port=5432 user=svc password=secret dbname=ads_booking sslmode=disable",
		cfg.DSN())
}
