package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
port = 5432
user = "reservations"
password = "secret"
dbname = "reservations"

[kafka]
enabled = true
brokers = "kafka-1:9092, kafka-2:9092,"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 60, cfg.Scheduling.MinLeadTimeMinutes)
	assert.Equal(t, "catalog", cfg.Scheduling.CapacityMode)
	assert.Equal(t, "reservation.committed.v1", cfg.Kafka.Topic)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.BrokerList())
	assert.Equal(t, "host=localhost port=5432 user=reservations password=secret dbname=reservations sslmode=disable",
		cfg.Database.DSN())

	settings := cfg.Scheduling.Settings()
	assert.Equal(t, domain.CapacityCatalog, settings.CapacityMode)
	assert.Equal(t, "UTC", settings.Timezone)
	assert.Equal(t, 1, settings.PoolSize)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing database",
			content: `[server]` + "\n" + `http_port = 8080`,
		},
		{
			name: "unknown capacity mode",
			content: `
[database]
host = "localhost"
dbname = "reservations"
[scheduling]
capacity_mode = "elastic"
`,
		},
		{
			name: "redis without addr",
			content: `
[database]
host = "localhost"
dbname = "reservations"
[redis]
enabled = true
`,
		},
		{
			name: "bad timezone",
			content: `
[database]
host = "localhost"
dbname = "reservations"
[scheduling]
timezone = "Mars/Olympus"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
