package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "db:5432/ads?sslmode=disable")
	t.Setenv("SYNC_RETRY_BASE_DELAY", "250ms")
	t.Setenv("META_CONVERSION_ACTION_TYPES", "lead,purchase")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com,https://admin.example.com")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://postgres:root@db:5432/ads?sslmode=disable", cfg.Database.DSN)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 250*time.Millisecond, cfg.Sync.RetryBaseDelay)
	assert.Equal(t, 30*time.Second, cfg.Sync.RequestTimeout)
	assert.Equal(t, 7, cfg.Sync.DefaultLookbackDays)
	assert.Equal(t, []string{"lead", "purchase"}, cfg.Meta.ConversionActionTypes)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "https://googleads.googleapis.com/v17", cfg.Google.URL)
	assert.Equal(t, "https://graph.facebook.com/v22.0/oauth/access_token", cfg.Meta.TokenURL)
}

func TestSyncLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		want     string
	}{
		{name: "Vazio usa UTC", timezone: "", want: "UTC"},
		{name: "Fuso válido", timezone: "America/Sao_Paulo", want: "America/Sao_Paulo"},
		{name: "Fuso inválido usa UTC", timezone: "Mars/Olympus", want: "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sync{Timezone: tt.timezone}.Location().String())
		})
	}
}
