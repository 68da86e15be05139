package config

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":3000", c.EndpointAddrHTTP)
	assert.Equal(t, "", c.SecretKey)
	assert.Equal(t, 5*time.Hour, c.TokenTTL)
	assert.Equal(t, StoreMongo, c.StoreDriver)
	assert.Equal(t, "mongodb://localhost:27017", c.DatabaseURI)
	assert.Equal(t, "share-bites", c.DatabaseName)
	assert.Equal(t, []string{"http://localhost:5173"}, c.AllowedOrigins)
	assert.False(t, c.Production)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 15*time.Second, c.ShutdownTimeout)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.Equal(t, 15*time.Minute, c.S3PresignTTL)
	assert.False(t, c.UploadsEnabled())
}

func TestLoadConfig_LayersApplyInOrder(t *testing.T) {
	path := writeTempJSON(t, t.TempDir(), "cfg.json", map[string]any{
		"secret_key":    "from-json",
		"database_name": "json-db",
		"token_ttl":     "1h",
	})
	t.Setenv("ACCESS_TOKEN_SECRET", "from-env")
	t.Setenv("DB_URI", "mongodb://env-host:27017")

	c, err := LoadConfig([]string{"-c", path, "-a", "127.0.0.1:8080", "-n", "flag-db"})
	require.NoError(t, err)

	assert.Equal(t, "from-env", c.SecretKey, "env overrides json")
	assert.Equal(t, "flag-db", c.DatabaseName, "flags override json")
	assert.Equal(t, "mongodb://env-host:27017", c.DatabaseURI)
	assert.Equal(t, time.Hour, c.TokenTTL)
	assert.Equal(t, "127.0.0.1:8080", c.EndpointAddrHTTP)
}

func TestLoadConfig_BadJSONFile(t *testing.T) {
	_, err := LoadConfig([]string{"-c", "/definitely/not/here.json"})
	require.Error(t, err)
}

func TestCookieSecurity(t *testing.T) {
	tests := []struct {
		name         string
		cfg          Config
		wantSecure   bool
		wantSameSite http.SameSite
	}{
		{name: "development defaults", cfg: Config{}, wantSecure: false, wantSameSite: http.SameSiteStrictMode},
		{name: "production defaults", cfg: Config{Production: true}, wantSecure: true, wantSameSite: http.SameSiteNoneMode},
		{name: "explicit strict in production", cfg: Config{Production: true, CookieSameSite: "Strict"}, wantSecure: true, wantSameSite: http.SameSiteStrictMode},
		{name: "explicit secure in development", cfg: Config{CookieSecure: true}, wantSecure: true, wantSameSite: http.SameSiteStrictMode},
		{name: "explicit lax", cfg: Config{CookieSameSite: "Lax"}, wantSecure: false, wantSameSite: http.SameSiteLaxMode},
		{name: "none forces secure", cfg: Config{CookieSameSite: "none"}, wantSecure: true, wantSameSite: http.SameSiteNoneMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secure, sameSite := tt.cfg.CookieSecurity()
			assert.Equal(t, tt.wantSecure, secure)
			assert.Equal(t, tt.wantSameSite, sameSite)
		})
	}
}
