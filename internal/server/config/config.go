// Package config handles configuration for the server, including defaults,
// JSON overlay, environment variables and command-line flags.
package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MethuParoi/share-bites-server-codebase/internal/flagx"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Config holds runtime settings for the ShareBites server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the REST API.
//   - SecretKey: HMAC secret for signing session JWTs (HS256). Empty means
//     tokens cannot be issued.
//   - TokenTTL: validity window of an issued session token.
//   - StoreDriver: "mongo" or "memory".
//   - DatabaseURI / DatabaseName / DatabaseUser / DatabasePassword: MongoDB
//     connection settings. User and password are optional and override any
//     credentials embedded in the URI.
//   - AllowedOrigins: CORS origins allowed to send credentials.
//   - Production: deployment mode; drives cookie defaults.
//   - CookieSecure / CookieSameSite: explicit cookie overrides.
//   - RequestTimeout: per-request deadline applied to store calls.
//   - S3*: object storage settings for food photo uploads. An empty bucket
//     disables uploads.
type Config struct {
	EndpointAddrHTTP string
	SecretKey        string
	TokenTTL         time.Duration
	StoreDriver      string
	DatabaseURI      string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string
	AllowedOrigins   []string
	Production       bool
	CookieSecure     bool
	CookieSameSite   string
	RequestTimeout   time.Duration
	ShutdownTimeout  time.Duration
	LogLevel         string
	LogFormat        string
	S3RootUser       string
	S3RootPassword   string
	S3Bucket         string
	S3Region         string
	S3BaseEndpoint   string
	S3PresignTTL     time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":3000"
	c.SecretKey = ""
	c.TokenTTL = 5 * time.Hour
	c.StoreDriver = StoreMongo
	c.DatabaseURI = "mongodb://localhost:27017"
	c.DatabaseName = "share-bites"
	c.AllowedOrigins = []string{"http://localhost:5173"}
	c.Production = false
	c.CookieSecure = false
	c.CookieSameSite = ""
	c.RequestTimeout = 10 * time.Second
	c.ShutdownTimeout = 15 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.S3Region = "us-east-1"
	c.S3PresignTTL = 15 * time.Minute
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line
// flags. args are the program arguments without the binary name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, flagx.ConfigFile(args)); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	return cfg, nil
}

// CookieSecurity resolves the Secure and SameSite attributes of the session
// cookie. An explicit CookieSameSite wins; otherwise production uses None
// and development uses Strict. SameSite=None always forces Secure.
func (c *Config) CookieSecurity() (bool, http.SameSite) {
	sameSite := http.SameSiteStrictMode
	if c.Production {
		sameSite = http.SameSiteNoneMode
	}

	switch strings.ToLower(c.CookieSameSite) {
	case "strict":
		sameSite = http.SameSiteStrictMode
	case "lax":
		sameSite = http.SameSiteLaxMode
	case "none":
		sameSite = http.SameSiteNoneMode
	}

	secure := c.CookieSecure || c.Production || sameSite == http.SameSiteNoneMode
	return secure, sameSite
}

// UploadsEnabled reports whether food photo uploads are configured.
func (c *Config) UploadsEnabled() bool {
	return c.S3Bucket != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseMode(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "production", "prod":
		return true, nil
	case "development", "dev", "":
		return false, nil
	default:
		return false, fmt.Errorf("unknown mode %q", mode)
	}
}
