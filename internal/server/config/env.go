package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// envKeys maps recognised environment variables onto koanf paths. Anything
// not listed here is ignored.
var envKeys = map[string]string{
	"HOST":                "http.host",
	"PORT":                "http.port",
	"ACCESS_TOKEN_SECRET": "token.secret",
	"TOKEN_TTL":           "token.ttl",
	"STORE_DRIVER":        "store.driver",
	"DB_URI":              "db.uri",
	"DB_NAME":             "db.name",
	"DB_USERNAME":         "db.username",
	"DB_PASSWORD":         "db.password",
	"ALLOWED_ORIGINS":     "cors.origins",
	"APP_ENV":             "app.env",
	"COOKIE_SECURE":       "cookie.secure",
	"COOKIE_SAMESITE":     "cookie.samesite",
	"REQUEST_TIMEOUT":     "http.request_timeout",
	"SHUTDOWN_TIMEOUT":    "http.shutdown_timeout",
	"LOG_LEVEL":           "log.level",
	"LOG_FORMAT":          "log.format",
	"S3_ROOT_USER":        "s3.user",
	"S3_ROOT_PASSWORD":    "s3.password",
	"S3_BUCKET":           "s3.bucket",
	"S3_REGION":           "s3.region",
	"S3_BASE_ENDPOINT":    "s3.endpoint",
	"S3_PRESIGN_TTL":      "s3.presign_ttl",
}

// parseEnv overlays values from the process environment. HOST and PORT are
// combined into EndpointAddrHTTP; PORT alone keeps listening on all
// interfaces.
func parseEnv(config *Config) error {
	k := koanf.New(".")
	provider := env.Provider("", ".", func(s string) string {
		return envKeys[s]
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	if k.Exists("http.port") {
		config.EndpointAddrHTTP = k.String("http.host") + ":" + k.String("http.port")
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"token.secret", &config.SecretKey},
		{"store.driver", &config.StoreDriver},
		{"db.uri", &config.DatabaseURI},
		{"db.name", &config.DatabaseName},
		{"db.username", &config.DatabaseUser},
		{"db.password", &config.DatabasePassword},
		{"cookie.samesite", &config.CookieSameSite},
		{"log.level", &config.LogLevel},
		{"log.format", &config.LogFormat},
		{"s3.user", &config.S3RootUser},
		{"s3.password", &config.S3RootPassword},
		{"s3.bucket", &config.S3Bucket},
		{"s3.region", &config.S3Region},
		{"s3.endpoint", &config.S3BaseEndpoint},
	}
	for _, s := range strs {
		if k.Exists(s.key) {
			*s.dst = k.String(s.key)
		}
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"token.ttl", &config.TokenTTL},
		{"http.request_timeout", &config.RequestTimeout},
		{"http.shutdown_timeout", &config.ShutdownTimeout},
		{"s3.presign_ttl", &config.S3PresignTTL},
	}
	for _, d := range durations {
		if !k.Exists(d.key) {
			continue
		}
		v, err := time.ParseDuration(k.String(d.key))
		if err != nil {
			return fmt.Errorf("env %s: %w", d.key, err)
		}
		*d.dst = v
	}

	if k.Exists("cors.origins") {
		config.AllowedOrigins = splitList(k.String("cors.origins"))
	}

	if k.Exists("app.env") {
		production, err := parseMode(k.String("app.env"))
		if err != nil {
			return fmt.Errorf("env APP_ENV: %w", err)
		}
		config.Production = production
	}

	if k.Exists("cookie.secure") {
		secure, err := strconv.ParseBool(k.String("cookie.secure"))
		if err != nil {
			return fmt.Errorf("env COOKIE_SECURE: %w", err)
		}
		config.CookieSecure = secure
	}

	return nil
}
