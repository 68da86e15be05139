package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/MethuParoi/share-bites-server-codebase/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON config file. Duration
// fields accept either "5h"-style strings or integer nanoseconds. Only
// non-empty values are copied onto the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	SecretKey        string         `json:"secret_key"`
	TokenTTL         timex.Duration `json:"token_ttl"`
	StoreDriver      string         `json:"store_driver"`
	DatabaseURI      string         `json:"database_uri"`
	DatabaseName     string         `json:"database_name"`
	DatabaseUser     string         `json:"database_user"`
	DatabasePassword string         `json:"database_password"`
	AllowedOrigins   []string       `json:"allowed_origins"`
	Mode             string         `json:"mode"`
	CookieSecure     *bool          `json:"cookie_secure"`
	CookieSameSite   string         `json:"cookie_same_site"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	ShutdownTimeout  timex.Duration `json:"shutdown_timeout"`
	LogLevel         string         `json:"log_level"`
	LogFormat        string         `json:"log_format"`
	S3RootUser       string         `json:"s3_root_user"`
	S3RootPassword   string         `json:"s3_root_password"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
	S3PresignTTL     timex.Duration `json:"s3_presign_ttl"`
}

// parseJSON overlays values from the JSON file at path. An empty path is a
// no-op.
func parseJSON(config *Config, path string) error {
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.SecretKey, c.SecretKey)
	setDuration(&config.TokenTTL, c.TokenTTL)
	setString(&config.StoreDriver, c.StoreDriver)
	setString(&config.DatabaseURI, c.DatabaseURI)
	setString(&config.DatabaseName, c.DatabaseName)
	setString(&config.DatabaseUser, c.DatabaseUser)
	setString(&config.DatabasePassword, c.DatabasePassword)
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.Mode != "" {
		production, err := parseMode(c.Mode)
		if err != nil {
			return err
		}
		config.Production = production
	}
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
	setString(&config.CookieSameSite, c.CookieSameSite)
	setDuration(&config.RequestTimeout, c.RequestTimeout)
	setDuration(&config.ShutdownTimeout, c.ShutdownTimeout)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setDuration(&config.S3PresignTTL, c.S3PresignTTL)

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
