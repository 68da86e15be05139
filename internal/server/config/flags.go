package config

import (
	"flag"
	"io"
	"strings"

	"github.com/MethuParoi/share-bites-server-codebase/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g. ":3000")
//	-d string     MongoDB URI
//	-n string     MongoDB database name
//	-s string     JWT HMAC secret key
//	-t duration   session token validity (e.g. "5h")
//	-m string     mode: development or production
//	-o string     comma-separated CORS origins
//	-store string store driver: mongo or memory
//	-u string     S3 root user
//	-p string     S3 root password
//	-b string     S3 bucket name
//	-g string     S3 region
//	-e string     S3 base endpoint (e.g. "http://127.0.0.1:9000/")
//
// Args are first filtered through flagx.FilterArgs so flags owned by other
// components (such as -c) do not break parsing.
func parseFlags(config *Config, args []string) error {
	owned := []string{"-a", "-d", "-n", "-s", "-t", "-m", "-o", "-store", "-u", "-p", "-b", "-g", "-e"}
	args = flagx.FilterArgs(args, owned)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseURI, "d", config.DatabaseURI, "MongoDB URI")
	fs.StringVar(&config.DatabaseName, "n", config.DatabaseName, "MongoDB database name")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.TokenTTL, "t", config.TokenTTL, "session token validity")
	mode := fs.String("m", "", "mode: development or production")
	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "comma-separated CORS origins")
	fs.StringVar(&config.StoreDriver, "store", config.StoreDriver, "store driver: mongo or memory")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *mode != "" {
		production, err := parseMode(*mode)
		if err != nil {
			return err
		}
		config.Production = production
	}
	config.AllowedOrigins = splitList(*origins)

	return nil
}
