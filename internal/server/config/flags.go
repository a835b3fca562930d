package config

import (
	"flag"
	"os"

	"github.com/powerdown/wikipost/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   bind address for the HTTP endpoint
//	-d string   sqlite database path
//	-b string   S3 bucket name
//	-e string   S3 base endpoint URL
//
// Args are filtered through flagx.FilterArgs so flags owned by other
// components pass through untouched.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-b", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointAddr, "a", cfg.EndpointAddr, "address and port to serve on")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "sqlite database path")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket for media")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint URL")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
