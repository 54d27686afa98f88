package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/authservice/internal/flagx"
)

// parseFlags overlays selected Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-d string   database DSN
//	-s string   JWT HMAC secret key
//	-g string   JWT signing algorithm (HS256, HS384, HS512)
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-k int      bcrypt cost
//	-e string   environment (local, dev, prod)
//
// Only these flags are looked at, so -c and -env-file can share os.Args.
func parseFlags(config *Config) {
	filtered := flagx.FilterArgs(args(), []string{"-a", "-d", "-s", "-g", "-t", "-r", "-k", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.SigningAlgorithm, "g", config.SigningAlgorithm, "jwt signing algorithm")

	accessTokenValidityDuration := fs.Int("t", 0, "access token validity (in minutes)")
	refreshTokenValidityDuration := fs.Int("r", 0, "refresh token validity (in minutes)")

	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.Env, "e", config.Env, "environment")

	if err := fs.Parse(filtered); err != nil {
		panic(err)
	}

	// Minute flags only override when given, so finer values from JSON or
	// env survive.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		case "r":
			config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidityDuration) * time.Minute
		}
	})
}
