package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/authservice/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   address of the auth HTTP API (default from Config)
//	-i int      online check interval in seconds (default from Config)
//
// os.Args is filtered down to these flags first so -c can share it.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address of the auth server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
