package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		start       Config
		expected    Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret", "-g", "HS512",
				"-t", "10", "-r", "60", "-k", "4", "-e", "prod",
			},
			expected: Config{
				Env:                          "prod",
				EndpointAddrHTTP:             "127.0.0.1:9090",
				DatabaseDSN:                  "db",
				SecretKey:                    "secret",
				SigningAlgorithm:             "HS512",
				AccessTokenValidityDuration:  10 * time.Minute,
				RefreshTokenValidityDuration: 60 * time.Minute,
				BcryptCost:                   4,
			},
		},
		{
			name:     "unset minute flags keep finer durations",
			args:     []string{"-c", "cfg.json", "-s", "k"},
			start:    Config{AccessTokenValidityDuration: 90 * time.Second, RefreshTokenValidityDuration: time.Hour},
			expected: Config{SecretKey: "k", AccessTokenValidityDuration: 90 * time.Second, RefreshTokenValidityDuration: time.Hour},
		},
		{
			name:        "bad int panics",
			args:        []string{"-t", "soon"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)

			config := tt.start

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(&config) })
				return
			}

			require.NotPanics(t, func() { parseFlags(&config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
