package cli

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/authservice/internal/client/client"
	"github.com/dmitrijs2005/authservice/internal/client/config"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// apiClient is the server surface the CLI uses; *client.HTTPClient
// satisfies it.
type apiClient interface {
	Ping(ctx context.Context) error
	Signup(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (*client.Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (*client.Tokens, error)
	Me(ctx context.Context, accessToken string) (*client.Profile, error)
	ChangePassword(ctx context.Context, accessToken, oldPassword, newPassword string) error
}

type App struct {
	config *config.Config
	api    apiClient
	reader *bufio.Reader
	out    io.Writer

	tokens *client.Tokens
	email  string

	mu   sync.Mutex
	mode Mode
}

func NewApp(c *config.Config) *App {
	api := client.NewHTTPClient(c.ServerEndpointAddr, c.RequestTimeout)
	return newApp(c, api, os.Stdin, os.Stdout)
}

func newApp(c *config.Config, api apiClient, in io.Reader, out io.Writer) *App {
	return &App{config: c, api: api, reader: bufio.NewReader(in), out: out}
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) getMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) isLoggedIn() bool {
	return a.tokens != nil
}

func (a *App) status() string {
	s := string(a.getMode())
	if a.email != "" {
		s = a.email + " " + s
	}
	return s
}

// Run starts the connectivity watcher and the REPL; it returns when the
// user exits or input ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	check := func() {
		ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		if err := a.api.Ping(ctx); err != nil {
			a.setMode(ModeOffline)
		} else {
			a.setMode(ModeOnline)
		}
	}

	check()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			check()
		case <-ctx.Done():
			return
		}
	}
}
