package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophmovies/internal/client/client"
	"github.com/dmitrijs2005/gophmovies/internal/client/config"
	"github.com/dmitrijs2005/gophmovies/internal/client/services"
	"github.com/dmitrijs2005/gophmovies/internal/common"
	"github.com/dmitrijs2005/gophmovies/internal/logging"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

type App struct {
	config  *config.Config
	remote  client.Client
	svc     services.MovieService
	browser *services.Browser
	log     logging.Logger
	db      *sql.DB

	reader *bufio.Reader
	out    io.Writer

	mu   sync.RWMutex
	mode Mode

	// owned by the REPL goroutine
	stream services.Stream
}

// NewApp opens the cache at c.DatabasePath and wires the catalog client,
// the movie service and the search pipeline. When c.APIToken is empty the
// token is read from the terminal.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	reader := bufio.NewReader(os.Stdin)

	token := c.APIToken
	if token == "" {
		t, err := promptToken(reader, os.Stdout)
		if err != nil {
			return nil, err
		}
		token = t
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	remote := client.NewHTTPClient(c.APIBaseURL, token, c.RequestTimeout)
	svc := services.NewMovieService(remote, db, log, c.PageSize)

	a := newApp(c, remote, svc, log, reader, os.Stdout)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, remote client.Client, svc services.MovieService, log logging.Logger, reader *bufio.Reader, out io.Writer) *App {
	return &App{
		config:  c,
		remote:  remote,
		svc:     svc,
		browser: services.NewBrowser(svc, c.SearchDebounce),
		log:     log,
		reader:  reader,
		out:     out,
	}
}

func promptToken(reader *bufio.Reader, w io.Writer) (string, error) {
	b, err := GetToken(reader, w)
	if err != nil {
		return "", fmt.Errorf("failed to read API token: %w", err)
	}
	defer common.WipeByteArray(b)

	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", fmt.Errorf("API token is required: %w", common.ErrorInvalidInput)
	}
	return token, nil
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "switched mode", "mode", mode)
	}
}

// Run starts the REPL and blocks until the user exits. The cache is closed
// on return.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.db != nil {
			if err := a.db.Close(); err != nil {
				a.log.Error(ctx, "error closing database", "error", err)
			}
		}
	}()
	a.Root(ctx)
}

// checkOnline probes the catalog once. Unreachable means offline; a catalog
// that answers but rejects the token means disabled.
func (a *App) checkOnline(ctx context.Context) {
	timeout := a.config.RequestTimeout
	if timeout <= 0 || timeout > 3*time.Second {
		timeout = 3 * time.Second
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	err := a.remote.Ping(pctx)
	cancel()

	switch {
	case err == nil:
		a.setMode(ctx, ModeOnline)
	case errors.Is(err, client.ErrUnauthorized):
		a.log.Warn(ctx, "catalog rejected the token", "error", err)
		a.setMode(ctx, ModeDisabled)
	case ctx.Err() != nil:
		// shutting down, keep the last mode
	default:
		a.log.Debug(ctx, "ping failed", "error", err)
		a.setMode(ctx, ModeOffline)
	}
}

// StartOnlineStatusWatcher probes the catalog every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
