package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/medbook/internal/client/api"
	"github.com/dmitrijs2005/medbook/internal/client/auth"
	"github.com/dmitrijs2005/medbook/internal/client/guard"
	"github.com/dmitrijs2005/medbook/internal/client/routes"
	"github.com/dmitrijs2005/medbook/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Pinger probes the backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TokenSource exposes the stored access token for `whoami`.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Deps are the collaborators of an App.
type Deps struct {
	API    *api.Service
	Auth   *auth.Machine
	Nav    *routes.Navigator
	Pinger Pinger
	Tokens TokenSource
	Log    logging.Logger

	In  io.Reader
	Out io.Writer

	OnlineCheckInterval time.Duration
}

type App struct {
	api      *api.Service
	auth     *auth.Machine
	nav      *routes.Navigator
	pinger   Pinger
	tokens   TokenSource
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	interval time.Duration

	mu   sync.Mutex
	mode Mode
}

func NewApp(d Deps) *App {
	a := &App{
		api:      d.API,
		auth:     d.Auth,
		nav:      d.Nav,
		pinger:   d.Pinger,
		tokens:   d.Tokens,
		log:      d.Log,
		reader:   bufio.NewReader(d.In),
		out:      &syncWriter{w: d.Out},
		interval: d.OnlineCheckInterval,
	}
	if a.log == nil {
		a.log = logging.Discard()
	}
	if a.interval <= 0 {
		a.interval = 3 * time.Second
	}

	// Failed logins and registrations surface through the state, like a
	// form showing the context error.
	a.auth.Subscribe(func(s auth.State) {
		if s.Phase == auth.PhaseFailed && s.Error != "" {
			a.notify(s.Error)
		}
	})
	return a
}

// Run restores the session, shows the landing page, starts the
// connectivity watcher and blocks in the REPL until the user exits or in
// is exhausted.
func (a *App) Run(ctx context.Context) error {
	st, err := a.auth.Restore(ctx)
	if err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
	}

	a.println("Welcome to MedBook (type 'help' for commands)")
	if st.IsAuthenticated {
		a.printf("Signed in as %s (%s)\n", st.User.DisplayName(), st.User.Role)
		_ = a.Open(ctx, guard.DashboardPath)
	} else {
		_ = a.Open(ctx, "/")
	}

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(wctx, a.interval)

	runREPL(ctx, a, a.status, a.reader, a.out)
	return nil
}

// SessionExpired is installed as the gateway's session-expired handler:
// the stored session is already gone, so drop the auth state and move to
// the login page.
func (a *App) SessionExpired() {
	ctx := context.Background()
	a.auth.Expire(ctx)
	a.nav.ForceLogin()
	a.notify("Your session has expired, please log in again")
}

func (a *App) isLoggedIn() bool {
	return a.auth.State().IsAuthenticated
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
		a.printf("Switched to %s mode\n", mode)
	}
}

// status is the text shown inside the prompt.
func (a *App) status() string {
	s := ""
	if st := a.auth.State(); st.IsAuthenticated {
		s = fmt.Sprintf("%s/%s ", st.User.DisplayName(), st.User.Role)
	}
	if m := a.Mode(); m != "" {
		s += string(m) + " "
	}
	return s + a.nav.Current().Path
}

// StartOnlineStatusWatcher pings the backend every interval and flips the
// mode between online and offline until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	check := func() {
		pctx, cancel := context.WithTimeout(ctx, interval)
		err := a.pinger.Ping(pctx)
		cancel()

		if err != nil {
			if ctx.Err() == nil {
				a.setMode(ModeOffline)
			}
			return
		}
		a.setMode(ModeOnline)
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

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// syncWriter serializes writes from the REPL, the watcher and the
// session-expired hook.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
