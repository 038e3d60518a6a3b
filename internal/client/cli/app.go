package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/openmat/internal/client/client"
	"github.com/dmitrijs2005/openmat/internal/client/config"
	"github.com/dmitrijs2005/openmat/internal/client/services"
	"github.com/dmitrijs2005/openmat/internal/client/session"
	"github.com/dmitrijs2005/openmat/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Services groups the use cases the App drives.
type Services struct {
	Auth      services.AuthService
	Academies services.AcademyService
	Orders    services.OrderService
	Owner     services.OwnerService
	Profile   services.ProfileService
}

// NewServices builds every service over one API client.
func NewServices(c client.Client) Services {
	return Services{
		Auth:      services.NewAuthService(c),
		Academies: services.NewAcademyService(c),
		Orders:    services.NewOrderService(c),
		Owner:     services.NewOwnerService(c),
		Profile:   services.NewProfileService(c),
	}
}

type App struct {
	config  *config.Config
	session *session.Store
	svc     Services
	log     logging.Logger

	reader *bufio.Reader
	out    io.Writer

	mu   sync.Mutex
	mode Mode
	// academy owned by the user, remembered after the first dashboard load
	ownedAcademy int64
}

func NewApp(cfg *config.Config, s *session.Store, svc Services, log logging.Logger) *App {
	return &App{
		config:  cfg,
		session: s,
		svc:     svc,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		mode:    ModeOnline,
	}
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	ctx = session.WithSession(ctx, a.session)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	go a.watchSession(ctx)

	fmt.Fprintln(a.out, "Welcome to OpenMat CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", mode)
	}
}

// StartOnlineStatusWatcher pings the API every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) probe(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := a.svc.Auth.Ping(pctx); err != nil && errors.Is(err, client.ErrUnavailable) {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// watchSession tells the user when a signed-in session ends without a
// logout command (the server rejected the token).
func (a *App) watchSession(ctx context.Context) {
	updates, unsubscribe := a.session.Subscribe()
	defer unsubscribe()

	wasLoggedIn := a.session.Snapshot().IsLoggedIn
	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if wasLoggedIn && !snap.IsLoggedIn && !snap.Loading {
				a.log.Info(ctx, "signed out", "state", snap.State)
			}
			wasLoggedIn = snap.IsLoggedIn
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	snap := a.session.Snapshot()
	s := ""
	if snap.IsLoggedIn {
		s = snap.User.Username + " "
	}
	return fmt.Sprintf("(%s%s)", s, a.Mode())
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().IsLoggedIn
}

func (a *App) isOwner() bool {
	snap := a.session.Snapshot()
	return snap.IsLoggedIn && snap.User.IsOwner()
}

// userMessage renders an error for display: the server's own message when
// it sent one.
func userMessage(err error) string {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	case errors.Is(err, client.ErrUnauthorized):
		return "not authorized"
	}
	if msg := client.ServerMessage(err); msg != "" {
		return msg
	}
	return err.Error()
}
