package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/billed/internal/client/client"
	"github.com/dmitrijs2005/billed/internal/client/config"
	"github.com/dmitrijs2005/billed/internal/client/models"
	"github.com/dmitrijs2005/billed/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/billed/internal/client/services"
	"github.com/dmitrijs2005/billed/internal/client/session"
	"github.com/dmitrijs2005/billed/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type billsLister interface {
	GetBills(ctx context.Context) ([]*models.Bill, error)
	GetBill(ctx context.Context, id string) (*models.Bill, error)
}

type submitter interface {
	HandleChangeFile(ctx context.Context, file models.BillFile) error
	HandleSubmit(ctx context.Context, form services.BillForm) (*models.Bill, error)
	Draft() services.Draft
}

type App struct {
	authService   services.AuthService
	billsService  billsLister
	newSubmission func(nav models.Navigator) submitter
	router        *router
	logger        logging.Logger
	db            *sql.DB

	reader *bufio.Reader
	out    io.Writer

	checkInterval time.Duration

	mu   sync.RWMutex
	user *models.User
	mode Mode
}

func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init local database: %w", err)
	}

	apiClient, err := client.NewGRPCClient(cfg.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	sess := session.NewAccessor(metadata.NewSQLiteRepository(db))

	a := &App{
		authService:   services.NewAuthService(apiClient, sess),
		billsService:  services.NewBillsService(apiClient, logger),
		router:        &router{},
		logger:        logger.With("module", "cli"),
		db:            db,
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
		checkInterval: cfg.OnlineCheckInterval,
	}
	a.newSubmission = func(nav models.Navigator) submitter {
		return services.NewSubmissionService(apiClient, sess, nav, logger)
	}

	return a, nil
}

// Run resumes a stored session, starts the connectivity watcher and serves
// the REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer func() {
		_ = a.authService.Close(ctx)
		if a.db != nil {
			_ = a.db.Close()
		}
	}()

	fmt.Fprintln(a.out, "Billed (type 'help' for commands)")

	if u, err := a.authService.Restore(ctx); err != nil {
		a.logger.Warn(ctx, "cannot restore session", "error", err)
	} else if u != nil {
		a.setUser(u)
		a.router.Navigate(models.RouteBills)
	} else {
		a.router.Navigate(models.RouteLogin)
	}
	_ = a.Render(ctx)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.checkInterval)

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user != nil
}

func (a *App) setUser(u *models.User) {
	a.mu.Lock()
	a.user = u
	a.mu.Unlock()
}

func (a *App) currentMode() Mode {
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
		a.logger.Info(ctx, "connection mode changed", "mode", string(mode))
	}
}

func (a *App) getStatus() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var parts []string
	if a.user != nil && a.user.Email != "" {
		parts = append(parts, a.user.Email)
	}
	if a.mode != "" {
		parts = append(parts, string(a.mode))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

// StartOnlineStatusWatcher pings the server every interval until ctx is done.
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

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.authService.Ping(pctx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}
