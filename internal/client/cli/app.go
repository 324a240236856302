package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/cart"
	"github.com/dmitrijs2005/storefront/internal/client/catalog"
	"github.com/dmitrijs2005/storefront/internal/client/checkout"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// App wires the storefront client together: one API client, one database,
// the two stores, and the services the REPL commands call. Stores are
// constructed once here and passed by reference; there are no package-level
// singletons.
type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	session  *session.Store
	cart     *cart.Store
	catalog  *catalog.Service
	checkout *checkout.Service
	reader   *bufio.Reader
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient := api.NewHTTPClient(cfg.BaseURL, cfg.RequestTimeout)
	repo := storage.NewSQLiteRepository(db)

	sessionStore := session.NewStore(apiClient, db, log)
	cartStore := cart.NewStore(repo, log)

	return &App{
		config:   cfg,
		log:      log,
		db:       db,
		session:  sessionStore,
		cart:     cartStore,
		catalog:  catalog.NewService(apiClient),
		checkout: checkout.NewService(apiClient, cartStore, sessionStore, log),
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores persisted state and enters the REPL. It blocks until the
// user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Welcome to the storefront CLI (type 'help' for commands)")

	printlnFn("Checking session ...")
	a.session.Restore(ctx)
	a.cart.Restore(ctx)

	if u := a.session.User(); u != nil {
		printlnFn(fmt.Sprintf("Welcome back, %s!", u.Name))
	}

	// The store only announces the transition; leaving the authenticated
	// view is decided here.
	a.session.Subscribe(func(st session.State) {
		if st == session.StateAnonymous {
			printlnFn("You are browsing as a guest now")
		}
	})

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

// Close releases the local database.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// getStatus renders the prompt suffix: user name (if logged in) and the
// number of items in the cart.
func (a *App) getStatus() string {
	s := ""
	if u := a.session.User(); u != nil {
		s = u.Name
	} else {
		s = "guest"
	}
	if n := a.cart.ItemCount(); n > 0 {
		s = fmt.Sprintf("%s, %d in cart", s, n)
	}
	return fmt.Sprintf("(%s)", s)
}
