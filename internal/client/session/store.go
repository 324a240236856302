// Package session owns the authenticated-user state of the storefront
// client: the current user, the persisted bearer token, and the resolution
// state of "is there a logged-in user". It is the only writer of the
// persisted session keys and keeps the API client's bearer header in sync
// with the session lifetime.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/dbx"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// State describes where the store is in its lifecycle. It starts Unresolved,
// passes through Resolving once while Restore verifies a persisted token,
// and then stays in Authenticated or Anonymous until the next mutation.
type State string

const (
	StateUnresolved    State = "unresolved"
	StateResolving     State = "resolving"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

// AuthResult is the tagged outcome of Login and Register. These operations
// never fail with an error value: network and credential failures are
// normalized into OK=false plus a human-readable Message.
type AuthResult struct {
	OK      bool
	User    *models.User
	Message string
}

// Store is the session state manager. All methods are safe for concurrent
// use; listeners registered via Subscribe are invoked after each state
// transition, outside the store's lock.
type Store struct {
	api api.Client
	db  *sql.DB
	log logging.Logger

	mu        sync.RWMutex
	state     State
	user      *models.User
	listeners []func(State)
}

func NewStore(apiClient api.Client, db *sql.DB, log logging.Logger) *Store {
	return &Store{
		api:   apiClient,
		db:    db,
		log:   log.With("component", "session"),
		state: StateUnresolved,
	}
}

// Subscribe registers fn to be called with the new state after every
// transition. Intended for the presentation layer; navigation decisions
// (e.g. leaving an authenticated view after logout) belong to the caller.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loading reports whether a session restore is in flight. Callers gate UI
// on this instead of racing Restore.
func (s *Store) Loading() bool {
	return s.State() == StateResolving
}

// IsAuthenticated reports whether a user is logged in.
func (s *Store) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// User returns a copy of the authenticated user, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Restore checks the persisted token against the backend. Called once at
// process start, before any authenticated UI renders.
//
// With no persisted token+user the store goes straight to Anonymous. With a
// persisted token, the token is attached to the API client and verified via
// the profile endpoint; the server's user wins over the cached copy. Any
// failure (transport, rejection, locally expired token) wipes the persisted
// session and ends in Anonymous. Restore never returns an error.
func (s *Store) Restore(ctx context.Context) {
	s.transition(StateResolving, nil)

	repo := storage.NewSQLiteRepository(s.db)

	token, err := repo.Get(ctx, storage.KeyToken)
	if err != nil {
		s.log.Error(ctx, "failed to read persisted token", "error", err)
	}
	cached, err := repo.Get(ctx, storage.KeyUserInfo)
	if err != nil {
		s.log.Error(ctx, "failed to read persisted user", "error", err)
	}

	if len(token) == 0 || len(cached) == 0 {
		s.transition(StateAnonymous, nil)
		return
	}

	if tokenExpired(string(token)) {
		s.log.Info(ctx, "persisted token expired, discarding")
		s.wipe(ctx)
		s.transition(StateAnonymous, nil)
		return
	}

	s.api.SetToken(string(token))

	user, err := s.api.Profile(ctx)
	if err != nil {
		s.log.Warn(ctx, "session restore failed", "error", err)
		s.wipe(ctx)
		s.transition(StateAnonymous, nil)
		return
	}

	// The server copy is authoritative; refresh the cache.
	if data, err := json.Marshal(user); err == nil {
		if err := repo.Set(ctx, storage.KeyUserInfo, data); err != nil {
			s.log.Warn(ctx, "failed to refresh cached user", "error", err)
		}
	}

	s.transition(StateAuthenticated, user)
}

// Login authenticates with the backend. On success the token+user pair is
// persisted atomically, the bearer header is attached, and the store becomes
// Authenticated. On failure the state is unchanged.
func (s *Store) Login(ctx context.Context, email, password string) AuthResult {
	user, token, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.log.Info(ctx, "login failed", "error", err)
		return AuthResult{Message: err.Error()}
	}
	return s.establish(ctx, user, token)
}

// Register creates an account and establishes the session exactly as Login
// does.
func (s *Store) Register(ctx context.Context, name, email, password string) AuthResult {
	user, token, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		s.log.Info(ctx, "registration failed", "error", err)
		return AuthResult{Message: err.Error()}
	}
	return s.establish(ctx, user, token)
}

// Logout synchronously wipes the persisted session, detaches the bearer
// header, and transitions to Anonymous. It is safe to call in any state.
func (s *Store) Logout() {
	ctx := context.Background()
	s.wipe(ctx)
	s.transition(StateAnonymous, nil)
}

func (s *Store) establish(ctx context.Context, user *models.User, token string) AuthResult {
	if err := s.persist(ctx, token, user); err != nil {
		// The in-memory session is still valid; the user just won't survive
		// a restart.
		s.log.Error(ctx, "failed to persist session", "error", err)
	}
	s.api.SetToken(token)
	s.transition(StateAuthenticated, user)
	return AuthResult{OK: true, User: user}
}

// persist writes the token and the cached user in one transaction so the
// pair can never be observed half-set.
func (s *Store) persist(ctx context.Context, token string, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := storage.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, storage.KeyToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, storage.KeyUserInfo, data)
	})
}

// wipe removes the persisted token+user pair and detaches the bearer header.
func (s *Store) wipe(ctx context.Context) {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := storage.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, storage.KeyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, storage.KeyUserInfo)
	})
	if err != nil {
		s.log.Error(ctx, "failed to wipe persisted session", "error", err)
	}
	s.api.ClearToken()
}

func (s *Store) transition(state State, user *models.User) {
	s.mu.Lock()
	s.state = state
	s.user = user
	listeners := make([]func(State), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

// tokenExpired reports whether tok is a JWT with an exp claim in the past.
// Opaque tokens (anything that does not parse as a JWT) never count as
// expired; the server stays authoritative for those.
func tokenExpired(tok string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
