// Package session holds the operator's authentication state and mirrors it
// into durable storage so it survives console restarts.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/baechuer/barbershop-admin/internal/domain"
	"github.com/baechuer/barbershop-admin/internal/logger"
)

// StorageKey is the fixed namespace the session is persisted under.
const StorageKey = "auth-storage"

const persistVersion = 0

// State is a point-in-time copy of the session.
type State struct {
	Token           string
	User            *domain.User
	IsAuthenticated bool
}

// persisted mirrors the layout the browser front-end kept in local storage.
type persisted struct {
	State struct {
		Token           *string      `json:"token"`
		User            *domain.User `json:"user"`
		IsAuthenticated bool         `json:"isAuthenticated"`
	} `json:"state"`
	Version int `json:"version"`
}

// Store is the single source of truth for the operator session. Every
// mutation replaces the whole state, so readers always see a consistent
// snapshot.
type Store struct {
	mu      sync.RWMutex
	state   State
	storage Storage
	key     string
}

type Option func(*Store)

// WithKey persists under key instead of StorageKey.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// Open creates a store and rehydrates it from storage. A missing entry
// yields an empty session; an unreadable one is discarded.
func Open(ctx context.Context, storage Storage, opts ...Option) (*Store, error) {
	s := &Store{storage: storage, key: StorageKey}
	for _, opt := range opts {
		opt(s)
	}

	data, err := storage.Load(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: rehydrate: %w", err)
	}

	state, err := decode(data)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("key", s.key).Msg("session_rehydrate_discarded")
		return s, nil
	}
	s.state = state

	logger.Ctx(ctx).Debug().Bool("authenticated", state.IsAuthenticated).Msg("session_rehydrated")
	return s, nil
}

// Login overwrites the session with token and user. The token is stored as
// given. The in-memory session changes even if persisting fails.
func (s *Store) Login(ctx context.Context, token string, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replace(ctx, State{Token: token, User: cloneUser(&user), IsAuthenticated: true})
}

// Logout clears the session. Calling it while logged out changes nothing.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replace(ctx, State{})
}

// RefreshUser swaps in user only if the session is still authenticated with
// token. It reports false, leaving the session alone, when a logout or a new
// login happened in between.
func (s *Store) RefreshUser(ctx context.Context, token string, user domain.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.IsAuthenticated || s.state.Token != token {
		return false, nil
	}
	return true, s.replace(ctx, State{Token: token, User: cloneUser(&user), IsAuthenticated: true})
}

// replace must be called with mu held.
func (s *Store) replace(ctx context.Context, next State) error {
	s.state = next

	data, err := encode(next)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	// a forced logout must stick even when the triggering request was cancelled
	if err := s.storage.Save(context.WithoutCancel(ctx), s.key, data); err != nil {
		return fmt.Errorf("session: persist: %w", err)
	}
	return nil
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// User returns a copy of the profile, or nil when logged out.
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUser(s.state.User)
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.state
	snap.User = cloneUser(snap.User)
	return snap
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Cedula != nil {
		cedula := *u.Cedula
		c.Cedula = &cedula
	}
	return &c
}

func encode(state State) ([]byte, error) {
	var p persisted
	// null only when logged out; an authenticated empty token is kept as ""
	if state.IsAuthenticated || state.Token != "" {
		tok := state.Token
		p.State.Token = &tok
	}
	p.State.User = state.User
	p.State.IsAuthenticated = state.IsAuthenticated
	p.Version = persistVersion
	return json.Marshal(p)
}

func decode(data []byte) (State, error) {
	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return State{}, err
	}

	state := State{User: p.State.User, IsAuthenticated: p.State.IsAuthenticated}
	if p.State.Token != nil {
		state.Token = *p.State.Token
	}

	// authenticated implies a token (possibly "") and a user
	if state.IsAuthenticated && (p.State.Token == nil || state.User == nil) {
		return State{}, errors.New("authenticated entry without token or user")
	}
	return state, nil
}
