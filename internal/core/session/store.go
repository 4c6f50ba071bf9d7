// Package session holds the single process-wide admin session: an opaque
// token, its durable storage, and the gate deciding whether protected views
// may render. The token is never parsed or validated here — only stored and
// attached.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/clientportal/intake-gateway/internal/core/ports"
)

// State identifies whether an admin session is active.
type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	if s == LoggedIn {
		return "logged_in"
	}
	return "logged_out"
}

// Store is the session state machine. Transitions persist to the durable
// token slot before taking effect in memory, under one lock, so a backend
// request issued after Login always carries the new token and a request
// issued after Logout never carries the old one.
//
// Store implements ports.TokenSource for the backend gateways.
type Store struct {
	mu      sync.Mutex
	token   string
	slot    ports.TokenSlot
	subs    map[int]func(State)
	nextSub int
	log     zerolog.Logger
}

// NewStore builds the store and rehydrates any token left in the durable
// slot by a previous run. A slot read failure degrades to LoggedOut rather
// than blocking startup.
func NewStore(ctx context.Context, slot ports.TokenSlot, log zerolog.Logger) *Store {
	s := &Store{
		slot: slot,
		subs: make(map[int]func(State)),
		log:  log,
	}

	token, err := slot.Read(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("session: token rehydration failed, starting logged out")
		return s
	}
	if token != "" {
		s.token = token
		log.Info().Msg("session: rehydrated admin session from durable storage")
	}
	return s
}

// Login persists the token and transitions to LoggedIn. On a storage
// failure the state is left untouched and the error returned.
func (s *Store) Login(ctx context.Context, token string) error {
	s.mu.Lock()
	if err := s.slot.Write(ctx, token); err != nil {
		s.mu.Unlock()
		return err
	}
	s.token = token
	subs := s.observersLocked()
	s.mu.Unlock()

	s.log.Info().Msg("session: admin logged in")
	notify(subs, LoggedIn)
	return nil
}

// Logout clears the durable slot and transitions to LoggedOut. On a storage
// failure the state is left untouched and the error returned.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	if err := s.slot.Clear(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	s.token = ""
	subs := s.observersLocked()
	s.mu.Unlock()

	s.log.Info().Msg("session: admin logged out")
	notify(subs, LoggedOut)
	return nil
}

// State returns the current session state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return LoggedOut
	}
	return LoggedIn
}

// Token returns the active credential, or false when logged out.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", false
	}
	return s.token, true
}

// Subscribe registers an observer invoked after every state transition.
// The returned func cancels the subscription. Observers run outside the
// store's lock and may query the store freely.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) observersLocked() []func(State) {
	out := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(State), st State) {
	for _, fn := range subs {
		fn(st)
	}
}
