package auth

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/funthingsnearme/nearby/internal/app/appconfig"
	"github.com/funthingsnearme/nearby/internal/model"
	"github.com/funthingsnearme/nearby/internal/pkg/fterr"
)

// Change is a session-change notification. Subscribers receive exactly one
// per actual session transition.
type Change struct {
	Authenticated bool
	Email         string
}

// Session is the authenticated-or-not state every protected action gates
// on. It persists the provider session (or the legacy token pair) under the
// data dir so a new process resumes where the last one left off.
type Session struct {
	conf     *appconfig.Config
	provider *Provider
	path     string

	mu     sync.RWMutex
	creds  *Credentials
	legacy *model.TokenPair

	subMu   sync.Mutex
	subs    map[int]chan Change
	nextSub int
}

type persistedSession struct {
	Credentials *Credentials     `json:"credentials,omitempty"`
	Legacy      *model.TokenPair `json:"legacy,omitempty"`
}

func NewSession(conf *appconfig.Config, provider *Provider, lc fx.Lifecycle) *Session {
	s := &Session{
		conf:     conf,
		provider: provider,
		path:     filepath.Join(conf.DataDir, "session.json"),
		subs:     make(map[int]chan Change),
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			s.restore()
			return nil
		},
		OnStop: func(context.Context) error {
			s.closeSubscribers()
			return nil
		},
	})

	return s
}

// Subscribe registers for session-change notifications. The returned cancel
// func unsubscribes and must be called on teardown.
func (s *Session) Subscribe() (<-chan Change, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Change, 4)
	s.subs[id] = ch

	return ch, func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.conf.LegacyAuth {
		return s.legacy != nil
	}
	return s.creds != nil
}

// Email returns the signed-in account's email, when known.
func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds != nil {
		return s.creds.Email
	}
	return ""
}

// Require is the login-required gate: every action that needs a signed-in
// user calls it first and, on failure, opens the login prompt instead of
// proceeding. The action is not retried automatically after login.
func (s *Session) Require() error {
	if !s.Authenticated() {
		return fterr.ErrAuthRequired
	}
	return nil
}

// IDToken returns a bearer token for the next request, refreshing the
// short-lived provider token when needed. Callers fetch one immediately
// before each authenticated request and never cache it.
func (s *Session) IDToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conf.LegacyAuth {
		if s.legacy == nil {
			return "", fterr.ErrAuthRequired
		}
		return s.legacy.AccessToken, nil
	}

	if s.creds == nil {
		return "", fterr.ErrAuthRequired
	}

	if s.creds.Expired() {
		refreshed, err := s.provider.Refresh(ctx, s.creds.RefreshToken)
		if err != nil {
			return "", errors.Wrap(err, "failed to refresh session token")
		}
		refreshed.Email = s.creds.Email
		s.creds = refreshed
		s.persistLocked()
	}

	return s.creds.IDToken, nil
}

// SignIn authenticates against the managed provider and notifies
// subscribers of the transition.
func (s *Session) SignIn(ctx context.Context, email, password string) error {
	creds, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	s.adopt(creds)
	return nil
}

// SignUp creates a provider account and signs the session in.
func (s *Session) SignUp(ctx context.Context, email, password string) error {
	creds, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		return err
	}
	s.adopt(creds)
	return nil
}

// AdoptLegacy stores the token pair returned by the legacy register/login
// endpoints as the active session.
func (s *Session) AdoptLegacy(tokens *model.TokenPair) {
	s.mu.Lock()
	s.legacy = tokens
	s.persistLocked()
	s.mu.Unlock()

	s.notify(Change{Authenticated: true})
}

// SignOut drops the session, removes the persisted copy and notifies
// subscribers.
func (s *Session) SignOut() {
	s.mu.Lock()
	s.creds = nil
	s.legacy = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("failed to remove persisted session")
	}
	s.mu.Unlock()

	s.notify(Change{Authenticated: false})
}

func (s *Session) adopt(creds *Credentials) {
	s.mu.Lock()
	s.creds = creds
	s.persistLocked()
	s.mu.Unlock()

	s.notify(Change{Authenticated: true, Email: creds.Email})
}

func (s *Session) restore() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("failed to read persisted session")
		}
		return
	}

	var persisted persistedSession
	if err := json.Unmarshal(raw, &persisted); err != nil {
		log.Warn().Err(err).Msg("persisted session is corrupt; ignoring it")
		return
	}

	s.mu.Lock()
	s.creds = persisted.Credentials
	s.legacy = persisted.Legacy
	s.mu.Unlock()
}

func (s *Session) persistLocked() {
	raw, err := json.Marshal(persistedSession{
		Credentials: s.creds,
		Legacy:      s.legacy,
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to encode session")
		return
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		log.Warn().Err(err).Msg("failed to persist session")
	}
}

func (s *Session) notify(change Change) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, sub := range s.subs {
		select {
		case sub <- change:
		default:
			// A subscriber that stopped draining does not get to stall the
			// session.
		}
	}
}

func (s *Session) closeSubscribers() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for id, sub := range s.subs {
		delete(s.subs, id)
		close(sub)
	}
}
