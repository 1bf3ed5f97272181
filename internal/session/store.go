// Package session owns the current credential and identity. The token is
// readable by every gateway client but mutated only here: on login,
// register, logout, or an authentication-rejected response.
package session

import (
	"context"
	"sync"

	"moviedeck/internal/gateway"
	"moviedeck/internal/models"

	"github.com/sirupsen/logrus"
)

type Store struct {
	auth   *gateway.AuthClient
	tokens TokenStore
	logger *logrus.Logger

	mu            sync.Mutex
	token         string
	user          models.User
	authenticated bool
	// epoch increments on every teardown; in-flight identity-scoped
	// requests issued under an older epoch are discarded at commit time.
	epoch uint64

	teardownHooks []func()
}

func NewStore(auth *gateway.AuthClient, tokens TokenStore, logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.New()
	}
	return &Store{
		auth:   auth,
		tokens: tokens,
		logger: logger,
	}
}

// OnTeardown registers a hook invoked after every logout or invalidation,
// once the token has been cleared. Not safe to call after dispatch begins.
func (s *Store) OnTeardown(hook func()) {
	s.teardownHooks = append(s.teardownHooks, hook)
}

// Restore loads a previously persisted session. A missing token is not an
// error; it just means the session starts unauthenticated.
func (s *Store) Restore(ctx context.Context) error {
	token, user, found, err := s.tokens.Load(ctx)
	if err != nil {
		return err
	}
	if !found {
		s.logger.Info("No persisted session found")
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.authenticated = true
	s.mu.Unlock()

	s.logger.WithField("user_id", user.ID).Info("Session restored")
	return nil
}

func (s *Store) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	resp, err := s.auth.Login(ctx, credentials)
	if err != nil {
		return models.User{}, err
	}
	s.establish(ctx, resp)
	return resp.User, nil
}

func (s *Store) Register(ctx context.Context, profile models.Profile) (models.User, error) {
	resp, err := s.auth.Register(ctx, profile)
	if err != nil {
		return models.User{}, err
	}
	s.establish(ctx, resp)
	return resp.User, nil
}

func (s *Store) Logout(ctx context.Context) {
	s.teardown(ctx, "logout")
}

// Invalidate is the auth-rejection path: any gateway response classified as
// an AuthError clears the session exactly like an explicit logout.
func (s *Store) Invalidate(ctx context.Context) {
	s.teardown(ctx, "auth rejected")
}

// Token implements gateway.TokenSource.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.authenticated
}

func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.authenticated
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *Store) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

func (s *Store) establish(ctx context.Context, resp *models.AuthResponse) {
	s.mu.Lock()
	// Logging in over a live session retires the old identity: the epoch
	// bump discards its in-flight results and the hooks evict its state.
	replaced := s.authenticated
	if replaced {
		s.epoch++
	}
	s.token = resp.Token
	s.user = resp.User
	s.authenticated = true
	s.mu.Unlock()

	if replaced {
		for _, hook := range s.teardownHooks {
			hook()
		}
	}

	// The in-memory session stands even if persistence fails; the user just
	// has to log in again after a restart.
	if err := s.tokens.Save(ctx, resp.Token, resp.User); err != nil {
		s.logger.WithError(err).Warn("Failed to persist session")
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  resp.User.ID,
		"username": resp.User.Username,
	}).Info("Session established")
}

func (s *Store) teardown(ctx context.Context, reason string) {
	s.mu.Lock()
	wasAuthenticated := s.authenticated
	s.token = ""
	s.user = models.User{}
	s.authenticated = false
	s.epoch++
	s.mu.Unlock()

	if err := s.tokens.Clear(ctx); err != nil {
		s.logger.WithError(err).Warn("Failed to clear persisted session")
	}

	if wasAuthenticated {
		s.logger.WithField("reason", reason).Info("Session cleared")
	}

	for _, hook := range s.teardownHooks {
		hook()
	}
}
