// Package session holds the signed-in user for the lifetime of the client,
// persisted to a JSON file under the config dir and rehydrated on startup.
// The store is the only writer of that file.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/marufujisaki/car-control-cli/internal/model"
)

// TokenSource produces an identity-provider ID token via an interactive
// sign-in (the popup-flow equivalent).
type TokenSource interface {
	SignIn(ctx context.Context) (string, error)
}

// Exchanger trades a provider ID token for an application user.
// *api.Client satisfies it.
type Exchanger interface {
	ExchangeToken(ctx context.Context, idToken string) (model.User, error)
}

type sessionFile struct {
	User      model.User `json:"user"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Store is the client-side session: current user, ID token, loading flag.
type Store struct {
	path    string
	log     *zap.Logger
	user    *model.User
	token   string
	exp     time.Time
	loading bool
}

// New builds a Store and synchronously rehydrates it from dir/session.json.
// An unreadable or unparseable file leaves the store unauthenticated; the
// loading flag is clear once the check completes.
func New(dir string, log *zap.Logger) *Store {
	s := &Store{path: filepath.Join(dir, "session.json"), log: log, loading: true}
	defer func() { s.loading = false }()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return s
	}
	var sf sessionFile
	if err := json.Unmarshal(data, &sf); err != nil {
		log.Warn("session file unparseable, ignoring", zap.Error(err))
		return s
	}
	if sf.User.ID == "" {
		return s
	}
	s.user = &sf.User
	// the user survives token expiry; the next resource call just 401s
	if sf.Token != "" && (sf.ExpiresAt.IsZero() || time.Now().Before(sf.ExpiresAt)) {
		s.token = sf.Token
		s.exp = sf.ExpiresAt
	} else if sf.Token != "" {
		log.Debug("stored token expired", zap.Time("expires_at", sf.ExpiresAt))
	}
	return s
}

// User returns the current user, or nil when unauthenticated.
func (s *Store) User() *model.User { return s.user }

// Token returns the current bearer token ("" when none is held).
func (s *Store) Token() string { return s.token }

// IsLoading reports whether a login (or the initial rehydration) is in flight.
func (s *Store) IsLoading() bool { return s.loading }

// Login runs the interactive sign-in, exchanges the resulting token with the
// backend and adopts the returned user, persisting it. Failures are logged
// and returned; the store stays unauthenticated.
func (s *Store) Login(ctx context.Context, ts TokenSource, ex Exchanger) error {
	s.loading = true
	defer func() { s.loading = false }()

	idToken, err := ts.SignIn(ctx)
	if err != nil {
		s.log.Error("login failed", zap.Error(err))
		return err
	}
	user, err := ex.ExchangeToken(ctx, idToken)
	if err != nil {
		s.log.Error("login failed", zap.Error(err))
		return err
	}

	s.user = &user
	s.token = idToken
	s.exp = tokenExpiry(idToken)
	if err := s.persist(); err != nil {
		// the session still works for this run
		s.log.Warn("persist session", zap.Error(err))
	}
	s.log.Info("logged in", zap.String("user_id", user.ID), zap.String("email", user.Email))
	return nil
}

// Logout clears the current user and removes the persisted record.
// Synchronous, cannot fail.
func (s *Store) Logout() {
	s.user = nil
	s.token = ""
	s.exp = time.Time{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Warn("remove session file", zap.Error(err))
	}
}

func (s *Store) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	sf := sessionFile{User: *s.user, Token: s.token, ExpiresAt: s.exp}
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// tokenExpiry pulls exp from the ID token without verifying it; the token
// is opaque to us and validated by the backend. Unreadable tokens get a
// short default so they rotate soon.
func tokenExpiry(idToken string) time.Time {
	var claims jwt.RegisteredClaims
	_, _, err := jwt.NewParser().ParseUnverified(idToken, &claims)
	if err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	return time.Now().Add(15 * time.Minute)
}
