// Package auth signs admins in and out and resolves the principal behind a request.
//
// A login creates a server-side session and hands out a signed token naming it. Presenting the
// token only works while the session exists, so logout and re-login revoke tokens immediately.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/agency-site-backend/errs"
	"github.com/rpupo63/agency-site-backend/models"
	"github.com/rs/zerolog"
)

const DefaultSessionTTL = 24 * time.Hour

type Config struct {
	Secret     string
	SessionTTL time.Duration
	BcryptCost int
}

type Service struct {
	users     UserStore
	sessions  SessionStore
	tokens    *TokenSigner
	ttl       time.Duration
	cost      int
	dummyHash string
	now       func() time.Time
	log       zerolog.Logger
}

// LoginResult is handed back to the client after a successful login.
type LoginResult struct {
	User      models.User
	Token     string
	ExpiresAt time.Time
}

func NewService(users UserStore, sessions SessionStore, cfg Config, log zerolog.Logger) (*Service, error) {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = DefaultBcryptCost
	}

	// Unknown usernames are checked against this hash so they cost the same as a wrong password.
	dummy, err := HashPassword("not-a-real-password", cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	return &Service{
		users:     users,
		sessions:  sessions,
		tokens:    NewTokenSigner(cfg.Secret),
		ttl:       cfg.SessionTTL,
		cost:      cfg.BcryptCost,
		dummyHash: dummy,
		now:       time.Now,
		log:       log.With().Str("component", "auth").Logger(),
	}, nil
}

// Login checks the credentials and opens a new session, revoking every earlier session of the
// same user.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		CheckPassword(password, s.dummyHash)
		return nil, errs.NewAuthenticationError()
	}
	if !CheckPassword(password, user.Password) {
		return nil, errs.NewAuthenticationError()
	}

	now := s.now().UTC()
	if removed, err := s.sessions.DeleteExpired(ctx, now); err != nil {
		s.log.Warn().Err(err).Msg("failed to clean up expired sessions")
	} else if removed > 0 {
		s.log.Debug().Int64("removed", removed).Msg("expired sessions cleaned up")
	}

	sessionID, err := newSessionID()
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("failed to create session", err)
	}
	expiresAt := now.Add(s.ttl)
	session := models.Session{ID: sessionID, UserID: user.ID, ExpiresAt: expiresAt, CreatedAt: now}
	if err := s.sessions.Replace(ctx, session); err != nil {
		return nil, err
	}

	token, err := s.tokens.Sign(sessionID, user.ID.String(), user.Username, now, expiresAt)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("failed to sign session token", err)
	}

	s.log.Info().Str("username", user.Username).Msg("user logged in")
	return &LoginResult{User: *user, Token: token, ExpiresAt: expiresAt}, nil
}

// Resolve returns the principal behind a token. The role always comes from the stored user.
func (s *Service) Resolve(ctx context.Context, token string) (*models.Principal, error) {
	if token == "" {
		return nil, errs.NewMissingTokenError()
	}

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errs.NewInvalidTokenError()
	}
	if session.Expired(s.now()) {
		if err := s.sessions.Delete(ctx, session.ID); err != nil {
			s.log.Warn().Err(err).Msg("failed to delete expired session")
		}
		return nil, errs.NewExpiredSessionError()
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID != session.UserID {
		return nil, errs.NewInvalidTokenError()
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NewInvalidTokenError()
	}

	principal := user.Principal()
	return &principal, nil
}

// Logout revokes the token's session. Missing, malformed and already revoked tokens are not
// errors.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.tokens.ParseIgnoringExpiry(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, claims.SessionID); err != nil {
		s.log.Warn().Err(err).Msg("failed to delete session on logout")
	}
	return nil
}

// CreateUser hashes the password and stores a new user. A taken username is a conflict.
func (s *Service) CreateUser(ctx context.Context, username, password string, isAdmin bool) (*models.User, error) {
	if username == "" {
		return nil, errs.NewMissingRequiredFieldError("username")
	}
	if password == "" {
		return nil, errs.NewMissingRequiredFieldError("password")
	}

	hash, err := HashPassword(password, s.cost)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("failed to hash password", err)
	}

	user := &models.User{Username: username, Password: hash, IsAdmin: isAdmin}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureAdmin creates the admin account unless a user with that name already exists.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if _, err := s.CreateUser(ctx, username, password, true); err != nil {
		return false, err
	}
	return true, nil
}

func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
