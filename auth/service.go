/*
service.go - Login and user administration

Login verifies credentials against the user store and issues a session
token. User and role administration is the admin-gated settings surface; the
role change is the only optimistic write in the application, and it stays a
plain store update here.
*/
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Service performs authentication against a UserStore.
type Service struct {
	store    UserStore
	secret   []byte
	tokenTTL time.Duration
	log      zerolog.Logger
}

func NewService(store UserStore, secret []byte, tokenTTL time.Duration, log zerolog.Logger) *Service {
	return &Service{
		store:    store,
		secret:   secret,
		tokenTTL: tokenTTL,
		log:      log.With().Str("component", "auth").Logger(),
	}
}

// Login verifies the credentials and returns a session token plus the user.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	u, hash, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		// Same error for unknown user and wrong password.
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := IssueToken(s.secret, *u, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	s.log.Info().Str("user", u.ID).Str("role", string(u.Role)).Msg("login")
	return token, u, nil
}

// Verify parses a bearer token into its user.
func (s *Service) Verify(raw string) (*User, error) {
	return ParseToken(s.secret, raw)
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.store.ListUsers(ctx)
}

// CreateUser registers a user with a hashed password.
func (s *Service) CreateUser(ctx context.Context, email, name, password string, role Role) (*User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := User{ID: uuid.NewString(), Email: email, Name: name, Role: role}
	if err := s.store.InsertUser(ctx, u, string(hash)); err != nil {
		return nil, err
	}
	return &u, nil
}

// ChangeRole reassigns a user's role.
func (s *Service) ChangeRole(ctx context.Context, userID string, role Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	if err := s.store.UpdateUserRole(ctx, userID, role); err != nil {
		return err
	}
	s.log.Info().Str("user", userID).Str("role", string(role)).Msg("role changed")
	return nil
}
