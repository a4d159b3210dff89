/*
token.go - HMAC-signed session tokens

Issued at login, verified per request. The token is the only session state;
there is no server-side session table.
*/
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken       = errors.New("invalid session token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserNotFound       = errors.New("user not found")
)

// User is the authenticated principal attached to a request.
type User struct {
	ID    string
	Email string
	Name  string
	Role  Role
}

// UserStore resolves credentials and role assignments.
type UserStore interface {
	// GetUserByEmail returns the user record and its password hash.
	GetUserByEmail(ctx context.Context, email string) (*User, string, error)
	ListUsers(ctx context.Context) ([]User, error)
	InsertUser(ctx context.Context, u User, passwordHash string) error
	UpdateUserRole(ctx context.Context, userID string, role Role) error
}

// Claims is the JWT payload for a session.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// IssueToken signs a session token for the user.
func IssueToken(secret []byte, u User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: u.Email,
		Name:  u.Name,
		Role:  string(u.Role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies a session token and returns the user it names.
func ParseToken(secret []byte, raw string) (*User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	role := Role(claims.Role)
	if !role.Valid() {
		return nil, ErrInvalidToken
	}
	return &User{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  role,
	}, nil
}
