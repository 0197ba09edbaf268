// Package session exposes the current-identity capability. The full
// authentication flow lives outside this client; everything here only
// answers "who is the caller right now".
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/socialx/socialx-go/internal/common"
)

// Identity is the authenticated account. A non-empty Alias is the sole
// authorization gate for every sync operation.
type Identity struct {
	Alias string
	Pub   string
}

// Session reports the caller's current identity. The second return value
// is false when nobody is signed in.
type Session interface {
	Current() (Identity, bool)
}

// Static is a fixed-identity session, used by tests and the demo mode.
type Static struct {
	identity Identity
	signedIn bool
}

// NewStatic returns a session permanently signed in as id.
func NewStatic(id Identity) *Static {
	return &Static{identity: id, signedIn: true}
}

// Anonymous returns a session that is never signed in.
func Anonymous() *Static {
	return &Static{}
}

func (s *Static) Current() (Identity, bool) {
	return s.identity, s.signedIn
}

// Claims are the token claims carried for an identity.
type Claims struct {
	jwt.RegisteredClaims
	Alias string `json:"alias"`
	Pub   string `json:"pub"`
}

// TokenSession derives the identity from a JWT issued by the auth
// subsystem. SetToken replaces the token (sign-in, refresh); an empty,
// expired, or tampered token reads as signed out.
type TokenSession struct {
	mu     sync.Mutex
	token  string
	secret []byte
}

func NewTokenSession(secret []byte) *TokenSession {
	return &TokenSession{secret: secret}
}

// SetToken installs the current token. Pass "" to sign out.
func (s *TokenSession) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *TokenSession) Current() (Identity, bool) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token == "" {
		return Identity{}, false
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Identity{}, false
	}
	return Identity{Alias: claims.Alias, Pub: claims.Pub}, true
}

// IssueToken signs a token for id; used by tests and the demo mode in
// place of the real auth subsystem.
func IssueToken(id Identity, secret []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		Alias: id.Alias,
		Pub:   id.Pub,
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// ParseToken validates token and returns the identity it carries.
func ParseToken(token string, secret []byte) (Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return Identity{}, err
	}
	if !parsed.Valid {
		return Identity{}, common.ErrInvalidToken
	}
	return Identity{Alias: claims.Alias, Pub: claims.Pub}, nil
}
