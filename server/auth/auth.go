// Package auth issues and verifies the session tokens handed out at
// registration. GET endpoints are public; progress updates require a token
// whose subject matches the player being updated.
package auth

import (
	"crypto/rand"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Auth struct {
	jwtKey []byte
	issuer string
}

// New loads the signing key from dataDir, generating one on first run.
func New(dataDir string) (*Auth, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	keyPath := filepath.Join(dataDir, "jwt.key")
	key, err := os.ReadFile(keyPath)
	if err != nil || len(key) < 32 {
		key = make([]byte, 32)
		_, _ = rand.Read(key)
		if err := os.WriteFile(keyPath, key, 0o600); err != nil {
			return nil, err
		}
	}
	return &Auth{jwtKey: key, issuer: "kurikka-sync"}, nil
}

// IssueToken signs a session token for a player id.
func (a *Auth) IssueToken(playerID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": playerID,
		"iss": a.issuer,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(30 * 24 * time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.jwtKey)
}

// ParseToken returns the player id a token was issued for.
func (a *Auth) ParseToken(tok string) (string, error) {
	if tok == "" {
		return "", errors.New("missing token")
	}
	t, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		return a.jwtKey, nil
	})
	if err != nil || !t.Valid {
		return "", errors.New("invalid token")
	}
	if claims, ok := t.Claims.(jwt.MapClaims); ok {
		if sub, ok := claims["sub"].(string); ok {
			return sub, nil
		}
	}
	return "", errors.New("bad claims")
}

// FromRequest extracts and verifies the bearer token of a request.
func (a *Auth) FromRequest(r *http.Request) (string, error) {
	var tok string
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		tok = strings.TrimPrefix(h, "Bearer ")
	} else {
		tok = r.URL.Query().Get("token")
	}
	return a.ParseToken(tok)
}
