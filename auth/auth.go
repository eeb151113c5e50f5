package auth

import (
	"fmt"
	"net/http"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

var bearerPrefix = regexp.MustCompile(`(?i)^bearer\s+`)

// Guard holds the single active session token and the operator credential
type Guard struct {
	token        string
	username     string
	passwordHash []byte
}

// NewGuard hashes password with the given bcrypt cost. A cost of 0 uses
// bcrypt.DefaultCost.
func NewGuard(token, username, password string, cost int) (*Guard, error) {
	if token == "" {
		return nil, fmt.Errorf("session token must not be empty")
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &Guard{
		token:        token,
		username:     username,
		passwordHash: hash,
	}, nil
}

// Login returns the session token when username and password match the
// configured operator exactly.
func (g *Guard) Login(username, password string) (string, bool) {
	if username != g.username {
		return "", false
	}
	if err := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password)); err != nil {
		return "", false
	}
	return g.token, true
}

// Authorized reports whether the Authorization header carries the session token
func (g *Guard) Authorized(h http.Header) bool {
	token := BearerToken(h.Get("Authorization"))
	return token != "" && token == g.token
}

// BearerToken strips a case-insensitive "Bearer " prefix. A header without
// the prefix is returned unchanged.
func BearerToken(header string) string {
	return bearerPrefix.ReplaceAllString(header, "")
}
