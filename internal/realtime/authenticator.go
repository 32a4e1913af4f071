package realtime

import (
	"errors"
	"net/http"
	"strings"

	jwtpkg "splitpath/internal/pkg/jwt"
)

var ErrNoCredential = errors.New("no access token in handshake")

// Authenticator validates the access token presented with a websocket
// handshake. It runs once per connection attempt, before the upgrade; a
// failed result means the connection is refused outright, never admitted as
// a guest session. The verifier is constructor-injected, shared the same way
// every other dependency is.
type Authenticator struct {
	jwt *jwtpkg.Service
}

func NewAuthenticator(jwt *jwtpkg.Service) *Authenticator {
	return &Authenticator{jwt: jwt}
}

// Authenticate extracts the access token from the handshake request and
// verifies it against the access-token secret only; a refresh token can never
// open a connection. Returns the decoded claims on success.
func (a *Authenticator) Authenticate(r *http.Request) (*jwtpkg.Claims, error) {
	token := extractToken(r)
	if token == "" {
		return nil, ErrNoCredential
	}

	return a.jwt.ValidateAccessToken(token)
}

// Browser websocket clients send cookies with the handshake; non-browser
// clients may use the Authorization header or a query parameter instead.
func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie("access_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		if token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")); token != "" {
			return token
		}
	}

	return r.URL.Query().Get("token")
}
