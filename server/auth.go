package server

import (
	"errors"
	"net/http"
	"strings"
)

var ErrUnauthenticated = errors.New("missing player identity")

// Authenticator asserts who is calling. Identity is established outside this
// service; the server only trusts what the Authenticator returns.
type Authenticator interface {
	Authenticate(r *http.Request) (string, error)
}

// HeaderAuthenticator reads the identity from a request header, falling back to
// the "player" query parameter since browsers cannot set websocket headers.
type HeaderAuthenticator struct {
	Header string
}

func (a HeaderAuthenticator) Authenticate(r *http.Request) (string, error) {
	header := a.Header
	if header == "" {
		header = "X-Player-ID"
	}

	id := strings.TrimSpace(r.Header.Get(header))
	if id == "" {
		id = strings.TrimSpace(r.URL.Query().Get("player"))
	}
	if id == "" {
		return "", ErrUnauthenticated
	}
	return id, nil
}
