package middleware

import (
	"net/http"
	"strings"

	perr "assistant/internal/platform/errors"
	pnet "assistant/internal/platform/net"
)

// AuthPort is a tiny seam that extracts the caller identity from a request
type AuthPort interface {
	// Parse returns a user id from the request or an error
	Parse(r *http.Request) (userID string, err error)
}

// HeaderAuth identifies the caller by a trusted header, X-User-ID by default
type HeaderAuth struct {
	Header string
}

// Parse implements AuthPort
func (h HeaderAuth) Parse(r *http.Request) (string, error) {
	name := h.Header
	if name == "" {
		name = "X-User-ID"
	}
	uid := strings.TrimSpace(r.Header.Get(name))
	if uid == "" {
		return "", perr.Unauthorizedf("missing %s header", name)
	}
	return uid, nil
}

// Auth is a no-op until wired. It uses the port when provided
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			uid, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithUser(r.Context(), uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
