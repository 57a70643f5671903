package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// withAuth enforces the configured bearer token. An empty token leaves the
// endpoint open, which only makes sense behind a trusted proxy.
func withAuth(s *Server, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Token == "" {
			next(w, r)
			return
		}
		got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(s.Token)) != 1 {
			s.err(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}
