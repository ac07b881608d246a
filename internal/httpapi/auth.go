package httpapi

import "net/http"

// AuthConfig is the RequireToken stub: when Enabled, every request must
// carry the configured bearer token in an Authorization header. It is
// disabled by default, matching spec.md's description of auth as a thin,
// out-of-scope collaborator that the core never depends on.
type AuthConfig struct {
	Enabled bool
	Token   string
}

// Middleware wraps next with the token check when Enabled; otherwise it
// is a pass-through.
func (a *AuthConfig) Middleware(next http.Handler) http.Handler {
	if a == nil || !a.Enabled {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+a.Token {
			writeEnvelope(w, http.StatusUnauthorized, envelope{
				Status: "ERROR",
				Error:  &errBody{Type: "AuthError", Message: "missing or invalid bearer token"},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
