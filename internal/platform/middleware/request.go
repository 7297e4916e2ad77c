package middleware

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/mssola/useragent"

	"ftf/pkg/requestcontext"
)

// RequestID assigns a correlation id to every request, honoring one supplied
// by the caller.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", rid)
		next.ServeHTTP(w, r.WithContext(requestcontext.WithRequestID(r.Context(), rid)))
	})
}

// RequestTime pins "now" once per request so every validator in a run sees
// the same clock.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), requestcontext.Now(r.Context()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserAgent normalizes the client user agent into "name/version (os)" for
// audit events.
func UserAgent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.UserAgent()
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		ua := useragent.New(raw)
		name, version := ua.Browser()
		normalized := raw
		if name != "" {
			normalized = fmt.Sprintf("%s/%s (%s)", name, version, ua.OS())
		}
		next.ServeHTTP(w, r.WithContext(requestcontext.WithUserAgent(r.Context(), normalized)))
	})
}
