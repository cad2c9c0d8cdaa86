package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"habitTrackerAPI/internal/action"
)

type contextKey string

const callerKey contextKey = "caller"
const requestIDKey contextKey = "requestID"

// Identity headers set by the gateway in front of the service.
const (
	HeaderCallerID         = "Caller-Id"
	HeaderCallerScopes     = "Caller-Scopes"
	HeaderCallerUTCOffset  = "Caller-Utc-Offset-Minutes"
	HeaderRequestID        = "X-Request-Id"
	HeaderForwardedFor     = "X-Forwarded-For"
	metricsRealmHeaderName = "WWW-Authenticate"
)

// CallerMiddleware copies the gateway identity headers into the request
// context. It never rejects; the action dispatcher decides what is missing.
func CallerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := action.CallerHeaders{
			UserID:           strings.TrimSpace(r.Header.Get(HeaderCallerID)),
			Scopes:           r.Header.Get(HeaderCallerScopes),
			UTCOffsetMinutes: r.Header.Get(HeaderCallerUTCOffset),
		}
		ctx := context.WithValue(r.Context(), callerKey, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCaller extracts the caller headers from context
func GetCaller(ctx context.Context) (action.CallerHeaders, bool) {
	caller, ok := ctx.Value(callerKey).(action.CallerHeaders)
	return caller, ok
}

// GetRequestID extracts the request id set by RequestLogger
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
