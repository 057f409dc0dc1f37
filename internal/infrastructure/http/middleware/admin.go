package middleware

import (
	"crypto/subtle"
	"net"
	"net/http"
	"strconv"
	"time"
)

// AdminKeyHeader carries the shared admin secret on write requests.
const AdminKeyHeader = "X-Idolbase-Admin-Key"

// AdminLockout tracks failed admin key attempts per client.
type AdminLockout interface {
	IsLocked(key string) (bool, time.Duration)
	RecordFailure(key string)
	RecordSuccess(key string)
}

// RequireAdminKey returns a middleware that requires X-Idolbase-Admin-Key to match the given secret.
// If secret is empty, all requests are rejected with 401. lock may be nil; when set, clients that
// keep failing are answered 429 until their cooldown ends.
func RequireAdminKey(secret string, lock AdminLockout) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				writeUnauthorized(w, "admin API not configured (ADMIN_SECRET)")
				return
			}
			client := ClientIP(r)
			if lock != nil {
				if locked, left := lock.IsLocked(client); locked {
					w.Header().Set("Retry-After", strconv.Itoa(int(left.Round(time.Second).Seconds())))
					writeError(w, http.StatusTooManyRequests, "rate_limited", "too many failed admin key attempts")
					return
				}
			}
			key := r.Header.Get(AdminKeyHeader)
			if subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
				if lock != nil {
					lock.RecordFailure(client)
				}
				writeUnauthorized(w, "invalid or missing admin key")
				return
			}
			if lock != nil {
				lock.RecordSuccess(client)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP is the client address after chi's RealIP has applied X-Forwarded-For.
func ClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, "unauthorized", message)
}

// writeError writes the API error shape without depending on the handlers package.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"code":"` + code + `","message":"` + message + `"}`))
}
