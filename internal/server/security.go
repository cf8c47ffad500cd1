package server

import (
	"net/http"
)

// SecurityConfig controls the hardening applied to every HTTP response.
type SecurityConfig struct {
	// EnableCORS toggles cross-origin headers.
	EnableCORS bool
	// AllowedOrigins lists the origins permitted when CORS is enabled;
	// a single "*" allows any origin.
	AllowedOrigins []string
	// AllowedMethods lists the methods advertised in CORS preflight.
	AllowedMethods []string
	// MaxDigits bounds the decimal precision a request may ask for.
	MaxDigits uint
}

// DefaultSecurityConfig returns the configuration used when none is
// given: permissive CORS for the read-only metrics surface, and the
// same precision ceiling the CLI enforces.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		MaxDigits:      1_000_000,
	}
}

// SecurityMiddleware sets standard security headers and, when enabled,
// CORS headers before invoking next. Preflight OPTIONS requests are
// answered directly.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			origin := corsOrigin(config.AllowedOrigins, r.Header.Get("Origin"))
			if origin != "" {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", joinMethods(config.AllowedMethods))
				h.Set("Access-Control-Allow-Headers", "Content-Type")
				h.Set("Access-Control-Max-Age", "86400")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}

		next(w, r)
	}
}

// corsOrigin resolves the Access-Control-Allow-Origin value for a
// request origin, or "" when the origin is not allowed.
func corsOrigin(allowed []string, origin string) string {
	for _, a := range allowed {
		if a == "*" {
			return "*"
		}
		if a == origin && origin != "" {
			return origin
		}
	}
	return ""
}

func joinMethods(methods []string) string {
	out := ""
	for i, m := range methods {
		if i > 0 {
			out += ", "
		}
		out += m
	}
	return out
}
