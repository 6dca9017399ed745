package middleware

import (
	"fmt"
	"net/http"

	"github.com/ridgeline-exteriors/deal-api/internal/config"
)

// SecurityHeaders adds the configured browser security headers to every
// response. The header set never changes at runtime, so it is assembled
// once here rather than per request.
func SecurityHeaders(cfg *config.SecurityConfig) func(http.Handler) http.Handler {
	headers := buildSecurityHeaders(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, h := range headers {
				w.Header().Set(h[0], h[1])
			}

			// Never advertise the server implementation
			w.Header().Del("X-Powered-By")
			w.Header().Del("Server")

			next.ServeHTTP(w, r)
		})
	}
}

func buildSecurityHeaders(cfg *config.SecurityConfig) [][2]string {
	var headers [][2]string

	add := func(name, value string) {
		headers = append(headers, [2]string{name, value})
	}

	if cfg.ContentTypeNosniff {
		add("X-Content-Type-Options", "nosniff")
	}
	if cfg.FrameOptions != "" {
		add("X-Frame-Options", cfg.FrameOptions)
	}
	if cfg.XSSProtection != "" {
		add("X-XSS-Protection", cfg.XSSProtection)
	}
	if cfg.ContentSecurityPolicy != "" {
		add("Content-Security-Policy", cfg.ContentSecurityPolicy)
	}
	if cfg.ReferrerPolicy != "" {
		add("Referrer-Policy", cfg.ReferrerPolicy)
	}
	if cfg.PermissionsPolicy != "" {
		add("Permissions-Policy", cfg.PermissionsPolicy)
	}

	if cfg.EnableHSTS {
		hsts := fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubdomains {
			hsts += "; includeSubDomains"
		}
		if cfg.HSTSPreload {
			hsts += "; preload"
		}
		add("Strict-Transport-Security", hsts)
	}

	return headers
}
