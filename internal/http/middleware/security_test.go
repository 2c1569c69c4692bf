package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func serveSecurity(opt SecurityOptions, mutate func(*http.Request)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SecurityHeaders(opt))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if mutate != nil {
		mutate(req)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestSecurityHeaders_Baseline(t *testing.T) {
	w := serveSecurity(SecurityOptions{}, nil)

	h := w.Header()
	if h.Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("nosniff missing: %q", h.Get("X-Content-Type-Options"))
	}
	if h.Get("X-Frame-Options") != "DENY" {
		t.Fatalf("frame options: %q", h.Get("X-Frame-Options"))
	}
	if h.Get("Referrer-Policy") != "no-referrer" {
		t.Fatalf("referrer policy: %q", h.Get("Referrer-Policy"))
	}
	// Opt-in headers absent by default.
	if h.Get("Permissions-Policy") != "" || h.Get("Cache-Control") != "" {
		t.Fatalf("unexpected opt-in headers: %v", h)
	}
	if h.Get("Strict-Transport-Security") != "" {
		t.Fatalf("HSTS must be off by default")
	}
}

func TestSecurityHeaders_PolicyAndNoStore(t *testing.T) {
	w := serveSecurity(SecurityOptions{EnablePolicy: true, NoStore: true}, nil)

	h := w.Header()
	if !strings.Contains(h.Get("Permissions-Policy"), "geolocation=()") {
		t.Fatalf("permissions policy: %q", h.Get("Permissions-Policy"))
	}
	if h.Get("X-Permitted-Cross-Domain-Policies") != "none" {
		t.Fatalf("cross-domain policy: %q", h.Get("X-Permitted-Cross-Domain-Policies"))
	}
	if h.Get("Cache-Control") != "no-store" || h.Get("Pragma") != "no-cache" || h.Get("Expires") != "0" {
		t.Fatalf("no-store trio: %v", h)
	}
}

func TestSecurityHeaders_HSTS_OnlyOnHTTPS(t *testing.T) {
	// Plain HTTP: enabled but not HTTPS -> no HSTS header.
	w := serveSecurity(SecurityOptions{EnableHSTS: true}, nil)
	if w.Header().Get("Strict-Transport-Security") != "" {
		t.Fatalf("HSTS set on plain HTTP")
	}

	// Forwarded HTTPS -> header with the default max-age (180 days).
	w = serveSecurity(SecurityOptions{EnableHSTS: true}, func(r *http.Request) {
		r.Header.Set("X-Forwarded-Proto", "https")
	})
	got := w.Header().Get("Strict-Transport-Security")
	if !strings.HasPrefix(got, "max-age=15552000") || !strings.Contains(got, "includeSubDomains") {
		t.Fatalf("HSTS header = %q", got)
	}

	// Custom max-age.
	w = serveSecurity(SecurityOptions{EnableHSTS: true, HSTSMaxAge: time.Hour}, func(r *http.Request) {
		r.Header.Set("X-Forwarded-Proto", "https")
	})
	if got := w.Header().Get("Strict-Transport-Security"); !strings.HasPrefix(got, "max-age=3600") {
		t.Fatalf("custom max-age = %q", got)
	}
}

func TestSecurityHeaders_ExposesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.Use(SecurityHeaders(SecurityOptions{}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Expose-Headers"); got != requestIDHeader {
		t.Fatalf("expose headers = %q", got)
	}
}
