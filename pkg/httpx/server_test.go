package httpx_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ghuser/dune-crafting-api/pkg/httpx"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func passthrough(next http.Handler) http.Handler { return next }

func newTestRouter(origins string) http.Handler {
	r := httpx.NewRouter(httpx.ServerConfig{ServiceName: "test", CORSAllowedOrigins: origins},
		passthrough, passthrough, passthrough, passthrough)
	r.Get("/api/v1/items", okHandler)
	return r
}

func TestNewRouter_SecurityHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter("*").ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/items", http.NoBody))

	want := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": httpx.ContentSecurityPolicy,
	}
	for header, expected := range want {
		if got := rr.Header().Get(header); got != expected {
			t.Errorf("%s: got %q, want %q", header, got, expected)
		}
	}
	if got := rr.Header().Get("Permissions-Policy"); !strings.Contains(got, "geolocation=()") {
		t.Errorf("Permissions-Policy: got %q", got)
	}
	// HSTS is only sent over TLS.
	if got := rr.Header().Get("Strict-Transport-Security"); got != "" {
		t.Errorf("HSTS on plain HTTP: %q", got)
	}
}

func TestNewRouter_CORS(t *testing.T) {
	h := newTestRouter("https://example.com, http://localhost:3000")

	tests := []struct {
		origin string
		want   string
	}{
		{"https://example.com", "https://example.com"},
		{"http://localhost:3000", "http://localhost:3000"},
		{"https://evil.example", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/items", http.NoBody)
		req.Header.Set("Origin", tt.origin)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
			t.Errorf("origin %s: Access-Control-Allow-Origin = %q, want %q", tt.origin, got, tt.want)
		}
	}
}

func TestNewRouter_JSONFallbacks(t *testing.T) {
	h := newTestRouter("*")

	tests := []struct {
		method, path string
		wantStatus   int
	}{
		{http.MethodGet, "/api/v1/unknown", http.StatusNotFound},
		{http.MethodPost, "/api/v1/items", http.StatusMethodNotAllowed},
		{http.MethodDelete, "/api/v1/items", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, http.NoBody))
		if rr.Code != tt.wantStatus {
			t.Errorf("%s %s: expected %d, got %d", tt.method, tt.path, tt.wantStatus, rr.Code)
			continue
		}
		var body map[string]string
		if err := json.NewDecoder(rr.Body).Decode(&body); err != nil || body["error"] == "" {
			t.Errorf("%s %s: expected JSON error body, got %v (%v)", tt.method, tt.path, body, err)
		}
	}
}

func TestNewRouter_NoGlobalRateLimit(t *testing.T) {
	h := newTestRouter("*")
	for i := 0; i < 150; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/items", http.NoBody))
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rr.Code)
		}
	}
}

func TestRequestBodyLimit(t *testing.T) {
	const limit = 10

	tests := []struct {
		name       string
		size       int
		wantStatus int
	}{
		{"under limit", 5, http.StatusOK},
		{"at limit", limit, http.StatusOK},
		{"over limit", limit + 1, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if _, err := io.ReadAll(r.Body); err != nil {
					w.WriteHeader(http.StatusRequestEntityTooLarge)
					return
				}
				w.WriteHeader(http.StatusOK)
			})
			rr := httptest.NewRecorder()
			body := strings.NewReader(strings.Repeat("x", tt.size))
			httpx.RequestBodyLimit(limit)(inner).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", body))
			if rr.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rr.Code)
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := httpx.NewServer("0.0.0.0:8000", http.HandlerFunc(okHandler))
	if srv.Addr != "0.0.0.0:8000" {
		t.Errorf("Addr: got %q", srv.Addr)
	}
	if srv.ReadTimeout == 0 || srv.WriteTimeout == 0 || srv.IdleTimeout == 0 {
		t.Errorf("expected timeouts to be set, got %+v", srv)
	}
}

func TestNewRouter_TrustProxyHeaders(t *testing.T) {
	tests := []struct {
		name  string
		trust bool
		want  string
	}{
		{"proxy headers ignored by default", false, "203.0.113.7:40000"},
		{"proxy headers honoured when trusted", true, "198.51.100.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			r := httpx.NewRouter(httpx.ServerConfig{CORSAllowedOrigins: "*", TrustProxyHeaders: tt.trust},
				passthrough, passthrough, passthrough, passthrough)
			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				got = r.RemoteAddr
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.RemoteAddr = "203.0.113.7:40000"
			req.Header.Set("X-Forwarded-For", "198.51.100.9")
			r.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("RemoteAddr: got %q, want %q", got, tt.want)
			}
		})
	}
}
