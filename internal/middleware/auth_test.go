package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xelth-com/eckshipgo/internal/logger"
	"github.com/xelth-com/eckshipgo/internal/models"
	"github.com/xelth-com/eckshipgo/internal/utils"
)

const testSecret = "middleware-secret"

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	token, _, err := utils.GenerateTokens(&models.UserAuth{ID: "u1", Email: "u1@example.com", Role: role}, testSecret)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func TestAuthAndRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, found := Claims(r.Context()); !found {
			t.Error("claims missing from context")
		}
		w.WriteHeader(http.StatusNoContent)
	})
	handler := AuthMiddleware(testSecret)(RequireRole(models.RoleAdmin)(ok))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"bad scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"user role", "Bearer " + tokenFor(t, models.RoleUser), http.StatusForbidden},
		{"admin role", "Bearer " + tokenFor(t, models.RoleAdmin), http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/settings/gls", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRequestLoggerSetsID(t *testing.T) {
	var seen string
	handler := RequestLogger(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if seen == "" || rec.Header().Get(RequestIDHeader) != seen {
		t.Errorf("request id %q, header %q", seen, rec.Header().Get(RequestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "given-id")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "given-id" {
		t.Errorf("incoming id not kept: %q", seen)
	}
}

func TestRequestLoggerKeepsWriterInterfaces(t *testing.T) {
	handler := RequestLogger(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := w.(http.Hijacker); !ok {
			t.Error("wrapped writer lost http.Hijacker")
		}
		// httptest.ResponseRecorder cannot be hijacked, the error must come back
		if _, _, err := w.(http.Hijacker).Hijack(); err == nil {
			t.Error("expected hijack error from recorder")
		}
		if err := http.NewResponseController(w).Flush(); err != nil {
			t.Errorf("flush through wrapper: %v", err)
		}
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))
	if !rec.Flushed {
		t.Error("inner recorder was not flushed")
	}
}
