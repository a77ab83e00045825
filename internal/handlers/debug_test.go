package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/genuinepracticalhomoeopathy/gph-website/internal/session"
)

func TestDebugRequiresSession(t *testing.T) {
	d := NewDebug(session.NewGate(false), "development")

	req := httptest.NewRequest(http.MethodGet, "/api/debug", nil)
	w := httptest.NewRecorder()
	d.Info(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", w.Code)
	}
}

func TestDebugEchoesRequestState(t *testing.T) {
	d := NewDebug(session.NewGate(false), "development")

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/debug", nil), "admin@gph.com")
	req.Header.Set("X-Forwarded-Proto", "https")
	req.Header.Set("User-Agent", "test-agent")
	w := httptest.NewRecorder()
	d.Info(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["environment"] != "development" {
		t.Errorf("environment: got %v", body["environment"])
	}
	if body["protocol"] != "https" {
		t.Errorf("protocol: got %v", body["protocol"])
	}
	if body["isAuthenticated"] != true {
		t.Error("isAuthenticated: want true")
	}
	cookies, _ := body["cookies"].([]any)
	if len(cookies) != 2 {
		t.Errorf("cookies: got %d entries, want 2", len(cookies))
	}
	headers, _ := body["headers"].(map[string]any)
	if headers["userAgent"] != "test-agent" {
		t.Errorf("userAgent: got %v", headers["userAgent"])
	}
}
