package access

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAllowAll(t *testing.T) {
	g, err := AllowAll{}.Validate(context.Background(), "")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if g.Email != "" {
		t.Errorf("expected empty grant, got %+v", g)
	}
}

func webhookServer(t *testing.T, status int, body map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["action"] != "validate_token" {
			t.Errorf("expected action validate_token, got %v", req["action"])
		}
		if req["secret"] != "shh" {
			t.Errorf("expected shared secret, got %v", req["secret"])
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestWebhookValidatorApproved(t *testing.T) {
	srv := webhookServer(t, http.StatusOK, map[string]any{
		"ok": true, "status": "approved", "email": "marie@example.com",
	})
	v := NewWebhookValidator(srv.URL, "shh")

	g, err := v.Validate(context.Background(), "tok123")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if g.Email != "marie@example.com" {
		t.Errorf("expected granted e-mail, got %q", g.Email)
	}
}

func TestWebhookValidatorDenials(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   map[string]any
	}{
		{"not ok", http.StatusOK, map[string]any{"ok": false, "status": "approved"}},
		{"pending", http.StatusOK, map[string]any{"ok": true, "status": "pending"}},
		{"expired", http.StatusOK, map[string]any{"ok": false, "status": "expired"}},
		{"server error", http.StatusInternalServerError, map[string]any{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := webhookServer(t, tt.status, tt.body)
			v := NewWebhookValidator(srv.URL, "shh")
			_, err := v.Validate(context.Background(), "tok123")
			if !errors.Is(err, ErrDenied) {
				t.Errorf("expected ErrDenied, got %v", err)
			}
		})
	}
}

func TestWebhookValidatorEmptyToken(t *testing.T) {
	v := NewWebhookValidator("http://unused.invalid", "shh")
	if _, err := v.Validate(context.Background(), ""); !errors.Is(err, ErrDenied) {
		t.Errorf("expected ErrDenied without a token, got %v", err)
	}
}

func TestWebhookValidatorUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	v := NewWebhookValidator(srv.URL, "shh")
	if _, err := v.Validate(context.Background(), "tok"); err == nil {
		t.Error("expected error for unreachable endpoint")
	}
}
