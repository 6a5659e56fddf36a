package cli

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_ReplaysStoredCookies(t *testing.T) {
	var gotSession, gotCredential string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("panel_session"); err == nil {
			gotSession = c.Value
		}
		if c, err := r.Cookie("jwt"); err == nil {
			gotCredential = c.Value
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sess-1", "tok-1")
	if err := c.Get("/api/session", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotSession != "sess-1" || gotCredential != "tok-1" {
		t.Errorf("cookies not replayed: session=%q jwt=%q", gotSession, gotCredential)
	}
}

func TestClient_CapturesSetCookies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "panel_session", Value: "fresh", Path: "/"})
		http.SetCookie(w, &http.Cookie{Name: "jwt", Value: "new-token", Path: "/"})
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "")
	if err := c.Post("/api/session", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Session() != "fresh" || c.Credential() != "new-token" {
		t.Errorf("cookies not captured: session=%q jwt=%q", c.Session(), c.Credential())
	}
}

// A cookie cleared by the server (negative max-age) drops the stored value.
func TestClient_ClearedCookieDropsState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "jwt", Value: "", Path: "/", MaxAge: -1})
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "old-token")
	if err := c.Delete("/api/credential", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Credential() != "" {
		t.Errorf("credential not dropped: %q", c.Credential())
	}
}

func TestClient_SurfacesErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"error":"JWT not found. Please configure your JWT token in settings."}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "")
	err := c.Get("/api/credential/test", nil, nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "JWT not found") {
		t.Errorf("server message lost: %v", err)
	}
}

func TestClient_DecodesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"message":"Ban created successfully"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "")
	var result struct {
		Message string `json:"message"`
	}
	if err := c.Post("/api/bans/create", map[string]string{"uid": "x"}, &result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Message != "Ban created successfully" {
		t.Errorf("unexpected message: %q", result.Message)
	}
}
