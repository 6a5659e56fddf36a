package upstream

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/grust-community/admin-panel/internal/core/domain"
)

var testLog = zerolog.Nop()

func testClient(srv *httptest.Server) *Client {
	return New(Config{BaseURL: srv.URL}, testLog)
}

func TestClient_AttachesCredentialCookie(t *testing.T) {
	var gotCookie, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("jwt"); err == nil {
			gotCookie = c.Value
		}
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{"success": true, "data": {}}`))
	}))
	defer srv.Close()

	_, err := testClient(srv).Do(context.Background(), domain.Credential{Token: "tok-1"}, http.MethodGet, "/users/me", "/users/me", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotCookie != "tok-1" {
		t.Errorf("jwt cookie not attached: %q", gotCookie)
	}
	if gotAgent != "gRust-Panel/2.0" {
		t.Errorf("unexpected user agent: %q", gotAgent)
	}
}

func TestClient_EncodesQueryAndBody(t *testing.T) {
	var gotURL, gotContentType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	query := url.Values{}
	query.Set("limit", "21")
	_, err := testClient(srv).Do(context.Background(), domain.Credential{Token: "t"}, http.MethodPost, "/bans/create", "/bans/create", query, map[string]string{"uid": "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotURL != "/bans/create?limit=21" {
		t.Errorf("unexpected url: %s", gotURL)
	}
	if gotContentType != "application/json" {
		t.Errorf("unexpected content type: %s", gotContentType)
	}
	if gotBody != `{"uid":"x"}` {
		t.Errorf("unexpected body: %s", gotBody)
	}
}

func TestClient_DecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "data": {"uid": "1"}}`))
	}))
	defer srv.Close()

	env, err := testClient(srv).Do(context.Background(), domain.Credential{Token: "t"}, http.MethodGet, "/users/me", "/users/me", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !env.Ok() {
		t.Error("expected explicit success")
	}
	if string(env.Data) != `{"uid": "1"}` {
		t.Errorf("unexpected data: %s", env.Data)
	}
}

// Endpoints that answer with a bare payload still yield a usable envelope:
// no explicit success, full body in Raw.
func TestClient_BarePayloadKeepsRawBody(t *testing.T) {
	body := `{"total": 3, "records": [1, 2, 3]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	env, err := testClient(srv).Do(context.Background(), domain.Credential{Token: "t"}, http.MethodGet, "/users", "/users", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Ok() || env.Failed() {
		t.Error("bare payload must report neither success nor failure")
	}
	if string(env.Payload()) != body {
		t.Errorf("raw body lost: %s", env.Payload())
	}
}

func TestClient_ForwardsUpstreamStatus(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusBadGateway} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := testClient(srv).Do(context.Background(), domain.Credential{Token: "t"}, http.MethodGet, "/users/me", "/users/me", nil, nil)
		srv.Close()

		var ue *domain.UpstreamError
		if !errors.As(err, &ue) {
			t.Fatalf("status %d: expected *UpstreamError, got %v", status, err)
		}
		if ue.Status != status {
			t.Errorf("expected status %d, got %d", status, ue.Status)
		}
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := testClient(srv).Do(context.Background(), domain.Credential{Token: "t"}, http.MethodGet, "/users/me", "/users/me", nil, nil)
	if !errors.Is(err, domain.ErrUpstreamUnreachable) {
		t.Fatalf("expected ErrUpstreamUnreachable, got %v", err)
	}
}

func TestClient_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := testClient(srv).Do(context.Background(), domain.Credential{Token: "t"}, http.MethodGet, "/users/me", "/users/me", nil, nil)
	if !errors.Is(err, domain.ErrUpstreamUnreachable) {
		t.Fatalf("expected ErrUpstreamUnreachable, got %v", err)
	}
}

// Parameterized routes label metrics with their template, not the concrete
// path, so one series covers every uid.
func TestClient_MetricsLabelIsRouteTemplate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "data": {}}`))
	}))
	defer srv.Close()

	_, err := testClient(srv).Do(context.Background(), domain.Credential{Token: "t"}, http.MethodGet, "/users/:uid", "/users/76561198000000042", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var sawTemplate, sawConcrete bool
	for _, mf := range families {
		if mf.GetName() != "panel_upstream_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() != "endpoint" {
					continue
				}
				switch l.GetValue() {
				case "/users/:uid":
					sawTemplate = true
				case "/users/76561198000000042":
					sawConcrete = true
				}
			}
		}
	}
	if !sawTemplate {
		t.Error("no series labeled with the route template")
	}
	if sawConcrete {
		t.Error("series labeled with a concrete uid path")
	}
}

func TestClient_TrimsTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL + "/"}, testLog)
	if _, err := c.Do(context.Background(), domain.Credential{Token: "t"}, http.MethodGet, "/users", "/users", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/users" {
		t.Errorf("unexpected path: %s", gotPath)
	}
}
