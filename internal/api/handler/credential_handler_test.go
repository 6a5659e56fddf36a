package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/grust-community/admin-panel/internal/api/middleware"
	"github.com/grust-community/admin-panel/internal/core/domain"
	"github.com/grust-community/admin-panel/internal/core/ports"
)

// stubPanelService implements ports.PanelService with function fields so each
// test overrides only what it needs.
type stubPanelService struct {
	testFn     func(ctx context.Context, cred domain.Credential) (*domain.ModeratorProfile, json.RawMessage, error)
	validateFn func(ctx context.Context, identity domain.Identity, cred domain.Credential) (*domain.ModeratorProfile, json.RawMessage, error)
	listUsers  func(ctx context.Context, cred domain.Credential, in ports.ListInput) (json.RawMessage, error)
	getUser    func(ctx context.Context, cred domain.Credential, uid string) (json.RawMessage, error)
	listBans   func(ctx context.Context, cred domain.Credential, in ports.ListInput) (json.RawMessage, error)
	createBan  func(ctx context.Context, identity domain.Identity, cred domain.Credential, in ports.CreateBanInput) error
	deleteBan  func(ctx context.Context, identity domain.Identity, cred domain.Credential, in ports.DeleteBanInput) error
	listWarns  func(ctx context.Context, cred domain.Credential, uid string) (json.RawMessage, error)
	createWarn func(ctx context.Context, identity domain.Identity, cred domain.Credential, in ports.CreateWarnInput) error
}

func (s *stubPanelService) TestCredential(ctx context.Context, cred domain.Credential) (*domain.ModeratorProfile, json.RawMessage, error) {
	return s.testFn(ctx, cred)
}

func (s *stubPanelService) ValidateCredential(ctx context.Context, identity domain.Identity, cred domain.Credential) (*domain.ModeratorProfile, json.RawMessage, error) {
	return s.validateFn(ctx, identity, cred)
}

func (s *stubPanelService) ListUsers(ctx context.Context, cred domain.Credential, in ports.ListInput) (json.RawMessage, error) {
	return s.listUsers(ctx, cred, in)
}

func (s *stubPanelService) GetUser(ctx context.Context, cred domain.Credential, uid string) (json.RawMessage, error) {
	return s.getUser(ctx, cred, uid)
}

func (s *stubPanelService) ListBans(ctx context.Context, cred domain.Credential, in ports.ListInput) (json.RawMessage, error) {
	return s.listBans(ctx, cred, in)
}

func (s *stubPanelService) CreateBan(ctx context.Context, identity domain.Identity, cred domain.Credential, in ports.CreateBanInput) error {
	return s.createBan(ctx, identity, cred, in)
}

func (s *stubPanelService) DeleteBan(ctx context.Context, identity domain.Identity, cred domain.Credential, in ports.DeleteBanInput) error {
	return s.deleteBan(ctx, identity, cred, in)
}

func (s *stubPanelService) ListWarns(ctx context.Context, cred domain.Credential, uid string) (json.RawMessage, error) {
	return s.listWarns(ctx, cred, uid)
}

func (s *stubPanelService) CreateWarn(ctx context.Context, identity domain.Identity, cred domain.Credential, in ports.CreateWarnInput) error {
	return s.createWarn(ctx, identity, cred, in)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

// withCredential simulates the credential middleware having run.
func withCredential(c echo.Context, token string) {
	c.Set("credential", domain.Credential{Token: token})
}

// withIdentity simulates the session middleware having run.
func withIdentity(c echo.Context, identity domain.Identity) {
	c.Set("identity", identity)
}

// ---------------------------------------------------------------------------
// Set / Clear
// ---------------------------------------------------------------------------

func TestCredentialHandler_Set_StoresCookie(t *testing.T) {
	h := NewCredentialHandler(&stubPanelService{}, true)
	c, rec := newTestContext(t, http.MethodPost, "/api/credential", `{"jwt":"token-123"}`)

	if err := h.Set(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != "jwt" || cookie.Value != "token-123" {
		t.Errorf("unexpected cookie: %s=%s", cookie.Name, cookie.Value)
	}
	if !cookie.HttpOnly || cookie.Path != "/" || cookie.SameSite != http.SameSiteStrictMode {
		t.Errorf("cookie attributes wrong: %+v", cookie)
	}
	if !cookie.Secure {
		t.Error("secure handler must set a secure cookie")
	}
	if cookie.MaxAge != 7*24*60*60 {
		t.Errorf("expected 7d max-age, got %d", cookie.MaxAge)
	}
}

func TestCredentialHandler_Set_MissingToken(t *testing.T) {
	h := NewCredentialHandler(&stubPanelService{}, false)
	c, _ := newTestContext(t, http.MethodPost, "/api/credential", `{}`)

	err := h.Set(c)
	if httpErrorCode(t, err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestCredentialHandler_Set_MalformedPayload(t *testing.T) {
	h := NewCredentialHandler(&stubPanelService{}, false)
	c, _ := newTestContext(t, http.MethodPost, "/api/credential", `not-json`)

	err := h.Set(c)
	if httpErrorCode(t, err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestCredentialHandler_Clear_ExpiresCookie(t *testing.T) {
	h := NewCredentialHandler(&stubPanelService{}, false)
	c, rec := newTestContext(t, http.MethodDelete, "/api/credential", "")

	if err := h.Clear(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].Value != "" || cookies[0].MaxAge != -1 {
		t.Errorf("cookie not cleared: %+v", cookies[0])
	}
}

// jwtCookie returns the jwt cookie written by the last handler call.
func jwtCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "jwt" {
			return c
		}
	}
	t.Fatal("no jwt cookie in response")
	return nil
}

// Setting a second token overwrites the first: the browser keeps exactly one
// jwt cookie and subsequent calls carry the latest value.
func TestCredentialHandler_SetTwiceKeepsLatestToken(t *testing.T) {
	h := NewCredentialHandler(&stubPanelService{}, false)

	c1, rec1 := newTestContext(t, http.MethodPost, "/api/credential", `{"jwt":"tok-1"}`)
	if err := h.Set(c1); err != nil {
		t.Fatalf("first set: %v", err)
	}
	first := jwtCookie(t, rec1)

	c2, rec2 := newTestContext(t, http.MethodPost, "/api/credential", `{"jwt":"tok-2"}`)
	c2.Request().AddCookie(first)
	if err := h.Set(c2); err != nil {
		t.Fatalf("second set: %v", err)
	}
	second := jwtCookie(t, rec2)

	if second.Value != "tok-2" {
		t.Errorf("latest token not stored: %q", second.Value)
	}
	if second.MaxAge <= 0 {
		t.Errorf("replacement cookie must stay live, got max-age %d", second.MaxAge)
	}

	// The replacement is what the service sees afterwards.
	var gotToken string
	svc := &stubPanelService{
		testFn: func(_ context.Context, cred domain.Credential) (*domain.ModeratorProfile, json.RawMessage, error) {
			gotToken = cred.Token
			return &domain.ModeratorProfile{UID: "1"}, json.RawMessage(`{}`), nil
		},
	}
	c3, _ := newTestContext(t, http.MethodGet, "/api/credential/test", "")
	c3.Request().AddCookie(&http.Cookie{Name: second.Name, Value: second.Value})
	wrapped := middleware.Credential()(NewCredentialHandler(svc, false).Test)
	if err := wrapped(c3); err != nil {
		t.Fatalf("test after replace: %v", err)
	}
	if gotToken != "tok-2" {
		t.Errorf("service saw %q, want tok-2", gotToken)
	}
}

// After a clear the browser drops the cookie, so the next test call carries
// no credential and fails with the missing-credential error.
func TestCredentialHandler_ClearThenTestRequiresCredential(t *testing.T) {
	h := NewCredentialHandler(&stubPanelService{}, false)

	c1, rec1 := newTestContext(t, http.MethodDelete, "/api/credential", "")
	if err := h.Clear(c1); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if cleared := jwtCookie(t, rec1); cleared.MaxAge != -1 {
		t.Fatalf("clear must expire the cookie, got max-age %d", cleared.MaxAge)
	}

	svc := &stubPanelService{
		testFn: func(_ context.Context, cred domain.Credential) (*domain.ModeratorProfile, json.RawMessage, error) {
			if !cred.IsZero() {
				t.Fatalf("expected zero credential, got %q", cred.Token)
			}
			return nil, nil, domain.ErrMissingCredential
		},
	}
	c2, _ := newTestContext(t, http.MethodGet, "/api/credential/test", "")
	wrapped := middleware.Credential()(NewCredentialHandler(svc, false).Test)
	if err := wrapped(c2); !errors.Is(err, domain.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Test / Validate / Me
// ---------------------------------------------------------------------------

func TestCredentialHandler_Test_Success(t *testing.T) {
	svc := &stubPanelService{
		testFn: func(_ context.Context, cred domain.Credential) (*domain.ModeratorProfile, json.RawMessage, error) {
			if cred.Token != "tok" {
				t.Fatalf("credential not forwarded: %q", cred.Token)
			}
			return &domain.ModeratorProfile{UID: "1"}, json.RawMessage(`{"uid":"1"}`), nil
		},
	}
	h := NewCredentialHandler(svc, false)
	c, rec := newTestContext(t, http.MethodGet, "/api/credential/test", "")
	withCredential(c, "tok")

	if err := h.Test(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["message"] != "JWT is valid" {
		t.Errorf("unexpected response: %v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["uid"] != "1" {
		t.Errorf("user payload not passed through: %v", resp["user"])
	}
}

func TestCredentialHandler_Test_MissingCredential(t *testing.T) {
	svc := &stubPanelService{
		testFn: func(_ context.Context, cred domain.Credential) (*domain.ModeratorProfile, json.RawMessage, error) {
			return nil, nil, domain.ErrMissingCredential
		},
	}
	h := NewCredentialHandler(svc, false)
	c, _ := newTestContext(t, http.MethodGet, "/api/credential/test", "")

	if err := h.Test(c); !errors.Is(err, domain.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

func TestCredentialHandler_Validate_Success(t *testing.T) {
	svc := &stubPanelService{
		validateFn: func(_ context.Context, identity domain.Identity, cred domain.Credential) (*domain.ModeratorProfile, json.RawMessage, error) {
			if identity.AccountID != "765611" {
				t.Fatalf("identity not forwarded: %+v", identity)
			}
			return &domain.ModeratorProfile{UID: "765611", Power: 6}, json.RawMessage(`{"uid":"765611"}`), nil
		},
	}
	h := NewCredentialHandler(svc, false)
	c, rec := newTestContext(t, http.MethodPost, "/api/credential/validate", "")
	withCredential(c, "tok")
	withIdentity(c, domain.Identity{AccountID: "765611"})

	if err := h.Validate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["message"] != "JWT token is valid and matches your account" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
}

func TestCredentialHandler_Validate_Mismatch(t *testing.T) {
	svc := &stubPanelService{
		validateFn: func(context.Context, domain.Identity, domain.Credential) (*domain.ModeratorProfile, json.RawMessage, error) {
			return nil, nil, domain.ErrIdentityMismatch
		},
	}
	h := NewCredentialHandler(svc, false)
	c, _ := newTestContext(t, http.MethodPost, "/api/credential/validate", "")
	withCredential(c, "tok")
	withIdentity(c, domain.Identity{AccountID: "other"})

	if err := h.Validate(c); !errors.Is(err, domain.ErrIdentityMismatch) {
		t.Fatalf("expected ErrIdentityMismatch, got %v", err)
	}
}

func TestCredentialHandler_Me_PassesThroughProfile(t *testing.T) {
	svc := &stubPanelService{
		testFn: func(context.Context, domain.Credential) (*domain.ModeratorProfile, json.RawMessage, error) {
			return &domain.ModeratorProfile{UID: "1"}, json.RawMessage(`{"uid":"1","nickname":"mod","extra_field":true}`), nil
		},
	}
	h := NewCredentialHandler(svc, false)
	c, rec := newTestContext(t, http.MethodGet, "/api/me", "")
	withCredential(c, "tok")

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", resp)
	}
	// Unmodelled upstream fields must survive the relay.
	if data["extra_field"] != true {
		t.Errorf("extra upstream field dropped: %v", data)
	}
}
