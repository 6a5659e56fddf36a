package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/grust-community/admin-panel/internal/core/domain"
	"github.com/grust-community/admin-panel/internal/core/ports"
)

// SessionService exchanges provider-signed identity assertions for panel
// sessions stored server-side. The assertion is an HS256 JWT minted by the
// identity-provider gateway with sub/name/avatar claims; the redirect flow
// that produces it is outside this service.
type SessionService struct {
	store  ports.SessionStore
	secret string
	ttl    time.Duration
}

func NewSessionService(store ports.SessionStore, secret string, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &SessionService{store: store, secret: secret, ttl: ttl}
}

// Exchange verifies the assertion and creates a session. The claims carry
// the authenticated staff member's profile.
func (s *SessionService) Exchange(ctx context.Context, assertion string) (string, domain.Identity, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(assertion, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.Identity{}, domain.ErrInvalidAssertion
	}

	accountID, _ := claims["sub"].(string)
	if accountID == "" {
		return "", domain.Identity{}, domain.ErrInvalidAssertion
	}
	name, _ := claims["name"].(string)
	avatar, _ := claims["avatar"].(string)

	identity := domain.Identity{
		AccountID:   accountID,
		DisplayName: name,
		AvatarURL:   avatar,
	}

	id, err := newSessionID()
	if err != nil {
		return "", domain.Identity{}, fmt.Errorf("session id: %w", err)
	}

	if err := s.store.Save(ctx, id, identity, s.ttl); err != nil {
		return "", domain.Identity{}, fmt.Errorf("save session: %w", err)
	}

	return id, identity, nil
}

// Resolve maps a session id back to its identity.
func (s *SessionService) Resolve(ctx context.Context, sessionID string) (domain.Identity, error) {
	return s.store.Find(ctx, sessionID)
}

// Destroy removes the session. Destroying an unknown session is not an error.
func (s *SessionService) Destroy(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

// TTL exposes the session lifetime so the handler can align cookie expiry.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

func newSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
