package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/grust-community/admin-panel/internal/api/metrics"
	"github.com/grust-community/admin-panel/internal/core/domain"
	"github.com/grust-community/admin-panel/internal/core/ports"
)

type panelService struct {
	client   ports.UpstreamClient
	audit    ports.AuditRecorder
	minPower int
	log      zerolog.Logger
}

// NewPanelService returns a PanelService implementation proxying to the
// gRust API. minPower is the privilege floor enforced by ValidateCredential.
func NewPanelService(client ports.UpstreamClient, audit ports.AuditRecorder, minPower int, log zerolog.Logger) ports.PanelService {
	return &panelService{
		client:   client,
		audit:    audit,
		minPower: minPower,
		log:      log,
	}
}

// TestCredential calls who-am-I with the stored credential. A 200 envelope
// with success:true proves the credential is accepted upstream.
func (s *panelService) TestCredential(ctx context.Context, cred domain.Credential) (*domain.ModeratorProfile, json.RawMessage, error) {
	if cred.IsZero() {
		return nil, nil, domain.ErrMissingCredential
	}

	env, err := s.client.Do(ctx, cred, http.MethodGet, "/users/me", "/users/me", nil, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("test credential: %w", err)
	}
	if !env.Ok() {
		return nil, nil, fmt.Errorf("test credential: %w", domain.ErrUpstreamLogicalFailure)
	}

	var profile domain.ModeratorProfile
	if err := json.Unmarshal(env.Data, &profile); err != nil {
		return nil, nil, fmt.Errorf("test credential: %w: malformed who-am-I payload", domain.ErrUpstreamUnreachable)
	}

	return &profile, env.Data, nil
}

// ValidateCredential runs the full cross-check: who-am-I, strict account
// equality against the signed-in identity, then the power threshold. The
// identity mismatch is a hard failure regardless of power, and an
// insufficient power level fails independently of identity match.
func (s *panelService) ValidateCredential(ctx context.Context, identity domain.Identity, cred domain.Credential) (*domain.ModeratorProfile, json.RawMessage, error) {
	profile, raw, err := s.TestCredential(ctx, cred)
	if err != nil {
		metrics.CredentialValidationsTotal.WithLabelValues("invalid").Inc()
		return nil, nil, err
	}

	if domain.ComparableAccountID(profile.UID) != domain.ComparableAccountID(identity.AccountID) {
		metrics.CredentialValidationsTotal.WithLabelValues("mismatch").Inc()
		return nil, nil, domain.ErrIdentityMismatch
	}

	if profile.Power < s.minPower {
		metrics.CredentialValidationsTotal.WithLabelValues("insufficient_power").Inc()
		return nil, nil, domain.ErrInsufficientPrivilege
	}

	metrics.CredentialValidationsTotal.WithLabelValues("valid").Inc()
	return profile, raw, nil
}

func (s *panelService) ListUsers(ctx context.Context, cred domain.Credential, in ports.ListInput) (json.RawMessage, error) {
	return s.list(ctx, cred, "/users", in)
}

func (s *panelService) GetUser(ctx context.Context, cred domain.Credential, uid string) (json.RawMessage, error) {
	if cred.IsZero() {
		return nil, domain.ErrMissingCredential
	}

	env, err := s.client.Do(ctx, cred, http.MethodGet, "/users/:uid", "/users/"+url.PathEscape(uid), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if env.Failed() {
		return nil, fmt.Errorf("get user: %w", domain.ErrUpstreamLogicalFailure)
	}

	return env.Payload(), nil
}

func (s *panelService) ListBans(ctx context.Context, cred domain.Credential, in ports.ListInput) (json.RawMessage, error) {
	return s.list(ctx, cred, "/bans", in)
}

// list relays a paginated upstream listing. The upstream pagination fields
// (total, records) pass through verbatim.
func (s *panelService) list(ctx context.Context, cred domain.Credential, path string, in ports.ListInput) (json.RawMessage, error) {
	if cred.IsZero() {
		return nil, domain.ErrMissingCredential
	}

	query := url.Values{}
	query.Set("search", in.Search)
	query.Set("limit", strconv.Itoa(in.Limit))
	query.Set("offset", strconv.Itoa(in.Offset))

	env, err := s.client.Do(ctx, cred, http.MethodGet, path, path, query, nil)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}
	if env.Failed() {
		return nil, fmt.Errorf("list %s: %w", path, domain.ErrUpstreamLogicalFailure)
	}

	return env.Payload(), nil
}

func (s *panelService) CreateBan(ctx context.Context, identity domain.Identity, cred domain.Credential, in ports.CreateBanInput) error {
	if cred.IsZero() {
		return domain.ErrMissingCredential
	}

	payload := map[string]any{
		"uid":      in.UID,
		"duration": in.Duration,
		"reason":   in.Reason,
		"proof":    in.Proof,
	}

	env, err := s.client.Do(ctx, cred, http.MethodPost, "/bans/create", "/bans/create", nil, payload)
	if err != nil {
		return fmt.Errorf("create ban: %w", err)
	}
	if !env.Ok() {
		return fmt.Errorf("create ban: %w", domain.ErrUpstreamLogicalFailure)
	}

	s.recordAction(ctx, identity, domain.AuditEntry{
		Action:    domain.AuditBanCreated,
		TargetUID: in.UID,
		Reason:    in.Reason,
		Duration:  in.Duration,
	})
	s.log.Info().
		Str("actor", identity.AccountID).
		Str("uid", in.UID).
		Int("duration", in.Duration).
		Msg("ban created")
	return nil
}

func (s *panelService) DeleteBan(ctx context.Context, identity domain.Identity, cred domain.Credential, in ports.DeleteBanInput) error {
	if cred.IsZero() {
		return domain.ErrMissingCredential
	}

	payload := map[string]any{
		"uid":    in.UID,
		"reason": in.Reason,
	}

	env, err := s.client.Do(ctx, cred, http.MethodPost, "/bans/delete", "/bans/delete", nil, payload)
	if err != nil {
		return fmt.Errorf("delete ban: %w", err)
	}
	if !env.Ok() {
		return fmt.Errorf("delete ban: %w", domain.ErrUpstreamLogicalFailure)
	}

	s.recordAction(ctx, identity, domain.AuditEntry{
		Action:    domain.AuditBanDeleted,
		TargetUID: in.UID,
		Reason:    in.Reason,
	})
	s.log.Info().
		Str("actor", identity.AccountID).
		Str("uid", in.UID).
		Msg("ban removed")
	return nil
}

func (s *panelService) ListWarns(ctx context.Context, cred domain.Credential, uid string) (json.RawMessage, error) {
	if cred.IsZero() {
		return nil, domain.ErrMissingCredential
	}

	env, err := s.client.Do(ctx, cred, http.MethodGet, "/warns/:uid", "/warns/"+url.PathEscape(uid), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list warns: %w", err)
	}
	if env.Failed() {
		return nil, fmt.Errorf("list warns: %w", domain.ErrUpstreamLogicalFailure)
	}

	return env.Payload(), nil
}

func (s *panelService) CreateWarn(ctx context.Context, identity domain.Identity, cred domain.Credential, in ports.CreateWarnInput) error {
	if cred.IsZero() {
		return domain.ErrMissingCredential
	}

	payload := map[string]any{
		"uid":    in.UID,
		"reason": in.Reason,
	}

	env, err := s.client.Do(ctx, cred, http.MethodPost, "/warns/create", "/warns/create", nil, payload)
	if err != nil {
		return fmt.Errorf("create warn: %w", err)
	}
	if !env.Ok() {
		return fmt.Errorf("create warn: %w", domain.ErrUpstreamLogicalFailure)
	}

	s.recordAction(ctx, identity, domain.AuditEntry{
		Action:    domain.AuditWarnCreated,
		TargetUID: in.UID,
		Reason:    in.Reason,
	})
	s.log.Info().
		Str("actor", identity.AccountID).
		Str("uid", in.UID).
		Msg("warn created")
	return nil
}

// recordAction persists an audit entry. Audit failures never fail the
// proxied operation.
func (s *panelService) recordAction(ctx context.Context, identity domain.Identity, entry domain.AuditEntry) {
	metrics.ModerationActionsTotal.WithLabelValues(entry.Action).Inc()

	if s.audit == nil {
		return
	}
	entry.ActorAccountID = identity.AccountID
	entry.ActorName = identity.DisplayName
	entry.CreatedAt = time.Now().UTC()
	if err := s.audit.Record(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("action", entry.Action).Msg("audit record failed")
	}
}
