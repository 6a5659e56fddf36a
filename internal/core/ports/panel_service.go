package ports

import (
	"context"
	"encoding/json"

	"github.com/grust-community/admin-panel/internal/core/domain"
)

// ListInput carries pagination and search parameters passed through verbatim
// to upstream list endpoints.
type ListInput struct {
	Search string
	Limit  int
	Offset int
}

// CreateBanInput carries a ban request. Duration 0 means permanent.
type CreateBanInput struct {
	UID      string
	Duration int
	Reason   string
	Proof    string
}

// DeleteBanInput carries an unban request.
type DeleteBanInput struct {
	UID    string
	Reason string
}

// CreateWarnInput carries a warning request.
type CreateWarnInput struct {
	UID    string
	Reason string
}

// PanelService implements the proxy business rules: it forwards shaped
// requests to the upstream API with the caller's credential and reshapes the
// responses. List results stay raw JSON so upstream pagination fields are
// relayed untouched.
type PanelService interface {
	// TestCredential calls who-am-I with the stored credential and returns
	// the owner profile when the credential is accepted.
	TestCredential(ctx context.Context, cred domain.Credential) (*domain.ModeratorProfile, json.RawMessage, error)

	// ValidateCredential runs the full cross-check: who-am-I, strict account
	// equality against the identity, then the power threshold.
	ValidateCredential(ctx context.Context, identity domain.Identity, cred domain.Credential) (*domain.ModeratorProfile, json.RawMessage, error)

	ListUsers(ctx context.Context, cred domain.Credential, in ListInput) (json.RawMessage, error)
	GetUser(ctx context.Context, cred domain.Credential, uid string) (json.RawMessage, error)

	ListBans(ctx context.Context, cred domain.Credential, in ListInput) (json.RawMessage, error)
	CreateBan(ctx context.Context, identity domain.Identity, cred domain.Credential, in CreateBanInput) error
	DeleteBan(ctx context.Context, identity domain.Identity, cred domain.Credential, in DeleteBanInput) error

	ListWarns(ctx context.Context, cred domain.Credential, uid string) (json.RawMessage, error)
	CreateWarn(ctx context.Context, identity domain.Identity, cred domain.Credential, in CreateWarnInput) error
}

// StatsService fetches the upstream aggregate and derives the trailing
// daily window requested by the caller.
type StatsService interface {
	Fetch(ctx context.Context, cred domain.Credential, days int) (*domain.Stats, error)
}
