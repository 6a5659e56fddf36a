package domain

import "strings"

// Identity is the signed-in staff member's profile as asserted by the
// external identity provider. It is independent of the moderation credential;
// the panel only uses it to cross-check that the stored credential belongs to
// the same account.
type Identity struct {
	AccountID   string `json:"account_id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// Credential is the opaque bearer token issued by the gRust platform. It is
// stored exclusively in the jwt cookie and forwarded verbatim on every
// privileged upstream call.
type Credential struct {
	Token string
}

// IsZero reports whether no token is present.
func (c Credential) IsZero() bool {
	return c.Token == ""
}

// ComparableAccountID normalizes an account identifier for the who-am-I
// cross-check. Upstream and the identity provider both emit steamid64 as a
// decimal string, so the only normalization applied is whitespace trimming;
// any remaining difference is treated as a hard mismatch.
func ComparableAccountID(id string) string {
	return strings.TrimSpace(id)
}

// ModeratorProfile is the upstream "who-am-I" view of the credential owner.
// Only the fields the validation flow needs are modelled; the full object is
// passed through to clients untouched.
type ModeratorProfile struct {
	UID      string `json:"uid"`
	Nickname string `json:"nickname,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Power    int    `json:"power"`
}
