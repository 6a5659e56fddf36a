package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential is returned when no moderation token is stored in
	// the browser session. Handlers surface it as 401 with a remediation hint.
	ErrMissingCredential = errors.New("jwt not found")

	// ErrUpstreamLogicalFailure covers upstream 200 responses carrying
	// success:false in the envelope.
	ErrUpstreamLogicalFailure = errors.New("upstream rejected the operation")

	// ErrUpstreamUnreachable covers transport and JSON decode failures when
	// talking to the gRust API.
	ErrUpstreamUnreachable = errors.New("upstream unreachable")

	// ErrIdentityMismatch means the stored token belongs to a different
	// account than the signed-in staff member.
	ErrIdentityMismatch = errors.New("credential does not match the signed-in account")

	// ErrInsufficientPrivilege means the token's power level is below the
	// configured moderation threshold.
	ErrInsufficientPrivilege = errors.New("administrator privileges required")

	// ErrSessionNotFound means the panel_session cookie references no live
	// identity session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidAssertion means the identity-provider assertion failed
	// signature or claim checks.
	ErrInvalidAssertion = errors.New("invalid identity assertion")
)

// UpstreamError carries an upstream HTTP error so handlers can forward the
// original status code with a generic body.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream request failed with status %d", e.Status)
}
