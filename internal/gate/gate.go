// Package gate implements the credential gate: the client-side state machine
// deciding whether the protected dashboard may be shown. It is a two-phase
// health check — test the stored token, then cross-check it against the
// signed-in identity — gating everything behind it.
//
// The gate only runs when an identity session is active; without one the
// caller shows the public surface and the gate is never consulted.
package gate

import (
	"context"
	"errors"
)

// State is the gate's position in the check lifecycle.
type State int

const (
	// StateUnknown is the initial state before any check has run.
	StateUnknown State = iota
	// StateChecking is transient while the two-phase check is in flight.
	StateChecking
	// StateAuthorized means both checks passed; the dashboard may render.
	StateAuthorized
	// StateUnauthorized means a check failed; the setup flow must collect a
	// replacement token before anything protected is shown.
	StateUnauthorized
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAuthorized:
		return "authorized"
	case StateUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// PanelAPI is the slice of the panel surface the gate drives. TestCredential
// and ValidateCredential return nil only when the respective check passes.
type PanelAPI interface {
	TestCredential(ctx context.Context) error
	ValidateCredential(ctx context.Context) error
	SetCredential(ctx context.Context, token string) error
	ClearCredential(ctx context.Context) error
}

// Gate runs the two-phase credential check and tracks the outcome. It is not
// safe for concurrent use; drive it from a single flow.
type Gate struct {
	api     PanelAPI
	state   State
	message string
}

// New creates a Gate in StateUnknown.
func New(api PanelAPI) *Gate {
	return &Gate{api: api, state: StateUnknown}
}

// State returns the current state.
func (g *Gate) State() State {
	return g.state
}

// Authorized reports whether the dashboard may be shown.
func (g *Gate) Authorized() bool {
	return g.state == StateAuthorized
}

// Message returns the failure text from the last check, empty when authorized.
func (g *Gate) Message() string {
	return g.message
}

// Check runs the two-phase check: test the stored credential, then validate
// it against the signed-in identity. Any failure — missing token, upstream
// rejection, account mismatch, insufficient privilege, network error — lands
// in StateUnauthorized; the gate does not distinguish failure subtypes
// beyond the surfaced message. Repeated calls with unchanged inputs converge
// on the same terminal state.
func (g *Gate) Check(ctx context.Context) State {
	g.state = StateChecking

	if err := g.api.TestCredential(ctx); err != nil {
		return g.deny(err)
	}
	if err := g.api.ValidateCredential(ctx); err != nil {
		return g.deny(err)
	}

	g.state = StateAuthorized
	g.message = ""
	return g.state
}

// Repair submits a replacement token and re-runs both checks. On failure the
// just-submitted token is cleared so a bad credential is not left in place,
// and the gate stays in StateUnauthorized with the failure message.
func (g *Gate) Repair(ctx context.Context, token string) (State, error) {
	if err := g.api.SetCredential(ctx, token); err != nil {
		return g.deny(err), err
	}

	if g.Check(ctx) != StateAuthorized {
		_ = g.api.ClearCredential(ctx)
		return g.state, errors.New(g.message)
	}

	return g.state, nil
}

func (g *Gate) deny(err error) State {
	g.state = StateUnauthorized
	g.message = err.Error()
	return g.state
}
