package cli

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/grust-community/admin-panel/internal/gate"
)

// gateAPI adapts the panel client to the gate's PanelAPI.
type gateAPI struct {
	client *Client
}

func (a *gateAPI) TestCredential(ctx context.Context) error {
	return a.client.Get("/api/credential/test", nil, nil)
}

func (a *gateAPI) ValidateCredential(ctx context.Context) error {
	return a.client.Post("/api/credential/validate", nil, nil)
}

func (a *gateAPI) SetCredential(ctx context.Context, token string) error {
	return a.client.Post("/api/credential", map[string]string{"jwt": token}, nil)
}

func (a *gateAPI) ClearCredential(ctx context.Context) error {
	return a.client.Do(http.MethodDelete, "/api/credential", nil, nil, nil)
}

// ensureAuthorized runs the credential gate before a protected command. When
// the gate lands in Unauthorized it runs the setup flow: prompt for a
// replacement token, submit it, and re-run both checks. An empty token
// aborts. Dashboard commands never reach the server while unauthorized.
//
// The gate only applies to a signed-in identity: without a session the
// validate call can never succeed, so a replacement token would be rejected
// too. Check the session first and point at login instead of prompting.
func ensureAuthorized(ctx context.Context) error {
	if err := client.Get("/api/session", nil, nil); err != nil {
		return fmt.Errorf("not signed in (%v); run \"panelctl login\" first", err)
	}

	g := gate.New(&gateAPI{client: client})

	if g.Check(ctx) == gate.StateAuthorized {
		return saveClientState()
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Fprintf(os.Stderr, "Credential check failed: %s\n", g.Message())
		fmt.Fprint(os.Stderr, "Paste a new moderation token (empty to abort): ")

		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("not authorized: %s", g.Message())
		}
		token := strings.TrimSpace(line)
		if token == "" {
			return fmt.Errorf("not authorized: %s", g.Message())
		}

		if _, err := g.Repair(ctx, token); err == nil {
			return saveClientState()
		}
	}
}

func saveClientState() error {
	return cfg.SaveState(client.Session(), client.Credential())
}
