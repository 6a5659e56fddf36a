package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grust-community/admin-panel/internal/core/domain"
)

type identityResult struct {
	Success  bool            `json:"success"`
	Identity domain.Identity `json:"identity"`
}

func newLoginCmd() *cobra.Command {
	var assertion string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with an identity-provider assertion",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"assertion": assertion}
			var result identityResult

			if err := client.Post("/api/session", req, &result); err != nil {
				return err
			}
			if err := saveClientState(); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			fmt.Printf("Signed in as %s (%s)\n", result.Identity.DisplayName, result.Identity.AccountID)
			return nil
		},
	}

	cmd.Flags().StringVar(&assertion, "assertion", "", "Signed identity assertion (required)")
	_ = cmd.MarkFlagRequired("assertion")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and destroy the panel session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/session", nil); err != nil {
				return err
			}
			if err := saveClientState(); err != nil {
				return err
			}
			fmt.Println("Signed out")
			return nil
		},
	}
}
