package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

func newCredentialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credential",
		Short: "Manage the stored moderation token",
	}

	cmd.AddCommand(newCredentialSetCmd())
	cmd.AddCommand(newCredentialTestCmd())
	cmd.AddCommand(newCredentialClearCmd())

	return cmd
}

func newCredentialSetCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store a new moderation token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/credential", map[string]string{"jwt": token}, nil); err != nil {
				return err
			}
			if err := saveClientState(); err != nil {
				return err
			}
			fmt.Println("Token stored")
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Moderation token (required)")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}

func newCredentialTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Test the stored token against the upstream API",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
				User    any    `json:"user"`
			}
			if err := client.Get("/api/credential/test", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newCredentialClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored moderation token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Do(http.MethodDelete, "/api/credential", nil, nil, nil); err != nil {
				return err
			}
			if err := saveClientState(); err != nil {
				return err
			}
			fmt.Println("Token cleared")
			return nil
		},
	}
}
