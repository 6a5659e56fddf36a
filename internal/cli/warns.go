package cli

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newWarnsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "warns",
		Short: "Warning management views",
	}

	cmd.AddCommand(newWarnsListCmd())
	cmd.AddCommand(newWarnsCreateCmd())

	return cmd
}

func newWarnsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <uid>",
		Short: "List warnings for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ensureAuthorized(cmd.Context()); err != nil {
				return err
			}

			var result json.RawMessage
			if err := client.Get("/api/warns/"+url.PathEscape(args[0]), nil, &result); err != nil {
				return err
			}

			NewOutput("json").Print(result)
			return nil
		},
	}
}

func newWarnsCreateCmd() *cobra.Command {
	var uid, reason string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Warn a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ensureAuthorized(cmd.Context()); err != nil {
				return err
			}

			req := map[string]string{"uid": uid, "reason": reason}
			var result struct {
				Message string `json:"message"`
			}
			if err := client.Post("/api/warns/create", req, &result); err != nil {
				return err
			}

			fmt.Println(result.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&uid, "uid", "", "Platform user id (required)")
	cmd.Flags().StringVar(&reason, "reason", "", "Warn reason (required)")
	_ = cmd.MarkFlagRequired("uid")
	_ = cmd.MarkFlagRequired("reason")

	return cmd
}
