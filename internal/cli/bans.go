package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func newBansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bans",
		Short: "Ban management views",
	}

	cmd.AddCommand(newBansListCmd())
	cmd.AddCommand(newBansCreateCmd())
	cmd.AddCommand(newBansDeleteCmd())

	return cmd
}

func newBansListCmd() *cobra.Command {
	var search string
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bans",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ensureAuthorized(cmd.Context()); err != nil {
				return err
			}

			query := url.Values{}
			query.Set("search", search)
			query.Set("limit", strconv.Itoa(limit))
			query.Set("offset", strconv.Itoa(offset))

			var result json.RawMessage
			if err := client.Get("/api/bans", query, &result); err != nil {
				return err
			}

			NewOutput("json").Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Search term")
	cmd.Flags().IntVar(&limit, "limit", 21, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")

	return cmd
}

func newBansCreateCmd() *cobra.Command {
	var uid, reason, proof string
	var duration int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Ban a user (duration 0 means permanent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ensureAuthorized(cmd.Context()); err != nil {
				return err
			}

			req := map[string]any{
				"uid":      uid,
				"duration": duration,
				"reason":   reason,
				"proof":    proof,
			}
			var result struct {
				Message string `json:"message"`
			}
			if err := client.Post("/api/bans/create", req, &result); err != nil {
				return err
			}

			fmt.Println(result.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&uid, "uid", "", "Platform user id (required)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Ban duration in seconds, 0 = permanent")
	cmd.Flags().StringVar(&reason, "reason", "", "Ban reason (required)")
	cmd.Flags().StringVar(&proof, "proof", "", "Proof link (required)")
	_ = cmd.MarkFlagRequired("uid")
	_ = cmd.MarkFlagRequired("reason")
	_ = cmd.MarkFlagRequired("proof")

	return cmd
}

func newBansDeleteCmd() *cobra.Command {
	var uid, reason string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove a ban",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ensureAuthorized(cmd.Context()); err != nil {
				return err
			}

			req := map[string]string{"uid": uid, "reason": reason}
			var result struct {
				Message string `json:"message"`
			}
			if err := client.Post("/api/bans/delete", req, &result); err != nil {
				return err
			}

			fmt.Println(result.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&uid, "uid", "", "Platform user id (required)")
	cmd.Flags().StringVar(&reason, "reason", "", "Unban reason (required)")
	_ = cmd.MarkFlagRequired("uid")
	_ = cmd.MarkFlagRequired("reason")

	return cmd
}
