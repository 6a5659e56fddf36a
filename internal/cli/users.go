package cli

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "User directory views",
	}

	cmd.AddCommand(newUsersListCmd())
	cmd.AddCommand(newUsersGetCmd())

	return cmd
}

type usersListResult struct {
	Total int               `json:"total"`
	Users []json.RawMessage `json:"users"`
}

func newUsersListCmd() *cobra.Command {
	var search string
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List platform users",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ensureAuthorized(cmd.Context()); err != nil {
				return err
			}

			query := url.Values{}
			query.Set("search", search)
			query.Set("limit", strconv.Itoa(limit))
			query.Set("offset", strconv.Itoa(offset))

			var result usersListResult
			if err := client.Get("/api/users", query, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if cfg.Output == "json" {
				out.Print(result)
				return nil
			}

			rows := make([][]string, 0, len(result.Users))
			for _, raw := range result.Users {
				var u struct {
					UID      string `json:"uid"`
					Nickname string `json:"nickname"`
					Power    int    `json:"power"`
				}
				if err := json.Unmarshal(raw, &u); err != nil {
					continue
				}
				rows = append(rows, []string{u.UID, u.Nickname, strconv.Itoa(u.Power)})
			}
			out.Table([]string{"UID", "NICKNAME", "POWER"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Search term")
	cmd.Flags().IntVar(&limit, "limit", 21, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")

	return cmd
}

func newUsersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <uid>",
		Short: "Show a user profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ensureAuthorized(cmd.Context()); err != nil {
				return err
			}

			var result json.RawMessage
			if err := client.Get("/api/users/"+url.PathEscape(args[0]), nil, &result); err != nil {
				return err
			}

			NewOutput("json").Print(result)
			return nil
		},
	}
}
