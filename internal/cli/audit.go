package cli

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/grust-community/admin-panel/internal/core/domain"
)

func newAuditCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recent panel moderation actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ensureAuthorized(cmd.Context()); err != nil {
				return err
			}

			query := url.Values{}
			query.Set("limit", strconv.Itoa(limit))

			var result struct {
				Success bool                `json:"success"`
				Data    []domain.AuditEntry `json:"data"`
			}
			if err := client.Get("/api/audit", query, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if cfg.Output == "json" {
				out.Print(result.Data)
				return nil
			}

			rows := make([][]string, 0, len(result.Data))
			for _, entry := range result.Data {
				rows = append(rows, []string{
					entry.CreatedAt.Format("2006-01-02 15:04"),
					entry.Action,
					entry.TargetUID,
					entry.ActorName,
					entry.Reason,
				})
			}
			out.Table([]string{"WHEN", "ACTION", "TARGET", "ACTOR", "REASON"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Max entries")

	return cmd
}
