package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/grust-community/admin-panel/internal/core/domain"
)

type statsResult struct {
	Success bool         `json:"success"`
	Data    domain.Stats `json:"data"`
}

func newStatsCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show community statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ensureAuthorized(cmd.Context()); err != nil {
				return err
			}

			query := url.Values{}
			query.Set("days", strconv.Itoa(days))

			var result statsResult
			if err := client.Get("/api/stats", query, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if cfg.Output == "json" {
				out.Print(result.Data)
				return nil
			}

			stats := result.Data
			fmt.Printf("Players: %d   Bans: %d   New this week: %d\n\n",
				stats.TotalPlayers, stats.TotalBans, stats.NewPlayers)

			rows := make([][]string, 0, len(stats.WeekData))
			for _, d := range stats.WeekData {
				rows = append(rows, []string{
					d.Name,
					strconv.Itoa(d.NewPlayers),
					strconv.Itoa(d.Bans),
					strconv.Itoa(d.Unbans),
				})
			}
			out.Table([]string{"DAY", "NEW PLAYERS", "BANS", "UNBANS"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Trailing window: 3, 5 or 7")

	return cmd
}
