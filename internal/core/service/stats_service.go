package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/grust-community/admin-panel/internal/core/domain"
	"github.com/grust-community/admin-panel/internal/core/ports"
)

// upstreamStats mirrors the raw aggregate returned by /util/stats. Missing
// numeric fields decode to zero, missing lists to nil.
type upstreamStats struct {
	Today        domain.DayTotals   `json:"today"`
	Yesterday    domain.DayTotals   `json:"yesterday"`
	WeekData     []domain.DayTotals `json:"week_data"`
	BestDays     []domain.BestDay   `json:"best_days"`
	TotalPlayers int                `json:"total_players"`
	TotalBans    int                `json:"total_bans"`
	NewPlayers   int                `json:"new_players"`
}

type statsService struct {
	client ports.UpstreamClient
	now    func() time.Time
	log    zerolog.Logger
}

// NewStatsService returns a StatsService. now is injected for deterministic
// date labelling in tests; nil falls back to time.Now.
func NewStatsService(client ports.UpstreamClient, now func() time.Time, log zerolog.Logger) ports.StatsService {
	if now == nil {
		now = time.Now
	}
	return &statsService{client: client, now: now, log: log}
}

// Fetch retrieves the upstream aggregate and derives the trailing window of
// the requested length. Entries are ordered oldest to newest; entry i of a
// window of length L is dated today-(L-1-i) days and labelled with the short
// weekday plus day of month.
func (s *statsService) Fetch(ctx context.Context, cred domain.Credential, days int) (*domain.Stats, error) {
	if cred.IsZero() {
		return nil, domain.ErrMissingCredential
	}

	env, err := s.client.Do(ctx, cred, http.MethodGet, "/util/stats", "/util/stats", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	// Some upstream deployments serve the aggregate bare, without the
	// {success, data} wrapper; only an explicit success:false is a failure.
	if env.Failed() {
		return nil, fmt.Errorf("fetch stats: %w", domain.ErrUpstreamLogicalFailure)
	}

	var raw upstreamStats
	if err := json.Unmarshal(env.Payload(), &raw); err != nil {
		return nil, fmt.Errorf("fetch stats: %w: malformed aggregate", domain.ErrUpstreamUnreachable)
	}

	window := raw.WeekData
	if days < len(window) {
		window = window[len(window)-days:]
	}

	today := s.now()
	entries := make([]domain.WeekEntry, len(window))
	for i, d := range window {
		date := today.AddDate(0, 0, -(len(window) - 1 - i))
		entries[i] = domain.WeekEntry{
			Name:       fmt.Sprintf("%s (%d)", date.Format("Mon"), date.Day()),
			Bans:       d.Bans,
			NewPlayers: d.NewPlayers,
			Unbans:     d.Unbans,
			Date:       date.Format("2006-01-02"),
		}
	}

	best := raw.BestDays
	if best == nil {
		best = []domain.BestDay{}
	}

	return &domain.Stats{
		Today:        raw.Today,
		Yesterday:    raw.Yesterday,
		WeekData:     entries,
		BestDays:     best,
		TotalPlayers: raw.TotalPlayers,
		TotalBans:    raw.TotalBans,
		NewPlayers:   raw.NewPlayers,
	}, nil
}
