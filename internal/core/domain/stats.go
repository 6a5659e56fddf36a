package domain

// DayTotals is a single day's aggregate counters.
type DayTotals struct {
	Bans       int `json:"bans"`
	NewPlayers int `json:"new_players"`
	Unbans     int `json:"unbans"`
}

// WeekEntry is one shaped point of the trailing daily series. Name is a
// human label ("Mon (25)"), Date the ISO form of the same day.
type WeekEntry struct {
	Name       string `json:"name"`
	Bans       int    `json:"bans"`
	NewPlayers int    `json:"new_players"`
	Unbans     int    `json:"unbans"`
	Date       string `json:"date"`
}

// BestDay is an upstream-reported record day, passed through unshaped.
type BestDay struct {
	Data DayTotals `json:"data"`
	Date string    `json:"date"`
}

// Stats is the shaped aggregate served to dashboard views.
type Stats struct {
	Today        DayTotals   `json:"today"`
	Yesterday    DayTotals   `json:"yesterday"`
	WeekData     []WeekEntry `json:"week_data"`
	BestDays     []BestDay   `json:"best_days"`
	TotalPlayers int         `json:"total_players"`
	TotalBans    int         `json:"total_bans"`
	NewPlayers   int         `json:"new_players"`
}
