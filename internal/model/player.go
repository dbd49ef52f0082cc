package model

// PlayerAggregate holds the running totals for one player on one board.
// Only ever changed through atomic increments.
type PlayerAggregate struct {
	Name        string
	TotalPoints int64
	GamesPlayed int64
	Wins        int64
}

// AveragePoints is computed on read, 0 when no games were played
func (a PlayerAggregate) AveragePoints() float64 {
	if a.GamesPlayed == 0 {
		return 0
	}
	return float64(a.TotalPoints) / float64(a.GamesPlayed)
}

// AggregateDelta is the increment one game applies to one player's aggregate
type AggregateDelta struct {
	Name        string
	TotalPoints int64
	GamesPlayed int64
	Wins        int64
}

// PlayerStats is one ranked leaderboard row
type PlayerStats struct {
	Rank          int
	Name          string
	TotalPoints   int64
	GamesPlayed   int64
	Wins          int64
	AveragePoints float64
}

// StatsFromAggregate derives a stat row (without rank) from an aggregate
func StatsFromAggregate(a PlayerAggregate) PlayerStats {
	return PlayerStats{
		Name:          a.Name,
		TotalPoints:   a.TotalPoints,
		GamesPlayed:   a.GamesPlayed,
		Wins:          a.Wins,
		AveragePoints: a.AveragePoints(),
	}
}

// ProfileLink associates a board-scoped player name with an uploaded asset
type ProfileLink struct {
	PlayerName string
	AssetURL   string
}
