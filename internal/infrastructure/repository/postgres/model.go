package postgres

import (
	"github.com/riskibarqy/fantasy-cricket/internal/domain/roster"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/stats"
	qb "github.com/riskibarqy/fantasy-cricket/internal/platform/querybuilder"
)

const (
	playersTable        = "players"
	playerSheetTable    = "player_sheet_stats"
	appliedMatchesTable = "applied_matches"
)

type playerTableModel struct {
	Number int    `db:"number"`
	Name   string `db:"name"`
	Role   string `db:"role"`
}

func (m playerTableModel) toDomain() roster.Player {
	return roster.Player{Number: m.Number, Name: m.Name, Role: roster.Role(m.Role)}
}

// statTableModel mirrors one player_sheet_stats row. Columns after
// player_name are additive counters.
type statTableModel struct {
	Sheet      string `db:"sheet"`
	PlayerName string `db:"player_name"`

	Games           int `db:"games"`
	Runs            int `db:"runs"`
	Fours           int `db:"fours"`
	Sixes           int `db:"sixes"`
	Fifties         int `db:"fifties"`
	Centuries       int `db:"centuries"`
	OneFifties      int `db:"one_fifties"`
	DoubleCenturies int `db:"double_centuries"`
	Ducks           int `db:"ducks"`

	BallsBowled   int `db:"balls_bowled"`
	Wickets       int `db:"wickets"`
	RunsAgainst   int `db:"runs_against"`
	Maidens       int `db:"maidens"`
	ThreeFourFers int `db:"three_four_fers"`
	FiveFers      int `db:"five_fers"`
	SixPlusFers   int `db:"six_plus_fers"`

	Catches   int `db:"catches"`
	RunOuts   int `db:"run_outs"`
	Stumpings int `db:"stumpings"`

	ManOfTheMatch int `db:"man_of_the_match"`
	Wins          int `db:"wins"`

	BattingPoints  float64 `db:"batting_points"`
	BowlingPoints  float64 `db:"bowling_points"`
	FieldingPoints float64 `db:"fielding_points"`
	BonusPoints    float64 `db:"bonus_points"`
}

var (
	statColumns        = qb.Columns(statTableModel{})
	statCounterColumns = statColumns[2:]
)

func statModelFromDomain(sheet stats.SheetKey, s stats.CumulativeStat) statTableModel {
	return statTableModel{
		Sheet:           string(sheet),
		PlayerName:      s.PlayerName,
		Games:           s.Games,
		Runs:            s.Runs,
		Fours:           s.Fours,
		Sixes:           s.Sixes,
		Fifties:         s.Fifties,
		Centuries:       s.Centuries,
		OneFifties:      s.OneFifties,
		DoubleCenturies: s.DoubleCenturies,
		Ducks:           s.Ducks,
		BallsBowled:     s.BallsBowled,
		Wickets:         s.Wickets,
		RunsAgainst:     s.RunsAgainst,
		Maidens:         s.Maidens,
		ThreeFourFers:   s.ThreeFourFers,
		FiveFers:        s.FiveFers,
		SixPlusFers:     s.SixPlusFers,
		Catches:         s.Catches,
		RunOuts:         s.RunOuts,
		Stumpings:       s.Stumpings,
		ManOfTheMatch:   s.ManOfTheMatch,
		Wins:            s.Wins,
		BattingPoints:   s.BattingPoints,
		BowlingPoints:   s.BowlingPoints,
		FieldingPoints:  s.FieldingPoints,
		BonusPoints:     s.BonusPoints,
	}
}

func (m statTableModel) toDomain() stats.CumulativeStat {
	return stats.CumulativeStat{
		PlayerName:      m.PlayerName,
		Games:           m.Games,
		Runs:            m.Runs,
		Fours:           m.Fours,
		Sixes:           m.Sixes,
		Fifties:         m.Fifties,
		Centuries:       m.Centuries,
		OneFifties:      m.OneFifties,
		DoubleCenturies: m.DoubleCenturies,
		Ducks:           m.Ducks,
		BallsBowled:     m.BallsBowled,
		Wickets:         m.Wickets,
		RunsAgainst:     m.RunsAgainst,
		Maidens:         m.Maidens,
		ThreeFourFers:   m.ThreeFourFers,
		FiveFers:        m.FiveFers,
		SixPlusFers:     m.SixPlusFers,
		Catches:         m.Catches,
		RunOuts:         m.RunOuts,
		Stumpings:       m.Stumpings,
		ManOfTheMatch:   m.ManOfTheMatch,
		Wins:            m.Wins,
		BattingPoints:   m.BattingPoints,
		BowlingPoints:   m.BowlingPoints,
		FieldingPoints:  m.FieldingPoints,
		BonusPoints:     m.BonusPoints,
	}
}
