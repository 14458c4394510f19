package stats

import (
	"errors"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/points"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/scorecard"
)

var (
	ErrNotFound            = errors.New("cumulative stat not found")
	ErrMatchAlreadyApplied = errors.New("match already applied to sheet")
)

// CumulativeStat is one player's running totals on one sheet. The same shape
// carries a single-match delta.
type CumulativeStat struct {
	PlayerName string

	Games           int
	Runs            int
	Fours           int
	Sixes           int
	Fifties         int
	Centuries       int
	OneFifties      int
	DoubleCenturies int
	Ducks           int

	BallsBowled   int
	Wickets       int
	RunsAgainst   int
	Maidens       int
	ThreeFourFers int
	FiveFers      int
	SixPlusFers   int

	Catches   int
	RunOuts   int
	Stumpings int

	ManOfTheMatch int
	Wins          int

	BattingPoints  float64
	BowlingPoints  float64
	FieldingPoints float64
	BonusPoints    float64
}

func (s CumulativeStat) Overs() scorecard.Overs {
	return scorecard.OversFromBalls(s.BallsBowled)
}

func (s CumulativeStat) Total() float64 {
	return s.BattingPoints + s.BowlingPoints + s.FieldingPoints + s.BonusPoints
}

// DeltaFromLine converts one scored match line into the counts it adds.
func DeltaFromLine(line points.PlayerLine) CumulativeStat {
	out := CumulativeStat{PlayerName: line.PlayerName}
	if line.Appeared() {
		out.Games = 1
	}

	if b := line.Batting; b != nil {
		flags := b.Milestone.Flags()
		out.Runs = b.Runs
		out.Fours = b.Fours
		out.Sixes = b.Sixes
		out.Fifties = boolToInt(flags.Fifty)
		out.Centuries = boolToInt(flags.Century)
		out.OneFifties = boolToInt(flags.CenturyAndHalf)
		out.DoubleCenturies = boolToInt(flags.DoubleCentury)
		out.Ducks = boolToInt(flags.Duck)
		out.BattingPoints = b.Points
	}

	if b := line.Bowling; b != nil {
		flags := b.Tier.Flags()
		out.BallsBowled = b.Balls
		out.Wickets = b.Wickets
		out.RunsAgainst = b.RunsConceded
		out.Maidens = b.Maidens
		out.ThreeFourFers = boolToInt(flags.ThreeFour)
		out.FiveFers = boolToInt(flags.Five)
		out.SixPlusFers = boolToInt(flags.SixPlus)
		out.BowlingPoints = b.Points
	}

	if f := line.Fielding; f != nil {
		out.Catches = f.Catches
		out.RunOuts = f.RunOuts
		out.Stumpings = f.Stumpings
		out.FieldingPoints = f.Points
	}

	out.ManOfTheMatch = boolToInt(line.ManOfTheMatch)
	out.Wins = boolToInt(line.Won)
	out.BonusPoints = line.BonusPoints
	return out
}

// Apply adds delta to prior. Every counting field is summed.
func Apply(prior, delta CumulativeStat) CumulativeStat {
	out := prior
	if out.PlayerName == "" {
		out.PlayerName = delta.PlayerName
	}

	out.Games += delta.Games
	out.Runs += delta.Runs
	out.Fours += delta.Fours
	out.Sixes += delta.Sixes
	out.Fifties += delta.Fifties
	out.Centuries += delta.Centuries
	out.OneFifties += delta.OneFifties
	out.DoubleCenturies += delta.DoubleCenturies
	out.Ducks += delta.Ducks

	out.BallsBowled += delta.BallsBowled
	out.Wickets += delta.Wickets
	out.RunsAgainst += delta.RunsAgainst
	out.Maidens += delta.Maidens
	out.ThreeFourFers += delta.ThreeFourFers
	out.FiveFers += delta.FiveFers
	out.SixPlusFers += delta.SixPlusFers

	out.Catches += delta.Catches
	out.RunOuts += delta.RunOuts
	out.Stumpings += delta.Stumpings

	out.ManOfTheMatch += delta.ManOfTheMatch
	out.Wins += delta.Wins

	out.BattingPoints += delta.BattingPoints
	out.BowlingPoints += delta.BowlingPoints
	out.FieldingPoints += delta.FieldingPoints
	out.BonusPoints += delta.BonusPoints
	return out
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
