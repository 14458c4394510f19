package points

import "errors"

var ErrDuplicateEntry = errors.New("player appears twice in the same card")

type Category string

const (
	CategoryBatting  Category = "batting"
	CategoryBowling  Category = "bowling"
	CategoryFielding Category = "fielding"
	CategoryBonus    Category = "bonus"
)

var AllCategories = []Category{CategoryBatting, CategoryBowling, CategoryFielding, CategoryBonus}

type PlayerPoints struct {
	PlayerName string
	Category   Category
	Points     float64
}

// Milestone is the single batting tier reached in an innings.
type Milestone string

const (
	MilestoneNone           Milestone = "none"
	MilestoneDuck           Milestone = "duck"
	MilestoneFifty          Milestone = "fifty"
	MilestoneCentury        Milestone = "century"
	MilestoneCenturyAndHalf Milestone = "one-fifty"
	MilestoneDoubleCentury  Milestone = "double-century"
)

// MilestoneFor returns the highest tier reached. A duck needs zero runs and
// a recorded dismissal.
func MilestoneFor(runs int, dismissed bool) Milestone {
	switch {
	case runs >= 200:
		return MilestoneDoubleCentury
	case runs >= 150:
		return MilestoneCenturyAndHalf
	case runs >= 100:
		return MilestoneCentury
	case runs >= 50:
		return MilestoneFifty
	case runs == 0 && dismissed:
		return MilestoneDuck
	default:
		return MilestoneNone
	}
}

type MilestoneFlags struct {
	Fifty          bool
	Century        bool
	CenturyAndHalf bool
	DoubleCentury  bool
	Duck           bool
}

func (m Milestone) Flags() MilestoneFlags {
	return MilestoneFlags{
		Fifty:          m == MilestoneFifty,
		Century:        m == MilestoneCentury,
		CenturyAndHalf: m == MilestoneCenturyAndHalf,
		DoubleCentury:  m == MilestoneDoubleCentury,
		Duck:           m == MilestoneDuck,
	}
}

type WicketTier string

const (
	WicketTierNone      WicketTier = "none"
	WicketTierThreeFour WicketTier = "three-four"
	WicketTierFive      WicketTier = "five"
	WicketTierSixPlus   WicketTier = "six-plus"
)

func WicketTierFor(wickets int) WicketTier {
	switch {
	case wickets >= 6:
		return WicketTierSixPlus
	case wickets == 5:
		return WicketTierFive
	case wickets >= 3:
		return WicketTierThreeFour
	default:
		return WicketTierNone
	}
}

type WicketTierFlags struct {
	ThreeFour bool
	Five      bool
	SixPlus   bool
}

func (w WicketTier) Flags() WicketTierFlags {
	return WicketTierFlags{
		ThreeFour: w == WicketTierThreeFour,
		Five:      w == WicketTierFive,
		SixPlus:   w == WicketTierSixPlus,
	}
}

type BattingLine struct {
	Runs      int
	Balls     int
	Fours     int
	Sixes     int
	Dismissed bool
	Milestone Milestone
	Points    float64
}

type BowlingLine struct {
	Balls        int
	Maidens      int
	RunsConceded int
	Wickets      int
	Tier         WicketTier
	Points       float64
}

type FieldingLine struct {
	Catches   int
	RunOuts   int
	Stumpings int
	Points    float64
}

// MatchOutcome carries the per-match decisions that feed the bonus category.
type MatchOutcome struct {
	TeamWon       bool
	ManOfTheMatch string
}

// PlayerLine is everything one player earned in one match.
type PlayerLine struct {
	PlayerName    string
	Batting       *BattingLine
	Bowling       *BowlingLine
	Fielding      *FieldingLine
	Won           bool
	ManOfTheMatch bool
	BonusPoints   float64
}

// Appeared reports whether the player is on any card of the match.
func (l PlayerLine) Appeared() bool {
	return l.Batting != nil || l.Bowling != nil || l.Fielding != nil
}

func (l PlayerLine) CategoryPoints(category Category) float64 {
	switch category {
	case CategoryBatting:
		if l.Batting != nil {
			return l.Batting.Points
		}
	case CategoryBowling:
		if l.Bowling != nil {
			return l.Bowling.Points
		}
	case CategoryFielding:
		if l.Fielding != nil {
			return l.Fielding.Points
		}
	case CategoryBonus:
		return l.BonusPoints
	}
	return 0
}

func (l PlayerLine) Total() float64 {
	var total float64
	for _, c := range AllCategories {
		total += l.CategoryPoints(c)
	}
	return total
}

// Points flattens the line into one PlayerPoints per category.
func (l PlayerLine) Points() []PlayerPoints {
	out := make([]PlayerPoints, 0, len(AllCategories))
	for _, c := range AllCategories {
		out = append(out, PlayerPoints{PlayerName: l.PlayerName, Category: c, Points: l.CategoryPoints(c)})
	}
	return out
}
