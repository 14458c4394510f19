package points

import (
	"fmt"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/scorecard"
)

// Tariff is the fantasy scoring table. Milestone and wicket-tier bonuses are
// mutually exclusive; only the highest tier reached is paid.
type Tariff struct {
	Run            float64
	Four           float64
	Six            float64
	Fifty          float64
	Century        float64
	CenturyAndHalf float64
	DoubleCentury  float64
	Duck           float64

	Wicket       float64
	ThreeFourFer float64
	FiveFer      float64
	SixPlusFer   float64

	Catch    float64
	RunOut   float64
	Stumping float64

	Win           float64
	ManOfTheMatch float64
}

func DefaultTariff() Tariff {
	return Tariff{
		Run:            2.5,
		Four:           2,
		Six:            4,
		Fifty:          25,
		Century:        50,
		CenturyAndHalf: 75,
		DoubleCentury:  100,
		Duck:           -10,
		Wicket:         25,
		ThreeFourFer:   15,
		FiveFer:        30,
		SixPlusFer:     50,
		Catch:          10,
		RunOut:         10,
		Stumping:       10,
		Win:            5,
		ManOfTheMatch:  25,
	}
}

func (t Tariff) milestoneBonus(m Milestone) float64 {
	switch m {
	case MilestoneDoubleCentury:
		return t.DoubleCentury
	case MilestoneCenturyAndHalf:
		return t.CenturyAndHalf
	case MilestoneCentury:
		return t.Century
	case MilestoneFifty:
		return t.Fifty
	case MilestoneDuck:
		return t.Duck
	default:
		return 0
	}
}

func (t Tariff) tierBonus(w WicketTier) float64 {
	switch w {
	case WicketTierSixPlus:
		return t.SixPlusFer
	case WicketTierFive:
		return t.FiveFer
	case WicketTierThreeFour:
		return t.ThreeFourFer
	default:
		return 0
	}
}

// Calculator applies a Tariff. It is pure and safe for concurrent use.
type Calculator struct {
	tariff Tariff
}

func NewCalculator(tariff Tariff) Calculator {
	return Calculator{tariff: tariff}
}

func (c Calculator) Tariff() Tariff {
	return c.tariff
}

func (c Calculator) Batting(e scorecard.BattingEntry) (BattingLine, error) {
	if err := nonNegative(e.PlayerName, stat{"runs", e.Runs}, stat{"balls", e.Balls}, stat{"fours", e.Fours}, stat{"sixes", e.Sixes}); err != nil {
		return BattingLine{}, err
	}

	milestone := MilestoneFor(e.Runs, e.Dismissed)
	t := c.tariff
	return BattingLine{
		Runs:      e.Runs,
		Balls:     e.Balls,
		Fours:     e.Fours,
		Sixes:     e.Sixes,
		Dismissed: e.Dismissed,
		Milestone: milestone,
		Points:    float64(e.Runs)*t.Run + float64(e.Fours)*t.Four + float64(e.Sixes)*t.Six + t.milestoneBonus(milestone),
	}, nil
}

func (c Calculator) Bowling(e scorecard.BowlingEntry) (BowlingLine, error) {
	if err := e.Overs.Validate(); err != nil {
		return BowlingLine{}, fmt.Errorf("%s: %w", e.PlayerName, err)
	}
	if err := nonNegative(e.PlayerName, stat{"maidens", e.Maidens}, stat{"runs conceded", e.RunsConceded}, stat{"wickets", e.Wickets}); err != nil {
		return BowlingLine{}, err
	}

	tier := WicketTierFor(e.Wickets)
	return BowlingLine{
		Balls:        e.Overs.TotalBalls(),
		Maidens:      e.Maidens,
		RunsConceded: e.RunsConceded,
		Wickets:      e.Wickets,
		Tier:         tier,
		Points:       float64(e.Wickets)*c.tariff.Wicket + c.tariff.tierBonus(tier),
	}, nil
}

func (c Calculator) Fielding(e scorecard.FieldingEntry) (FieldingLine, error) {
	if err := nonNegative(e.FielderName, stat{"catches", e.Catches}, stat{"run outs", e.RunOuts}, stat{"stumpings", e.Stumpings}); err != nil {
		return FieldingLine{}, err
	}

	t := c.tariff
	return FieldingLine{
		Catches:   e.Catches,
		RunOuts:   e.RunOuts,
		Stumpings: e.Stumpings,
		Points:    float64(e.Catches)*t.Catch + float64(e.RunOuts)*t.RunOut + float64(e.Stumpings)*t.Stumping,
	}, nil
}

// Bonus pays the win bonus to batting-card players and the MOTM bonus to the
// designated player.
func (c Calculator) Bonus(won, manOfTheMatch bool) float64 {
	var out float64
	if won {
		out += c.tariff.Win
	}
	if manOfTheMatch {
		out += c.tariff.ManOfTheMatch
	}
	return out
}

// Match scores every resolved card of one match. Lines come back in batting
// order, then new bowlers, then new fielders, then the MOTM if they are on no
// card. Any invalid entry fails the whole match so no partial points leak.
func (c Calculator) Match(
	batting []scorecard.BattingEntry,
	bowling []scorecard.BowlingEntry,
	fielding []scorecard.FieldingEntry,
	outcome MatchOutcome,
) ([]PlayerLine, error) {
	lines := make([]PlayerLine, 0, len(batting)+len(bowling))
	index := make(map[string]int, cap(lines))
	lineFor := func(name string) *PlayerLine {
		if idx, ok := index[name]; ok {
			return &lines[idx]
		}
		index[name] = len(lines)
		lines = append(lines, PlayerLine{PlayerName: name})
		return &lines[len(lines)-1]
	}

	for _, e := range batting {
		line := lineFor(e.PlayerName)
		if line.Batting != nil {
			return nil, fmt.Errorf("%w: batting %s", ErrDuplicateEntry, e.PlayerName)
		}
		scored, err := c.Batting(e)
		if err != nil {
			return nil, err
		}
		line.Batting = &scored
		line.Won = outcome.TeamWon
	}

	for _, e := range bowling {
		line := lineFor(e.PlayerName)
		if line.Bowling != nil {
			return nil, fmt.Errorf("%w: bowling %s", ErrDuplicateEntry, e.PlayerName)
		}
		scored, err := c.Bowling(e)
		if err != nil {
			return nil, err
		}
		line.Bowling = &scored
	}

	for _, e := range fielding {
		line := lineFor(e.FielderName)
		scored, err := c.Fielding(e)
		if err != nil {
			return nil, err
		}
		if line.Fielding != nil {
			scored = mergeFielding(*line.Fielding, scored)
		}
		line.Fielding = &scored
	}

	if outcome.ManOfTheMatch != "" {
		lineFor(outcome.ManOfTheMatch).ManOfTheMatch = true
	}

	for i := range lines {
		lines[i].BonusPoints = c.Bonus(lines[i].Won, lines[i].ManOfTheMatch)
	}

	return lines, nil
}

// mergeFielding folds two fielding lines for the same player, which happens
// when two scraped spellings resolve to one roster name.
func mergeFielding(a, b FieldingLine) FieldingLine {
	return FieldingLine{
		Catches:   a.Catches + b.Catches,
		RunOuts:   a.RunOuts + b.RunOuts,
		Stumpings: a.Stumpings + b.Stumpings,
		Points:    a.Points + b.Points,
	}
}

type stat struct {
	name  string
	value int
}

func nonNegative(player string, stats ...stat) error {
	for _, s := range stats {
		if s.value < 0 {
			return fmt.Errorf("%w: %s has negative %s (%d)", scorecard.ErrInvalidStatValue, player, s.name, s.value)
		}
	}
	return nil
}
