package points

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/scorecard"
)

func TestMilestoneFor_IsExclusive(t *testing.T) {
	tests := []struct {
		runs      int
		dismissed bool
		want      Milestone
	}{
		{runs: 0, dismissed: true, want: MilestoneDuck},
		{runs: 0, dismissed: false, want: MilestoneNone},
		{runs: 49, dismissed: true, want: MilestoneNone},
		{runs: 50, dismissed: true, want: MilestoneFifty},
		{runs: 100, dismissed: false, want: MilestoneCentury},
		{runs: 199, dismissed: true, want: MilestoneCenturyAndHalf},
		{runs: 200, dismissed: true, want: MilestoneDoubleCentury},
	}

	for _, tc := range tests {
		got := MilestoneFor(tc.runs, tc.dismissed)
		if got != tc.want {
			t.Fatalf("runs=%d dismissed=%v: got=%s want=%s", tc.runs, tc.dismissed, got, tc.want)
		}

		flags := got.Flags()
		set := 0
		for _, f := range []bool{flags.Fifty, flags.Century, flags.CenturyAndHalf, flags.DoubleCentury, flags.Duck} {
			if f {
				set++
			}
		}
		if tc.want == MilestoneNone && set != 0 || tc.want != MilestoneNone && set != 1 {
			t.Fatalf("runs=%d: expected exactly one flag for %s, got %+v", tc.runs, got, flags)
		}
	}
}

func TestWicketTierFor(t *testing.T) {
	tests := map[int]WicketTier{
		0: WicketTierNone,
		2: WicketTierNone,
		3: WicketTierThreeFour,
		4: WicketTierThreeFour,
		5: WicketTierFive,
		6: WicketTierSixPlus,
		9: WicketTierSixPlus,
	}
	for wickets, want := range tests {
		if got := WicketTierFor(wickets); got != want {
			t.Fatalf("wickets=%d: got=%s want=%s", wickets, got, want)
		}
	}
}

func TestCalculator_Batting(t *testing.T) {
	calc := NewCalculator(DefaultTariff())

	line, err := calc.Batting(scorecard.BattingEntry{PlayerName: "John Smith", Runs: 140, Balls: 98, Fours: 12, Sixes: 3, Dismissed: true})
	if err != nil {
		t.Fatalf("Batting error: %v", err)
	}
	// 140*2.5 + 12*2 + 3*4 + century 50
	if line.Points != 436 {
		t.Fatalf("unexpected batting points: %v", line.Points)
	}
	if line.Milestone != MilestoneCentury {
		t.Fatalf("unexpected milestone: %s", line.Milestone)
	}

	duck, err := calc.Batting(scorecard.BattingEntry{PlayerName: "Ravi Patel", Dismissed: true})
	if err != nil {
		t.Fatalf("Batting error: %v", err)
	}
	if duck.Points != -10 || duck.Milestone != MilestoneDuck {
		t.Fatalf("unexpected duck line: %+v", duck)
	}

	_, err = calc.Batting(scorecard.BattingEntry{PlayerName: "Bad", Runs: -1})
	if !errors.Is(err, scorecard.ErrInvalidStatValue) {
		t.Fatalf("expected ErrInvalidStatValue, got %v", err)
	}
}

func TestCalculator_Bowling(t *testing.T) {
	calc := NewCalculator(DefaultTariff())

	tests := []struct {
		name    string
		wickets int
		want    float64
		tier    WicketTier
	}{
		{name: "two wickets", wickets: 2, want: 50, tier: WicketTierNone},
		{name: "four wickets", wickets: 4, want: 115, tier: WicketTierThreeFour},
		{name: "five wickets", wickets: 5, want: 155, tier: WicketTierFive},
		{name: "six wickets", wickets: 6, want: 200, tier: WicketTierSixPlus},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			line, err := calc.Bowling(scorecard.BowlingEntry{
				PlayerName: "Jones",
				Overs:      scorecard.Overs{Whole: 4, Balls: 3},
				Wickets:    tc.wickets,
			})
			if err != nil {
				t.Fatalf("Bowling error: %v", err)
			}
			if line.Points != tc.want || line.Tier != tc.tier {
				t.Fatalf("unexpected line: %+v", line)
			}
			if line.Balls != 27 {
				t.Fatalf("unexpected balls: %d", line.Balls)
			}
		})
	}

	_, err := calc.Bowling(scorecard.BowlingEntry{PlayerName: "Jones", Overs: scorecard.Overs{Whole: 4, Balls: 6}})
	if !errors.Is(err, scorecard.ErrInvalidStatValue) {
		t.Fatalf("expected ErrInvalidStatValue for 4.6 overs, got %v", err)
	}
}

func TestCalculator_Match(t *testing.T) {
	calc := NewCalculator(DefaultTariff())

	lines, err := calc.Match(
		[]scorecard.BattingEntry{
			{PlayerName: "John Smith", Runs: 10, Dismissed: true},
			{PlayerName: "Amy Lee", Runs: 0, Dismissed: false},
		},
		[]scorecard.BowlingEntry{
			{PlayerName: "Amy Lee", Overs: scorecard.Overs{Whole: 4}, Wickets: 3},
			{PlayerName: "Sam Green", Overs: scorecard.Overs{Whole: 2}, Wickets: 0},
		},
		[]scorecard.FieldingEntry{
			{FielderName: "John Smith", Catches: 2},
			{FielderName: "Keeper", Stumpings: 1},
		},
		MatchOutcome{TeamWon: true, ManOfTheMatch: "Amy Lee"},
	)
	if err != nil {
		t.Fatalf("Match error: %v", err)
	}

	names := make([]string, 0, len(lines))
	for _, l := range lines {
		names = append(names, l.PlayerName)
	}
	want := []string{"John Smith", "Amy Lee", "Sam Green", "Keeper"}
	if len(names) != len(want) {
		t.Fatalf("unexpected players: %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("unexpected order: got=%v want=%v", names, want)
		}
	}

	john := lines[0]
	if john.Total() != 25+20+5 {
		t.Fatalf("unexpected john total: %v", john.Total())
	}
	amy := lines[1]
	if !amy.ManOfTheMatch || amy.BonusPoints != 30 {
		t.Fatalf("unexpected amy bonus: %+v", amy)
	}
	if amy.CategoryPoints(CategoryBowling) != 90 {
		t.Fatalf("unexpected amy bowling points: %v", amy.CategoryPoints(CategoryBowling))
	}
	sam := lines[2]
	if sam.Won || sam.BonusPoints != 0 {
		t.Fatalf("bowler not on batting card should not get win bonus: %+v", sam)
	}
	if !sam.Appeared() {
		t.Fatalf("expected bowler to count as appeared")
	}
}

func TestCalculator_MatchRejectsDuplicates(t *testing.T) {
	calc := NewCalculator(DefaultTariff())

	_, err := calc.Match(
		[]scorecard.BattingEntry{{PlayerName: "John Smith"}, {PlayerName: "John Smith"}},
		nil, nil, MatchOutcome{},
	)
	if !errors.Is(err, ErrDuplicateEntry) {
		t.Fatalf("expected ErrDuplicateEntry, got %v", err)
	}
}

func TestCalculator_MatchFailsWholeMatchOnInvalidValue(t *testing.T) {
	calc := NewCalculator(DefaultTariff())

	lines, err := calc.Match(
		[]scorecard.BattingEntry{{PlayerName: "John Smith", Runs: 20}},
		nil,
		[]scorecard.FieldingEntry{{FielderName: "Keeper", Catches: -1}},
		MatchOutcome{},
	)
	if !errors.Is(err, scorecard.ErrInvalidStatValue) {
		t.Fatalf("expected ErrInvalidStatValue, got %v", err)
	}
	if lines != nil {
		t.Fatalf("expected no partial lines, got %+v", lines)
	}
}

func TestMotmOffCardGetsOnlyBonus(t *testing.T) {
	calc := NewCalculator(DefaultTariff())

	lines, err := calc.Match(nil, nil, nil, MatchOutcome{ManOfTheMatch: "Guest"})
	if err != nil {
		t.Fatalf("Match error: %v", err)
	}
	if len(lines) != 1 || lines[0].Total() != 25 || lines[0].Appeared() {
		t.Fatalf("unexpected lines: %+v", lines)
	}
}

func TestCalculator_BattingFromJoinedScorecardRow(t *testing.T) {
	table := scorecard.TableFromStrings(nil, [][]string{
		{"JohnSmithb Jones", "", "b Jones", "140", "32", "9", "2"},
	})
	normalized := scorecard.NormalizeBatting(table)
	if len(normalized.Entries) != 1 || normalized.Entries[0].PlayerName != "John Smith" {
		t.Fatalf("unexpected normalized rows: %+v rejected=%+v", normalized.Entries, normalized.Rejected)
	}

	line, err := NewCalculator(DefaultTariff()).Batting(normalized.Entries[0])
	if err != nil {
		t.Fatalf("Batting error: %v", err)
	}
	want := MilestoneFlags{Century: true}
	if line.Milestone != MilestoneCentury || line.Milestone.Flags() != want {
		t.Fatalf("unexpected milestone: %s %+v", line.Milestone, line.Milestone.Flags())
	}
	// 140*2.5 + 9*2 + 2*4 + century 50
	if line.Points != 426 {
		t.Fatalf("unexpected batting points: %v", line.Points)
	}
}
