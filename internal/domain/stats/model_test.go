package stats

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/points"
)

func TestDeltaFromLine(t *testing.T) {
	line := points.PlayerLine{
		PlayerName: "John Smith",
		Batting: &points.BattingLine{
			Runs: 140, Fours: 12, Sixes: 3, Dismissed: true,
			Milestone: points.MilestoneCentury, Points: 436,
		},
		Bowling: &points.BowlingLine{
			Balls: 27, Wickets: 5, RunsConceded: 30, Maidens: 1,
			Tier: points.WicketTierFive, Points: 155,
		},
		Won:         true,
		BonusPoints: 5,
	}

	got := DeltaFromLine(line)

	if got.Games != 1 || got.Runs != 140 || got.Centuries != 1 || got.Fifties != 0 || got.OneFifties != 0 {
		t.Fatalf("unexpected batting delta: %+v", got)
	}
	if got.BallsBowled != 27 || got.FiveFers != 1 || got.ThreeFourFers != 0 || got.SixPlusFers != 0 {
		t.Fatalf("unexpected bowling delta: %+v", got)
	}
	if got.Wins != 1 || got.ManOfTheMatch != 0 {
		t.Fatalf("unexpected bonus delta: %+v", got)
	}
	if got.Total() != 596 {
		t.Fatalf("unexpected total: %v", got.Total())
	}
	if o := got.Overs(); o.Whole != 4 || o.Balls != 3 {
		t.Fatalf("unexpected overs: %s", o)
	}
}

func TestDeltaFromLine_MotmOnlyIsNotAGame(t *testing.T) {
	got := DeltaFromLine(points.PlayerLine{PlayerName: "Guest", ManOfTheMatch: true, BonusPoints: 25})
	if got.Games != 0 || got.ManOfTheMatch != 1 || got.BonusPoints != 25 {
		t.Fatalf("unexpected delta: %+v", got)
	}
}

func TestApply_IsAdditive(t *testing.T) {
	prior := CumulativeStat{PlayerName: "Amy Lee", Games: 3, Runs: 80, Catches: 2, BattingPoints: 200, BonusPoints: 10}
	delta := CumulativeStat{PlayerName: "Amy Lee", Games: 1, Runs: 20, Catches: 1, Ducks: 0, BattingPoints: 50, FieldingPoints: 10}

	got := Apply(prior, delta)

	if got.Games != 4 || got.Runs != 100 || got.Catches != 3 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got.Total() != 270 {
		t.Fatalf("unexpected total: %v", got.Total())
	}

	fresh := Apply(CumulativeStat{}, delta)
	if fresh.PlayerName != "Amy Lee" || fresh.Games != 1 {
		t.Fatalf("unexpected fresh stat: %+v", fresh)
	}
}

func TestParseSheetKey(t *testing.T) {
	tests := []struct {
		raw     string
		want    SheetKey
		wantErr bool
	}{
		{raw: "week-1", want: "week-1"},
		{raw: "Week10", want: "week-10"},
		{raw: "3", want: "week-3"},
		{raw: "season-total", want: SeasonTotal},
		{raw: "total", want: SeasonTotal},
		{raw: "week-0", wantErr: true},
		{raw: "week-11", wantErr: true},
		{raw: "preseason", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseSheetKey(tc.raw, 10)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidSheet) {
					t.Fatalf("expected ErrInvalidSheet, got %v", err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("got=%q err=%v want=%q", got, err, tc.want)
			}
		})
	}

	if week, ok := WeekSheet(7).Week(); !ok || week != 7 {
		t.Fatalf("unexpected week: %d %v", week, ok)
	}
	if _, ok := SeasonTotal.Week(); ok {
		t.Fatalf("season total has no week")
	}
}
