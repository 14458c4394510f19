package scorecard

import (
	"errors"
	"testing"
)

var battingHeader = []string{"Batsman", "", "", "R", "B", "4s", "6s", "SR"}

func TestCleanBatterName(t *testing.T) {
	tests := []struct {
		name string
		cell string
		a    string
		b    string
		want string
	}{
		{name: "bowled suffix", cell: "JohnSmithb Jones", a: "", b: "b Jones", want: "John Smith"},
		{name: "caught suffix", cell: "RaviPatelc Khan b Jones", a: "c Khan", b: "b Jones", want: "Ravi Patel"},
		{name: "not out", cell: "Tom Brownnot out", a: "not out", b: "", want: "Tom Brown"},
		{name: "spaced name kept", cell: "Amy Lee", a: "", b: "", want: "Amy Lee"},
		{name: "dismissal in middle", cell: "Alic Khan b JonesStone", a: "c Khan", b: "b Jones", want: "Ali Stone"},
		{name: "name is dismissal", cell: "lbw", a: "lbw", b: "", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanBatterName(tc.cell, tc.a, tc.b); got != tc.want {
				t.Fatalf("unexpected name: got=%q want=%q", got, tc.want)
			}
		})
	}
}

func TestNormalizeBatting(t *testing.T) {
	table := TableFromStrings(battingHeader, [][]string{
		{"JohnSmithb Jones", "", "b Jones", "140", "98", "12", "3", "142.86"},
		{"RaviPatelc Khan b Jones", "c Khan", "b Jones", "0", "2", "", "", "0.00"},
		{"Tom Brownnot out", "not out", "", "", "", "", "", ""},
		{"lbw", "lbw", "", "4", "5", "1", "0", "80"},
		{"Sam Greenb Jones", "", "b Jones", "x", "5", "1", "0", "80"},
	})

	got := NormalizeBatting(table)

	if len(got.Entries) != 3 {
		t.Fatalf("unexpected entry count: got=%d want=3", len(got.Entries))
	}
	if len(got.Rejected) != 2 {
		t.Fatalf("unexpected rejected count: got=%d want=2", len(got.Rejected))
	}

	john := got.Entries[0]
	if john.PlayerName != "John Smith" || john.Runs != 140 || john.Balls != 98 || john.Fours != 12 || john.Sixes != 3 {
		t.Fatalf("unexpected first entry: %+v", john)
	}
	if john.Dismissal != DismissalBowled || !john.Dismissed {
		t.Fatalf("expected bowled dismissal, got %+v", john)
	}

	ravi := got.Entries[1]
	if ravi.Fours != 0 || ravi.Sixes != 0 {
		t.Fatalf("blank counts must default to zero: %+v", ravi)
	}
	if ravi.Dismissal != DismissalCaught || !ravi.Dismissed {
		t.Fatalf("expected caught dismissal: %+v", ravi)
	}

	tom := got.Entries[2]
	if tom.PlayerName != "Tom Brown" || tom.Runs != 0 || tom.Dismissed {
		t.Fatalf("unexpected not out entry: %+v", tom)
	}

	if got.Rejected[0].Row != 3 || !errors.Is(got.Rejected[0], ErrMalformedRow) {
		t.Fatalf("expected row 3 malformed, got %+v", got.Rejected[0])
	}
	if got.Rejected[1].Row != 4 || got.Rejected[1].Column != colRuns {
		t.Fatalf("expected row 4 runs column rejected, got %+v", got.Rejected[1])
	}
}

// The row reads "JohnSmithb Jones14032" once its cells are joined.
func TestNormalizeBatting_PositionalFallbackWithoutHeader(t *testing.T) {
	table := TableFromStrings(nil, [][]string{
		{"JohnSmithb Jones", "", "b Jones", "140", "32", "9", "2"},
	})

	got := NormalizeBatting(table)
	if len(got.Entries) != 1 {
		t.Fatalf("expected one entry, rejected=%+v", got.Rejected)
	}
	entry := got.Entries[0]
	if entry.PlayerName != "John Smith" {
		t.Fatalf("unexpected cleaned name: %q", entry.PlayerName)
	}
	if entry.Runs != 140 || entry.Balls != 32 || entry.Fours != 9 || entry.Sixes != 2 || !entry.Dismissed {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestNormalizeBatting_HeaderAliases(t *testing.T) {
	table := TableFromStrings(
		[]string{"BATSMAN", "", "", "4s", "RUNS R", "6s", "BALLS B"},
		[][]string{{"Amy Lee", "not out", "", "3", "27", "1", "30"}},
	)

	got := NormalizeBatting(table)
	if len(got.Entries) != 1 {
		t.Fatalf("expected one entry")
	}
	e := got.Entries[0]
	if e.Runs != 27 || e.Balls != 30 || e.Fours != 3 || e.Sixes != 1 {
		t.Fatalf("aliases resolved incorrectly: %+v", e)
	}
}

func TestNormalizeBatting_NegativeCountIsInvalid(t *testing.T) {
	table := TableFromStrings(battingHeader, [][]string{{"Amy Lee", "not out", "", "-4", "3", "0", "0"}})

	got := NormalizeBatting(table)
	if len(got.Rejected) != 1 || !errors.Is(got.Rejected[0], ErrInvalidStatValue) {
		t.Fatalf("expected invalid stat value rejection, got %+v", got.Rejected)
	}
}
