package scorecard

import (
	"fmt"
	"strings"
)

const (
	colOvers   = "overs"
	colMaidens = "maidens"
	colWickets = "wickets"
	colWides   = "wides"
	colNoBalls = "no_balls"
)

var bowlingFields = []field{
	{key: colName, kind: fieldText, position: 0},
	{key: colOvers, kind: fieldOvers, position: 1, aliases: []string{"OVERS", "OVERSO", "O"}},
	{key: colMaidens, kind: fieldCount, position: 2, aliases: []string{"MAIDENS", "MAIDENSM", "M"}},
	{key: colRuns, kind: fieldCount, position: 3, aliases: []string{"RUNS", "RUNSR", "R"}},
	{key: colWickets, kind: fieldCount, position: 4, aliases: []string{"WICKETS", "WICKETSW", "W"}},
	{key: colWides, kind: fieldCount, position: 5, aliases: []string{"WIDES", "WIDESWD", "WD"}},
	{key: colNoBalls, kind: fieldCount, position: 6, aliases: []string{"NOBALLS", "NOBALLSNB", "NB"}},
}

// NormalizeBowling turns a bowling card into typed entries. Overs must use
// the balls-in-over fraction; "4.7" is rejected.
func NormalizeBowling(table RawTable) BowlingResult {
	layout := resolveColumns(table.Header, bowlingFields)
	out := BowlingResult{Entries: make([]BowlingEntry, 0, len(table.Rows))}

	for i, row := range table.Rows {
		filled, rowErr := layout.fill("bowling", i, row)
		if rowErr != nil {
			out.Rejected = append(out.Rejected, *rowErr)
			continue
		}

		name := strings.Join(strings.Fields(filled.text[colName]), " ")
		if name == "" {
			out.Rejected = append(out.Rejected, RowError{
				Table:  "bowling",
				Row:    i,
				Column: colName,
				Err:    fmt.Errorf("%w: empty bowler name", ErrMalformedRow),
			})
			continue
		}

		out.Entries = append(out.Entries, BowlingEntry{
			Row:          i,
			PlayerName:   name,
			Overs:        filled.overs[colOvers],
			Maidens:      filled.counts[colMaidens],
			RunsConceded: filled.counts[colRuns],
			Wickets:      filled.counts[colWickets],
			Wides:        filled.counts[colWides],
			NoBalls:      filled.counts[colNoBalls],
		})
	}

	return out
}
