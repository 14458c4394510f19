package scorecard

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	colName       = "name"
	colDismissalA = "dismissal_a"
	colDismissalB = "dismissal_b"
	colRuns       = "runs"
	colBalls      = "balls"
	colFours      = "fours"
	colSixes      = "sixes"
)

var battingFields = []field{
	{key: colName, kind: fieldText, position: 0},
	{key: colDismissalA, kind: fieldText, position: 1},
	{key: colDismissalB, kind: fieldText, position: 2},
	{key: colRuns, kind: fieldCount, position: 3, aliases: []string{"RUNS", "RUNSR", "R"}},
	{key: colBalls, kind: fieldCount, position: 4, aliases: []string{"BALLS", "BALLSB", "B"}},
	{key: colFours, kind: fieldCount, position: 5, aliases: []string{"4S", "4SFOURS", "FOURS"}},
	{key: colSixes, kind: fieldCount, position: 6, aliases: []string{"6S", "6SSIXES", "SIXES"}},
}

// NormalizeBatting cleans a batting card. Each row's display name has its
// dismissal text stripped and concatenated names split. Rows that cannot be
// cleaned are returned in Rejected and do not stop the rest of the table.
func NormalizeBatting(table RawTable) BattingResult {
	layout := resolveColumns(table.Header, battingFields)
	out := BattingResult{Entries: make([]BattingEntry, 0, len(table.Rows))}

	for i, row := range table.Rows {
		filled, rowErr := layout.fill("batting", i, row)
		if rowErr != nil {
			out.Rejected = append(out.Rejected, *rowErr)
			continue
		}

		a, b := filled.text[colDismissalA], filled.text[colDismissalB]
		name := CleanBatterName(filled.text[colName], a, b)
		if name == "" {
			out.Rejected = append(out.Rejected, RowError{
				Table:  "batting",
				Row:    i,
				Column: colName,
				Value:  filled.text[colName],
				Err:    fmt.Errorf("%w: empty player name after removing dismissal text", ErrMalformedRow),
			})
			continue
		}

		kind, _ := ClassifyDismissal(a, b)
		out.Entries = append(out.Entries, BattingEntry{
			Row:           i,
			PlayerName:    name,
			Runs:          filled.counts[colRuns],
			Balls:         filled.counts[colBalls],
			Fours:         filled.counts[colFours],
			Sixes:         filled.counts[colSixes],
			DismissalText: joinDismissal(a, b),
			Dismissal:     kind,
			Dismissed:     isDismissed(kind, a),
		})
	}

	return out
}

// CleanBatterName strips the dismissal description from a name cell. The
// description is rebuilt from both sub-columns with all whitespace removed,
// every occurrence is cut from the whitespace-free name, and a space is put
// back before each capital letter that follows a letter or digit.
func CleanBatterName(nameCell, dismissalA, dismissalB string) string {
	compact := removeSpaces(nameCell)
	if dismissal := removeSpaces(dismissalA + dismissalB); dismissal != "" {
		compact = strings.ReplaceAll(compact, dismissal, "")
	}
	return splitCapitals(compact)
}

func removeSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func splitCapitals(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && isWordRune(prev) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func joinDismissal(a, b string) string {
	return strings.TrimSpace(strings.TrimSpace(a) + " " + strings.TrimSpace(b))
}

func isDismissed(kind DismissalKind, a string) bool {
	switch kind {
	case DismissalNotOut, DismissalDidNotBat:
		return false
	}
	lower := strings.ToLower(a)
	if strings.HasPrefix(lower, "retired") && (strings.Contains(lower, "not out") || strings.Contains(lower, "hurt")) {
		return false
	}
	return true
}
