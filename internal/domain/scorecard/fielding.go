package scorecard

import (
	"strings"
)

const (
	prefixCaughtAndBowled    = "ct & b"
	prefixCaughtAndBowledAlt = "c & b"
	prefixCaught             = "c"
	prefixRunOut             = "run out"
	prefixStumped            = "st"
	unsureMarker             = "unsure"
)

var fieldingFields = []field{
	{key: colDismissalA, kind: fieldText, position: 1},
	{key: colDismissalB, kind: fieldText, position: 2},
}

// ExtractFielding derives fielding credit from the opposition batting card.
// An empty table yields an empty result. Rows that match no dismissal rule
// are kept in Unclassified so callers can report them.
func ExtractFielding(table RawTable) FieldingResult {
	out := FieldingResult{}
	if table.IsEmpty() {
		return out
	}

	layout := resolveColumns(table.Header, fieldingFields)
	byName := make(map[string]int)

	for i, row := range table.Rows {
		filled, rowErr := layout.fill("fielding", i, row)
		if rowErr != nil {
			continue
		}
		a, b := filled.text[colDismissalA], filled.text[colDismissalB]
		if isExcludedDismissal(a) {
			continue
		}

		kind, fielder := ClassifyDismissal(a, b)
		record := DismissalRecord{Row: i, Text: joinDismissal(a, b), FielderName: fielder, Kind: kind}

		switch {
		case kind == DismissalBowled, kind == DismissalDidNotBat:
			continue
		case containsUnsure(a, b):
			record.FielderName = ""
			record.Kind = DismissalUnresolved
			out.Dismissals = append(out.Dismissals, record)
			continue
		case !record.Credited():
			record.Kind = DismissalUnresolved
			out.Dismissals = append(out.Dismissals, record)
			out.Unclassified = append(out.Unclassified, record)
			continue
		}

		out.Dismissals = append(out.Dismissals, record)
		idx, ok := byName[fielder]
		if !ok {
			idx = len(out.Entries)
			byName[fielder] = idx
			out.Entries = append(out.Entries, FieldingEntry{FielderName: fielder})
		}
		switch kind {
		case DismissalCaught, DismissalCaughtAndBowled:
			out.Entries[idx].Catches++
		case DismissalRunOut:
			out.Entries[idx].RunOuts++
		case DismissalStumped:
			out.Entries[idx].Stumpings++
		}
	}

	return out
}

// ClassifyDismissal reads the two dismissal sub-columns of a batting row and
// returns the dismissal kind with the credited fielder, if any. Precedence:
// lbw / not out / did not bat, bowled, "ct & b", "c", "run out", "st".
func ClassifyDismissal(a, b string) (DismissalKind, string) {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	la, lb := strings.ToLower(a), strings.ToLower(b)

	switch {
	case a == "" && b == "":
		return DismissalDidNotBat, ""
	case la == "lbw":
		return DismissalLBW, ""
	case la == "not out":
		return DismissalNotOut, ""
	case la == "did not bat":
		return DismissalDidNotBat, ""
	case a == "" && strings.HasPrefix(lb, "b"):
		return DismissalBowled, ""
	case strings.HasPrefix(lb, prefixCaughtAndBowled):
		return DismissalCaughtAndBowled, fielderName(b[len(prefixCaughtAndBowled):])
	case strings.HasPrefix(la, prefixCaughtAndBowled):
		return DismissalCaughtAndBowled, fielderName(a[len(prefixCaughtAndBowled):])
	case strings.HasPrefix(la, prefixCaughtAndBowledAlt):
		return DismissalCaughtAndBowled, fielderName(a[len(prefixCaughtAndBowledAlt):])
	case strings.HasPrefix(la, prefixCaught):
		return DismissalCaught, fielderName(a[len(prefixCaught):])
	case strings.HasPrefix(la, prefixRunOut):
		return DismissalRunOut, fielderName(a[len(prefixRunOut):])
	case strings.HasPrefix(la, prefixStumped):
		return DismissalStumped, fielderName(a[len(prefixStumped):])
	default:
		return DismissalUnresolved, ""
	}
}

func isExcludedDismissal(a string) bool {
	switch strings.ToLower(strings.TrimSpace(a)) {
	case "lbw", "not out", "did not bat":
		return true
	default:
		return false
	}
}

func containsUnsure(a, b string) bool {
	return strings.Contains(strings.ToLower(a), unsureMarker) || strings.Contains(strings.ToLower(b), unsureMarker)
}

// fielderName trims the text left after a prefix, including any wrapping
// parentheses as in "run out (Jones)".
func fielderName(rest string) string {
	name := strings.TrimSpace(rest)
	name = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(name, "("), ")"))
	return strings.Join(strings.Fields(name), " ")
}
