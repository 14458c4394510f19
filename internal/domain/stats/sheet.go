package stats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidSheet = errors.New("invalid sheet key")

// SheetKey names one cumulative stats sheet: a week or the season total.
type SheetKey string

const SeasonTotal SheetKey = "season-total"

const weekPrefix = "week-"

func WeekSheet(week int) SheetKey {
	return SheetKey(weekPrefix + strconv.Itoa(week))
}

// ParseSheetKey accepts "week-N", "weekN", a bare week number or "season-total".
// Weeks run from 1 to seasonWeeks.
func ParseSheetKey(raw string, seasonWeeks int) (SheetKey, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == string(SeasonTotal) || value == "season" || value == "total" {
		return SeasonTotal, nil
	}

	value = strings.TrimPrefix(value, weekPrefix)
	value = strings.TrimPrefix(value, "week")
	week, err := strconv.Atoi(value)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidSheet, raw)
	}
	if week < 1 || week > seasonWeeks {
		return "", fmt.Errorf("%w: week %d outside 1..%d", ErrInvalidSheet, week, seasonWeeks)
	}
	return WeekSheet(week), nil
}

// Week returns the week number, or false for the season total.
func (k SheetKey) Week() (int, bool) {
	raw, ok := strings.CutPrefix(string(k), weekPrefix)
	if !ok {
		return 0, false
	}
	week, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return week, true
}

func (k SheetKey) String() string {
	return string(k)
}
