package scorecard

import "strings"

// RawCell is one scraped table cell. A blank cell is distinct from a cell
// holding "0".
type RawCell struct {
	text    string
	present bool
}

// NewCell trims raw and marks whitespace-only input as blank.
func NewCell(raw string) RawCell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return RawCell{}
	}
	return RawCell{text: trimmed, present: true}
}

// Blank returns the blank marker.
func Blank() RawCell {
	return RawCell{}
}

func (c RawCell) IsBlank() bool {
	return !c.present
}

// Text returns the cell text, or "" for a blank cell.
func (c RawCell) Text() string {
	return c.text
}

// RawTable is one tabular block from a match page. Header may be nil when
// the page carries no usable header row.
type RawTable struct {
	Header []string
	Rows   [][]RawCell
}

func (t RawTable) IsEmpty() bool {
	return len(t.Rows) == 0
}

// RawTableSet is the ordered list of tables found on one match page.
type RawTableSet []RawTable

// TableFromStrings builds a table where every empty string becomes a blank cell.
func TableFromStrings(header []string, rows [][]string) RawTable {
	out := RawTable{Header: header, Rows: make([][]RawCell, 0, len(rows))}
	for _, row := range rows {
		cells := make([]RawCell, 0, len(row))
		for _, value := range row {
			cells = append(cells, NewCell(value))
		}
		out.Rows = append(out.Rows, cells)
	}
	return out
}

type DismissalKind string

const (
	DismissalCaught          DismissalKind = "caught"
	DismissalCaughtAndBowled DismissalKind = "caught-and-bowled"
	DismissalRunOut          DismissalKind = "run-out"
	DismissalStumped         DismissalKind = "stumped"
	DismissalBowled          DismissalKind = "bowled"
	DismissalLBW             DismissalKind = "lbw"
	DismissalNotOut          DismissalKind = "not-out"
	DismissalDidNotBat       DismissalKind = "did-not-bat"
	DismissalUnresolved      DismissalKind = "unresolved"
)

// BattingEntry is one cleaned batting card row. Counts are never unset: a
// blank source cell yields 0.
type BattingEntry struct {
	Row           int
	PlayerName    string
	Runs          int
	Balls         int
	Fours         int
	Sixes         int
	DismissalText string
	Dismissal     DismissalKind
	// Dismissed is false for not out, did not bat and retired not out.
	Dismissed bool
}

type BowlingEntry struct {
	Row          int
	PlayerName   string
	Overs        Overs
	Maidens      int
	RunsConceded int
	Wickets      int
	Wides        int
	NoBalls      int
}

type DismissalRecord struct {
	Row         int
	Text        string
	FielderName string
	Kind        DismissalKind
}

// Credited reports whether the dismissal awards a fielder.
func (d DismissalRecord) Credited() bool {
	if d.FielderName == "" {
		return false
	}
	switch d.Kind {
	case DismissalCaught, DismissalCaughtAndBowled, DismissalRunOut, DismissalStumped:
		return true
	default:
		return false
	}
}

type FieldingEntry struct {
	FielderName string
	Catches     int
	RunOuts     int
	Stumpings   int
}

// BattingResult holds normalized rows plus the rows that could not be cleaned.
type BattingResult struct {
	Entries  []BattingEntry
	Rejected []RowError
}

type BowlingResult struct {
	Entries  []BowlingEntry
	Rejected []RowError
}

// FieldingResult aggregates fielder credit. Unclassified holds rows that
// matched no dismissal rule and were therefore not credited.
type FieldingResult struct {
	Entries      []FieldingEntry
	Dismissals   []DismissalRecord
	Unclassified []DismissalRecord
}
