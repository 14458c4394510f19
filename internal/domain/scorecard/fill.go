package scorecard

import (
	"fmt"
	"strconv"
	"strings"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldCount
	fieldOvers
)

// field describes one logical column. position is the fallback index used
// when no header alias matches.
type field struct {
	key      string
	kind     fieldKind
	position int
	aliases  []string
}

type columnLayout struct {
	fields  []field
	indexes map[string]int
}

// resolveColumns maps every field to a column index. Text fields are pinned
// to their position. Numeric fields first look for a header alias among the
// remaining columns and fall back to position. A field with no column gets
// index -1 and always fills with its default.
func resolveColumns(header []string, fields []field) columnLayout {
	layout := columnLayout{fields: fields, indexes: make(map[string]int, len(fields))}
	claimed := make(map[int]bool, len(fields))

	for _, f := range fields {
		if f.kind == fieldText {
			layout.indexes[f.key] = f.position
			claimed[f.position] = true
		}
	}

	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = normalizeHeader(h)
	}

	for _, f := range fields {
		if f.kind == fieldText {
			continue
		}
		idx := -1
		for i, h := range normalized {
			if claimed[i] || h == "" {
				continue
			}
			if matchesAlias(h, f.aliases) {
				idx = i
				break
			}
		}
		if idx < 0 && !claimed[f.position] && (len(header) == 0 || f.position < len(header)) {
			idx = f.position
		}
		if idx >= 0 {
			claimed[idx] = true
		}
		layout.indexes[f.key] = idx
	}

	return layout
}

func normalizeHeader(h string) string {
	return strings.ToUpper(strings.Join(strings.Fields(h), ""))
}

func matchesAlias(header string, aliases []string) bool {
	for _, alias := range aliases {
		if header == alias {
			return true
		}
	}
	return false
}

// filledRow is a row after default fill: blank text is "", blank counts are
// 0 and blank overs are 0.0. No later step ever sees a blank marker.
type filledRow struct {
	text   map[string]string
	counts map[string]int
	overs  map[string]Overs
}

func (l columnLayout) fill(table string, rowIdx int, row []RawCell) (filledRow, *RowError) {
	out := filledRow{
		text:   make(map[string]string),
		counts: make(map[string]int),
		overs:  make(map[string]Overs),
	}

	for _, f := range l.fields {
		cell := Blank()
		if idx := l.indexes[f.key]; idx >= 0 && idx < len(row) {
			cell = row[idx]
		}

		switch f.kind {
		case fieldText:
			out.text[f.key] = cell.Text()
		case fieldCount:
			n, err := parseCount(cell)
			if err != nil {
				return filledRow{}, &RowError{Table: table, Row: rowIdx, Column: f.key, Value: cell.Text(), Err: err}
			}
			out.counts[f.key] = n
		case fieldOvers:
			overs, err := ParseOvers(cell.Text())
			if err != nil {
				return filledRow{}, &RowError{Table: table, Row: rowIdx, Column: f.key, Value: cell.Text(), Err: err}
			}
			out.overs[f.key] = overs
		}
	}

	return out, nil
}

// parseCount reads a non-negative integer. A trailing "*" (not out marker)
// is tolerated.
func parseCount(cell RawCell) (int, error) {
	if cell.IsBlank() {
		return 0, nil
	}
	value := strings.TrimSuffix(cell.Text(), "*")
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: not an integer", ErrMalformedRow)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative count", ErrInvalidStatValue)
	}
	return n, nil
}
