package playcricket

import (
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/scorecard"
)

// ParseTables returns every <table> in the document, outer tables first. A
// table's header comes from its <thead>, or from a leading row made only of
// <th> cells. Colspans are expanded so columns stay aligned with the header.
func ParseTables(r io.Reader) (scorecard.RawTableSet, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var out scorecard.RawTableSet
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		out = append(out, parseTable(table))
	})
	return out, nil
}

func parseTable(table *goquery.Selection) scorecard.RawTable {
	var out scorecard.RawTable

	ownRows := table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Closest("table").IsSelection(table)
	})

	ownRows.Each(func(_ int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("td, th")
		if cells.Length() == 0 {
			return
		}

		inHead := tr.ParentsFiltered("thead").Length() > 0
		allHeader := cells.Length() == cells.Filter("th").Length()
		if out.Header == nil && len(out.Rows) == 0 && (inHead || allHeader) {
			out.Header = headerCells(cells)
			return
		}
		if inHead {
			return
		}
		out.Rows = append(out.Rows, rowCells(cells))
	})

	return out
}

func headerCells(cells *goquery.Selection) []string {
	out := make([]string, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		out = append(out, cellText(cell))
		for i := 1; i < colspan(cell); i++ {
			out = append(out, "")
		}
	})
	return out
}

func rowCells(cells *goquery.Selection) []scorecard.RawCell {
	out := make([]scorecard.RawCell, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		out = append(out, scorecard.NewCell(cellText(cell)))
		for i := 1; i < colspan(cell); i++ {
			out = append(out, scorecard.Blank())
		}
	})
	return out
}

func cellText(cell *goquery.Selection) string {
	return strings.Join(strings.Fields(cell.Text()), " ")
}

func colspan(cell *goquery.Selection) int {
	raw, ok := cell.Attr("colspan")
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > 64 {
		return 1
	}
	return n
}
