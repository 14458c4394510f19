package scorecard

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/decision"
)

// CompletePageTables is the table count of a fully rendered match page.
const CompletePageTables = 7

// Fixed table offsets on a complete page, by where the team is listed.
var (
	layoutTeamFirst  = tableOffsets{batting: 1, bowling: 6, opponent: 4}
	layoutTeamSecond = tableOffsets{batting: 4, bowling: 3, opponent: 1}
)

type tableOffsets struct {
	batting  int
	bowling  int
	opponent int
}

// Layout is the designated tables of one match. OpponentIndex is -1 when the
// opposition batting card could not be located.
type Layout struct {
	Batting         RawTable
	Bowling         RawTable
	OpponentBatting RawTable
	BattingIndex    int
	BowlingIndex    int
	OpponentIndex   int
	TeamListedFirst bool
	Manual          bool
}

func (l Layout) HasOpponent() bool {
	return l.OpponentIndex >= 0
}

// Candidate is a table offered for manual designation.
type Candidate struct {
	Index int
	Table RawTable
}

func (c Candidate) Label() string {
	first := ""
	if len(c.Table.Rows) > 0 && len(c.Table.Rows[0]) > 0 {
		first = c.Table.Rows[0][0].Text()
	}
	header := strings.Join(c.Table.Header, " | ")
	return fmt.Sprintf("table %d: %d rows, header [%s], first cell %q", c.Index, len(c.Table.Rows), header, first)
}

// FixedLayout picks tables by position on a complete page.
func FixedLayout(tables RawTableSet, teamListedFirst bool) (Layout, error) {
	if len(tables) < CompletePageTables {
		return Layout{}, fmt.Errorf("%w: %d tables, need %d for a fixed layout", ErrAmbiguousLayout, len(tables), CompletePageTables)
	}

	offsets := layoutTeamSecond
	if teamListedFirst {
		offsets = layoutTeamFirst
	}

	return Layout{
		Batting:         tables[offsets.batting],
		Bowling:         tables[offsets.bowling],
		OpponentBatting: tables[offsets.opponent],
		BattingIndex:    offsets.batting,
		BowlingIndex:    offsets.bowling,
		OpponentIndex:   offsets.opponent,
		TeamListedFirst: teamListedFirst,
	}, nil
}

// ManualCandidates lists the tables of a degraded page that may be picked.
// The page summary table at index 0 and tables with no rows are skipped.
func ManualCandidates(tables RawTableSet) []Candidate {
	out := make([]Candidate, 0, len(tables))
	for i, table := range tables {
		if i == 0 || table.IsEmpty() {
			continue
		}
		out = append(out, Candidate{Index: i, Table: table})
	}
	return out
}

// ManualLayout builds a layout from explicit batting and bowling picks. The
// opposition card is never known on this path, so the returned error wraps
// ErrPartialLayout while the layout itself is usable.
func ManualLayout(tables RawTableSet, battingIdx, bowlingIdx int) (Layout, error) {
	candidates := ManualCandidates(tables)
	if !hasCandidate(candidates, battingIdx) {
		return Layout{}, fmt.Errorf("%w: table %d is not a batting candidate", ErrAmbiguousLayout, battingIdx)
	}
	if battingIdx == bowlingIdx || !hasCandidate(candidates, bowlingIdx) {
		return Layout{}, fmt.Errorf("%w: table %d is not a bowling candidate", ErrAmbiguousLayout, bowlingIdx)
	}

	return Layout{
		Batting:       tables[battingIdx],
		Bowling:       tables[bowlingIdx],
		BattingIndex:  battingIdx,
		BowlingIndex:  bowlingIdx,
		OpponentIndex: -1,
		Manual:        true,
	}, fmt.Errorf("%w: degraded page with %d tables", ErrPartialLayout, len(tables))
}

func hasCandidate(candidates []Candidate, idx int) bool {
	for _, c := range candidates {
		if c.Index == idx {
			return true
		}
	}
	return false
}

// Selector designates the batting, bowling and opposition batting tables,
// asking the decision provider whenever position alone is not enough.
type Selector struct {
	decisions decision.Provider
	timeout   time.Duration
}

func NewSelector(decisions decision.Provider, timeout time.Duration) Selector {
	return Selector{decisions: decisions, timeout: timeout}
}

// Select returns the match layout. On a degraded page the error wraps
// ErrPartialLayout and the layout is still valid; any other error is fatal
// for the match.
func (s Selector) Select(ctx context.Context, matchKey string, tables RawTableSet) (Layout, error) {
	if len(tables) >= CompletePageTables {
		answer, err := decision.Ask(ctx, s.decisions, s.timeout, decision.Request{
			Kind:     decision.KindTeamOrder,
			MatchKey: matchKey,
			Prompt:   "Is the team's batting card the first innings listed on the page?",
			Options:  []decision.Option{{Value: "yes", Label: "team listed first"}, {Value: "no", Label: "team listed second"}},
			Attempt:  1,
		})
		if err != nil {
			return Layout{}, fmt.Errorf("%w: team order: %w", ErrAmbiguousLayout, err)
		}
		first, err := decision.ParseYesNo(answer.Value)
		if err != nil {
			return Layout{}, fmt.Errorf("%w: %w", ErrAmbiguousLayout, err)
		}
		return FixedLayout(tables, first)
	}

	candidates := ManualCandidates(tables)
	if len(candidates) < 2 {
		return Layout{}, fmt.Errorf("%w: %d usable tables on a degraded page", ErrAmbiguousLayout, len(candidates))
	}

	battingIdx, err := s.pickTable(ctx, matchKey, decision.KindBattingTable, "Which table is the team's batting card?", candidates)
	if err != nil {
		return Layout{}, err
	}

	remaining := make([]Candidate, 0, len(candidates)-1)
	for _, c := range candidates {
		if c.Index != battingIdx {
			remaining = append(remaining, c)
		}
	}
	bowlingIdx, err := s.pickTable(ctx, matchKey, decision.KindBowlingTable, "Which table is the team's bowling card?", remaining)
	if err != nil {
		return Layout{}, err
	}

	return ManualLayout(tables, battingIdx, bowlingIdx)
}

func (s Selector) pickTable(ctx context.Context, matchKey string, kind decision.Kind, prompt string, candidates []Candidate) (int, error) {
	options := make([]decision.Option, 0, len(candidates))
	for _, c := range candidates {
		options = append(options, decision.Option{Value: strconv.Itoa(c.Index), Label: c.Label()})
	}

	answer, err := decision.Ask(ctx, s.decisions, s.timeout, decision.Request{
		Kind:     kind,
		MatchKey: matchKey,
		Prompt:   prompt,
		Options:  options,
		Attempt:  1,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrAmbiguousLayout, kind, err)
	}

	idx, err := strconv.Atoi(answer.Value)
	if err != nil || !hasCandidate(candidates, idx) {
		return 0, fmt.Errorf("%w: %s answer %q is not a candidate table", ErrAmbiguousLayout, kind, answer.Value)
	}
	return idx, nil
}
