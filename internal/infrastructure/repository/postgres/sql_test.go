package postgres

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/stats"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("select stat: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fmt.Errorf("pq: relation players does not exist")) {
		t.Fatalf("expected unrelated error to be ignored")
	}
}

func TestStatModelRoundTripKeepsCounters(t *testing.T) {
	in := stats.CumulativeStat{PlayerName: "Amy Lee", Games: 2, Runs: 61, Wickets: 3, ThreeFourFers: 1, BowlingPoints: 90, BonusPoints: 5}

	row := statModelFromDomain(stats.WeekSheet(2), in)
	if row.Sheet != "week-2" {
		t.Fatalf("unexpected sheet: %q", row.Sheet)
	}
	if got := row.toDomain(); got != in {
		t.Fatalf("unexpected round trip:\nwant %+v\ngot  %+v", in, got)
	}
}

func TestStatCounterColumnsExcludeKeys(t *testing.T) {
	for _, col := range statCounterColumns {
		if col == "sheet" || col == "player_name" {
			t.Fatalf("key column %q must not be accumulated", col)
		}
	}
	if len(statCounterColumns) != len(statColumns)-2 {
		t.Fatalf("unexpected counter columns: %v", statCounterColumns)
	}
}

func TestMergeDeltas(t *testing.T) {
	names, merged := mergeDeltas([]stats.CumulativeStat{
		{PlayerName: "Sam Green", Catches: 1, FieldingPoints: 10},
		{PlayerName: "Amy Lee", Runs: 4},
		{PlayerName: "Sam Green", RunOuts: 1, FieldingPoints: 10},
	})

	if len(names) != 2 || names[0] != "Sam Green" || names[1] != "Amy Lee" {
		t.Fatalf("unexpected names order: %v", names)
	}
	sam := merged["Sam Green"]
	if sam.Catches != 1 || sam.RunOuts != 1 || sam.FieldingPoints != 20 {
		t.Fatalf("unexpected merged delta: %+v", sam)
	}
}

func TestUpsertSheetQueryTouchesUpdatedAt(t *testing.T) {
	query, args, err := upsertSheetQuery(stats.SeasonTotal, []string{"Amy Lee"}, map[string]stats.CumulativeStat{
		"Amy Lee": {PlayerName: "Amy Lee", Games: 1, Runs: 4},
	})
	if err != nil {
		t.Fatalf("build upsert: %v", err)
	}
	if !strings.Contains(query, "ON CONFLICT (sheet, player_name) DO UPDATE SET ") {
		t.Fatalf("missing conflict clause: %s", query)
	}
	if !strings.HasSuffix(query, ", updated_at = NOW()") {
		t.Fatalf("conflict update must refresh updated_at: %s", query)
	}
	if strings.Contains(query, "games = NOW()") || len(args) != len(statColumns) {
		t.Fatalf("unexpected upsert: %s args=%d", query, len(args))
	}
}
