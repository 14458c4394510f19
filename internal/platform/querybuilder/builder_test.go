package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("player_name", "runs").
		From("player_sheet_stats").
		Where(Eq("sheet", "week-3"), In("player_name", []string{"Amy Lee", "Sam Green"})).
		OrderBy("position").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	want := "SELECT player_name, runs FROM player_sheet_stats WHERE sheet = $1 AND player_name IN ($2, $3) ORDER BY position LIMIT 10"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if !reflect.DeepEqual(args, []any{"week-3", "Amy Lee", "Sam Green"}) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("number").From("players").Where(In("name", []string(nil))).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT number FROM players WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}

func TestSelectBuilder_ExprPlaceholders(t *testing.T) {
	query, args, err := Select("name").From("players").
		Where(Eq("role", "Bowler"), Expr("lower(name) = lower(?)", "amy lee")).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT name FROM players WHERE role = $1 AND lower(name) = lower($2)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 || args[1] != "amy lee" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_DoNothing(t *testing.T) {
	query, args, err := InsertInto("applied_matches").
		Columns("match_key", "sheet").
		Values("m-1", "week-1").
		Values("m-1", "season-total").
		OnConflictDoNothing("match_key", "sheet").
		Returning("sheet").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	want := "INSERT INTO applied_matches (match_key, sheet) VALUES ($1, $2), ($3, $4) ON CONFLICT (match_key, sheet) DO NOTHING RETURNING sheet"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 4 || args[3] != "season-total" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_Accumulate(t *testing.T) {
	query, _, err := InsertInto("player_sheet_stats").
		Columns("sheet", "player_name", "runs", "wickets").
		Values("week-1", "Amy Lee", 12, 2).
		OnConflictAdd([]string{"sheet", "player_name"}, "runs", "wickets").
		OnConflictSet("updated_at", "NOW()").
		ToSQL()
	if err != nil {
		t.Fatalf("build upsert query: %v", err)
	}

	want := "INSERT INTO player_sheet_stats (sheet, player_name, runs, wickets) VALUES ($1, $2, $3, $4) " +
		"ON CONFLICT (sheet, player_name) DO UPDATE SET runs = player_sheet_stats.runs + EXCLUDED.runs, " +
		"wickets = player_sheet_stats.wickets + EXCLUDED.wickets, updated_at = NOW()"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("players").Columns("number", "name").Values(1).ToSQL()
	if err == nil {
		t.Fatalf("expected row width error")
	}
}

type rowModel struct {
	Sheet   string `db:"sheet"`
	Name    string `db:"player_name"`
	Runs    int    `db:"runs"`
	skipped int
	Ignored string `db:"-"`
}

func TestInsertModels(t *testing.T) {
	b, err := InsertModels("player_sheet_stats", []rowModel{
		{Sheet: "week-1", Name: "Amy Lee", Runs: 4, skipped: 1},
		{Sheet: "week-1", Name: "Sam Green", Runs: 7},
	})
	if err != nil {
		t.Fatalf("insert models: %v", err)
	}
	query, args, err := b.ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	want := "INSERT INTO player_sheet_stats (sheet, player_name, runs) VALUES ($1, $2, $3), ($4, $5, $6)"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 6 || args[5] != 7 {
		t.Fatalf("unexpected args: %+v", args)
	}
	if got := Columns(&rowModel{}); !reflect.DeepEqual(got, []string{"sheet", "player_name", "runs"}) {
		t.Fatalf("unexpected columns: %+v", got)
	}
}
