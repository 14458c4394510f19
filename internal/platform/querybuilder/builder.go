package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition renders one predicate of a WHERE clause.
type Condition interface {
	render(w *writer)
}

// writer accumulates SQL text and numbers postgres placeholders as args are bound.
type writer struct {
	sb   strings.Builder
	args []any
}

func (w *writer) text(parts ...string) {
	for _, p := range parts {
		w.sb.WriteString(p)
	}
}

func (w *writer) bind(value any) {
	w.args = append(w.args, value)
	w.sb.WriteString("$")
	w.sb.WriteString(strconv.Itoa(len(w.args)))
}

// expr copies raw SQL, binding args to each '?' in order. Extra '?' are left as is.
func (w *writer) expr(raw string, args []any) {
	next := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] == '?' && next < len(args) {
			w.bind(args[next])
			next++
			continue
		}
		w.sb.WriteByte(raw[i])
	}
}

func (w *writer) where(conds []Condition) {
	for i, c := range conds {
		if i == 0 {
			w.text(" WHERE ")
		} else {
			w.text(" AND ")
		}
		c.render(w)
	}
}

type eq struct {
	column string
	value  any
}

func Eq(column string, value any) Condition { return eq{column: column, value: value} }

func (c eq) render(w *writer) {
	w.text(c.column, " = ")
	w.bind(c.value)
}

type in struct {
	column string
	values []any
}

// In matches column against values. An empty list matches nothing.
func In[T any](column string, values []T) Condition {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return in{column: column, values: out}
}

func (c in) render(w *writer) {
	if len(c.values) == 0 {
		w.text("1=0")
		return
	}
	w.text(c.column, " IN (")
	for i, v := range c.values {
		if i > 0 {
			w.text(", ")
		}
		w.bind(v)
	}
	w.text(")")
}

type rawExpr struct {
	sql  string
	args []any
}

// Expr is a raw predicate with '?' placeholders.
func Expr(sql string, args ...any) Condition { return rawExpr{sql: sql, args: args} }

func (c rawExpr) render(w *writer) { w.expr(c.sql, c.args) }

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conds ...Condition) *SelectBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = n
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var w writer
	w.text("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.text(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.text(" LIMIT ", strconv.Itoa(b.limit))
	}
	return w.sb.String(), w.args, nil
}

// InsertBuilder writes a multi-row INSERT with an optional ON CONFLICT clause.
type InsertBuilder struct {
	table      string
	columns    []string
	rows       [][]any
	conflict   []string
	doNothing  bool
	accumulate []string
	assign     [][2]string
	returning  []string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// OnConflictDoNothing skips rows that collide on target.
func (b *InsertBuilder) OnConflictDoNothing(target ...string) *InsertBuilder {
	b.conflict = append([]string(nil), target...)
	b.doNothing = true
	return b
}

// OnConflictAdd turns a collision on target into col = table.col + EXCLUDED.col
// for every listed column.
func (b *InsertBuilder) OnConflictAdd(target []string, columns ...string) *InsertBuilder {
	b.conflict = append([]string(nil), target...)
	b.doNothing = false
	b.accumulate = append([]string(nil), columns...)
	return b
}

// OnConflictSet adds col = expr to the DO UPDATE clause. expr is written
// verbatim and must not carry user input.
func (b *InsertBuilder) OnConflictSet(col, expr string) *InsertBuilder {
	b.assign = append(b.assign, [2]string{col, expr})
	return b
}

func (b *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	b.returning = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var w writer
	w.text("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(b.columns))
		}
		if i > 0 {
			w.text(", ")
		}
		w.text("(")
		for j, v := range row {
			if j > 0 {
				w.text(", ")
			}
			w.bind(v)
		}
		w.text(")")
	}

	if len(b.conflict) > 0 {
		w.text(" ON CONFLICT (", strings.Join(b.conflict, ", "), ")")
		switch {
		case b.doNothing:
			w.text(" DO NOTHING")
		case len(b.accumulate) > 0 || len(b.assign) > 0:
			w.text(" DO UPDATE SET ")
			for i, col := range b.accumulate {
				if i > 0 {
					w.text(", ")
				}
				w.text(col, " = ", b.table, ".", col, " + EXCLUDED.", col)
			}
			for i, a := range b.assign {
				if i > 0 || len(b.accumulate) > 0 {
					w.text(", ")
				}
				w.text(a[0], " = ", a[1])
			}
		default:
			return "", nil, fmt.Errorf("conflict target set without an action")
		}
	}
	if len(b.returning) > 0 {
		w.text(" RETURNING ", strings.Join(b.returning, ", "))
	}

	return w.sb.String(), w.args, nil
}
