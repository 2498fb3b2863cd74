package listing

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Join eagerly populates a related object on every row, rendered as a
// nested JSON object under Name.
type Join struct {
	// Clause is the SQL join fragment, e.g.
	// "JOIN bootcamps b ON b.id = c.bootcamp_id".
	Clause string
	// Name is the JSON key of the nested object, e.g. "bootcamp".
	Name string
	// Columns maps nested JSON keys onto joined columns.
	Columns map[string]string
}

// Query describes a listable resource: its table, field allow-list,
// default ordering, and optional relation population.
type Query struct {
	// Table is the FROM target, optionally aliased ("courses c").
	Table string
	// Fields is the allow-list used for filtering, selection and sorting.
	Fields Fields
	// DefaultSort is the ORDER BY used when the request names none,
	// e.g. "c.created_at DESC". List endpoints default to
	// reverse-chronological order.
	DefaultSort string
	// Join optionally populates a related object.
	Join *Join
}

// Result is the advanced-results envelope serialized verbatim by list
// handlers: {success, count, pagination, data}.
type Result struct {
	Success    bool                     `json:"success"`
	Count      int                      `json:"count"`
	Pagination Pagination               `json:"pagination"`
	Data       []map[string]interface{} `json:"data"`
}

// Querier is the subset of pgxpool.Pool the assembler needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

var _ Querier = (*pgxpool.Pool)(nil)

// Execute runs the assembled query once: a COUNT over the filtered set,
// then the data page. Scope conditions come from the route (e.g. the
// parent bootcamp of a nested course listing) and are ANDed with the
// translated filter.
func Execute(ctx context.Context, db Querier, q Query, params *Params, scope ...Condition) (*Result, error) {
	conds := make([]Condition, 0, len(scope)+len(params.Conditions))
	conds = append(conds, scope...)
	conds = append(conds, params.Conditions...)

	where, args := renderWhere(conds)

	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", q.Table, where)
	var total int
	if err := db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count %s: %w", q.Table, err)
	}

	dataSQL := fmt.Sprintf(
		"SELECT %s FROM %s%s%s ORDER BY %s LIMIT %d OFFSET %d",
		q.projection(params.Select),
		q.Table,
		joinClause(q.Join),
		where,
		q.orderBy(params.Sort),
		params.Limit,
		params.Offset(),
	)

	rows, err := db.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", q.Table, err)
	}
	defer rows.Close()

	data, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("collect %s rows: %w", q.Table, err)
	}
	if data == nil {
		data = []map[string]interface{}{}
	}

	return &Result{
		Success:    true,
		Count:      len(data),
		Pagination: NewPagination(params.Page, params.Limit, total),
		Data:       data,
	}, nil
}

// renderWhere numbers every condition's placeholder and assembles the
// WHERE clause. Returns an empty string when there are no conditions.
func renderWhere(conds []Condition) (string, []interface{}) {
	if len(conds) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(conds))
	args := make([]interface{}, 0, len(conds))
	for i, cond := range conds {
		parts = append(parts, fmt.Sprintf(cond.Format, i+1))
		args = append(args, cond.Arg)
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

// projection renders the SELECT column list. Selected API fields are
// aliased back to their API names so rows serialize with the names the
// client filters on; an empty selection projects every declared field.
func (q Query) projection(selected []string) string {
	names := selected
	if len(names) == 0 {
		names = make([]string, 0, len(q.Fields))
		for name := range q.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	cols := make([]string, 0, len(names)+1)
	for _, name := range names {
		cols = append(cols, fmt.Sprintf("%s AS %q", q.Fields[name].Column, name))
	}

	if q.Join != nil {
		keys := make([]string, 0, len(q.Join.Columns))
		for key := range q.Join.Columns {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		pairs := make([]string, 0, len(keys))
		for _, key := range keys {
			pairs = append(pairs, fmt.Sprintf("'%s', %s", key, q.Join.Columns[key]))
		}
		cols = append(cols, fmt.Sprintf("json_build_object(%s) AS %q", strings.Join(pairs, ", "), q.Join.Name))
	}

	return strings.Join(cols, ", ")
}

func (q Query) orderBy(keys []SortKey) string {
	if len(keys) == 0 {
		return q.DefaultSort
	}

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		direction := "ASC"
		if key.Desc {
			direction = "DESC"
		}
		parts = append(parts, q.Fields[key.Field].Column+" "+direction)
	}
	return strings.Join(parts, ", ")
}

func joinClause(j *Join) string {
	if j == nil {
		return ""
	}
	return " " + j.Clause
}
