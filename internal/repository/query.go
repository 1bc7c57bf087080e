package repository

import (
	"fmt"
	"strings"

	"github.com/umalmyha/crm/internal/model"
)

// selectQuery accumulates filter conditions and positional args for postgres
type selectQuery struct {
	table      string
	columns    string
	conditions []string
	args       []any
	orderBy    []string
	skip       int
	take       int
}

func newSelectQuery(table, columns string) *selectQuery {
	return &selectQuery{table: table, columns: columns}
}

func (q *selectQuery) where(column string, value any) {
	q.args = append(q.args, value)
	q.conditions = append(q.conditions, fmt.Sprintf("%s = $%d", column, len(q.args)))
}

// order appends sort directives, sortable maps contract field names to columns
func (q *selectQuery) order(fields []model.OrderField, sortable map[string]string) error {
	for _, f := range fields {
		column, ok := sortable[f.Field]
		if !ok {
			return &model.UnknownFieldErr{Entity: q.table, Field: f.Field}
		}

		direction := "ASC"
		if f.Order == model.SortOrderDesc {
			direction = "DESC"
		}
		q.orderBy = append(q.orderBy, fmt.Sprintf("%s %s", column, direction))
	}
	return nil
}

func (q *selectQuery) paginate(skip, take int) {
	q.skip = skip
	q.take = take
}

func (q *selectQuery) build() (string, []any) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", q.columns, q.table)

	if len(q.conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(q.conditions, " AND "))
	}

	if len(q.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(q.orderBy, ", "))
	}

	args := q.args
	if q.take > 0 {
		args = append(args, q.take)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	if q.skip > 0 {
		args = append(args, q.skip)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	return sb.String(), args
}
