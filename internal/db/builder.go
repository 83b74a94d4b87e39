package db

import (
	"fmt"
	"strconv"
	"strings"
)

// SelectBuilder is a fluent builder for parameterised SELECT statements.
// Arguments are numbered in call order, so Arg must be called in the order
// the placeholders appear in the rendered statement.
type SelectBuilder struct {
	dialect Dialect
	columns []string
	from    string
	joins   []string
	where   []string
	groupBy []string
	orderBy []string
	limit   string
	offset  string
	args    []any
}

// Select starts building a statement.
func Select(d Dialect, columns ...string) *SelectBuilder {
	return &SelectBuilder{dialect: d, columns: columns}
}

// Arg binds v and returns its placeholder.
func (b *SelectBuilder) Arg(v any) string {
	b.args = append(b.args, v)
	return b.dialect.Placeholder(len(b.args))
}

// Column appends a projected column or expression.
func (b *SelectBuilder) Column(expr string) *SelectBuilder {
	b.columns = append(b.columns, expr)
	return b
}

// From sets the source relation.
func (b *SelectBuilder) From(from string) *SelectBuilder {
	b.from = from
	return b
}

// Join appends a JOIN clause verbatim.
func (b *SelectBuilder) Join(clause string) *SelectBuilder {
	b.joins = append(b.joins, clause)
	return b
}

// Where appends a condition; conditions are ANDed.
func (b *SelectBuilder) Where(cond string) *SelectBuilder {
	b.where = append(b.where, cond)
	return b
}

// GroupBy appends a GROUP BY term.
func (b *SelectBuilder) GroupBy(term string) *SelectBuilder {
	b.groupBy = append(b.groupBy, term)
	return b
}

// OrderBy appends an ORDER BY term.
func (b *SelectBuilder) OrderBy(term string) *SelectBuilder {
	b.orderBy = append(b.orderBy, term)
	return b
}

// Limit binds a row limit.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = b.Arg(n)
	return b
}

// Offset binds a row offset.
func (b *SelectBuilder) Offset(n int) *SelectBuilder {
	b.offset = b.Arg(n)
	return b
}

// Wrap turns the statement into a derived table and starts a new SELECT over
// it. The bound arguments carry over.
func (b *SelectBuilder) Wrap(alias string, columns ...string) *SelectBuilder {
	inner, args := b.Build()
	return &SelectBuilder{
		dialect: b.dialect,
		columns: columns,
		from:    "(" + inner + ") AS " + alias,
		args:    args,
	}
}

// Build renders the statement and its arguments.
func (b *SelectBuilder) Build() (string, []any) {
	var sb strings.Builder

	sb.WriteString("SELECT ")
	if len(b.columns) == 0 {
		sb.WriteString("*")
	} else {
		sb.WriteString(strings.Join(b.columns, ", "))
	}
	if b.from != "" {
		sb.WriteString(" FROM ")
		sb.WriteString(b.from)
	}
	for _, j := range b.joins {
		sb.WriteString(" ")
		sb.WriteString(j)
	}
	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.where, " AND "))
	}
	if len(b.groupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(b.groupBy, ", "))
	}
	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit != "" {
		sb.WriteString(" LIMIT ")
		sb.WriteString(b.limit)
	}
	if b.offset != "" {
		sb.WriteString(" OFFSET ")
		sb.WriteString(b.offset)
	}

	args := make([]any, len(b.args))
	copy(args, b.args)
	return sb.String(), args
}

// String renders the statement with arguments for debug logging.
func (b *SelectBuilder) String() string {
	q, args := b.Build()
	return fmt.Sprintf("%s %v", q, args)
}

// QuestionPlaceholder renders "?" markers.
func QuestionPlaceholder(int) string { return "?" }

// DollarPlaceholder renders "$n" markers.
func DollarPlaceholder(n int) string { return "$" + strconv.Itoa(n) }
