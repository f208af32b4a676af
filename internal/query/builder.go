// Package query translates HTTP query-string parameters into SQL
// predicates, a sort clause and a pagination window. Every list endpoint
// builds its fetch and its count from the same Builder, so pagination
// metadata always agrees with the returned rows.
package query

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Predicate turns a raw query-string value into a SQL condition with its
// placeholder arguments. Returning an empty condition skips the filter.
type Predicate func(value string) (cond string, args []any)

// Equals matches the column against the raw value.
func Equals(column string) Predicate {
	return func(value string) (string, []any) {
		return column + " = ?", []any{value}
	}
}

// Bool matches the column against "true"/"false".
func Bool(column string) Predicate {
	return func(value string) (string, []any) {
		return column + " = ?", []any{value == "true"}
	}
}

// Min matches rows with column >= the numeric value.
func Min(column string) Predicate {
	return numeric(column, ">=")
}

// Max matches rows with column <= the numeric value.
func Max(column string) Predicate {
	return numeric(column, "<=")
}

func numeric(column, op string) Predicate {
	return func(value string) (string, []any) {
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "", nil
		}
		return column + " " + op + " ?", []any{n}
	}
}

// Spec is the combined filter/sort/pagination specification consumed by a
// repository fetch.
type Spec struct {
	Where   string
	Args    []any
	OrderBy string
	Limit   int
	Offset  int
}

// SQL appends the spec's WHERE, ORDER BY and LIMIT clauses to a base
// SELECT and returns the full statement with its arguments.
func (s Spec) SQL(base string) (string, []any) {
	q := base
	if s.Where != "" {
		q += " WHERE " + s.Where
	}
	q += " ORDER BY " + s.OrderBy + " LIMIT ? OFFSET ?"
	args := append(append([]any{}, s.Args...), s.Limit, s.Offset)
	return q, args
}

// Meta is count-based pagination metadata for a request.
type Meta struct {
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// CountFunc counts rows matching a where clause; repositories provide one
// per table.
type CountFunc func(ctx context.Context, where string, args []any) (int64, error)

type Builder struct {
	params  map[string]string
	conds   []string
	args    []any
	orderBy string
	page    int
	limit   int
	offset  int
}

// New builds a Builder from flat query parameters. Unrecognized keys are
// ignored until a filter table names them.
func New(params map[string]string) *Builder {
	return &Builder{
		params:  params,
		orderBy: "created_at DESC",
		page:    defaultPage,
		limit:   defaultLimit,
	}
}

// Paginate computes offset = (page-1)*limit. Absent, non-numeric, zero or
// negative page/limit values are coerced to the 1/10 defaults; limit is
// clamped so a single request can never page the whole table.
func (b *Builder) Paginate() *Builder {
	b.page = positiveInt(b.params["page"], defaultPage)
	b.limit = positiveInt(b.params["limit"], defaultLimit)
	if b.limit > maxLimit {
		b.limit = maxLimit
	}
	b.offset = (b.page - 1) * b.limit
	return b
}

// Params flattens url.Values to the first value per key.
func Params(values url.Values) map[string]string {
	params := make(map[string]string, len(values))
	for key := range values {
		params[key] = values.Get(key)
	}
	return params
}

// Filter applies every predicate whose key appears in both the request and
// the table; keys absent from the table are silently skipped. All
// collected conditions are AND-combined.
func (b *Builder) Filter(table map[string]Predicate) *Builder {
	if table == nil {
		return b
	}
	keys := make([]string, 0, len(b.params))
	for key := range b.params {
		if _, ok := table[key]; ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		cond, args := table[key](b.params[key])
		if cond == "" {
			continue
		}
		b.conds = append(b.conds, cond)
		b.args = append(b.args, args...)
	}
	return b
}

// Search adds a case-insensitive substring match of searchTerm across the
// given fields. The term is split on whitespace: each word must match at
// least one field (word-level AND, field-level OR). AND-combined with any
// filters, never overriding them.
func (b *Builder) Search(fields ...string) *Builder {
	term := strings.TrimSpace(b.params["searchTerm"])
	if term == "" || len(fields) == 0 {
		return b
	}
	var wordConds []string
	for _, word := range strings.Fields(term) {
		fieldConds := make([]string, len(fields))
		for i, field := range fields {
			fieldConds[i] = "LOWER(" + field + ") LIKE ?"
			b.args = append(b.args, "%"+strings.ToLower(word)+"%")
		}
		wordConds = append(wordConds, "("+strings.Join(fieldConds, " OR ")+")")
	}
	b.conds = append(b.conds, "("+strings.Join(wordConds, " AND ")+")")
	return b
}

// And adds a fixed condition, e.g. a path-scoped "brand_id = ?".
func (b *Builder) And(cond string, args ...any) *Builder {
	b.conds = append(b.conds, cond)
	b.args = append(b.args, args...)
	return b
}

// DefaultSort replaces the created_at DESC fallback used when a request
// names no sort field. Call before Sort.
func (b *Builder) DefaultSort(orderBy string) *Builder {
	b.orderBy = orderBy
	return b
}

// Sort reads sortBy/sortOrder against a whitelist of query-field to
// column mappings. The legacy combined "sort" parameter with a leading
// minus is honored when sortBy is absent. Unknown fields keep the default
// created_at DESC; field names are never interpolated from raw input.
func (b *Builder) Sort(allowed map[string]string) *Builder {
	field := b.params["sortBy"]
	order := "ASC"
	if strings.EqualFold(b.params["sortOrder"], "desc") {
		order = "DESC"
	}
	if field == "" {
		if legacy := b.params["sort"]; legacy != "" {
			field = strings.TrimPrefix(legacy, "-")
			if strings.HasPrefix(legacy, "-") {
				order = "DESC"
			} else {
				order = "ASC"
			}
		}
	}
	if column, ok := allowed[field]; ok {
		b.orderBy = column + " " + order
	}
	return b
}

// Build returns the combined specification: search AND filter AND any
// fixed conditions, plus the sort and pagination window.
func (b *Builder) Build() Spec {
	return Spec{
		Where:   strings.Join(b.conds, " AND "),
		Args:    b.args,
		OrderBy: b.orderBy,
		Limit:   b.limit,
		Offset:  b.offset,
	}
}

// Meta re-issues a count with exactly the predicate set of Build and
// derives totalPage = ceil(total/limit).
func (b *Builder) Meta(ctx context.Context, count CountFunc) (Meta, error) {
	spec := b.Build()
	total, err := count(ctx, spec.Where, spec.Args)
	if err != nil {
		return Meta{}, err
	}
	totalPage := total / int64(b.limit)
	if total%int64(b.limit) != 0 {
		totalPage++
	}
	return Meta{Page: b.page, Limit: b.limit, Total: total, TotalPage: totalPage}, nil
}

func positiveInt(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
