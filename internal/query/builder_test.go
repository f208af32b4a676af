package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginateDefaults(t *testing.T) {
	tests := []struct {
		name       string
		params     map[string]string
		wantLimit  int
		wantOffset int
	}{
		{"absent", map[string]string{}, 10, 0},
		{"non-numeric", map[string]string{"page": "abc", "limit": "xyz"}, 10, 0},
		{"zero limit", map[string]string{"limit": "0"}, 10, 0},
		{"negative", map[string]string{"page": "-2", "limit": "-5"}, 10, 0},
		{"page two", map[string]string{"page": "2", "limit": "10"}, 10, 10},
		{"clamped", map[string]string{"limit": "5000"}, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := New(tt.params).Paginate().Build()
			assert.Equal(t, tt.wantLimit, spec.Limit)
			assert.Equal(t, tt.wantOffset, spec.Offset)
		})
	}
}

func TestFilterSkipsUnknownKeys(t *testing.T) {
	table := map[string]Predicate{
		"isActive": Bool("is_active"),
		"brandId":  Equals("brand_id"),
	}
	spec := New(map[string]string{
		"isActive": "true",
		"brandId":  "7",
		"bogus":    "1; DROP TABLE products",
	}).Filter(table).Build()

	assert.Equal(t, "brand_id = ? AND is_active = ?", spec.Where)
	assert.Equal(t, []any{"7", true}, spec.Args)
}

func TestFilterNilTable(t *testing.T) {
	spec := New(map[string]string{"isActive": "true"}).Filter(nil).Build()
	assert.Empty(t, spec.Where)
	assert.Empty(t, spec.Args)
}

func TestNumericPredicateSkipsBadInput(t *testing.T) {
	table := map[string]Predicate{"minPrice": Min("price"), "maxPrice": Max("price")}

	spec := New(map[string]string{"minPrice": "12.5", "maxPrice": "oops"}).
		Filter(table).Build()
	assert.Equal(t, "price >= ?", spec.Where)
	assert.Equal(t, []any{12.5}, spec.Args)
}

func TestSearchMultiWord(t *testing.T) {
	spec := New(map[string]string{"searchTerm": "Vitamin C"}).
		Search("name", "description").Build()

	assert.Equal(t,
		"((LOWER(name) LIKE ? OR LOWER(description) LIKE ?) AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?))",
		spec.Where)
	assert.Equal(t, []any{"%vitamin%", "%vitamin%", "%c%", "%c%"}, spec.Args)
}

func TestSearchBlankTermIsNoop(t *testing.T) {
	spec := New(map[string]string{"searchTerm": "   "}).Search("name").Build()
	assert.Empty(t, spec.Where)
}

func TestSearchAndFilterCompose(t *testing.T) {
	table := map[string]Predicate{"isActive": Bool("is_active")}
	spec := New(map[string]string{"searchTerm": "serum", "isActive": "true"}).
		Filter(table).
		Search("name").
		Build()

	assert.Equal(t, "is_active = ? AND ((LOWER(name) LIKE ?))", spec.Where)
	assert.Equal(t, []any{true, "%serum%"}, spec.Args)
}

func TestAndOverride(t *testing.T) {
	spec := New(map[string]string{"searchTerm": "serum"}).
		Search("name").
		And("category_id = ?", int64(3)).
		Build()

	assert.Equal(t, "((LOWER(name) LIKE ?)) AND category_id = ?", spec.Where)
	assert.Equal(t, []any{"%serum%", int64(3)}, spec.Args)
}

func TestSort(t *testing.T) {
	allowed := map[string]string{"price": "price", "name": "name"}

	tests := []struct {
		name   string
		params map[string]string
		want   string
	}{
		{"default", map[string]string{}, "created_at DESC"},
		{"asc by default", map[string]string{"sortBy": "price"}, "price ASC"},
		{"explicit desc", map[string]string{"sortBy": "price", "sortOrder": "desc"}, "price DESC"},
		{"legacy minus", map[string]string{"sort": "-name"}, "name DESC"},
		{"legacy plain", map[string]string{"sort": "name"}, "name ASC"},
		{"sortBy wins over legacy", map[string]string{"sortBy": "price", "sort": "-name"}, "price ASC"},
		{"unknown field falls back", map[string]string{"sortBy": "password_hash"}, "created_at DESC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := New(tt.params).Sort(allowed).Build()
			assert.Equal(t, tt.want, spec.OrderBy)
		})
	}
}

func TestMetaUsesSamePredicates(t *testing.T) {
	table := map[string]Predicate{"isActive": Bool("is_active")}
	b := New(map[string]string{
		"isActive":   "true",
		"searchTerm": "serum",
		"page":       "2",
		"limit":      "10",
	}).Filter(table).Search("name").Paginate()

	spec := b.Build()

	var gotWhere string
	var gotArgs []any
	meta, err := b.Meta(context.Background(), func(_ context.Context, where string, args []any) (int64, error) {
		gotWhere = where
		gotArgs = args
		return 25, nil
	})
	require.NoError(t, err)

	assert.Equal(t, spec.Where, gotWhere)
	assert.Equal(t, spec.Args, gotArgs)
	assert.Equal(t, Meta{Page: 2, Limit: 10, Total: 25, TotalPage: 3}, meta)
}

func TestMetaTotalPageExactMultiple(t *testing.T) {
	meta, err := New(map[string]string{"limit": "10"}).Paginate().
		Meta(context.Background(), func(context.Context, string, []any) (int64, error) {
			return 30, nil
		})
	require.NoError(t, err)
	assert.Equal(t, int64(3), meta.TotalPage)
}

func TestSpecSQL(t *testing.T) {
	spec := New(map[string]string{"page": "3", "limit": "5"}).
		Paginate().
		And("brand_id = ?", int64(9)).
		Build()

	sql, args := spec.SQL("SELECT id FROM products")
	assert.Equal(t, "SELECT id FROM products WHERE brand_id = ? ORDER BY created_at DESC LIMIT ? OFFSET ?", sql)
	assert.Equal(t, []any{int64(9), 5, 10}, args)
}
