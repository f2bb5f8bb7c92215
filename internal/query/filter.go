package query

import (
	"strings"

	"triage-cli/internal/model"
)

// Filters combines per-column predicates with one global search query.
// Filtering is conjunctive: a record must satisfy every active column
// filter and the search query to be included.
type Filters struct {
	Columns map[Field]string `json:"columns,omitempty"`
	Search  string           `json:"search,omitempty"`
}

func (f Filters) Empty() bool {
	return strings.TrimSpace(f.Search) == "" && len(f.Columns) == 0
}

func (f Filters) matchColumn(r model.Record, field Field, want string) bool {
	want = strings.TrimSpace(want)
	if want == "" {
		return true
	}
	got := Value(r, field)
	if enumField(field) {
		return strings.EqualFold(got, want)
	}
	return strings.Contains(strings.ToLower(got), strings.ToLower(want))
}

// matchSearch reports whether any visible column contains the query,
// case-insensitively.
func (f Filters) matchSearch(r model.Record) bool {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	for _, field := range Fields {
		if strings.Contains(strings.ToLower(Value(r, field)), q) {
			return true
		}
	}
	return false
}

func (f Filters) Match(r model.Record) bool {
	for field, want := range f.Columns {
		if !f.matchColumn(r, field, want) {
			return false
		}
	}
	return f.matchSearch(r)
}

// Apply returns the records passing every active predicate, preserving
// input order. The input is never mutated.
func Apply(recs []model.Record, f Filters) []model.Record {
	if f.Empty() {
		return append([]model.Record(nil), recs...)
	}
	out := make([]model.Record, 0, len(recs))
	for _, r := range recs {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
