package query

import (
	"sort"
	"time"

	"triage-cli/internal/model"
)

// Key is one (field, direction) pair of a sort spec.
type Key struct {
	Field Field `json:"field"`
	Desc  bool  `json:"desc"`
}

// Spec is an ordered multi-key sort: comparators apply in order, first
// non-zero result wins, ties preserve input order (stable).
type Spec []Key

// timestampLayouts are tried in order when comparing date-like columns.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseWhen(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// compareWhen compares parsed timestamps when both parse; otherwise it
// degrades to collated string comparison. Never errors.
func compareWhen(a, b string, desc bool) int {
	ta, oka := parseWhen(a)
	tb, okb := parseWhen(b)
	if oka && okb {
		c := 0
		if ta.Before(tb) {
			c = -1
		} else if ta.After(tb) {
			c = 1
		}
		if desc {
			return -c
		}
		return c
	}
	return CompareText(a, b, desc)
}

// Compare applies one sort key to a pair of records.
//
// Severity and impact intentionally ignore the requested direction: they
// always order by descending rank (critical first, high first). This is a
// business-priority override carried over from the original product, not a
// bug, and it is not user-toggleable.
func (k Key) Compare(a, b model.Record) int {
	switch k.Field {
	case FieldSeverity:
		return b.Severity.Rank() - a.Severity.Rank()
	case FieldImpact:
		return b.Impact.Rank() - a.Impact.Rank()
	case FieldReportedAt:
		return compareWhen(a.ReportedAt, b.ReportedAt, k.Desc)
	case FieldStatus, FieldEnvironment, FieldDescription, FieldOrigin, FieldExternalID, FieldIdentities:
		return CompareText(Value(a, k.Field), Value(b, k.Field), k.Desc)
	default:
		// Unknown column ids are ignored (no-op comparator).
		return 0
	}
}

func (s Spec) compare(a, b model.Record) int {
	for _, k := range s {
		if c := k.Compare(a, b); c != 0 {
			return c
		}
	}
	return 0
}

// Sort returns a new slice ordered by the spec. The input is never
// mutated; ties keep their input order, which the materializer relies on
// when sorting folder members and unassigned rows independently.
func Sort(recs []model.Record, spec Spec) []model.Record {
	out := append([]model.Record(nil), recs...)
	if len(spec) == 0 {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		return spec.compare(out[i], out[j]) < 0
	})
	return out
}
