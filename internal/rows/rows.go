// Package rows derives the flat, display-ordered row sequence from a
// FolderState and the record set. It owns no state: Materialize is a pure
// derivation, safe to recompute on every state change.
package rows

import (
	"sort"

	"triage-cli/internal/folders"
	"triage-cli/internal/model"
	"triage-cli/internal/query"
)

// Kind is the discriminant of the row tagged union.
type Kind int

const (
	KindFolder Kind = iota
	KindRecord
)

// Row is either a folder header or a record row. Annotations on record
// rows (InFolder, FirstInGroup, ...) are transient: computed fresh on
// every materialization, never persisted.
type Row struct {
	Kind Kind

	// Folder header fields (Kind == KindFolder). Counts are freshly
	// recomputed from the full membership, not the filtered view.
	Folder   model.Folder
	Expanded bool
	// Visible is the number of member rows emitted under this header
	// after filtering (0 when collapsed).
	Visible int

	// Record row fields (Kind == KindRecord).
	Record       model.Record
	InFolder     bool
	FolderID     string
	FirstInGroup bool
	LastInGroup  bool
}

// ID returns a stable identity for cursor/selection tracking across
// re-materializations.
func (r Row) ID() string {
	if r.Kind == KindFolder {
		return r.Folder.ID
	}
	return r.Record.ID
}

// Materialize produces the flat display sequence:
//  1. folders sorted by name (Hebrew-aware collation), headers first;
//  2. expanded folders are followed by their member records, filtered and
//     sorted by the active spec within the folder only, flagged
//     first/last-in-group;
//  3. unassigned records, filtered and sorted, after all folders.
//
// Member ids that do not resolve in recs are silently skipped (stale
// snapshot references). Deterministic for identical inputs.
func Materialize(st model.FolderState, recs map[string]model.Record, spec query.Spec, flt query.Filters) []Row {
	out := make([]Row, 0, len(recs)+len(st.Folders))

	ordered := make([]model.Folder, len(st.Folders))
	copy(ordered, st.Folders)
	sort.SliceStable(ordered, func(i, j int) bool {
		if c := query.CompareText(ordered[i].Name, ordered[j].Name, false); c != 0 {
			return c < 0
		}
		return ordered[i].ID < ordered[j].ID
	})

	for _, f := range ordered {
		expanded := st.Expanded[f.ID]
		members := visibleMembers(f, recs, spec, flt)

		header := Row{
			Kind:     KindFolder,
			Folder:   f,
			Expanded: expanded,
		}
		header.Folder.Counts = folders.Recount(f, recs)
		if expanded {
			header.Visible = len(members)
		}
		out = append(out, header)

		if !expanded {
			continue
		}
		for i, r := range members {
			out = append(out, Row{
				Kind:         KindRecord,
				Record:       r,
				InFolder:     true,
				FolderID:     f.ID,
				FirstInGroup: i == 0,
				LastInGroup:  i == len(members)-1,
			})
		}
	}

	unassigned := make([]model.Record, 0, len(st.UnassignedIDs))
	for _, id := range st.UnassignedIDs {
		if r, ok := recs[id]; ok {
			unassigned = append(unassigned, r)
		}
	}
	for _, r := range query.Sort(query.Apply(unassigned, flt), spec) {
		out = append(out, Row{Kind: KindRecord, Record: r})
	}
	return out
}

func visibleMembers(f model.Folder, recs map[string]model.Record, spec query.Spec, flt query.Filters) []model.Record {
	members := make([]model.Record, 0, len(f.MemberIDs))
	for _, id := range f.MemberIDs {
		if r, ok := recs[id]; ok {
			members = append(members, r)
		}
	}
	return query.Sort(query.Apply(members, flt), spec)
}

// Records extracts the underlying records of a row slice in display
// order, skipping folder headers. This is the enumeration the export
// contract builds on.
func Records(rs []Row) []model.Record {
	out := make([]model.Record, 0, len(rs))
	for _, r := range rs {
		if r.Kind == KindRecord {
			out = append(out, r.Record)
		}
	}
	return out
}
