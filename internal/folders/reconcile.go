package folders

import (
	"sort"

	"triage-cli/internal/model"
)

// Reconcile repairs a loaded snapshot against the live record set so the
// partition invariant holds again after drift between a stale snapshot and
// current records:
//   - an id appearing in more than one place keeps its first occurrence
//     (folders in order, then unassigned) and loses the rest
//   - a live record appearing nowhere joins the unassigned list
//
// Folder member ids that reference missing records are kept: the
// materializer skips them at render time, and they heal if the record
// reappears. Counters are recomputed at the end.
func Reconcile(st model.FolderState, recs map[string]model.Record) model.FolderState {
	out := st.Clone()
	if out.Expanded == nil {
		out.Expanded = map[string]bool{}
	}

	seen := map[string]bool{}
	for i := range out.Folders {
		f := &out.Folders[i]
		members := f.MemberIDs[:0]
		for _, id := range f.MemberIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			members = append(members, id)
		}
		f.MemberIDs = members
	}

	unassigned := out.UnassignedIDs[:0]
	for _, id := range out.UnassignedIDs {
		if seen[id] {
			continue
		}
		if _, ok := recs[id]; !ok {
			// Unassigned ids without a backing record are pure garbage;
			// unlike folder members they carry no structure worth keeping.
			continue
		}
		seen[id] = true
		unassigned = append(unassigned, id)
	}
	out.UnassignedIDs = unassigned

	var adopted []string
	for id := range recs {
		if !seen[id] {
			adopted = append(adopted, id)
		}
	}
	sort.Strings(adopted)
	out.UnassignedIDs = append(out.UnassignedIDs, adopted...)

	for i := range out.Folders {
		out.Folders[i].Counts = Recount(out.Folders[i], recs)
	}
	return out
}
