// Package selection tracks the selected record set and the drag state
// machine that turns grab/drop gestures into atomic folder moves.
package selection

import (
	"sort"

	"triage-cli/internal/model"
)

// Selection is the set of selected record ids. Folder header rows are
// never selectable, which callers enforce by only feeding record ids in.
type Selection map[string]bool

func New() Selection { return Selection{} }

func (s Selection) Has(id string) bool { return s[id] }

func (s Selection) Toggle(id string) {
	if s[id] {
		delete(s, id)
	} else {
		s[id] = true
	}
}

func (s Selection) Clear() {
	for id := range s {
		delete(s, id)
	}
}

func (s Selection) Len() int { return len(s) }

// IDs returns the selected ids in a stable order.
func (s Selection) IDs() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Union returns the selected ids plus extra, deduplicated, stable order.
// This is the "right-clicked record plus already-selected records" set the
// context-menu path operates on.
func (s Selection) Union(extra ...string) []string {
	seen := make(map[string]bool, len(s)+len(extra))
	out := make([]string, 0, len(s)+len(extra))
	for _, id := range append(s.IDs(), extra...) {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// memberOf returns the containing folder id for a record, or "" when the
// record is unassigned (or unknown).
func memberOf(st model.FolderState, recordID string) string {
	for _, f := range st.Folders {
		for _, id := range f.MemberIDs {
			if id == recordID {
				return f.ID
			}
		}
	}
	return ""
}
