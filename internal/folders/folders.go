// Package folders implements the pure state transitions for folder
// membership. Every operation takes a FolderState snapshot and returns a
// new one; no partial mutation is ever observable. Invalid references are
// no-ops (the input snapshot is returned unchanged), never errors.
package folders

import (
	"strings"

	"triage-cli/internal/model"
)

// Recount recomputes a folder's severity counters from its members.
// This is the safe default required by the counter invariant: counters are
// derived, never independently mutated.
func Recount(f model.Folder, recs map[string]model.Record) model.SeverityCounts {
	var c model.SeverityCounts
	for _, id := range f.MemberIDs {
		if r, ok := recs[id]; ok {
			c.Add(r.Severity)
		}
	}
	return c
}

// RecountAll refreshes every folder's counters in place on a new snapshot.
func RecountAll(st model.FolderState, recs map[string]model.Record) model.FolderState {
	out := st.Clone()
	for i := range out.Folders {
		out.Folders[i].Counts = Recount(out.Folders[i], recs)
	}
	return out
}

// Create appends a new empty folder and returns its generated id.
func Create(st model.FolderState, name string) (model.FolderState, string) {
	out := st.Clone()
	id := newFolderID()
	out.Folders = append(out.Folders, model.Folder{
		ID:        id,
		Name:      strings.TrimSpace(name),
		MemberIDs: []string{},
	})
	return out, id
}

// Rename replaces a folder's display name. Unknown ids are a no-op.
func Rename(st model.FolderState, folderID, newName string) model.FolderState {
	if st.FindFolder(folderID) == nil {
		return st
	}
	out := st.Clone()
	out.FindFolder(folderID).Name = strings.TrimSpace(newName)
	return out
}

// Delete removes a folder, returning all its members to the unassigned
// list (appended, in member order) and dropping the folder from the
// expanded set. Records are never silently lost. Unknown ids are a no-op.
func Delete(st model.FolderState, folderID string) model.FolderState {
	f := st.FindFolder(folderID)
	if f == nil {
		return st
	}
	out := st.Clone()
	kept := out.Folders[:0]
	for _, cand := range out.Folders {
		if cand.ID == folderID {
			out.UnassignedIDs = append(out.UnassignedIDs, cand.MemberIDs...)
			continue
		}
		kept = append(kept, cand)
	}
	out.Folders = kept
	delete(out.Expanded, folderID)
	return out
}

// MoveRecordsToFolder moves each record id into the target folder,
// removing it from wherever it currently resides and deduplicating so an
// id appears at most once. Ids found nowhere are adopted into the target.
// An unknown target folder is a no-op.
func MoveRecordsToFolder(st model.FolderState, recs map[string]model.Record, recordIDs []string, folderID string) model.FolderState {
	if st.FindFolder(folderID) == nil {
		return st
	}
	moving := make(map[string]bool, len(recordIDs))
	for _, id := range recordIDs {
		if strings.TrimSpace(id) != "" {
			moving[id] = true
		}
	}
	if len(moving) == 0 {
		return st
	}

	out := st.Clone()
	out.UnassignedIDs = without(out.UnassignedIDs, moving)
	for i := range out.Folders {
		f := &out.Folders[i]
		f.MemberIDs = without(f.MemberIDs, moving)
	}

	target := out.FindFolder(folderID)
	for _, id := range recordIDs {
		if !moving[id] {
			continue
		}
		moving[id] = false // dedup within the request itself
		target.MemberIDs = append(target.MemberIDs, id)
	}

	for i := range out.Folders {
		out.Folders[i].Counts = Recount(out.Folders[i], recs)
	}
	return out
}

// MoveRecordToUnassigned removes the record from its containing folder and
// appends it to the unassigned list, refreshing that folder's counters.
// A record that is not in any folder is a no-op.
func MoveRecordToUnassigned(st model.FolderState, recs map[string]model.Record, recordID string) model.FolderState {
	src := -1
	for i := range st.Folders {
		for _, id := range st.Folders[i].MemberIDs {
			if id == recordID {
				src = i
				break
			}
		}
		if src >= 0 {
			break
		}
	}
	if src < 0 {
		return st
	}

	out := st.Clone()
	f := &out.Folders[src]
	f.MemberIDs = without(f.MemberIDs, map[string]bool{recordID: true})
	f.Counts = Recount(*f, recs)
	out.UnassignedIDs = append(out.UnassignedIDs, recordID)
	return out
}

// ToggleExpansion flips the folder's membership in the expanded set.
func ToggleExpansion(st model.FolderState, folderID string) model.FolderState {
	out := st.Clone()
	if out.Expanded == nil {
		out.Expanded = map[string]bool{}
	}
	if out.Expanded[folderID] {
		delete(out.Expanded, folderID)
	} else {
		out.Expanded[folderID] = true
	}
	return out
}

func without(list []string, drop map[string]bool) []string {
	out := list[:0]
	for _, id := range list {
		if !drop[id] {
			out = append(out, id)
		}
	}
	return out
}
