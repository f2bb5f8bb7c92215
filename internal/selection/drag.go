package selection

import (
	"triage-cli/internal/folders"
	"triage-cli/internal/model"
)

// Phase is the drag state machine: Idle -> Dragging -> {Dropped, Cancelled}.
// Dropped and Cancelled are momentary; the controller returns to Idle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
)

// TargetKind discriminates drop targets.
type TargetKind int

const (
	TargetFolder TargetKind = iota
	TargetUnassigned
)

type DropTarget struct {
	Kind     TargetKind
	FolderID string
}

// DropResult reports what a drop did. Rejected drops leave state
// unchanged; Reason is the affordance surfaced to the presentation layer
// (no exception, no error value).
type DropResult struct {
	Moved    []string
	Target   DropTarget
	Rejected bool
	Reason   string
}

// Controller owns the drag gesture state. The concrete input events
// (pointer coordinates, key presses) belong to the presentation layer;
// the controller only sees grab/cancel/drop intents.
type Controller struct {
	phase  Phase
	dragID string
}

func (c *Controller) Phase() Phase   { return c.phase }
func (c *Controller) DragID() string { return c.dragID }
func (c *Controller) Dragging() bool { return c.phase == PhaseDragging }

// Start begins a drag for a record payload. Folder headers are never
// draggable payloads, so callers pass record ids only; an empty id is
// refused.
func (c *Controller) Start(recordID string) bool {
	if recordID == "" || c.phase == PhaseDragging {
		return false
	}
	c.phase = PhaseDragging
	c.dragID = recordID
	return true
}

func (c *Controller) Cancel() {
	c.phase = PhaseIdle
	c.dragID = ""
}

// Drop completes the gesture against a target, validating it and applying
// the move as one atomic state transition.
//
// When the dragged record is part of the current selection, every
// selected record moves, not just the one physically dragged, and the
// selection is cleared after a successful multi-move.
func (c *Controller) Drop(st model.FolderState, recs map[string]model.Record, sel Selection, target DropTarget) (model.FolderState, DropResult) {
	if c.phase != PhaseDragging {
		return st, DropResult{Rejected: true, Reason: "nothing is being moved"}
	}
	dragID := c.dragID
	c.Cancel()

	payload := []string{dragID}
	multi := sel.Has(dragID)
	if multi {
		payload = sel.Union(dragID)
	}

	switch target.Kind {
	case TargetFolder:
		if st.FindFolder(target.FolderID) == nil {
			return st, DropResult{Rejected: true, Reason: "no such folder"}
		}
		if !multi && memberOf(st, dragID) == target.FolderID {
			return st, DropResult{Rejected: true, Reason: "already in that folder"}
		}
		next := folders.MoveRecordsToFolder(st, recs, payload, target.FolderID)
		if multi {
			sel.Clear()
		}
		return next, DropResult{Moved: payload, Target: target}

	case TargetUnassigned:
		if !multi && memberOf(st, dragID) == "" {
			return st, DropResult{Rejected: true, Reason: "already unassigned"}
		}
		next := st
		moved := payload[:0]
		for _, id := range payload {
			if memberOf(next, id) == "" {
				continue
			}
			next = folders.MoveRecordToUnassigned(next, recs, id)
			moved = append(moved, id)
		}
		if len(moved) == 0 {
			return st, DropResult{Rejected: true, Reason: "already unassigned"}
		}
		if multi {
			sel.Clear()
		}
		return next, DropResult{Moved: moved, Target: target}
	}
	return st, DropResult{Rejected: true, Reason: "unknown drop target"}
}

// AddToFolder is the context-menu path: it bypasses the drag gesture but
// behaves identically for single and multi-record cases, moving the union
// of the acted-on record and the current selection.
func AddToFolder(st model.FolderState, recs map[string]model.Record, sel Selection, recordID, folderID string) (model.FolderState, DropResult) {
	if st.FindFolder(folderID) == nil {
		return st, DropResult{Rejected: true, Reason: "no such folder"}
	}
	payload := sel.Union(recordID)
	if len(payload) == 0 {
		return st, DropResult{Rejected: true, Reason: "nothing selected"}
	}
	next := folders.MoveRecordsToFolder(st, recs, payload, folderID)
	if len(payload) > 1 {
		sel.Clear()
	}
	return next, DropResult{Moved: payload, Target: DropTarget{Kind: TargetFolder, FolderID: folderID}}
}
