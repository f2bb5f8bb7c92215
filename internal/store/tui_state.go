package store

import (
	"context"
	"encoding/json"
)

// TUIState captures transient interface state restored best-effort on
// the next launch. None of it is authoritative; anything that no longer
// resolves is silently dropped by the consumer.
type TUIState struct {
	Scroll      int      `json:"scroll"`
	CursorRowID string   `json:"cursor_row_id,omitempty"`
	SelectedIDs []string `json:"selected_ids,omitempty"`
	SortKeys    []string `json:"sort_keys,omitempty"`
	Search      string   `json:"search,omitempty"`
}

const tuiStateKey = "tui_state"

func (s Store) LoadTUIState() (TUIState, error) {
	ctx := context.Background()
	var st TUIState
	sq, err := s.openSQLite(ctx)
	if err != nil {
		return st, err
	}
	defer sq.Close()
	if err := migrateSQLite(ctx, sq); err != nil {
		return st, err
	}
	v, ok, err := readMeta(ctx, sq, tuiStateKey)
	if err != nil || !ok {
		return st, err
	}
	if err := json.Unmarshal([]byte(v), &st); err != nil {
		return TUIState{}, nil
	}
	return st, nil
}

func (s Store) SaveTUIState(st TUIState) error {
	ctx := context.Background()
	sq, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer sq.Close()
	if err := migrateSQLite(ctx, sq); err != nil {
		return err
	}
	v, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return writeMeta(ctx, sq, tuiStateKey, string(v))
}
