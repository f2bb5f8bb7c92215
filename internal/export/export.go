// Package export enumerates records for a row subset in their current
// display order and encodes them. Presentation-grade formatting (styling,
// localization) stays with external collaborators; this package only
// emits plain CSV/JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"

	"triage-cli/internal/model"
	"triage-cli/internal/rows"
	"triage-cli/internal/selection"
)

// Scope selects which rows feed the export.
type Scope string

const (
	// ScopeAll exports every record row in the materialized sequence.
	// The sequence is already filtered upstream, so "all" and "filtered"
	// differ only in which sequence the caller materializes.
	ScopeAll      Scope = "all"
	ScopeSelected Scope = "selected"
)

// Collect returns the underlying records of the row sequence in display
// order, restricted to the selection when scope is ScopeSelected.
func Collect(rs []rows.Row, sel selection.Selection, scope Scope) []model.Record {
	all := rows.Records(rs)
	if scope != ScopeSelected {
		return all
	}
	out := make([]model.Record, 0, sel.Len())
	for _, r := range all {
		if sel.Has(r.ID) {
			out = append(out, r)
		}
	}
	return out
}

var csvHeader = []string{
	"id", "severity", "impact", "status", "environment",
	"description", "origin", "externalId", "identities", "reportedAt",
}

func WriteCSV(w io.Writer, recs []model.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{
			r.ID,
			string(r.Severity),
			string(r.Impact),
			string(r.Status),
			string(r.Environment),
			r.Description,
			r.OriginPath,
			r.ExternalID,
			strings.Join(r.Identities, ";"),
			r.ReportedAt,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteJSON(w io.Writer, recs []model.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}
