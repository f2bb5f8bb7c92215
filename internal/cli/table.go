package cli

import (
	"strconv"

	"triage-cli/internal/format"
	"triage-cli/internal/model"
)

func recordsTable(recs []model.Record) format.Table {
	t := format.Table{Header: []string{"ID", "SEVERITY", "IMPACT", "STATUS", "ENVIRONMENT", "DESCRIPTION"}}
	for _, r := range recs {
		t.Rows = append(t.Rows, []string{
			r.ID, string(r.Severity), string(r.Impact), string(r.Status), string(r.Environment), r.Description,
		})
	}
	return t
}

func foldersTable(st model.FolderState) format.Table {
	t := format.Table{Header: []string{"ID", "NAME", "MEMBERS", "CRIT", "MAJOR", "WARN", "OFF"}}
	for _, f := range st.Folders {
		t.Rows = append(t.Rows, []string{
			f.ID, f.Name, strconv.Itoa(len(f.MemberIDs)),
			strconv.Itoa(f.Counts.Critical), strconv.Itoa(f.Counts.Major), strconv.Itoa(f.Counts.Warning), strconv.Itoa(f.Counts.Disabled),
		})
	}
	t.Rows = append(t.Rows, []string{"-", "Unassigned", strconv.Itoa(len(st.UnassignedIDs)), "", "", "", ""})
	return t
}
