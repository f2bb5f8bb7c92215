package tui

const helpMarkdown = `# triage

Records live in folders you create, or in the trailing **Unassigned**
area. Folder headers show live per-severity counters for their full
membership, even when a filter hides some members.

## Navigation

- ` + "`j`/`k`" + ` or arrows: move cursor
- ` + "`g`/`G`" + `: first / last row
- ` + "`ctrl+d`/`ctrl+u`" + `: half page
- ` + "`enter`/`tab`" + `: expand or collapse a folder

## Organizing

- ` + "`space`" + `: select / deselect a record
- ` + "`m`" + `: grab the record under the cursor, then press ` + "`m`" + ` again on a
  folder (or an unassigned record) to drop it there. If the grabbed
  record is selected, the whole selection moves.
- ` + "`u`" + `: move record (or selection including it) to Unassigned
- ` + "`f`" + `: file record into a folder via picker
- ` + "`n`" + ` new folder · ` + "`r`" + ` rename · ` + "`d`" + ` delete (records return to Unassigned)
- ` + "`esc`" + `: cancel move, else clear selection, else clear filters

## Finding things

- ` + "`/`" + `: live search across all fields
- ` + "`s`" + `: choose sort field (picking the current one flips direction)
- ` + "`F`" + `: per-field filter

Severity always orders critical before major before warning before
disabled, whichever direction the sort runs.
`

func (m appModel) renderHelp() string {
	return renderMarkdown(helpMarkdown, m.width-4)
}
