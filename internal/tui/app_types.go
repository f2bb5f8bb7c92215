package tui

type modalKind int

const (
	modalNone modalKind = iota
	modalNewFolder
	modalRenameFolder
	modalConfirmDelete
	modalFilterValue
)

type pickerKind int

const (
	pickerNone pickerKind = iota
	pickerFolder
	pickerSortField
	pickerFilterField
)

type flashDoneMsg struct{ seq int }

type flashLevel int

const (
	flashInfo flashLevel = iota
	flashError
)
