package ui

// View represents different UI views
type View int

const (
	ViewLogin View = iota
	ViewMenu
	ViewChat
	ViewCandidate
	ViewRecords
	ViewDetail
	ViewHelp
)
