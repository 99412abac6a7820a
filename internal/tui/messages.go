package tui

import (
	"docsum/internal/model"
	"docsum/internal/workflow"
)

// stateChangedMsg is sent whenever the session's documents, selection or workflow status change.
type stateChangedMsg struct{}

type refreshDoneMsg struct{ err error }

type viewDoneMsg struct {
	id  string
	err error
}

type clearDoneMsg struct{}

type uploadDoneMsg struct {
	doc *model.Document
	err error
}

type askDoneMsg struct {
	exchange workflow.Exchange
	err      error
}

type deleteDoneMsg struct{ err error }

type deleteAllDoneMsg struct{ err error }
