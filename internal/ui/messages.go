// SPDX-License-Identifier: EPL-2.0

package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ik5/saundifix"
)

// JobStartMsg indicates a file has started rendering.
type JobStartMsg struct {
	Index int
}

// JobCompleteMsg indicates a file has finished, successfully or not.
type JobCompleteMsg struct {
	Result saundifix.JobResult
}

// AllCompleteMsg indicates the batch is over.
type AllCompleteMsg struct{}

type tickMsg struct{}

// FromEvent converts a batch event into the matching message.
func FromEvent(e saundifix.Event) tea.Msg {
	switch e.Kind {
	case saundifix.JobStarted:
		return JobStartMsg{Index: e.Index}
	case saundifix.JobFinished:
		if e.Result != nil {
			return JobCompleteMsg{Result: *e.Result}
		}
		return JobCompleteMsg{Result: saundifix.JobResult{Index: e.Index, Job: e.Job}}
	default:
		return nil
	}
}
