// SPDX-License-Identifier: EPL-2.0

// Package ui is the bubbletea progress display of the saundifix command.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ik5/saundifix"
	"github.com/ik5/saundifix/analysis"
)

const tickInterval = 200 * time.Millisecond

// JobStatus is the state of one file in the queue.
type JobStatus int

const (
	StatusQueued JobStatus = iota
	StatusRendering
	StatusComplete
	StatusError
)

// JobProgress tracks a single file.
type JobProgress struct {
	InputPath  string
	OutputPath string
	Status     JobStatus

	StartTime   time.Time
	ElapsedTime time.Duration

	Frames   int
	Duration time.Duration
	Report   *analysis.Report

	Error error
}

// Model is the bubbletea model for the batch view.
type Model struct {
	Jobs           []JobProgress
	Running        int
	CompletedFiles int
	FailedFiles    int

	StartTime time.Time
	Done      bool
	// Interrupted is set when the user quits before the batch ends.
	Interrupted bool

	Width  int
	Height int

	now func() time.Time
}

// NewModel creates a model with every job queued.
func NewModel(jobs []saundifix.Job) Model {
	files := make([]JobProgress, len(jobs))
	for i, j := range jobs {
		files[i] = JobProgress{
			InputPath:  j.Input,
			OutputPath: j.Output,
			Status:     StatusQueued,
		}
	}

	return Model{
		Jobs:      files,
		StartTime: time.Now(),
		now:       time.Now,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Interrupted = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case tickMsg:
		if m.Done {
			return m, nil
		}
		for i := range m.Jobs {
			if m.Jobs[i].Status == StatusRendering {
				m.Jobs[i].ElapsedTime = m.clock().Sub(m.Jobs[i].StartTime)
			}
		}
		return m, tick()

	case JobStartMsg:
		if msg.Index < 0 || msg.Index >= len(m.Jobs) {
			return m, nil
		}
		m.Jobs[msg.Index].Status = StatusRendering
		m.Jobs[msg.Index].StartTime = m.clock()
		m.Running++

	case JobCompleteMsg:
		i := msg.Result.Index
		if i < 0 || i >= len(m.Jobs) {
			return m, nil
		}

		job := &m.Jobs[i]
		if job.Status == StatusRendering {
			m.Running--
		}
		job.ElapsedTime = msg.Result.Elapsed
		job.Frames = msg.Result.Frames
		job.Duration = msg.Result.Duration
		job.Report = msg.Result.Report
		job.Error = msg.Result.Err

		if msg.Result.Err != nil {
			job.Status = StatusError
			m.FailedFiles++
		} else {
			job.Status = StatusComplete
			m.CompletedFiles++
		}

	case AllCompleteMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	if m.Done {
		return renderCompletionSummary(m)
	}
	return renderProcessingView(m)
}

// Progress is the finished fraction of the batch in [0, 1].
func (m Model) Progress() float64 {
	if len(m.Jobs) == 0 {
		return 1
	}
	return float64(m.CompletedFiles+m.FailedFiles) / float64(len(m.Jobs))
}

func (m Model) clock() time.Time {
	if m.now == nil {
		return time.Now()
	}
	return m.now()
}
