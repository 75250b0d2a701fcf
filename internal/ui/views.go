// SPDX-License-Identifier: EPL-2.0

package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ik5/saundifix/internal/cli"
)

const barWidth = 40

var (
	doneIcon    = lipgloss.NewStyle().Foreground(cli.SuccessColor).Render("✓")
	activeIcon  = lipgloss.NewStyle().Foreground(cli.AccentColor).Render("⚙")
	failedIcon  = lipgloss.NewStyle().Foreground(cli.ErrorColor).Render("✗")
	queuedIcon  = lipgloss.NewStyle().Foreground(cli.MutedColor).Render("○")
	mutedStyle  = lipgloss.NewStyle().Foreground(cli.MutedColor)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
)

func renderProcessingView(m Model) string {
	var b strings.Builder

	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")

	for _, job := range m.Jobs {
		b.WriteString(renderJobEntry(job))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(renderOverallProgress(m))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("q to quit"))

	return b.String()
}

func renderHeader(m Model) string {
	title := headerStyle.Render(cli.Title)
	subtitle := mutedStyle.Italic(true).
		Render(fmt.Sprintf("Rendering %d file(s) to 44.1 kHz stereo WAV", len(m.Jobs)))

	return title + "\n" + subtitle
}

func renderJobEntry(job JobProgress) string {
	name := filepath.Base(job.InputPath)

	switch job.Status {
	case StatusComplete:
		return fmt.Sprintf(" %s %s → %s\n   %s",
			doneIcon, name, filepath.Base(job.OutputPath),
			mutedStyle.Render(fmt.Sprintf("%s of audio in %.1fs", job.Duration.Round(10*time.Millisecond), job.ElapsedTime.Seconds())))

	case StatusRendering:
		return fmt.Sprintf(" %s %s → %s\n   %s",
			activeIcon, name, filepath.Base(job.OutputPath),
			mutedStyle.Render(fmt.Sprintf("rendering… %.1fs", job.ElapsedTime.Seconds())))

	case StatusError:
		return fmt.Sprintf(" %s %s\n   Error: %v", failedIcon, name, job.Error)

	default:
		return fmt.Sprintf(" %s %s\n   %s", queuedIcon, name, mutedStyle.Render("Queued..."))
	}
}

func renderProgressBar(progress float64, width int) string {
	progress = max(0, min(1, progress))
	filled := int(progress * float64(width))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %d%%", bar, int(progress*100))
}

func renderOverallProgress(m Model) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cli.MutedColor).
		Padding(0, 1).
		Width(60)

	content := fmt.Sprintf("%s\n%d/%d done, %d running, %d failed",
		renderProgressBar(m.Progress(), barWidth),
		m.CompletedFiles+m.FailedFiles, len(m.Jobs), m.Running, m.FailedFiles)

	return box.Render(content)
}

func renderCompletionSummary(m Model) string {
	var b strings.Builder

	header := lipgloss.NewStyle().Bold(true).Foreground(cli.SuccessColor).Render("✨ Rendering complete")
	if m.FailedFiles > 0 {
		header = lipgloss.NewStyle().Bold(true).Foreground(cli.ErrorColor).
			Render(fmt.Sprintf("Rendering finished with %d failure(s)", m.FailedFiles))
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	for _, job := range m.Jobs {
		b.WriteString(renderJobEntry(job))
		b.WriteString("\n")
		if job.Report != nil {
			b.WriteString("   ")
			b.WriteString(cli.FormatReport(filepath.Base(job.OutputPath), *job.Report))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", 60))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d of %d file(s) written\n", m.CompletedFiles, len(m.Jobs))

	return b.String()
}
