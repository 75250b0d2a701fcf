// SPDX-License-Identifier: EPL-2.0

// Package cli holds the terminal styling of the saundifix command.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ik5/saundifix/analysis"
)

// Color palette
var (
	PrimaryColor = lipgloss.Color("#5F5FD7") // indigo
	AccentColor  = lipgloss.Color("#FFA500") // orange
	SuccessColor = lipgloss.Color("#00AA00")
	ErrorColor   = lipgloss.Color("#D70000")
	MutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ErrorColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)
)

// Title is the program banner.
const Title = "saundifix 🎚"

// PrintVersion prints version information to w.
func PrintVersion(w io.Writer, version string) {
	fmt.Fprintln(w, TitleStyle.Render(Title))
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Fprintln(w)
}

// PrintError prints an error message to w.
func PrintError(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// FormatReport renders the levels of one output file as a single line.
func FormatReport(name string, r analysis.Report) string {
	var b strings.Builder

	b.WriteString(ValueStyle.Render(name))
	for ch := range r.Channels {
		label := "L"
		if r.Channels == 1 {
			label = "M"
		} else if ch == 1 {
			label = "R"
		}
		fmt.Fprintf(&b, "  %s %s",
			KeyStyle.Render(label+":"),
			fmt.Sprintf("peak %s dBFS, rms %s dBFS", formatDB(r.PeakDB[ch]), formatDB(r.RMSDB[ch])))
	}
	if r.DominantHz > 0 {
		fmt.Fprintf(&b, "  %s %.0f Hz", KeyStyle.Render("dominant:"), r.DominantHz)
	}
	for i, db := range r.BandDB {
		if i < len(analysis.Bands) {
			fmt.Fprintf(&b, "  %s %s", KeyStyle.Render(analysis.Bands[i].Name+":"), formatDB(db))
		}
	}

	return b.String()
}

func formatDB(db float64) string {
	if db < -200 {
		return "-inf"
	}
	return fmt.Sprintf("%.1f", db)
}
