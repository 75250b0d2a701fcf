// SPDX-License-Identifier: EPL-2.0

package cli_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ik5/saundifix/analysis"
	"github.com/ik5/saundifix/internal/cli"
)

type testCLI struct {
	Jobs   int      `short:"j" default:"2" help:"Files rendered at once."`
	Plain  bool     `help:"Disable the TUI."`
	Gain   *float64 `group:"effects" placeholder:"x" help:"Linear gain."`
	Secret string   `hidden:""`
	Files  []string `arg:"" optional:"" help:"Audio files."`
}

func TestStyledHelpPrinter(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	var args testCLI
	parser, err := kong.New(&args,
		kong.Name("saundifix"),
		kong.Writers(&out, &out),
		kong.Exit(func(int) {}),
		kong.ExplicitGroups([]kong.Group{{Key: "effects", Title: "Effects"}}),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)
	if err != nil {
		t.Fatalf("kong.New() error = %v", err)
	}
	_, _ = parser.Parse([]string{"--help"})

	help := out.String()
	for _, want := range []string{
		"saundifix [flags] <files> ...",
		"Arguments:",
		"Flags:",
		"-j, --jobs=",
		"(default: 2)",
		"--plain",
		"Effects:",
		"--gain=X",
		"Linear gain.",
	} {
		if !strings.Contains(help, want) {
			t.Errorf("help output missing %q:\n%s", want, help)
		}
	}
	if strings.Contains(help, "--secret") {
		t.Errorf("hidden flag listed:\n%s", help)
	}
	if strings.Index(help, "Flags:") > strings.Index(help, "Effects:") {
		t.Errorf("general flags should come before grouped ones:\n%s", help)
	}
}

func TestPrintVersionAndError(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cli.PrintVersion(&out, "1.2.3")
	cli.PrintError(&out, "boom")

	got := out.String()
	for _, want := range []string{"saundifix", "Version:", "1.2.3", "Error:", "boom"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q: %q", want, got)
		}
	}
}

func TestFormatReport(t *testing.T) {
	t.Parallel()

	r := analysis.Report{
		Channels:   2,
		SampleRate: 44100,
		Frames:     44100,
		PeakDB:     []float64{-6.02, math.Inf(-1)},
		RMSDB:      []float64{-9.03, math.Inf(-1)},
		DominantHz: 440,
		BandDB:     []float64{-80.31, -9.03, math.Inf(-1)},
	}

	got := cli.FormatReport("tone-saundifix.wav", r)
	for _, want := range []string{"tone-saundifix.wav", "L:", "peak -6.0 dBFS", "rms -9.0 dBFS", "R:", "peak -inf dBFS", "440 Hz", "low: -80.3", "mid: -9.0", "high: -inf"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatReport() = %q, missing %q", got, want)
		}
	}
}
