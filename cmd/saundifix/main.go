// SPDX-License-Identifier: EPL-2.0

// Command saundifix renders audio files through gain, a three band
// equalizer and a compressor, writing 44.1 kHz stereo WAV files.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ik5/saundifix"
	"github.com/ik5/saundifix/effects"
	"github.com/ik5/saundifix/internal/cli"
	"github.com/ik5/saundifix/internal/config"
	"github.com/ik5/saundifix/internal/observe"
	"github.com/ik5/saundifix/internal/ui"
)

var version = "0.1.0"

// logFileName receives the log while the TUI owns the terminal.
const logFileName = "saundifix.log"

// Exit codes
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

// CLI defines the command-line interface
type CLI struct {
	Version    bool   `short:"v" help:"Show version information."`
	Preset     string `short:"p" type:"existingfile" help:"YAML preset with effect parameters. Flags override it."`
	SavePreset string `name:"save-preset" type:"path" help:"Write the resolved parameters as a YAML preset and exit."`
	OutputDir  string `short:"o" name:"output-dir" type:"path" help:"Directory for rendered files. Defaults to each input's directory."`
	Suffix     string `default:"-saundifix" help:"Appended to the input name to form the output name."`
	Jobs       int    `short:"j" default:"2" help:"Number of files rendered at once."`
	Plain      bool   `help:"Log progress as text instead of showing the TUI."`
	LogLevel   string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Minimum log level."`
	Report     bool   `help:"Print peak and RMS levels and the dominant frequency of every output."`
	Metrics    bool   `help:"Log a summary of decode and render metrics at exit."`
	Strict     bool   `help:"Reject out-of-range effect parameters instead of clamping them."`

	Gain      *float64 `group:"effects" placeholder:"X" help:"Linear gain multiplier, 0 to 20."`
	Bass      *float64 `group:"effects" placeholder:"DB" help:"Low shelf at 100 Hz, -40 to 40 dB."`
	Mid       *float64 `group:"effects" placeholder:"DB" help:"Peaking band at 1250 Hz, -40 to 40 dB."`
	Treble    *float64 `group:"effects" placeholder:"DB" help:"High shelf at 5000 Hz, -40 to 40 dB."`
	Threshold *float64 `group:"effects" placeholder:"DB" help:"Compressor threshold, -100 to 0 dB."`
	Knee      *float64 `group:"effects" placeholder:"DB" help:"Compressor knee width, 0 to 40 dB."`
	Ratio     *float64 `group:"effects" placeholder:"N" help:"Compressor ratio, 1 (off) to 20."`

	Files []string `arg:"" name:"files" optional:"" type:"existingfile" help:"Audio files to process (wav, aiff, mp3, ogg, flac)."`
}

func (c *CLI) overrides() config.Preset {
	return config.Preset{
		Gain:      c.Gain,
		Bass:      c.Bass,
		Mid:       c.Mid,
		Treble:    c.Treble,
		Threshold: c.Threshold,
		Knee:      c.Knee,
		Ratio:     c.Ratio,
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var cliArgs CLI
	exitCode := -1

	parser, err := kong.New(&cliArgs,
		kong.Name("saundifix"),
		kong.Description(cli.Description),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
		kong.ExplicitGroups([]kong.Group{{Key: "effects", Title: "Effects"}}),
		kong.Vars{"version": version},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)
	if err != nil {
		cli.PrintError(stderr, err.Error())
		return exitFailed
	}

	kctx, err := parser.Parse(args)
	if exitCode >= 0 {
		// --help already printed
		return exitCode
	}
	if err != nil {
		cli.PrintError(stderr, err.Error())
		return exitUsage
	}

	if cliArgs.Version {
		cli.PrintVersion(stdout, version)
		return exitOK
	}

	level, err := observe.ParseLevel(cliArgs.LogLevel)
	if err != nil {
		cli.PrintError(stderr, err.Error())
		return exitUsage
	}

	logOut := stderr
	if !cliArgs.Plain && cliArgs.SavePreset == "" && len(cliArgs.Files) > 0 {
		f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			cli.PrintError(stderr, fmt.Sprintf("opening log file: %v", err))
			return exitFailed
		}
		defer f.Close()
		logOut = f
	}
	logger := observe.NewLogger(logOut, level)
	slog.SetDefault(logger)

	params, err := resolveParameters(&cliArgs, logger)
	if err != nil {
		cli.PrintError(stderr, err.Error())
		return exitUsage
	}

	if cliArgs.SavePreset != "" {
		p := config.FromParameters(params)
		if err := config.Save(cliArgs.SavePreset, &p); err != nil {
			cli.PrintError(stderr, err.Error())
			return exitFailed
		}
		fmt.Fprintf(stdout, "%s %s\n", cli.KeyStyle.Render("Preset written:"), cliArgs.SavePreset)
		return exitOK
	}

	if len(cliArgs.Files) == 0 {
		cli.PrintError(stderr, "No input files specified")
		_ = kctx.PrintUsage(false)
		return exitUsage
	}

	if cliArgs.OutputDir != "" {
		if err := os.MkdirAll(cliArgs.OutputDir, 0o755); err != nil {
			cli.PrintError(stderr, fmt.Sprintf("creating output directory: %v", err))
			return exitFailed
		}
	}

	jobs := make([]saundifix.Job, len(cliArgs.Files))
	for i, in := range cliArgs.Files {
		jobs[i] = saundifix.Job{
			Input:  in,
			Output: saundifix.OutputPath(in, cliArgs.OutputDir, cliArgs.Suffix),
			Params: params,
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := saundifix.Options{
		Logger:  logger,
		Workers: cliArgs.Jobs,
		Report:  cliArgs.Report,
	}

	var collector *observe.Collector
	if cliArgs.Metrics {
		collector = observe.NewCollector()
		defer collector.Shutdown(context.Background())

		m, err := observe.NewMetrics(collector.Provider)
		if err != nil {
			cli.PrintError(stderr, fmt.Sprintf("metrics: %v", err))
			return exitFailed
		}
		opts.Metrics = m
	}

	var results []saundifix.JobResult
	if cliArgs.Plain {
		results, err = runPlain(ctx, jobs, opts, stdout)
	} else {
		results, err = runTUI(ctx, jobs, opts)
	}

	if collector != nil {
		logMetrics(ctx, collector, logger)
	}

	if err != nil {
		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
			}
		}
		cli.PrintError(stderr, fmt.Sprintf("%d of %d file(s) failed", failed, len(jobs)))
		logger.Error("batch finished with errors", "err", err)
		return exitFailed
	}
	return exitOK
}

// resolveParameters merges preset and flags. In strict mode an out-of-range
// value is an error; otherwise it is clamped with a warning.
func resolveParameters(c *CLI, logger *slog.Logger) (effects.Parameters, error) {
	preset := config.Preset{}
	if c.Preset != "" {
		p, err := config.Load(c.Preset)
		if err != nil {
			return effects.Parameters{}, err
		}
		preset = *p
		logger.Debug("preset loaded", "path", c.Preset, "description", preset.Description)
	}

	merged := preset.Merge(c.overrides())
	if c.Strict {
		if err := config.Validate(&merged); err != nil {
			return effects.Parameters{}, err
		}
	}
	return merged.Parameters(logger), nil
}

func runPlain(ctx context.Context, jobs []saundifix.Job, opts saundifix.Options, stdout io.Writer) ([]saundifix.JobResult, error) {
	logger := opts.Logger
	opts.Progress = func(e saundifix.Event) {
		switch e.Kind {
		case saundifix.JobStarted:
			logger.Info("rendering", "input", e.Job.Input, "output", e.Job.Output)
		case saundifix.JobFinished:
			if e.Result.Err != nil {
				logger.Error("failed", "input", e.Job.Input, "err", e.Result.Err)
				return
			}
			logger.Info("done", "output", e.Job.Output, "duration", e.Result.Duration, "elapsed", e.Result.Elapsed)
		}
	}

	results, err := saundifix.ProcessBatch(ctx, jobs, opts)
	for _, r := range results {
		if r.Report != nil {
			fmt.Fprintln(stdout, cli.FormatReport(filepath.Base(r.Job.Output), *r.Report))
		}
	}
	return results, err
}

func runTUI(ctx context.Context, jobs []saundifix.Job, opts saundifix.Options) ([]saundifix.JobResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(ui.NewModel(jobs), tea.WithContext(ctx))
	opts.Progress = func(e saundifix.Event) {
		if msg := ui.FromEvent(e); msg != nil {
			p.Send(msg)
		}
	}

	var (
		results  []saundifix.JobResult
		batchErr error
		done     = make(chan struct{})
	)
	go func() {
		defer close(done)
		results, batchErr = saundifix.ProcessBatch(ctx, jobs, opts)
		p.Send(ui.AllCompleteMsg{})
	}()

	final, err := p.Run()
	if m, ok := final.(ui.Model); ok && m.Interrupted {
		cancel()
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		cancel()
		<-done
		return results, fmt.Errorf("ui: %w", err)
	}

	<-done
	return results, batchErr
}

func logMetrics(ctx context.Context, c *observe.Collector, logger *slog.Logger) {
	points, err := c.Summary(ctx)
	if err != nil {
		logger.Warn("metrics summary unavailable", "err", err)
		return
	}
	for _, p := range points {
		logger.Info("metric", "series", p.String())
	}
}
