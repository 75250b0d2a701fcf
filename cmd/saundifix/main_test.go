// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/saundifix/audio"
	"github.com/ik5/saundifix/effects"
	"github.com/ik5/saundifix/formats/wav"
	"github.com/ik5/saundifix/internal/audiotest"
	"github.com/ik5/saundifix/internal/config"
)

// run replaces the default slog logger, so these tests do not run in
// parallel.

func writeTone(t *testing.T, dir string) string {
	t.Helper()

	buf := &audio.Buffer{
		Channels:   [][]float32{audiotest.Sine(4410, 44100, 440, 0.5)},
		SampleRate: 44100,
	}
	path := filepath.Join(dir, "tone.wav")
	if err := wav.WriteFile(path, buf); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runCLI("--version")
	if code != exitOK || !strings.Contains(out, version) {
		t.Errorf("--version = %d, %q", code, out)
	}
}

func TestRun_Help(t *testing.T) {
	code, out, _ := runCLI("--help")
	if code != exitOK {
		t.Errorf("--help exit = %d", code)
	}
	for _, want := range []string{"Effects:", "--treble=DB", "--jobs"} {
		if !strings.Contains(out, want) {
			t.Errorf("help missing %q:\n%s", want, out)
		}
	}
}

func TestRun_NoFiles(t *testing.T) {
	code, _, errOut := runCLI("--plain")
	if code != exitUsage || !strings.Contains(errOut, "No input files") {
		t.Errorf("no files = %d, %q", code, errOut)
	}
}

func TestRun_Plain(t *testing.T) {
	dir := t.TempDir()
	input := writeTone(t, dir)
	outDir := filepath.Join(dir, "out")

	code, out, errOut := runCLI("--plain", "--report", "--metrics", "-o", outDir, "--gain", "0.5", input)
	if code != exitOK {
		t.Fatalf("exit = %d, stderr:\n%s", code, errOut)
	}

	if _, err := os.Stat(filepath.Join(outDir, "tone-saundifix.wav")); err != nil {
		t.Errorf("output missing: %v", err)
	}
	if !strings.Contains(out, "tone-saundifix.wav") || !strings.Contains(out, "peak -12.0 dBFS") {
		t.Errorf("report = %q", out)
	}
	for _, want := range []string{"msg=rendering", "msg=done", "saundifix.render.duration", "saundifix.decode.duration"} {
		if !strings.Contains(errOut, want) {
			t.Errorf("log missing %q:\n%s", want, errOut)
		}
	}
}

func TestRun_FailedFile(t *testing.T) {
	dir := t.TempDir()
	good := writeTone(t, dir)
	bad := filepath.Join(dir, "clip.m4a")
	if err := os.WriteFile(bad, []byte("ftyp"), 0o644); err != nil {
		t.Fatal(err)
	}

	code, _, errOut := runCLI("--plain", good, bad)
	if code != exitFailed {
		t.Errorf("exit = %d, want %d", code, exitFailed)
	}
	if !strings.Contains(errOut, "1 of 2 file(s) failed") {
		t.Errorf("stderr = %q", errOut)
	}
	if _, err := os.Stat(filepath.Join(dir, "tone-saundifix.wav")); err != nil {
		t.Errorf("good file should still render: %v", err)
	}
}

func TestRun_SavePresetClamps(t *testing.T) {
	dir := t.TempDir()
	presetIn := filepath.Join(dir, "in.yaml")
	if err := os.WriteFile(presetIn, []byte("bass: 3\nratio: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	presetOut := filepath.Join(dir, "out.yaml")

	code, _, errOut := runCLI("--preset", presetIn, "--gain", "50", "--ratio", "2", "--save-preset", presetOut)
	if code != exitOK {
		t.Fatalf("exit = %d, stderr:\n%s", code, errOut)
	}
	if !strings.Contains(errOut, "param=gain") {
		t.Errorf("clamp warning missing:\n%s", errOut)
	}

	p, err := config.Load(presetOut)
	if err != nil {
		t.Fatal(err)
	}
	got := p.Parameters(nil)
	want := effects.DefaultParameters()
	want.Gain = effects.MaxGain
	want.BassDB = 3
	want.Ratio = 2
	if got != want {
		t.Errorf("saved %+v, want %+v", got, want)
	}
}

func TestRun_StrictRejects(t *testing.T) {
	dir := t.TempDir()

	code, _, errOut := runCLI("--strict", "--gain", "50", "--save-preset", filepath.Join(dir, "p.yaml"))
	if code != exitUsage || !strings.Contains(errOut, "gain") {
		t.Errorf("strict = %d, %q", code, errOut)
	}
}
