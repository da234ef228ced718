package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(zerolog.Nop())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func snrLine(t *testing.T, out, label string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, label+" ") {
			return line
		}
	}
	t.Fatalf("no %q line in output:\n%s", label, out)
	return ""
}

func TestRunDefault(t *testing.T) {
	out, err := execute(t, "--rank", "3", "--damping", "3")
	require.NoError(t, err)
	assert.Contains(t, snrLine(t, out, "input"), "dB")
	assert.Contains(t, snrLine(t, out, "drr"), "dB")
}

func TestRunWindowedOrtho(t *testing.T) {
	out, err := execute(t, "--windowed", "--ortho", "--rank", "2")
	require.NoError(t, err)
	snrLine(t, out, "drr")
	snrLine(t, out, "ortho")
	snrLine(t, out, "simmax")
}

func TestRunAutoRange(t *testing.T) {
	out, err := execute(t, "--windowed", "--rank", "1,4")
	require.NoError(t, err)
	snrLine(t, out, "drr")
}

func TestRunReconstruct(t *testing.T) {
	out, err := execute(t, "--missing", "0.3", "--iterations", "3", "--noise", "0")
	require.NoError(t, err)
	snrLine(t, out, "input")
	snrLine(t, out, "drr")
}

func TestRunConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	yaml := "rank: [3]\ndamping: 3\nwindow:\n  sizes: [100, 20]\n  overlaps: [0.5, 0]\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	out, err := execute(t, "--config", path)
	require.NoError(t, err)
	snrLine(t, out, "drr")
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad dims", []string{"--dims", "4"}},
		{"zero rank", []string{"--rank", "0"}},
		{"bad mode", []string{"--mode", "median"}},
		{"missing config", []string{"--config", "does-not-exist.yaml"}},
		{"bad missing ratio", []string{"--missing", "1.5"}},
		{"positional args", []string{"extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestUsageExampleFlags(t *testing.T) {
	examples := [][]string{
		{"--dims", "3", "--noise", "0.2", "--rank", "3", "--damping", "3"},
		{"--windowed", "--ortho"},
		{"--missing", "0.3", "--iterations", "20"},
		{"--config", "params.yaml", "-v"},
	}
	for _, args := range examples {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			require.NoError(t, newRootCmd(zerolog.Nop()).ParseFlags(args))
		})
	}

	// A single dash starts a shorthand bundle, so long names need two.
	assert.Error(t, newRootCmd(zerolog.Nop()).ParseFlags([]string{"-dims", "3"}))
}
