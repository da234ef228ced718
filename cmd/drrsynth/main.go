// Command drrsynth denoises synthetic seismic benchmarks with damped
// rank reduction and prints signal-to-noise ratios.
//
// Usage:
//
//	drrsynth [flags]
//
// Examples:
//
//	drrsynth
//	drrsynth --dims 3 --noise 0.2 --rank 3 --damping 3
//	drrsynth --windowed --ortho
//	drrsynth --missing 0.3 --iterations 20
//	drrsynth --config params.yaml -v
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := newRootCmd(logger)
	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
