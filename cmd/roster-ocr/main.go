package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/roster-ocr/internal/roster"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Set up context with signal handling so Ctrl+C cancels the run
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// An image that yields no roster entries exits with a distinct
		// code so wrapper scripts can tell it from hard failures.
		var empty *roster.EmptyResultError
		if errors.As(err, &empty) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
