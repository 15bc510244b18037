//go:build !windows

package cmd

import (
	"context"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// setupShutdownHandler returns a context that is canceled when SIGTERM or
// SIGINT is received.
func setupShutdownHandler() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, unix.SIGTERM, unix.SIGINT)

	go func() {
		select {
		case <-sigChan:
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
		cancel()
	}()

	return ctx, cancel
}
