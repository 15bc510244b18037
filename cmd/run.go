package cmd

import (
	"context"
	"errors"

	"github.com/urfave/cli"
	"github.com/warpdl/autoclaim/cmd/common"
	"github.com/warpdl/autoclaim/internal/daemon"
)

// exitErr makes the app exit with status 1 once the cause has been printed.
func exitErr() error {
	return cli.NewExitError("", 1)
}

func run(ctx *cli.Context) error {
	opts, err := readOptions(ctx)
	if err != nil {
		common.PrintRuntimeErr(ctx, "run", "config", err)
		return exitErr()
	}
	rt, err := newRuntime(opts)
	if err != nil {
		common.PrintRuntimeErr(ctx, "run", "setup", err)
		return exitErr()
	}
	defer rt.Close()

	sigCtx, cancel := setupShutdownHandler()
	defer cancel()

	r := daemon.New(&daemon.Config{ShutdownTimeout: daemon.DefaultShutdownTimeout}, &daemon.Dependencies{
		Engine:       rt.engine,
		Loop:         rt.sched,
		Logger:       rt.log,
		ShutdownFunc: rt.Close,
	})
	errCh := make(chan error, 1)
	go func() { errCh <- r.Start(sigCtx) }()

	select {
	case err = <-errCh:
	case <-sigCtx.Done():
		if r.IsRunning() {
			if serr := r.Shutdown(); serr != nil && !errors.Is(serr, daemon.ErrNotRunning) {
				common.PrintRuntimeErr(ctx, "run", "shutdown", serr)
			}
		}
		err = <-errCh
	}
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	common.PrintRuntimeErr(ctx, "run", "loop", err)
	return exitErr()
}
