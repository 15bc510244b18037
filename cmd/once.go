package cmd

import (
	"fmt"

	"github.com/urfave/cli"
	"github.com/warpdl/autoclaim/cmd/common"
	"github.com/warpdl/autoclaim/internal/claim"
	"github.com/warpdl/autoclaim/internal/daemon"
)

func once(ctx *cli.Context) error {
	opts, err := readOptions(ctx)
	if err != nil {
		common.PrintRuntimeErr(ctx, "once", "config", err)
		return exitErr()
	}
	rt, err := newRuntime(opts)
	if err != nil {
		common.PrintRuntimeErr(ctx, "once", "setup", err)
		return exitErr()
	}
	defer rt.Close()

	sigCtx, cancel := setupShutdownHandler()
	defer cancel()

	ok := rt.engine.Cycle(sigCtx)
	next := rt.engine.EnsureArmed()

	result := "next time taken from the page"
	if !ok {
		result = "next time unknown, default schedule"
	}
	fmt.Fprintf(stdout, "Claim cycle finished: %s\n", result)
	fmt.Fprintf(stdout, "Next claim: UTC %s (in %s)\n",
		next.TriggerAt.Format(claim.TimeLayout),
		daemon.FormatUntil(next.TriggerAt.Sub(rt.sched.Now())))
	return nil
}
