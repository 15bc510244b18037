package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/afero"
	"github.com/urfave/cli"
	"github.com/warpdl/autoclaim/cmd/common"
	"github.com/warpdl/autoclaim/internal/claim"
	"github.com/warpdl/autoclaim/internal/countdown"
	"github.com/warpdl/autoclaim/internal/deadline"
)

var nowFunc = time.Now

func check(ctx *cli.Context) error {
	path := ctx.Args().First()
	if path == "" {
		return common.PrintErrWithCmdHelp(ctx, errors.New("no html file provided"))
	}
	opts, err := readOptions(ctx)
	if err != nil {
		common.PrintRuntimeErr(ctx, "check", "config", err)
		return exitErr()
	}
	data, err := afero.ReadFile(appFs, path)
	if err != nil {
		common.PrintRuntimeErr(ctx, "check", "read", err)
		return exitErr()
	}
	page := string(data)
	now := nowFunc().UTC()
	policy := deadline.NewPolicy(opts.Cutoff)

	fmt.Fprintf(stdout, "State: %s\n", countdown.StateOf(page))

	var next time.Time
	res, ok := countdown.Parse(page)
	if ok {
		fmt.Fprintf(stdout, "Countdown: %s (%s)\n", res, res.Source)
		next, err = policy.Clamp(now, res.After(now))
		if errors.Is(err, deadline.ErrNotFuture) {
			next = policy.Default(now)
			fmt.Fprintln(stdout, "Countdown ends after the cutoff has passed, using default time")
		}
	} else {
		fmt.Fprintln(stdout, "Countdown: not found, using default time")
		next = policy.Default(now)
	}
	fmt.Fprintf(stdout, "Cutoff: %s\n", policy.Cutoff)
	fmt.Fprintf(stdout, "Next claim: UTC %s\n", next.Format(claim.TimeLayout))
	return nil
}
