package cmd

import (
	"time"

	"github.com/urfave/cli"
	"github.com/warpdl/autoclaim/common"
	"github.com/warpdl/autoclaim/internal/claim"
	"github.com/warpdl/autoclaim/internal/deadline"
	"github.com/warpdl/autoclaim/internal/scheduler"
	"github.com/warpdl/autoclaim/pkg/logger"
)

const (
	flagCookie       = "cookie"
	flagCookieFile   = "cookie-file"
	flagPageURL      = "page-url"
	flagAPIURL       = "api-url"
	flagUserAgent    = "user-agent"
	flagHeader       = "header"
	flagLogFile      = "log-file"
	flagTimeout      = "timeout"
	flagPollInterval = "poll-interval"
	flagCutoff       = "cutoff"
	flagDebug        = "debug"
)

// runtimeFlags are accepted both before and after the command name.
var runtimeFlags = []cli.Flag{
	cli.StringFlag{
		Name:   flagCookie,
		Usage:  "raw cookie string sent with every request",
		EnvVar: common.CookieEnv,
	},
	cli.StringFlag{
		Name:   flagCookieFile,
		Usage:  "browser cookie store to import the cookie from (Firefox, Chrome or cookies.txt)",
		EnvVar: common.CookieFileEnv,
	},
	cli.StringFlag{
		Name:   flagPageURL,
		Usage:  "claim page url",
		Value:  common.DefaultPageURL,
		EnvVar: common.PageURLEnv,
	},
	cli.StringFlag{
		Name:   flagAPIURL,
		Usage:  "claim api url",
		Value:  common.DefaultAPIURL,
		EnvVar: common.APIURLEnv,
	},
	cli.StringFlag{
		Name:   flagUserAgent,
		Usage:  "user agent sent with both requests",
		Value:  common.DefaultUserAgent,
		EnvVar: common.UserAgentEnv,
	},
	cli.StringSliceFlag{
		Name:  flagHeader,
		Usage: `extra request header as "Key: Value", replaces a default with the same key. Repeatable`,
	},
	cli.StringFlag{
		Name:   flagLogFile,
		Usage:  "file the log is appended to, empty to disable",
		Value:  logger.DefaultLogFile,
		EnvVar: common.LogFileEnv,
	},
	cli.DurationFlag{
		Name:   flagTimeout,
		Usage:  "timeout of each request",
		Value:  common.DefaultTimeout,
		EnvVar: common.TimeoutEnv,
	},
	cli.DurationFlag{
		Name:   flagPollInterval,
		Usage:  "maximum sleep between two checks for a due claim",
		Value:  scheduler.DefaultPollInterval,
		EnvVar: common.PollIntervalEnv,
	},
	cli.StringFlag{
		Name:   flagCutoff,
		Usage:  `daily cutoff as "minute hour * * *" in UTC`,
		Value:  deadline.DefaultCutoffExpr,
		EnvVar: common.CutoffEnv,
	},
	cli.BoolFlag{
		Name:   flagDebug,
		Usage:  "log extra diagnostics (cookie names, config sources)",
		EnvVar: common.DebugEnv,
	},
}

// options is the resolved runtime configuration of one invocation.
type options struct {
	Cookie       string
	CookieFile   string
	PageURL      string
	APIURL       string
	UserAgent    string
	Headers      claim.Headers
	LogFile      string
	Timeout      time.Duration
	PollInterval time.Duration
	Cutoff       deadline.Cutoff
	Debug        bool
}

// readOptions prefers a flag given after the command over one given before
// it; both fall back to the environment and then the flag default.
func readOptions(ctx *cli.Context) (options, error) {
	cutoffExpr := stringOpt(ctx, flagCutoff)
	cutoff, err := deadline.ParseCutoff(cutoffExpr)
	if err != nil {
		return options{}, err
	}
	headers, err := headerOpt(ctx)
	if err != nil {
		return options{}, err
	}
	return options{
		Cookie:       stringOpt(ctx, flagCookie),
		CookieFile:   stringOpt(ctx, flagCookieFile),
		PageURL:      stringOpt(ctx, flagPageURL),
		APIURL:       stringOpt(ctx, flagAPIURL),
		UserAgent:    stringOpt(ctx, flagUserAgent),
		Headers:      headers,
		LogFile:      stringOpt(ctx, flagLogFile),
		Timeout:      durationOpt(ctx, flagTimeout),
		PollInterval: durationOpt(ctx, flagPollInterval),
		Cutoff:       cutoff,
		Debug:        ctx.Bool(flagDebug) || ctx.GlobalBool(flagDebug),
	}, nil
}

func stringOpt(ctx *cli.Context, name string) string {
	if ctx.IsSet(name) {
		return ctx.String(name)
	}
	if ctx.GlobalIsSet(name) {
		return ctx.GlobalString(name)
	}
	if v := ctx.String(name); v != "" {
		return v
	}
	return ctx.GlobalString(name)
}

// headerOpt collects --header values; those given after the command are
// applied last, so they win over the global ones.
func headerOpt(ctx *cli.Context) (claim.Headers, error) {
	lines := append(ctx.GlobalStringSlice(flagHeader), ctx.StringSlice(flagHeader)...)
	var headers claim.Headers
	for _, line := range lines {
		h, err := claim.ParseHeaderLine(line)
		if err != nil {
			return nil, err
		}
		headers.Update(h.Key, h.Value)
	}
	return headers, nil
}

func durationOpt(ctx *cli.Context, name string) time.Duration {
	if ctx.IsSet(name) {
		return ctx.Duration(name)
	}
	if ctx.GlobalIsSet(name) {
		return ctx.GlobalDuration(name)
	}
	if v := ctx.Duration(name); v != 0 {
		return v
	}
	return ctx.GlobalDuration(name)
}
