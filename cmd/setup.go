package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/warpdl/autoclaim/common"
	"github.com/warpdl/autoclaim/internal/claim"
	"github.com/warpdl/autoclaim/internal/cookies"
	"github.com/warpdl/autoclaim/internal/deadline"
	"github.com/warpdl/autoclaim/internal/scheduler"
	"github.com/warpdl/autoclaim/pkg/credman"
	"github.com/warpdl/autoclaim/pkg/logger"
)

// cookieStore is the part of *credman.Manager the commands need.
type cookieStore interface {
	Get() (string, string, error)
	Set(value string) (string, error)
	Delete() error
}

var (
	appFs  afero.Fs  = afero.NewOsFs()
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	newCookieStore = func(fsys afero.Fs) (cookieStore, error) {
		dir, err := credman.DefaultDir()
		if err != nil {
			return nil, err
		}
		return credman.NewDefaultManager(fsys, dir), nil
	}

	newScheduler = func(opts options) *scheduler.Scheduler {
		return scheduler.New(scheduler.WithPollInterval(opts.PollInterval))
	}
)

// claimRuntime is everything a claim command runs on.
type claimRuntime struct {
	log    logger.Logger
	client *claim.Client
	sched  *scheduler.Scheduler
	policy *deadline.Policy
	engine *claim.Engine
}

func (r *claimRuntime) Close() error {
	return r.log.Close()
}

func newLogger(opts options) (logger.Logger, error) {
	console := logger.NewUTCLogger(stderr)
	if opts.LogFile == "" {
		return console, nil
	}
	file, err := logger.OpenFileLogger(appFs, opts.LogFile)
	if err != nil {
		return nil, err
	}
	return logger.NewMultiLogger(file, console), nil
}

func newRuntime(opts options) (*claimRuntime, error) {
	log, err := newLogger(opts)
	if err != nil {
		return nil, err
	}
	if opts.Debug {
		log.Info("Config: page=%s api=%s timeout=%s poll=%s cutoff=%s log=%q headers=%d",
			opts.PageURL, opts.APIURL, opts.Timeout, opts.PollInterval, opts.Cutoff, opts.LogFile, len(opts.Headers))
	}
	cookie, err := resolveCookie(opts, log)
	if err != nil {
		log.Close()
		return nil, err
	}
	client := claim.NewClient(claim.Config{
		PageURL:   opts.PageURL,
		APIURL:    opts.APIURL,
		Cookie:    cookie,
		UserAgent: opts.UserAgent,
		Timeout:   opts.Timeout,
		Headers:   opts.Headers,
	})
	sched := newScheduler(opts)
	policy := deadline.NewPolicy(opts.Cutoff)
	return &claimRuntime{
		log:    log,
		client: client,
		sched:  sched,
		policy: policy,
		engine: claim.NewEngine(client, sched, policy, log),
	}, nil
}

// resolveCookie picks the cookie string: --cookie/BEAMABLE_COOKIE, then an
// import from --cookie-file, then the stored cookie, then the built-in default.
// Only the source and cookie names are logged.
func resolveCookie(opts options, log logger.Logger) (string, error) {
	value, source, err := lookupCookie(opts, log)
	if err != nil {
		return "", err
	}
	log.Info("Using cookie from %s", source)
	if opts.Debug {
		log.Info("Cookie names: %s", strings.Join(cookies.Names(cookies.ParseHeader(value)), ", "))
	}
	return value, nil
}

// normalizeCookie reparses a raw cookie string: items without '=' are dropped
// and the last value of a repeated name wins.
func normalizeCookie(raw string) string {
	return cookies.BuildHeader(cookies.ParseHeader(raw))
}

func lookupCookie(opts options, log logger.Logger) (value, source string, err error) {
	if raw := strings.TrimSpace(opts.Cookie); raw != "" {
		if v := normalizeCookie(raw); v != "" {
			return v, "--cookie/" + common.CookieEnv, nil
		}
		log.Warning("Ignoring --cookie/%s: no name=value pairs", common.CookieEnv)
	}
	if opts.CookieFile != "" {
		found, src, err := cookies.ImportForURL(opts.CookieFile, opts.PageURL)
		if err != nil {
			return "", "", fmt.Errorf("import cookies: %w", err)
		}
		return cookies.BuildHeader(found), fmt.Sprintf("%s store %s", src.Format, src.Path), nil
	}
	store, err := newCookieStore(appFs)
	if err == nil {
		raw, backend, err := store.Get()
		switch {
		case err == nil:
			if v := normalizeCookie(raw); v != "" {
				return v, "stored cookie (" + backend + ")", nil
			}
			log.Warning("Ignoring stored cookie (%s): no name=value pairs", backend)
		case !errors.Is(err, credman.ErrNotFound):
			log.Warning("Reading stored cookie failed: %v", err)
		}
	} else {
		log.Warning("Cookie store unavailable: %v", err)
	}
	return normalizeCookie(common.DefaultCookie), "built-in default", nil
}
