package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli"
	"github.com/warpdl/autoclaim/cmd/common"
	"github.com/warpdl/autoclaim/internal/cookies"
	"github.com/warpdl/autoclaim/pkg/credman"
)

func openCookieStore(ctx *cli.Context, action string) (cookieStore, bool) {
	store, err := newCookieStore(appFs)
	if err != nil {
		common.PrintRuntimeErr(ctx, "cookie", action, err)
		return nil, false
	}
	return store, true
}

func cookieSet(ctx *cli.Context) error {
	raw := strings.TrimSpace(strings.Join(ctx.Args(), " "))
	if raw == "" {
		return common.PrintErrWithCmdHelp(ctx, errors.New("no cookie string provided"))
	}
	parsed := cookies.ParseHeader(raw)
	if len(parsed) == 0 {
		return common.PrintErrWithCmdHelp(ctx, errors.New(`cookie string has no "name=value" pair`))
	}
	store, ok := openCookieStore(ctx, "set")
	if !ok {
		return exitErr()
	}
	backend, err := store.Set(cookies.BuildHeader(parsed))
	if err != nil {
		common.PrintRuntimeErr(ctx, "cookie", "set", err)
		return exitErr()
	}
	fmt.Fprintf(stdout, "Stored %d cookies in %s: %s\n", len(parsed), backend, strings.Join(cookies.Names(parsed), ", "))
	return nil
}

func cookieImport(ctx *cli.Context) error {
	path := ctx.Args().First()
	if path == "" {
		return common.PrintErrWithCmdHelp(ctx, errors.New("no cookie store provided"))
	}
	pageURL := stringOpt(ctx, flagPageURL)
	found, src, err := cookies.ImportForURL(path, pageURL)
	if err != nil {
		common.PrintRuntimeErr(ctx, "cookie", "import", err)
		return exitErr()
	}
	store, ok := openCookieStore(ctx, "import")
	if !ok {
		return exitErr()
	}
	backend, err := store.Set(cookies.BuildHeader(found))
	if err != nil {
		common.PrintRuntimeErr(ctx, "cookie", "import", err)
		return exitErr()
	}
	fmt.Fprintf(stdout, "Imported %d cookies from %s store %s into %s: %s\n",
		len(found), src.Format, src.Path, backend, strings.Join(cookies.Names(found), ", "))
	return nil
}

func cookieDelete(ctx *cli.Context) error {
	store, ok := openCookieStore(ctx, "delete")
	if !ok {
		return exitErr()
	}
	err := store.Delete()
	switch {
	case errors.Is(err, credman.ErrNotFound):
		fmt.Fprintln(stdout, "No stored cookie")
	case err != nil:
		common.PrintRuntimeErr(ctx, "cookie", "delete", err)
		return exitErr()
	default:
		fmt.Fprintln(stdout, "Stored cookie deleted")
	}
	return nil
}

func cookieStatus(ctx *cli.Context) error {
	store, ok := openCookieStore(ctx, "status")
	if !ok {
		return exitErr()
	}
	value, backend, err := store.Get()
	switch {
	case errors.Is(err, credman.ErrNotFound):
		fmt.Fprintln(stdout, "No stored cookie, the built-in default will be used")
	case err != nil:
		common.PrintRuntimeErr(ctx, "cookie", "status", err)
		return exitErr()
	default:
		names := cookies.Names(cookies.ParseHeader(value))
		fmt.Fprintf(stdout, "Stored cookie in %s: %d cookies (%s)\n", backend, len(names), strings.Join(names, ", "))
	}
	return nil
}
