package cmd

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli"
	"github.com/warpdl/autoclaim/cmd/common"
)

type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

func Execute(args []string, bArgs BuildArgs) error {
	if err := loadEnvFiles(); err != nil {
		fmt.Fprintf(stderr, "autoclaim: %s\n", err)
	}
	app := cli.App{
		Name:                  "autoclaim",
		HelpName:              "autoclaim",
		Usage:                 "Claims the daily Beamable hub reward on schedule.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "autoclaim [global options] <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          common.UsageErrorCallback,
		Commands: []cli.Command{
			{
				Name:               "run",
				Usage:              "claim now, then keep claiming on schedule (default)",
				Description:        RunDescription,
				Action:             run,
				Flags:              runtimeFlags,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
			},
			{
				Name:               "once",
				Aliases:            []string{"o"},
				Usage:              "perform a single claim cycle",
				Description:        OnceDescription,
				Action:             once,
				Flags:              runtimeFlags,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
			},
			{
				Name:               "check",
				Usage:              "parse a saved claim page",
				UsageText:          "check <file.html>",
				Description:        CheckDescription,
				Action:             check,
				Flags:              runtimeFlags,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
			},
			{
				Name:               "cookie",
				Usage:              "manage the stored session cookie",
				Description:        CookieDescription,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Subcommands: []cli.Command{
					{
						Name:      "set",
						Usage:     "store a raw cookie string",
						UsageText: `cookie set "name=value; name2=value2"`,
						Action:    cookieSet,
					},
					{
						Name:      "import",
						Usage:     "store the cookies a browser holds for the claim host",
						UsageText: "cookie import <cookie store>",
						Action:    cookieImport,
						Flags:     runtimeFlags,
					},
					{
						Name:   "delete",
						Usage:  "remove the stored cookie",
						Action: cookieDelete,
					},
					{
						Name:   "status",
						Usage:  "show where the stored cookie lives and its names",
						Action: cookieStatus,
					},
				},
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  common.Help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints installed version of autoclaim",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             common.GetVersion,
			},
		},
		Action:      run,
		Flags:       runtimeFlags,
		HideHelp:    true,
		HideVersion: true,
	}
	common.VersionCmdStr = fmt.Sprintf("%s %s (%s_%s)\nBuild: %s=%s\n",
		app.Name,
		app.Version,
		runtime.GOOS,
		runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	return app.Run(args)
}
