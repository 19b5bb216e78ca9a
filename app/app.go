// Package app defines the timestop command-line interface
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/timestop/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the timestop app instance.
func Get() *cli.App {
	timestopApp := &cli.App{
		Name: "timestop",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		TimeStop is a reaction game for the command-line. Start the clock, then
		stop it as close to the target time as you can. Runs can be mirrored to a
		paired device that plays the companion role.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
			{
				Name:    "history",
				Aliases: []string{"h"},
				Usage:   "Browse and manage saved sessions",
				Subcommands: []*cli.Command{
					{
						Name:    "list",
						Aliases: []string{"ls"},
						Usage:   "List saved sessions, most recent first",
						Flags: []cli.Flag{
							sinceFlag,
							jsonFlag,
						},
						Action: listAction,
					},
					{
						Name:      "show",
						Usage:     "Print the attempts of a session",
						ArgsUsage: "<session id>",
						Flags: []cli.Flag{
							jsonFlag,
						},
						Action: showAction,
					},
					{
						Name:      "delete",
						Usage:     "Delete a session",
						ArgsUsage: "<session id>",
						Flags: []cli.Flag{
							yesFlag,
						},
						Action: deleteAction,
					},
					{
						Name:  "clear",
						Usage: "Delete every saved session",
						Flags: []cli.Flag{
							yesFlag,
						},
						Action: clearAction,
					},
				},
			},
			{
				Name: "peer",
				Usage: `
				Run a headless sync endpoint that prints the sessions sent by the
				paired device. The phone role also saves them`,
				Flags: []cli.Flag{
					roleFlag,
					addrFlag,
				},
				Action: peerAction,
			},
		},
		Flags: []cli.Flag{
			targetFlag,
			chooseFlag,
			companionFlag,
			peerFlag,
			hapticsFlag,
			sessionCmdFlag,
			noColorFlag,
			debugFlag,
		},
		Action: playAction,
		Before: beforeAction,
		After:  afterAction,
	}

	return timestopApp
}
