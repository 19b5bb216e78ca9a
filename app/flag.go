package app

import "github.com/urfave/cli/v2"

var (
	targetFlag = &cli.IntFlag{
		Name:    "target",
		Aliases: []string{"t"},
		Usage:   "Target time in seconds, between 1 and 60 (default: 10)",
	}

	chooseFlag = &cli.BoolFlag{
		Name:    "choose",
		Aliases: []string{"c"},
		Usage:   "Pick the target time from a list before the run starts",
	}

	companionFlag = &cli.BoolFlag{
		Name:  "companion",
		Usage: "Play as the wrist companion. Sessions are sent to the phone instead of being saved locally",
	}

	peerFlag = &cli.StringFlag{
		Name:  "peer",
		Usage: "Address of the sync link (HOST:PORT). The phone listens on it and the companion dials it",
	}

	roleFlag = &cli.StringFlag{
		Name:  "role",
		Usage: "Sync role to play: phone or wrist",
	}

	addrFlag = &cli.StringFlag{
		Name:  "addr",
		Usage: "Address of the sync link (HOST:PORT)",
	}

	hapticsFlag = &cli.StringFlag{
		Name:  "haptics",
		Usage: "Feedback provider: desktop, tone or off",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each finished session",
	}

	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Only include sessions completed after this time (e.g. '2 days ago')",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print output as JSON",
	}

	yesFlag = &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Skip the confirmation prompt",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Write debug entries to the log file",
	}
)
