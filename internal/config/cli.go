package config

import (
	"cmp"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/timestop/internal/timeutil"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Since     string
	Peer      string
	Role      string
	Haptics   string
	Cmd       string
	Target    int
	Companion bool
	NoColor   bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Target:    ctx.Int("target"),
			Companion: ctx.Bool("companion"),
			Peer:      cmp.Or(ctx.String("addr"), ctx.String("peer")),
			Role:      ctx.String("role"),
			Haptics:   ctx.String("haptics"),
			Cmd:       ctx.String("session-cmd"),
			Since:     ctx.String("since"),
			NoColor:   ctx.Bool("no-color"),
		}

		return applyCLIOptions(c, opts, time.Now())
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions, now time.Time) error {
	c.CLI.Target = opts.Target
	c.CLI.Companion = opts.Companion
	c.CLI.Peer = opts.Peer
	c.CLI.NoColor = opts.NoColor

	if opts.Role != "" {
		c.Sync.Role = opts.Role
	}

	if opts.Haptics != "" {
		c.Haptics.Provider = opts.Haptics
	}

	if opts.Cmd != "" {
		c.Settings.Cmd = opts.Cmd
	}

	if opts.Since == "" {
		return nil
	}

	startTime, err := timeutil.FromStr(opts.Since, now)
	if err != nil {
		return errInvalidSince.Fmt(opts.Since).Wrap(err)
	}

	c.CLI.StartTime = startTime

	return nil
}
