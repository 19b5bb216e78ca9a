package app

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ayoisaiah/timestop/history"
	"github.com/ayoisaiah/timestop/internal/config"
	"github.com/ayoisaiah/timestop/internal/haptics"
	"github.com/ayoisaiah/timestop/internal/osutil"
	"github.com/ayoisaiah/timestop/internal/pathutil"
	"github.com/ayoisaiah/timestop/internal/ui"
	"github.com/ayoisaiah/timestop/peer"
	"github.com/ayoisaiah/timestop/store"
	"github.com/ayoisaiah/timestop/timer"
)

const (
	envNoColor         = "NO_COLOR"
	envTimestopNoColor = "TIMESTOP_NO_COLOR"
)

var logWriter *lumberjack.Logger

// loadConfig merges the config file with the command-line flags.
func loadConfig(ctx *cli.Context, extra ...config.Option) (*config.Config, error) {
	opts := []config.Option{
		config.WithViperConfig(pathutil.ConfigFilePath()),
		config.WithCLIConfig(ctx),
	}

	return config.New(append(opts, extra...)...)
}

// setupLogging sends structured logs to a rotated file in the data
// directory.
func setupLogging(debug bool) {
	logWriter = &lumberjack.Logger{
		Filename:   pathutil.LogFilePath(),
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(logWriter, &slog.HandlerOptions{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}

// editConfigAction handles the edit-config command which opens the config
// file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := cmp.Or(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	// make sure the file exists before it is opened
	_, err := config.New(config.WithViperConfig(pathutil.ConfigFilePath()))
	if err != nil {
		return err
	}

	cmd := exec.Command(editor, pathutil.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

// playAction runs the timer UI. The phone role saves finished sessions to
// the history, and both roles mirror them to the paired device.
func playAction(ctx *cli.Context) error {
	var extra []config.Option
	if ctx.Bool("choose") {
		extra = append(extra, config.WithTargetPrompt())
	}

	cfg, err := loadConfig(ctx, extra...)
	if err != nil {
		return err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	if cfg.CLI.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	var archive *history.Store
	if cfg.Role() == config.RolePhone {
		archive = history.Open(db)
	}

	runCtx, cancel := signal.NotifyContext(ctx.Context, os.Interrupt)
	defer cancel()

	link, err := startLink(runCtx, cfg)
	if err != nil {
		return err
	}

	defer link.Shutdown()

	var prog *timer.Program

	ch := peer.NewChannel(link.Transport, peer.Options{
		Outbox:        db,
		RetryInterval: cfg.Sync.RetryInterval,
		OnReceive: func(r peer.Received) {
			archiveReceived(archive, r)

			prog.Send(timer.ReceivedMsg{
				At:      r.At,
				Session: r.Session,
				Kind:    string(r.Kind),
			})
		},
	})

	engine, err := timer.NewEngine(timer.Options{
		Target:       cfg.Target(),
		TickInterval: cfg.Timer.TickInterval,
		GraceWindow:  cfg.Timer.GraceWindow,
		HoldDuration: cfg.Timer.HoldDuration,
		HoldSteps:    cfg.Timer.HoldSteps,
	})
	if err != nil {
		return err
	}

	fx := &timer.Effects{
		Sync:    ch,
		Haptics: haptics.New(cfg.Haptics.Provider),
		Cmd:     cfg.Settings.Cmd,
	}

	if archive != nil {
		fx.History = archive
	}

	prog = timer.NewProgram(engine, fx, timer.UIOptions{
		Style:       timer.NewStyle(cfg.Display.DarkTheme),
		HoldRelease: cfg.Timer.HoldRelease,
		PeerLabel:   peerLabel(cfg.Role()),
	})

	syncDone := make(chan error, 1)

	go func() {
		syncDone <- ch.Run(runCtx)
	}()

	err = prog.Run(runCtx)

	cancel()

	return errors.Join(err, <-syncDone)
}

// archiveReceived saves sessions finished on the paired device. Context
// snapshots describe a run in progress and are only displayed.
func archiveReceived(archive *history.Store, r peer.Received) {
	if archive == nil || r.Kind != peer.KindUserInfo {
		return
	}

	archive.Append(r.Session)
}

// peerLabel names the device on the other end of the link.
func peerLabel(role string) string {
	if role == config.RoleWrist {
		return "phone"
	}

	return "watch"
}

// peerAction runs a sync endpoint without the timer UI until interrupted.
func peerAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	var archive *history.Store
	if cfg.Role() == config.RolePhone {
		archive = history.Open(db)
	}

	runCtx, cancel := signal.NotifyContext(ctx.Context, os.Interrupt)
	defer cancel()

	link, err := startLink(runCtx, cfg)
	if err != nil {
		return err
	}

	defer link.Shutdown()

	ch := peer.NewChannel(link.Transport, peer.Options{
		Outbox:        db,
		RetryInterval: cfg.Sync.RetryInterval,
		OnReceive: func(r peer.Received) {
			archiveReceived(archive, r)
			printReceived(os.Stdout, r)
		},
	})

	pterm.Info.Printfln(
		"%s peer on %s, press Ctrl+C to stop",
		cfg.Role(),
		cfg.PeerAddr(),
	)

	return ch.Run(runCtx)
}

func beforeAction(ctx *cli.Context) error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		pterm.Warning.Printfln("could not load .env file: %v", err)
	}

	err = pathutil.Initialize()
	if err != nil {
		return err
	}

	setupLogging(ctx.Bool("debug"))

	// Override the default help template
	cli.AppHelpTemplate = helpText()

	// Override the default version printer
	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf(
			"https://github.com/ayoisaiah/timestop/releases/%s\n",
			c.App.Version,
		)
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if TIMESTOP_NO_COLOR is set
	if _, exists := os.LookupEnv(envTimestopNoColor); exists {
		disableStyling()
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting timestop")

	if logWriter != nil {
		return logWriter.Close()
	}

	return nil
}
