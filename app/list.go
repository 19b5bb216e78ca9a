package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/timestop/history"
	"github.com/ayoisaiah/timestop/internal/config"
	"github.com/ayoisaiah/timestop/internal/pathutil"
	"github.com/ayoisaiah/timestop/internal/session"
	"github.com/ayoisaiah/timestop/internal/timeutil"
	"github.com/ayoisaiah/timestop/internal/ui"
	"github.com/ayoisaiah/timestop/peer"
	"github.com/ayoisaiah/timestop/store"
)

const (
	noSessionsMsg = "No sessions found for the specified time range"
	dateFormat    = "Jan 02, 2006 03:04 PM"
	shortIDLen    = 8
	minIDPrefix   = 4
)

// historyHelper opens the session history. The returned client must be
// closed by the caller.
func historyHelper(ctx *cli.Context) (*history.Store, *store.Client, *config.Config, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return nil, nil, nil, err
	}

	return history.Open(db), db, cfg, nil
}

// findSession resolves a full session id or an unambiguous prefix of one.
func findSession(archive *history.Store, arg string) (session.Session, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return session.Session{}, errMissingID
	}

	if id, err := uuid.Parse(arg); err == nil {
		sess, ok := archive.Get(id)
		if !ok {
			return session.Session{}, errSessionNotFound.Fmt(arg)
		}

		return sess, nil
	}

	if len(arg) < minIDPrefix {
		return session.Session{}, errInvalidID.Fmt(arg)
	}

	var matches []session.Session

	for _, sess := range archive.List() {
		if strings.HasPrefix(sess.ID.String(), strings.ToLower(arg)) {
			matches = append(matches, sess)
		}
	}

	switch len(matches) {
	case 0:
		return session.Session{}, errSessionNotFound.Fmt(arg)
	case 1:
		return matches[0], nil
	default:
		return session.Session{}, errInvalidID.Fmt(arg)
	}
}

func shortID(id uuid.UUID) string {
	return id.String()[:shortIDLen]
}

// bestText renders the best attempt's difference coloured by accuracy.
func bestText(sess session.Session) string {
	best, ok := sess.BestAttempt()
	if !ok {
		return "-"
	}

	return ui.Accuracy(timeutil.FormatDifference(best.Difference()), best.Accuracy())
}

// printSessionsTable prints a session table to the command-line.
func printSessionsTable(w io.Writer, sessions []session.Session) {
	tableBody := make([][]string, len(sessions))

	for i := range sessions {
		sess := sessions[i]

		avg := sess.AverageAbsoluteDifference()

		tableBody[i] = []string{
			fmt.Sprintf("%d", i+1),
			shortID(sess.ID),
			sess.CompletedAt.Local().Format(dateFormat),
			fmt.Sprintf("%ds", sess.TargetSeconds),
			fmt.Sprintf("%d", len(sess.Attempts)),
			bestText(sess),
			ui.Accuracy(timeutil.FormatSeconds(avg), session.Grade(avg)),
		}
	}

	tableBody = append([][]string{
		{"#", "ID", "COMPLETED", "TARGET", "ATTEMPTS", "BEST", "AVG ±"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

// printAttemptsTable prints the attempts of a single session.
func printAttemptsTable(w io.Writer, sess session.Session) {
	best, _ := sess.BestAttempt()

	tableBody := make([][]string, len(sess.Attempts))

	for i, a := range sess.Attempts {
		mark := ""
		if a.ID == best.ID {
			mark = ui.Highlight("best")
		}

		tableBody[i] = []string{
			fmt.Sprintf("%d", i+1),
			timeutil.FormatSeconds(a.ActualSeconds),
			ui.Accuracy(timeutil.FormatDifference(a.Difference()), a.Accuracy()),
			mark,
		}
	}

	tableBody = append([][]string{
		{"#", "STOPPED AT", "DIFFERENCE", ""},
	}, tableBody...)

	fmt.Fprintf(
		w,
		"Session %s · target %ds · %s\n",
		sess.ID,
		sess.TargetSeconds,
		sess.CompletedAt.Local().Format(dateFormat),
	)

	ui.PrintTable(tableBody, w)
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))

	return err
}

// printReceived reports a session sent by the paired device.
func printReceived(w io.Writer, r peer.Received) {
	label := "Run in progress"
	if r.Kind == peer.KindUserInfo {
		label = "Finished session"
	}

	fmt.Fprintf(
		w,
		"%s from paired device: %d attempt(s) at %ds, best %s\n",
		label,
		len(r.Session.Attempts),
		r.Session.TargetSeconds,
		bestText(r.Session),
	)
}

// listAction handles the history list command and prints a table of the
// sessions completed within a time period.
func listAction(ctx *cli.Context) error {
	archive, db, cfg, err := historyHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	sessions := archive.List()
	if !cfg.CLI.StartTime.IsZero() {
		sessions = archive.Since(cfg.CLI.StartTime)
	}

	return listSessions(os.Stdout, sessions, ctx.Bool("json"))
}

// listSessions prints out a table of sessions.
func listSessions(w io.Writer, sessions []session.Session, asJSON bool) error {
	if asJSON {
		if sessions == nil {
			sessions = []session.Session{}
		}

		return printJSON(w, sessions)
	}

	if len(sessions) == 0 {
		pterm.Info.Println(noSessionsMsg)
		return nil
	}

	printSessionsTable(w, sessions)

	return nil
}

// showAction prints every attempt of one session.
func showAction(ctx *cli.Context) error {
	archive, db, _, err := historyHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	sess, err := findSession(archive, ctx.Args().First())
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		return printJSON(os.Stdout, sess)
	}

	printAttemptsTable(os.Stdout, sess)

	return nil
}
