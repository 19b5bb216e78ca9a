package app

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/timestop/internal/session"
)

// confirm prints warning and waits for the user to press ENTER.
func confirm(w io.Writer, r io.Reader, warning string) {
	fmt.Fprint(w, pterm.Warning.Sprint(warning))

	reader := bufio.NewReader(r)

	_, _ = reader.ReadString('\n')
}

// deleteAction handles the history delete command. It requests for
// confirmation before proceeding with the operation.
func deleteAction(ctx *cli.Context) error {
	archive, db, _, err := historyHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	sess, err := findSession(archive, ctx.Args().First())
	if err != nil {
		return err
	}

	if !ctx.Bool("yes") {
		printSessionsTable(os.Stdout, []session.Session{sess})

		confirm(
			os.Stdout,
			os.Stdin,
			"The above session will be deleted permanently. Press ENTER to proceed",
		)
	}

	if archive.Remove(sess.ID) {
		pterm.Success.Printfln("session %s deleted", shortID(sess.ID))
	}

	return nil
}

// clearAction handles the history clear command which deletes every saved
// session.
func clearAction(ctx *cli.Context) error {
	archive, db, _, err := historyHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	sessions := archive.List()
	if len(sessions) == 0 {
		pterm.Info.Println("There are no saved sessions")
		return nil
	}

	if !ctx.Bool("yes") {
		confirm(
			os.Stdout,
			os.Stdin,
			fmt.Sprintf(
				"All %d saved sessions will be deleted permanently. Press ENTER to proceed",
				len(sessions),
			),
		)
	}

	archive.Clear()

	pterm.Success.Printfln("%d sessions deleted", len(sessions))

	return nil
}
