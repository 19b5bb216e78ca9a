package timer

import (
	"log/slog"
	"os/exec"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/timestop/internal/haptics"
	"github.com/ayoisaiah/timestop/internal/session"
)

// Archive receives finalized sessions.
type Archive interface {
	Append(sess session.Session)
}

// Pusher forwards sessions to the paired device.
type Pusher interface {
	PushLatest(sess session.Session)
	PushQueued(sess session.Session)
}

// Effects carries out the side effects requested by engine events. Nil
// collaborators are skipped.
type Effects struct {
	Clock   clockwork.Clock
	History Archive
	Sync    Pusher
	Haptics haptics.Provider
	// Cmd is run after each finalized session
	Cmd string
}

// Apply performs the side effects of a single event.
func (fx *Effects) Apply(ev Event) {
	switch e := ev.(type) {
	case AttemptRecorded:
		if fx.Sync == nil {
			return
		}

		fx.Sync.PushLatest(session.New(e.TargetSeconds, e.Attempts, fx.now()))

	case SessionFinalized:
		if fx.History != nil {
			fx.History.Append(e.Session)
		}

		if fx.Sync != nil {
			fx.Sync.PushQueued(e.Session)
		}

		err := runSessionCmd(fx.Cmd)
		if err != nil {
			slog.Error(
				"session command failed",
				slog.String("cmd", fx.Cmd),
				slog.Any("error", err),
			)
		}

	case HapticRequested:
		if fx.Haptics != nil {
			haptics.Play(fx.Haptics, e.Feedback)
		}
	}
}

func (fx *Effects) now() time.Time {
	if fx.Clock == nil {
		return time.Now()
	}

	return fx.Clock.Now()
}

// runSessionCmd executes the specified command.
func runSessionCmd(sessionCmd string) error {
	if sessionCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return errInvalidCmd.Wrap(err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.Command(name, args...)

	return cmd.Run()
}
