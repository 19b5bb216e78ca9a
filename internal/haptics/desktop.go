package haptics

import (
	"log/slog"

	"github.com/gen2brain/beeep"
)

// beep lengths in milliseconds per impact intensity.
var impactDuration = map[Intensity]int{
	Light:  40,
	Medium: 80,
	Heavy:  160,
}

// Desktop gives feedback through the system speaker and desktop
// notifications.
type Desktop struct {
	// AppIcon is an optional path to the notification icon
	AppIcon string
}

func (d *Desktop) Impact(intensity Intensity) {
	err := beeep.Beep(beeep.DefaultFreq, impactDuration[intensity])
	if err != nil {
		slog.Debug("unable to beep", slog.Any("error", err))
	}
}

func (d *Desktop) Notify(outcome Outcome) {
	var err error

	switch outcome {
	case Success:
		err = beeep.Notify("TimeStop", "Session saved", d.AppIcon)
	case Warning:
		err = beeep.Beep(beeep.DefaultFreq, impactDuration[Heavy])
	case Error:
		err = beeep.Alert("TimeStop", "Something went wrong", d.AppIcon)
	}

	if err != nil {
		slog.Debug("unable to display notification", slog.Any("error", err))
	}
}
