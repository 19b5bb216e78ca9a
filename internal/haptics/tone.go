package haptics

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
)

const sampleRate = beep.SampleRate(44100)

type tone struct {
	freq float64
	dur  time.Duration
}

var impactTones = map[Intensity]tone{
	Light:  {freq: 880, dur: 30 * time.Millisecond},
	Medium: {freq: 660, dur: 60 * time.Millisecond},
	Heavy:  {freq: 440, dur: 120 * time.Millisecond},
}

var outcomeTones = map[Outcome][]tone{
	Success: {{freq: 660, dur: 80 * time.Millisecond}, {freq: 990, dur: 120 * time.Millisecond}},
	Warning: {{freq: 440, dur: 150 * time.Millisecond}},
	Error:   {{freq: 330, dur: 120 * time.Millisecond}, {freq: 220, dur: 200 * time.Millisecond}},
}

// Tone stands in for a vibration motor by playing short synthesized tones
// through the speaker.
type Tone struct {
	initErr error
	once    sync.Once
}

func (t *Tone) init() error {
	t.once.Do(func() {
		bufferSize := 10

		t.initErr = speaker.Init(
			sampleRate,
			sampleRate.N(time.Second/time.Duration(bufferSize)),
		)
	})

	return t.initErr
}

func (t *Tone) Impact(intensity Intensity) {
	t.play(impactTones[intensity])
}

func (t *Tone) Notify(outcome Outcome) {
	t.play(outcomeTones[outcome]...)
}

func (t *Tone) play(tones ...tone) {
	if len(tones) == 0 {
		return
	}

	err := t.init()
	if err != nil {
		slog.Debug("unable to initialise speaker", slog.Any("error", err))
		return
	}

	streams := make([]beep.Streamer, 0, len(tones))

	for _, v := range tones {
		s, err := generators.SineTone(sampleRate, v.freq)
		if err != nil {
			slog.Debug("unable to generate tone", slog.Any("error", err))
			return
		}

		streams = append(streams, beep.Take(sampleRate.N(v.dur), s))
	}

	speaker.Play(beep.Seq(streams...))
}
