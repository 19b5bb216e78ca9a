package haptics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/timestop/internal/haptics"
)

type recorder struct {
	impacts  []haptics.Intensity
	outcomes []haptics.Outcome
}

func (r *recorder) Impact(i haptics.Intensity) {
	r.impacts = append(r.impacts, i)
}

func (r *recorder) Notify(o haptics.Outcome) {
	r.outcomes = append(r.outcomes, o)
}

func TestPlay(t *testing.T) {
	r := &recorder{}

	haptics.Play(r, haptics.FeedbackMedium)
	haptics.Play(r, haptics.FeedbackHeavy)
	haptics.Play(r, haptics.FeedbackSuccess)
	haptics.Play(r, haptics.FeedbackError)
	haptics.Play(r, haptics.Feedback("unknown"))

	assert.Equal(t, []haptics.Intensity{haptics.Medium, haptics.Heavy}, r.impacts)
	assert.Equal(t, []haptics.Outcome{haptics.Success, haptics.Error}, r.outcomes)
}

func TestNew(t *testing.T) {
	assert.IsType(t, &haptics.Desktop{}, haptics.New(haptics.ProviderDesktop))
	assert.IsType(t, &haptics.Tone{}, haptics.New(haptics.ProviderTone))
	assert.IsType(t, haptics.Nop{}, haptics.New(haptics.ProviderOff))
	assert.IsType(t, haptics.Nop{}, haptics.New("vibrate"))
}
