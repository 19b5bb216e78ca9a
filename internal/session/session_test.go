package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/timestop/internal/session"
)

func TestAttemptDifference(t *testing.T) {
	a := session.NewAttempt(10, 10.345)

	assert.InDelta(t, 0.345, a.Difference(), 1e-9)
	assert.Equal(t, session.Good, a.Accuracy())
	assert.NotEqual(t, a.ID, session.NewAttempt(10, 10.345).ID)
}

func TestBestAttempt(t *testing.T) {
	attempts := []session.Attempt{
		session.NewAttempt(10, 10.3),
		session.NewAttempt(10, 9.9),
		session.NewAttempt(10, 10.9),
	}

	s := session.New(10, attempts, time.Now())

	best, ok := s.BestAttempt()
	require.True(t, ok)
	assert.Equal(t, attempts[1].ID, best.ID)
	assert.InDelta(t, -0.1, best.Difference(), 1e-9)
}

func TestBestAttemptTieGoesToFirst(t *testing.T) {
	attempts := []session.Attempt{
		session.NewAttempt(5, 5.5),
		session.NewAttempt(5, 4.5),
	}

	best, ok := session.New(5, attempts, time.Now()).BestAttempt()
	require.True(t, ok)
	assert.Equal(t, attempts[0].ID, best.ID)
}

func TestBestAttemptEmpty(t *testing.T) {
	_, ok := session.New(5, nil, time.Now()).BestAttempt()
	assert.False(t, ok)
}

func TestAverageAbsoluteDifference(t *testing.T) {
	cases := []struct {
		Name     string
		Actuals  []float64
		Expected float64
	}{
		{Name: "no attempts", Actuals: nil, Expected: 0},
		{Name: "single attempt", Actuals: []float64{9.5}, Expected: 0.5},
		{Name: "mixed signs", Actuals: []float64{10.3, 9.9, 10.9}, Expected: 0.4333333333},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			attempts := make([]session.Attempt, 0, len(tc.Actuals))
			for _, v := range tc.Actuals {
				attempts = append(attempts, session.NewAttempt(10, v))
			}

			s := session.New(10, attempts, time.Now())

			assert.InDelta(t, tc.Expected, s.AverageAbsoluteDifference(), 1e-6)
		})
	}
}

func TestNewCopiesAttempts(t *testing.T) {
	attempts := []session.Attempt{session.NewAttempt(3, 3.1)}

	s := session.New(3, attempts, time.Now())

	attempts[0] = session.NewAttempt(3, 9)

	assert.InDelta(t, 3.1, s.Attempts[0].ActualSeconds, 1e-9)
}

func TestGrade(t *testing.T) {
	assert.Equal(t, session.Good, session.Grade(-0.499))
	assert.Equal(t, session.Fair, session.Grade(0.5))
	assert.Equal(t, session.Fair, session.Grade(-0.999))
	assert.Equal(t, session.Poor, session.Grade(1.0))
	assert.Equal(t, session.Poor, session.Grade(-3.2))
}
