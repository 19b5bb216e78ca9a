package config

import (
	"slices"
	"strings"
	"time"

	"github.com/ayoisaiah/timestop/internal/haptics"
)

var (
	minTarget = 1
	maxTarget = 60

	minTickInterval = 1 * time.Millisecond
	maxTickInterval = 100 * time.Millisecond

	minHoldSteps = 1
	maxHoldSteps = 240
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateTimer(); err != nil {
		return err
	}

	if err := c.validateSync(); err != nil {
		return err
	}

	if !slices.Contains(haptics.Names, c.Haptics.Provider) {
		return errUnknownProvider.Fmt(
			c.Haptics.Provider,
			strings.Join(haptics.Names, ", "),
		)
	}

	return nil
}

func (c *Config) validateTimer() error {
	t := c.Timer

	if target := c.Target(); target < minTarget || target > maxTarget {
		return errInvalidTarget.Fmt(minTarget, maxTarget, target)
	}

	if t.GraceWindow <= 0 {
		return errInvalidGraceWindow.Fmt(t.GraceWindow)
	}

	if t.TickInterval < minTickInterval || t.TickInterval > maxTickInterval {
		return errInvalidTickInterval.Fmt(
			minTickInterval,
			maxTickInterval,
			t.TickInterval,
		)
	}

	if t.HoldDuration <= 0 {
		return errInvalidHoldDuration.Fmt(t.HoldDuration)
	}

	if t.HoldSteps < minHoldSteps || t.HoldSteps > maxHoldSteps {
		return errInvalidHoldSteps.Fmt(minHoldSteps, maxHoldSteps, t.HoldSteps)
	}

	if t.HoldRelease <= 0 {
		return errInvalidHoldRelease.Fmt(t.HoldRelease)
	}

	return nil
}

func (c *Config) validateSync() error {
	if role := c.Role(); role != RolePhone && role != RoleWrist {
		return errInvalidRole.Fmt(role)
	}

	if c.Sync.RetryInterval <= 0 {
		return errInvalidRetryInterval.Fmt(c.Sync.RetryInterval)
	}

	return nil
}
