package config

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/charmbracelet/huh"
)

var targetChoices = []int{3, 5, 10, 15, 20, 30, 45, 60}

// WithTargetPrompt returns an Option that asks the user to pick the target
// time for the run. The current target is preselected.
func WithTargetPrompt() Option {
	return func(c *Config) error {
		target, err := promptTarget(c.Target())
		if err != nil {
			return err
		}

		c.CLI.Target = target

		return nil
	}
}

func promptTarget(current int) (int, error) {
	target := current

	options := make([]huh.Option[int], 0, len(targetChoices)+1)

	if !slices.Contains(targetChoices, current) {
		options = append(options, huh.NewOption(label(current), current))
	}

	for _, v := range targetChoices {
		options = append(options, huh.NewOption(label(v), v))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Target time").
				Description("Stop the clock as close to the target as you can").
				Options(options...).
				Value(&target),
		),
	)

	if err := form.Run(); err != nil {
		return current, fmt.Errorf("form interaction failed: %w", err)
	}

	return target, nil
}

func label(seconds int) string {
	return strconv.Itoa(seconds) + " seconds"
}
