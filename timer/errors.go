package timer

import "github.com/ayoisaiah/timestop/internal/apperr"

var (
	errInvalidTarget = &apperr.Error{
		Message: "invalid target %d: must be between %d and %d seconds",
	}

	errEngineStarted = &apperr.Error{
		Message: "timer engine is already running",
	}

	errEngineStopped = &apperr.Error{
		Message: "timer engine has stopped",
	}

	errInvalidCmd = &apperr.Error{
		Message: "unable to parse session command",
	}
)
