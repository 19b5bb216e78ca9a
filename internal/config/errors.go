package config

import "github.com/ayoisaiah/timestop/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errDecodeConfig = &apperr.Error{
		Message: "decoding config file failed",
	}

	errInvalidSince = &apperr.Error{
		Message: "invalid since time: %s",
	}

	errInvalidTarget = &apperr.Error{
		Message: "target must be between %d and %d seconds, got %d",
	}

	errInvalidGraceWindow = &apperr.Error{
		Message: "grace window must be positive, got %v",
	}

	errInvalidTickInterval = &apperr.Error{
		Message: "tick interval must be between %v and %v, got %v",
	}

	errInvalidHoldDuration = &apperr.Error{
		Message: "hold duration must be positive, got %v",
	}

	errInvalidHoldSteps = &apperr.Error{
		Message: "hold steps must be between %d and %d, got %d",
	}

	errInvalidHoldRelease = &apperr.Error{
		Message: "hold release must be positive, got %v",
	}

	errInvalidRole = &apperr.Error{
		Message: "unknown sync role: %q (must be phone or wrist)",
	}

	errInvalidRetryInterval = &apperr.Error{
		Message: "sync retry interval must be positive, got %v",
	}

	errUnknownProvider = &apperr.Error{
		Message: "unknown haptics provider: %q (must be one of %s)",
	}
)
