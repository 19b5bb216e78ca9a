package peer

import "github.com/ayoisaiah/timestop/internal/apperr"

var (
	errInvalidAttemptID = &apperr.Error{
		Message: "invalid attempt id %q",
	}

	errNotActivated = &apperr.Error{
		Message: "sync transport is not activated",
	}

	errNotReachable = &apperr.Error{
		Message: "paired device is not reachable",
	}

	errAckTimeout = &apperr.Error{
		Message: "timed out waiting for delivery confirmation",
	}

	errLinkClosed = &apperr.Error{
		Message: "sync link closed",
	}
)
