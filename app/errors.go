package app

import "github.com/ayoisaiah/timestop/internal/apperr"

var (
	errListen = &apperr.Error{
		Message: "unable to listen for the paired device on %s",
	}

	errInvalidID = &apperr.Error{
		Message: "invalid session id: %q",
	}

	errMissingID = &apperr.Error{
		Message: "a session id is required",
	}

	errSessionNotFound = &apperr.Error{
		Message: "no session found with id %s",
	}
)
