package domain

import "errors"

var (
	// ErrNotFound means the requested document or archive file does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation covers malformed or missing request input.
	ErrValidation = errors.New("invalid request")

	// ErrForbidden means the shared-secret check failed.
	ErrForbidden = errors.New("forbidden")

	// ErrUnconfigured means the server has no API key set and cannot
	// authenticate camera uploads at all.
	ErrUnconfigured = errors.New("server misconfiguration")
)
