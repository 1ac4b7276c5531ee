package sarthi

import "errors"

var (
	// ErrNotFound is returned by directory operations referencing an
	// unknown session id.
	ErrNotFound = errors.New("session not found")

	// ErrEmptyInput is returned when a send is attempted with blank text.
	// It is advisory; no state changes and no error status is entered.
	ErrEmptyInput = errors.New("empty input")

	// ErrBusy is returned when a send is attempted while a backend call is
	// still outstanding.
	ErrBusy = errors.New("a request is already pending")

	// ErrNothingToRetry is returned when a retry is attempted without a
	// preceding failed request.
	ErrNothingToRetry = errors.New("nothing to retry")
)
