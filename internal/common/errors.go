// Package common defines shared constants and sentinel errors used across
// the SocialX client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound = errors.New("not found")

	// Activity ledger errors.
	ErrActivityExists   = errors.New("activity already exists")
	ErrActivityFinished = errors.New("activity already finished")

	// Upload errors.
	ErrUploadAborted = errors.New("upload aborted")

	// Session errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Relay transport errors.
	ErrRelayClosed = errors.New("relay connection closed")
)
