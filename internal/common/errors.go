// Package common defines shared sentinel errors and small helpers used across
// gophmovies packages. Callers should use errors.Is to match the errors.
package common

import "errors"

var (
	// ErrorNotFound reports a lookup that found nothing where the caller
	// needs a result.
	ErrorNotFound = errors.New("not found")

	// ErrorInvalidInput reports user input that cannot be interpreted.
	ErrorInvalidInput = errors.New("invalid input")
)
