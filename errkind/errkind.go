// SPDX-License-Identifier: MIT

// Package errkind classifies the sentinel errors of every package in this
// module into four kinds, so callers can branch on the kind with errors.Is
// while still matching the precise sentinel.
//
// Kinds:
//
//	ErrConfiguration: invalid parameters (empty universe, non-positive threshold, ...).
//	ErrData         : malformed or inconsistent input data.
//	ErrNumeric      : a statistic was requested over an empty sample.
//	ErrResourceLimit: the requested run does not fit the configured limits.
//
// A classified sentinel is declared once per package:
//
//	var ErrEmptyUniverse = errkind.Configuration("subset: empty location universe")
//
// and both errors.Is(err, ErrEmptyUniverse) and
// errors.Is(err, errkind.ErrConfiguration) hold for any error wrapping it.
package errkind

import "errors"

// Kind sentinels. They are never returned bare; they only serve as match targets.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrData          = errors.New("data error")
	ErrNumeric       = errors.New("numeric error")
	ErrResourceLimit = errors.New("resource limit exceeded")
)

// kindError is a sentinel with a fixed message that unwraps to its kind.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// Configuration declares a sentinel of kind ErrConfiguration.
func Configuration(msg string) error { return &kindError{msg: msg, kind: ErrConfiguration} }

// Data declares a sentinel of kind ErrData.
func Data(msg string) error { return &kindError{msg: msg, kind: ErrData} }

// Numeric declares a sentinel of kind ErrNumeric.
func Numeric(msg string) error { return &kindError{msg: msg, kind: ErrNumeric} }

// ResourceLimit declares a sentinel of kind ErrResourceLimit.
func ResourceLimit(msg string) error { return &kindError{msg: msg, kind: ErrResourceLimit} }

// Of reports the kind of err, or nil when err is not classified.
func Of(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrConfiguration):
		return ErrConfiguration
	case errors.Is(err, ErrData):
		return ErrData
	case errors.Is(err, ErrNumeric):
		return ErrNumeric
	case errors.Is(err, ErrResourceLimit):
		return ErrResourceLimit
	default:
		return nil
	}
}
