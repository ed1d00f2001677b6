package domain

import (
	"errors"
	"fmt"
)

var ErrReviewNotFound = errors.New("review not found")

// SignalUnavailableError marks a producer that is disabled or whose
// backing model failed to load. Callers treat the signal as score 0.0;
// it is never fatal.
type SignalUnavailableError struct {
	Signal string
	Reason string
}

func (e *SignalUnavailableError) Error() string {
	return fmt.Sprintf("signal %q unavailable: %s", e.Signal, e.Reason)
}

func NewSignalUnavailableError(signal, reason string) error {
	return &SignalUnavailableError{Signal: signal, Reason: reason}
}

func IsSignalUnavailable(err error) bool {
	var target *SignalUnavailableError
	return errors.As(err, &target)
}

type RefinementStage string

const (
	RefinementTimeout   RefinementStage = "timeout"
	RefinementFailure   RefinementStage = "failure"
	RefinementMalformed RefinementStage = "malformed"
)

// RefinementError marks an LLM refinement call that did not produce
// usable scores. The quality scorer falls back to local scores; it
// never fails the request.
type RefinementError struct {
	Stage RefinementStage
	Err   error
}

func (e *RefinementError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("refinement %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("refinement %s", e.Stage)
}

func (e *RefinementError) Unwrap() error { return e.Err }

func NewRefinementError(stage RefinementStage, err error) error {
	return &RefinementError{Stage: stage, Err: err}
}

func IsRefinementError(err error) bool {
	var target *RefinementError
	return errors.As(err, &target)
}

// InvalidInputError rejects empty or non-text input before any signal
// computation runs.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

func NewInvalidInputError(reason string) error {
	return &InvalidInputError{Reason: reason}
}

func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}

// ConfigurationError is fatal at startup, never per-request.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %s: %s", e.Field, e.Reason)
}

func NewConfigurationError(field, reason string) error {
	return &ConfigurationError{Field: field, Reason: reason}
}

func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// LocalScoringError marks a failed local dimension heuristic. There is
// no safe default for a quality score, so it is fatal for the request
// and distinct from a refinement failure.
type LocalScoringError struct {
	Dimension string
	Err       error
}

func (e *LocalScoringError) Error() string {
	return fmt.Sprintf("local scoring failed for %s: %v", e.Dimension, e.Err)
}

func (e *LocalScoringError) Unwrap() error { return e.Err }

func NewLocalScoringError(dimension string, err error) error {
	return &LocalScoringError{Dimension: dimension, Err: err}
}

func IsLocalScoringError(err error) bool {
	var target *LocalScoringError
	return errors.As(err, &target)
}
