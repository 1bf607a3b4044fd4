// Package errors centralizes the sentinel errors returned by the measure
// registry and the view data engine.
package errors

import "github.com/hyp3rd/ewrap"

var (
	// ErrMeasureNotFound is returned when a descriptor is looked up by a
	// name that was never registered.
	ErrMeasureNotFound = ewrap.New("measure not found")

	// ErrPrecondition is returned when an operation is invoked on data in
	// a state it does not support: snapshotting a cumulative view or
	// copying a StatsObject-typed view. Reading a view through the
	// accessor for the wrong storage type returns a nil map instead.
	ErrPrecondition = ewrap.New("precondition violation")

	// ErrParamCannotBeEmpty is returned when a descriptor is looked up by
	// an empty name. Registering a measure under an empty name reports it
	// through Diagnostic and returns the invalid handle instead.
	ErrParamCannotBeEmpty = ewrap.New("param cannot be empty")
)
