package app

import "errors"

// ErrActivityNotFound and related errors describe validation and runtime
// failures surfaced to the presentation layer.
var (
	ErrActivityNotFound        = errors.New("activity not found")
	ErrDependencyCycle         = errors.New("dependency cycle")
	ErrWeekendStart            = errors.New("start date falls on a weekend")
	ErrWeekendEnd              = errors.New("end date falls on a weekend")
	ErrEndBeforeStart          = errors.New("end date before start date")
	ErrStartBeforeDependencies = errors.New("start date before dependencies allow")
	ErrStartDateUnset          = errors.New("start date not set")
)
