// Package logging builds the slog loggers used across Podmill.
//
// It provides a console handler that renders compact "TIME LEVEL component:
// message k=v" lines, a JSON handler for machine consumption, typed attribute
// constructors, and context helpers that stamp episode/stage/request
// identifiers onto stage loggers.
package logging
