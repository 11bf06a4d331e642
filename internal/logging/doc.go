// Package logging assembles the structured slog loggers used across
// filmpress.
//
// It owns the console/JSON handlers, centralizes level plumbing, and exposes
// attribute helpers so pipeline code tags log lines with job sources and
// event types consistently. A no-op logger is provided for tests and wiring
// code that cannot fail.
package logging
