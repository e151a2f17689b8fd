// Package logging constructs the slog loggers slateprep uses. Console
// output renders compact single-line entries for operators; json output
// suits log collection. NewFromConfig additionally appends to a log file
// under the configured log directory.
package logging
