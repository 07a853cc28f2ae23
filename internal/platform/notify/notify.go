// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package notify delivers transient, user-facing notices.

Cart and session operations report success/failure through a [Notifier]
rather than through their error returns, so view layers can render toast-style
feedback without inspecting errors. Errors still propagate for callers that
need them; notices are a side channel, never the source of truth.
*/
package notify

import "log/slog"

// Notifier receives short, user-facing status messages.
type Notifier interface {
	// Success reports that an operation completed.
	Success(message string)
	// Error reports that an operation failed, with a user-safe message.
	Error(message string)
}

// # Implementations

// Log is a [Notifier] that writes notices to a structured logger. The CLI
// uses it as its toast surface.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a logger-backed [Notifier].
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

// Success logs the message at info level.
func (n *Log) Success(message string) {
	n.logger.Info("notice", slog.String("message", message))
}

// Error logs the message at warn level. Notices are expected-failure
// feedback, not faults, so they never log at error level.
func (n *Log) Error(message string) {
	n.logger.Warn("notice", slog.String("message", message))
}

// Discard is a [Notifier] that drops all notices. Useful in tests that only
// assert on state.
type Discard struct{}

// Success implements [Notifier].
func (Discard) Success(string) {}

// Error implements [Notifier].
func (Discard) Error(string) {}
