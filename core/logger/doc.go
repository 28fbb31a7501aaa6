// Package logger provides leveled, correlated structured logging on top of
// log/slog.
//
// Five strictly ordered levels are supported: debug, info, warn, error and
// fatal. Entries below the configured threshold are suppressed before any
// attribute formatting happens.
//
// Request correlation is automatic: every log method takes a context, and
// any request context carried on it (see pkg/requestctx) is attached to the
// entry. Components specialize a shared request-scoped logger with Child:
//
//	log := base.Child(logger.Component("SessionManager"))
//	log.Info(ctx, "session created", logger.SessionID(id))
//
// Child merges the extra attributes over the parent's bound set; parent
// attributes survive unless the child rebinds the same key.
//
// Timers measure and log operation latency uniformly:
//
//	timer := log.StartTimer()
//	// ... do work ...
//	timer.End(ctx, "session validated")
//
// A logging call never panics outward and never returns an error; sink
// failures are swallowed so they cannot mask the logged operation's outcome.
package logger
