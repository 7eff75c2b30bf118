// Package logger provides structured logging on top of log/slog with
// context-extracted attributes and optional Sentry forwarding.
//
// Context extractors pull request-scoped values (request IDs, matched
// actions) out of a context.Context on every log call, so handlers deep in
// the dispatch pipeline log enriched records without threading loggers
// around. The Sentry integration degrades gracefully: with no DSN
// configured, logs go to stdout only.
//
// Basic usage:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	log.Info("server starting")
//
// With Sentry:
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//	    DSN:         os.Getenv("SENTRY_DSN"),
//	    Environment: "production",
//	})
package logger
