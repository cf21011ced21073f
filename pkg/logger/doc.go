// Package logger builds *slog.Logger instances with functional options.
//
// New picks a handler from the configured Format: slog's JSON handler for
// production, slog's text handler, or github.com/lmittmann/tint for a compact
// coloured development output. The handler is wrapped so every record also
// gets attributes produced by registered ContextExtractor callbacks, which is
// how request-scoped values such as the active language end up in logs.
//
//	log := logger.New(
//		logger.WithEnvironment("development", "langsyncd"),
//		logger.WithContextExtractors(i18n.LogExtractor),
//	)
//	log.InfoContext(ctx, "language changed", logger.Language("fr"))
//
// NewFromConfig does the same from a Config loaded from environment variables.
// Helper constructors in attr.go keep attribute keys consistent.
package logger
