// Package logger builds slog loggers with JSON or text output and
// context-aware attribute extraction.
//
// The factory wraps the chosen handler in a decorator that runs
// registered ContextExtractor functions on every record, so
// request-scoped values such as the tenant id or user id show up in
// logs without being passed explicitly:
//
//	log := logger.New(cfg,
//		logger.WithAttr(slog.String("service", "storefront")),
//		logger.WithContextExtractors(tenant.LoggerExtractor(), identity.LoggerExtractor()),
//	)
package logger
