// Package logger provides structured logging for the analytics engine,
// built on zerolog.
//
// All components log through the Logger interface so tests can swap in
// a capturing implementation (TestLogger). The global logger is set up
// once from the logging config:
//
//	if err := logger.Initialize(&cfg.Logging); err != nil {
//		...
//	}
//	log := logger.GetLogger()
//	log.InfoWithFields("profile resolved", map[string]interface{}{
//		"username": username,
//	})
//
// Credentials and API keys must never be passed as log fields.
package logger
