// Package logger builds the zap logger shared by the CLI and the HTTP server.
//
// Console output uses the configured Format (console or json). When File is set,
// JSON entries are also written to that path through a lumberjack rotating writer,
// rotated at MaxSizeMB and pruned by MaxBackups and MaxAgeDays, optionally gzipped
// when Compress is true. Both sinks share the same Level.
//
// WithRayID attaches the Fiber request id to a logger so handler logs can be
// correlated with the request that produced them.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Load order written", zap.Int("modules", 3))
//
//	// Also keep a rotated JSON log next to the profile:
//	log, _ = logger.New(&logger.Config{Level: "debug", File: "logs/modsettings.log", MaxSizeMB: 10})
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
