// Package logging provides structured logging configuration for restmodel.
//
// It wraps log/slog so that every component logs consistently. Components
// accept a *slog.Logger via their options or a setter; when no logger is
// configured they fall back to logging.Nop().
//
//	log := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//	schema, _ := record.NewSchema("users", "/api/users", record.WithLogger(log))
package logging
