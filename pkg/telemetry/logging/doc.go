// Package logging provides structured logging for textc.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON, text, and console formats
//   - Configurable log levels (debug, info, warn, error)
//   - A *slog.Logger view for components that accept one
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "text",
//	})
//
//	logger.Info("compiled",
//	    "output", "build/index.txt",
//	    "files", 12,
//	)
//
//	resolver := compiler.NewResolver(compiler.WithLogger(logger.Slog()))
//
// Logs go to stderr by default so that they never mix with command output.
package logging
