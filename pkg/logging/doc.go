// Package logging provides a structured logging system for skilld with unified
// log handling and level filtering.
//
// This package implements a logging system built on Go's standard slog package,
// providing consistent logging behavior with structured output and level filtering.
//
// # Log Levels
//   - **Debug**: Detailed information for debugging and development
//   - **Info**: General informational messages about application operation
//   - **Warn**: Warning messages that indicate potential issues
//   - **Error**: Error messages for failures and exceptional conditions
//
// # Structured Logging
// All log entries include:
//   - Timestamp
//   - Log level (Debug, Info, Warn, Error)
//   - Subsystem identifier for categorization
//   - Message content with optional formatting
//   - Optional error information
//
// # Usage
//
//	import "skilld/pkg/logging"
//
//	// Initialize with Info level logging to stdout
//	logging.InitForCLI(logging.LevelInfo, os.Stdout)
//
//	// Log messages
//	logging.Info("Bootstrap", "Application starting up")
//	logging.Debug("SkillLoader", "Loaded definitions from %s", root)
//	logging.Warn("Watcher", "Change event for unknown path")
//	logging.Error("Registry", err, "Failed to reload %s", path)
package logging
