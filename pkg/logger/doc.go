// Package logger provides structured JSON logging for the module.
//
// The logger package wraps Uber's Zap with the signature the rest of
// the module logs through: a message, an optional error and optional
// structured field maps. Every package that logs declares its own small
// Logger interface with exactly these methods, so this wrapper (or any
// stand-in, such as the committed gomock mocks) satisfies them all.
//
// Core Features:
//   - Structured JSON logging with key-value pairs
//   - Log levels debug, info, warning and error
//   - ISO8601 timestamps and capitalized level names
//   - pid and service stamped on every entry as initial fields
//   - Level and service name configurable via environment
//   - Fx module that flushes buffered entries on shutdown
//
// Basic Usage:
//
//	import "github.com/Aleph-Alpha/searchspec/pkg/logger"
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level: "info",
//	})
//
//	log.Info("Search executed", nil, map[string]interface{}{
//		"backend": "postgres",
//		"rows":    42,
//	})
//
//	log.Debug("Applying filter", nil, nil) // Only appears if level is debug
//	log.Warn("Sort fragments ignored for vector search", nil, nil)
//	log.Error("Compilation failed", err, nil)
//
// FX Module Integration:
//
// This package provides an fx module for applications using the fx
// dependency injection framework:
//
//	app := fx.New(
//		logger.FXModule,
//		// ... other modules
//	)
//	app.Run()
//
// Configuration:
//
// The logger can be configured via environment variables:
//
//	ZAP_LOGGER_LEVEL=debug    # Log level (debug, info, warning, error)
//	LOGGER_SERVICE=searchspec # Service tag on every log line
//
// Thread Safety:
//
// All methods on Logger are safe for concurrent use by multiple
// goroutines.
package logger
