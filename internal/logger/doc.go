// Package logger builds the zap logger used by the beanconv command.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	zap.ReplaceGlobals(log)
//
// The beanutils packages log through zap.L(), so installing the logger
// globally makes their debug output visible.
package logger
