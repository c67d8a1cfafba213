package shared

import (
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures the process logger at the named level. Debug
// forces the level down regardless of what was configured.
func SetupLogger(level string, debug bool) *log.Logger {
	logger := log.New(os.Stderr)
	switch level {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
