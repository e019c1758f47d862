package observability

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const EnvLogLevel = "TOLLCTL_LOG_LEVEL"

// InitLogger wires the global logger to a console writer and, when logFile is
// set, a durable append-only file sink alongside it.
func InitLogger(app, logFile string) zerolog.Logger {
	console := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}

	var w io.Writer = console
	var fileErr error
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			fileErr = err
		} else {
			w = zerolog.MultiLevelWriter(console, f)
		}
	}

	logger := zerolog.New(w).
		Level(levelFromEnv()).
		With().Timestamp().Str("app", app).Logger()
	log.Logger = logger

	if fileErr != nil {
		logger.Warn().Err(fileErr).Str("path", logFile).Msg("log file unavailable, console only")
	}
	return logger
}

func levelFromEnv() zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogLevel))) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off", "none":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
