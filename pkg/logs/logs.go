package logs

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aws/smithy-go/logging"
	"github.com/lmittmann/tint"
)

// Setup installs a tint handler on stderr as the default slog logger. Diagnostics are shown
// from Warn upwards, or from Debug when debug is set.
func Setup(debug bool) *slog.Logger {
	return SetupWriter(os.Stderr, debug)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
	return logger
}

// SDKLogger bridges the AWS SDK's logger into slog. A nil logger resolves slog.Default at
// each call, so the bridge follows a later Setup.
func SDKLogger(logger *slog.Logger) logging.Logger {
	return logging.LoggerFunc(func(classification logging.Classification, format string, v ...interface{}) {
		logger := logger
		if logger == nil {
			logger = slog.Default()
		}
		msg := fmt.Sprintf(format, v...)
		switch classification {
		case logging.Warn:
			logger.Warn(msg, "source", "aws-sdk")
		default:
			logger.Debug(msg, "source", "aws-sdk")
		}
	})
}
