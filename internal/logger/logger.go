package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Log discards everything until Init is called.
var Log = slog.New(slog.NewJSONHandler(io.Discard, nil))

var logFile *os.File

func Init(logFilePath string, level string) error {
	file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}
	logFile = file

	Log = slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: ParseLevel(level)}))
	Log.Info("Logger initialized.")
	return nil
}

// Close flushes and releases the log file, if any.
func Close() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	Log = slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
