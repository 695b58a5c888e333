package main

import (
	"log/slog"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/reqmanhq/reqman/internal/config"
)

// setupLogger routes slog through a rotating file under ~/.reqman/logs.
// Command output stays clean; diagnostics go to the file only.
func setupLogger(level string) {
	logWriter := &lumberjack.Logger{
		Filename:   filepath.Join(config.LogDir, "reqman.log"),
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	}

	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	h := slog.NewTextHandler(logWriter, &slog.HandlerOptions{Level: slogLevel})
	slog.SetDefault(slog.New(h))
}
