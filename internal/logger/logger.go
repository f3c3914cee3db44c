package logger

import (
	"fmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"os"
)

// Config selects the level and destination of the logger. Empty fields fall back to
// the LOG_LEVEL and LOG_FILE environment variables.
type Config struct {
	Level string
	File  string
}

func ConfigFromEnv() Config {
	return Config{
		Level: os.Getenv("LOG_LEVEL"),
		File:  os.Getenv("LOG_FILE"),
	}
}

func parseLevel(level string) zapcore.Level {
	if level == "" {
		return zapcore.InfoLevel
	}

	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}

	return parsed
}

func openOutput(path string) (zapcore.WriteSyncer, func(), error) {
	if path == "" {
		return zapcore.Lock(os.Stderr), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	return zapcore.Lock(f), func() { _ = f.Close() }, nil
}

// New builds a console logger. The returned function flushes and closes the output.
func New(cfg Config) (*zap.Logger, func(), error) {
	out, closeOut, err := openOutput(cfg.File)
	if err != nil {
		return nil, nil, err
	}

	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		NameKey:        "logger",
		TimeKey:        "ts",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	})

	log := zap.New(zapcore.NewCore(encoder, out, parseLevel(cfg.Level))).Named("arkprop")

	done := func() {
		_ = log.Sync()
		closeOut()
	}

	return log, done, nil
}
