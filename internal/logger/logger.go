// Package logger собирает структурный zerolog-логгер приложения.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New создает логгер с заданным уровнем. Pretty включает консольный
// вывод для локальной разработки, в продакшене пишется чистый JSON.
func New(level string, pretty bool) zerolog.Logger {
	lvl := parseLevel(level)

	var out = os.Stdout
	logger := zerolog.New(out)
	if pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	}
	return logger.Level(lvl).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
