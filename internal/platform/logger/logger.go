// Package logger provides logging utilities for Photoshelf.
package logger

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger provides a function for logging messages with key-value pairs.
type Logger func(ctx context.Context, msg string, args ...any)

// New returns a logger that writes structured console output to stdout.
func New() Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}

	zl := zerolog.New(output).With().Timestamp().Logger()

	return wrap(zl)
}

// NewWithLevel returns a logger that drops events below the given level.
func NewWithLevel(level zerolog.Level) Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}

	zl := zerolog.New(output).Level(level).With().Timestamp().Logger()

	return wrap(zl)
}

// Discard returns a logger that discards all output.
func Discard() Logger {
	return func(ctx context.Context, msg string, args ...any) {}
}

func wrap(zl zerolog.Logger) Logger {
	return func(ctx context.Context, msg string, args ...any) {
		ev := zl.Info()
		for i := 0; i+1 < len(args); i += 2 {
			key, ok := args[i].(string)
			if !ok {
				continue
			}
			ev = ev.Interface(key, args[i+1])
		}
		ev.Msg(msg)
	}
}
