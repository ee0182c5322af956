package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Options struct {
	Service   string
	Env       string
	Level     string
	AddSource bool

	// Output overrides stdout; tests capture log lines through it.
	Output io.Writer
}

// New builds the process-wide JSON logger and installs it as the slog
// default, so package-level slog calls land in the same stream.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	log := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:     parseLevel(opts.Level),
		AddSource: opts.AddSource,
	})).With("service", opts.Service, "env", opts.Env)

	slog.SetDefault(log)
	return log
}

func parseLevel(lvl string) slog.Level {
	var level slog.Level
	// accept the common spelled-out form alongside slog's own names
	if strings.EqualFold(lvl, "warning") {
		return slog.LevelWarn
	}
	if err := level.UnmarshalText([]byte(lvl)); err != nil {
		return slog.LevelInfo
	}
	return level
}
