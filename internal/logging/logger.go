package logging

import (
	"io"
	"log/slog"
	"os"
)

// LevelFor returns the minimum level logged in env. Development logs debug.
func LevelFor(env string) slog.Level {
	if env == "development" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// NewJSONHandler writes JSON records at or above the level for env to w.
func NewJSONHandler(w io.Writer, env string) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: LevelFor(env)})
}

// Setup installs a stdout JSON logger as the slog default and returns its
// handler so callers can fan it out further.
func Setup(env string) slog.Handler {
	handler := NewJSONHandler(os.Stdout, env)
	slog.SetDefault(slog.New(handler))
	return handler
}
