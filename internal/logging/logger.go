package logging

import (
	"io"
	"log/slog"
	"os"

	"gorm.io/gorm"
)

// Setup initializes the global slog logger with JSON output to stdout.
func Setup() {
	slog.SetDefault(slog.New(NewJSONHandler(os.Stdout)))
}

func NewJSONHandler(w io.Writer) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
}

// WithDatabase replaces the default logger with one that also persists
// ERROR+ records. The returned handler must be stopped on shutdown.
func WithDatabase(db *gorm.DB) *PGHandler {
	pg := NewPGHandler(db)
	slog.SetDefault(slog.New(NewMultiHandler(NewJSONHandler(os.Stdout), pg)))
	return pg
}
