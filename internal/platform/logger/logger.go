package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. Handlers and the loader
// receive it by injection; nothing logs through a package-level default.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
