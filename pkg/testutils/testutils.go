// Package testutils holds small helpers shared across test packages.
package testutils

import (
	"io"
	"log/slog"
)

// NewTestLogger returns a logger that discards everything, keeping test
// output readable.
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
