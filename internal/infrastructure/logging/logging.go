package logging

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// New returns a JSON logger tagged with a fresh invocation id, so records from
// separate runs sharing one store can be told apart.
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("invocation_id", uuid.NewString())
}
