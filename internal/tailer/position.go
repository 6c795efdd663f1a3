package tailer

import (
	lerrors "github.com/livp123/loglens/pkg/errors"
)

// Start positions for a new tail session.
const (
	// PositionStart replays the whole file from offset zero.
	PositionStart = "start"
	// PositionEnd starts at the current file size; pre-existing content is
	// never replayed. This is the default.
	PositionEnd = "end"
	// PositionResume restores the checkpointed offset when one is valid,
	// otherwise behaves like PositionEnd.
	PositionResume = "resume"
)

// ParsePosition normalizes a position string, defaulting the empty string
// to PositionEnd.
func ParsePosition(s string) (string, error) {
	switch s {
	case "":
		return PositionEnd, nil
	case PositionStart, PositionEnd, PositionResume:
		return s, nil
	default:
		return "", lerrors.NewPositionError(s)
	}
}
