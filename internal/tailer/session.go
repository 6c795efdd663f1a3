package tailer

import (
	"io"
	"os"
	"sync"

	lerrors "github.com/livp123/loglens/pkg/errors"
)

// EventKind discriminates tail events.
type EventKind int

const (
	// EventAppended carries exactly the bytes appended since the last
	// observed file size.
	EventAppended EventKind = iota
	// EventTruncated signals the file shrank below the tracked offset.
	// It carries no payload; the offset is reset to the new size.
	EventTruncated
	// EventError signals the session was force-stopped by an I/O failure.
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventAppended:
		return "appended"
	case EventTruncated:
		return "truncated"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is one observation emitted by a tail session.
type Event struct {
	Path string
	Kind EventKind
	// Bytes is the appended delta; nil for truncation and error events.
	Bytes []byte
	// Offset is the tracked offset after applying the event.
	Offset int64
	Err    error
}

// Session owns the tailing state for a single file: the last-known byte
// offset and the active flag. The mutex serializes all change handling for
// this path, so the offset read-modify-write is atomic with respect to the
// notification stream.
type Session struct {
	path string

	mu     sync.Mutex
	offset int64
	active bool
}

func newSession(path string, offset int64) *Session {
	return &Session{path: path, offset: offset, active: true}
}

// Path returns the absolute file path that identifies this session.
func (s *Session) Path() string {
	return s.path
}

// Offset returns the last-known byte offset.
func (s *Session) Offset() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offset
}

// deactivate marks the session stopped; in-flight change notifications for
// this path become no-ops.
func (s *Session) deactivate() {
	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
}

// handleChange compares the current file size against the tracked offset and
// returns at most one event. Growth yields an Appended event with a bounded
// byte-range read of the new bytes; shrinkage yields a Truncated event and
// resets the offset; equal size is a no-op, which also covers metadata-only
// notifications. A stat or read failure returns a wrapped ErrTailIO and
// leaves the offset untouched; the registry force-stops the session.
func (s *Session) handleChange() (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil, nil
	}

	info, err := os.Stat(s.path)
	if err != nil {
		return nil, lerrors.NewTailError(s.path, err)
	}
	size := info.Size()

	switch {
	case size > s.offset:
		delta, err := readRange(s.path, s.offset, size)
		if err != nil {
			return nil, lerrors.NewTailError(s.path, err)
		}
		if len(delta) == 0 {
			return nil, nil
		}
		s.offset += int64(len(delta))
		return &Event{Path: s.path, Kind: EventAppended, Bytes: delta, Offset: s.offset}, nil

	case size < s.offset:
		s.offset = size
		return &Event{Path: s.path, Kind: EventTruncated, Offset: size}, nil

	default:
		return nil, nil
	}
}

// readRange reads the bytes in [from, to). Never attempts a negative-length
// read; if the file shrank between stat and read, the short result is kept.
func readRange(path string, from, to int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, to-from)
	n, err := f.ReadAt(buf, from)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}
