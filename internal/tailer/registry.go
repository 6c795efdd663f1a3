package tailer

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/livp123/loglens/internal/metrics"
	"github.com/livp123/loglens/internal/utils/logger"
	lerrors "github.com/livp123/loglens/pkg/errors"
)

const defaultEventBuffer = 1024

// Options configures a Registry.
type Options struct {
	// Position is the start position for new sessions (start, end, resume).
	Position string
	// Checkpoint enables offset persistence when non-nil.
	Checkpoint *CheckpointManager
	Logger     *zap.SugaredLogger
	// EventBuffer is the capacity of the event channel.
	EventBuffer int
}

// Registry is the process-wide mapping from file path to tail session.
// It owns the single underlying fsnotify watcher and guarantees at most one
// active session per path. One dispatch goroutine consumes watcher
// notifications, so notifications for one path are processed strictly in
// arrival order.
type Registry struct {
	log        *zap.SugaredLogger
	position   string
	checkpoint *CheckpointManager

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool

	watcher  *fsnotify.Watcher
	events   chan Event
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewRegistry creates a Registry and starts its dispatch loop.
func NewRegistry(opts Options) (*Registry, error) {
	position, err := ParsePosition(opts.Position)
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = logger.Get(nil)
	}
	buffer := opts.EventBuffer
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, lerrors.NewWatchError("", err)
	}

	r := &Registry{
		log:        log,
		position:   position,
		checkpoint: opts.Checkpoint,
		sessions:   make(map[string]*Session),
		watcher:    watcher,
		events:     make(chan Event, buffer),
		done:       make(chan struct{}),
	}
	r.wg.Add(1)
	go r.dispatch()
	return r, nil
}

// Events returns the stream of tail events. The channel is closed by StopAll.
func (r *Registry) Events() <-chan Event {
	return r.events
}

// Toggle starts tailing path if it has no active session and stops it
// otherwise. It reports whether the session is active after the call. This
// is the only operation the command surface invokes directly.
func (r *Registry) Toggle(path string) (bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false, lerrors.ErrRegistryClosed
	}
	if _, ok := r.sessions[abs]; ok {
		return false, r.stopLocked(abs)
	}
	return true, r.startLocked(abs)
}

// Start begins tailing path. It fails if a session is already active.
func (r *Registry) Start(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return lerrors.ErrRegistryClosed
	}
	if _, ok := r.sessions[abs]; ok {
		return lerrors.ErrSessionActive
	}
	return r.startLocked(abs)
}

// Stop ends the session for path.
func (r *Registry) Stop(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[abs]; !ok {
		return lerrors.NewSessionError(abs)
	}
	return r.stopLocked(abs)
}

// Active reports whether path has an active session.
func (r *Registry) Active(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[abs]
	return ok
}

// Offset returns the tracked offset for path.
func (r *Registry) Offset(path string) (int64, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, false
	}
	r.mu.Lock()
	s := r.sessions[abs]
	r.mu.Unlock()
	if s == nil {
		return 0, false
	}
	return s.Offset(), true
}

// StopAll force-closes every session and closes the event stream. It is
// idempotent and never aborts on individual close failures.
func (r *Registry) StopAll() {
	r.stopOnce.Do(func() {
		close(r.done)

		r.mu.Lock()
		for path, s := range r.sessions {
			s.deactivate()
			if err := r.watcher.Remove(path); err != nil {
				r.log.Debugf("remove watch %s: %v", path, err)
			}
			delete(r.sessions, path)
			metrics.ActiveSessions.Dec()
		}
		r.closed = true
		r.mu.Unlock()

		if err := r.watcher.Close(); err != nil {
			r.log.Warnf("close watcher: %v", err)
		}
		r.wg.Wait()
		close(r.events)
	})
}

// startLocked registers a session for path; r.mu must be held.
func (r *Registry) startLocked(path string) error {
	offset, err := r.initialOffset(path)
	if err != nil {
		return err
	}
	if err := r.watcher.Add(path); err != nil {
		return lerrors.NewWatchError(path, err)
	}
	r.sessions[path] = newSession(path, offset)
	metrics.ActiveSessions.Inc()
	r.log.Infof("tailing %s from offset %d", path, offset)
	return nil
}

// stopLocked removes the session for path; r.mu must be held.
func (r *Registry) stopLocked(path string) error {
	r.sessions[path].deactivate()
	delete(r.sessions, path)
	metrics.ActiveSessions.Dec()
	if err := r.watcher.Remove(path); err != nil {
		// Removing the watch for a deleted file fails; the handle is
		// already gone in that case.
		r.log.Debugf("remove watch %s: %v", path, err)
	}
	r.log.Infof("stopped tailing %s", path)
	return nil
}

// initialOffset resolves the starting offset for a new session from the
// configured position and, for resume, the checkpoint.
func (r *Registry) initialOffset(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, lerrors.NewTailError(path, err)
	}
	size := info.Size()

	switch r.position {
	case PositionStart:
		return 0, nil
	case PositionResume:
		if r.checkpoint != nil {
			if saved, ok := r.checkpoint.Offset(path); ok {
				if saved <= size {
					return saved, nil
				}
				// Saved offset beyond the file means it was rotated.
				r.log.Infof("rotation detected for %s (size %d < saved offset %d), replaying from start", path, size, saved)
				return 0, nil
			}
		}
		return size, nil
	default:
		// PositionEnd: content already in the file is never replayed.
		return size, nil
	}
}

func (r *Registry) dispatch() {
	defer r.wg.Done()
	for {
		select {
		case <-r.done:
			return
		case ev, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			r.handleNotification(ev)
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.log.Warnf("watcher error: %v", err)
		}
	}
}

// handleNotification routes one filesystem notification to its session.
// Remove and rename surface as stat failures inside handleChange, which
// force-stops the affected session without touching the others.
func (r *Registry) handleNotification(ev fsnotify.Event) {
	r.mu.Lock()
	s := r.sessions[ev.Name]
	r.mu.Unlock()
	if s == nil {
		return
	}

	out, err := s.handleChange()
	if err != nil {
		r.mu.Lock()
		if _, ok := r.sessions[s.Path()]; ok {
			_ = r.stopLocked(s.Path())
		}
		r.mu.Unlock()
		metrics.TailErrors.Inc()
		r.log.Warnf("tail session force-stopped: %v", err)
		r.emit(Event{Path: s.Path(), Kind: EventError, Err: err})
		return
	}
	if out == nil {
		return
	}

	switch out.Kind {
	case EventAppended:
		metrics.DeltaBytes.Add(float64(len(out.Bytes)))
	case EventTruncated:
		metrics.Truncations.Inc()
	}
	if r.checkpoint != nil {
		r.checkpoint.Update(out.Path, out.Offset)
	}
	r.emit(*out)
}

func (r *Registry) emit(ev Event) {
	select {
	case r.events <- ev:
	case <-r.done:
	}
}
