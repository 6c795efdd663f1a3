package tailer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/livp123/loglens/internal/utils/fileutil"
	"github.com/livp123/loglens/internal/utils/logger"
)

const defaultCheckpointInterval = 2 * time.Second

// CheckpointManager persists per-file byte offsets as JSON so resume-mode
// sessions can pick up where a previous run left off. Only offsets are
// stored, never log content.
type CheckpointManager struct {
	log *zap.SugaredLogger

	mu      sync.Mutex
	offsets map[string]int64
	path    string

	interval time.Duration
	ticker   *time.Ticker
	stop     chan struct{}
	stopOnce sync.Once
}

// NewCheckpointManager creates a manager writing to path.
func NewCheckpointManager(path string, interval time.Duration, log *zap.SugaredLogger) *CheckpointManager {
	if interval <= 0 {
		interval = defaultCheckpointInterval
	}
	if log == nil {
		log = logger.Get(nil)
	}
	return &CheckpointManager{
		log:      log,
		offsets:  make(map[string]int64),
		path:     path,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Load reads offsets from disk. A missing file is a clean first run.
func (cm *CheckpointManager) Load() {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	data, err := os.ReadFile(cm.path)
	if err != nil {
		if !os.IsNotExist(err) {
			cm.log.Warnf("failed to load checkpoints: %v", err)
		}
		return
	}
	if err := json.Unmarshal(data, &cm.offsets); err != nil {
		cm.log.Warnf("failed to parse checkpoints: %v", err)
	}
}

// Save writes offsets to disk atomically.
func (cm *CheckpointManager) Save() {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	data, err := json.MarshalIndent(cm.offsets, "", "  ")
	if err != nil {
		cm.log.Warnf("failed to marshal checkpoints: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(cm.path), 0755); err != nil {
		cm.log.Warnf("failed to create checkpoint directory: %v", err)
		return
	}
	if err := fileutil.AtomicWriteFile(cm.path, data, 0644); err != nil {
		cm.log.Warnf("failed to save checkpoints: %v", err)
	}
}

// Start loads saved offsets and begins periodic saving.
func (cm *CheckpointManager) Start() {
	cm.Load()
	cm.ticker = time.NewTicker(cm.interval)
	go func() {
		for {
			select {
			case <-cm.ticker.C:
				cm.Save()
			case <-cm.stop:
				return
			}
		}
	}()
}

// Stop ends periodic saving and does a final save. Idempotent.
func (cm *CheckpointManager) Stop() {
	cm.stopOnce.Do(func() {
		if cm.ticker != nil {
			cm.ticker.Stop()
		}
		close(cm.stop)
		cm.Save()
	})
}

// Update records the offset for a file.
func (cm *CheckpointManager) Update(file string, offset int64) {
	cm.mu.Lock()
	cm.offsets[file] = offset
	cm.mu.Unlock()
}

// Offset returns the saved offset for a file.
func (cm *CheckpointManager) Offset(file string) (int64, bool) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	off, ok := cm.offsets[file]
	return off, ok
}

// Forget drops the saved offset for a file.
func (cm *CheckpointManager) Forget(file string) {
	cm.mu.Lock()
	delete(cm.offsets, file)
	cm.mu.Unlock()
}
