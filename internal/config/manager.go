package config

import (
	"sync"
)

// Manager handles configuration access in a centralized manner. The loaded
// configuration is immutable to callers; Reload swaps it atomically, which is
// the only way the rule set and tail options change at runtime.
type Manager struct {
	configPath string
	mutex      sync.RWMutex
	config     *Config
}

// NewManager creates a manager for the given path.
func NewManager(configPath string) *Manager {
	return &Manager{configPath: configPath}
}

// Load reads the configuration from disk.
func (m *Manager) Load() error {
	cfg, err := Load(m.configPath)
	if err != nil {
		return err
	}

	m.mutex.Lock()
	m.config = cfg
	m.mutex.Unlock()
	return nil
}

// Reload re-reads the configuration from disk.
func (m *Manager) Reload() error {
	return m.Load()
}

// Get returns a copy of the current configuration, loading defaults if Load
// was never called.
func (m *Manager) Get() *Config {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.config == nil {
		return Default()
	}
	// Return a copy to prevent external modification.
	cfgCopy := *m.config
	return &cfgCopy
}

// Update replaces the current configuration.
func (m *Manager) Update(cfg *Config) {
	m.mutex.Lock()
	m.config = cfg
	m.mutex.Unlock()
}

// Path returns the configuration file path.
func (m *Manager) Path() string {
	return m.configPath
}
