package logger

// Config defines the configuration for logging.
type Config struct {
	// Enabled controls whether log output goes to a file; stderr is used
	// otherwise, keeping stdout free for classified output.
	Enabled bool `yaml:"enabled"`
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level"`
	// Path is the log file path.
	Path string `yaml:"path"`
	// MaxSize is the maximum size in MB before rotation.
	MaxSize int `yaml:"max_size"`
	// MaxBackups is the maximum number of rotated files to keep.
	MaxBackups int `yaml:"max_backups"`
	// MaxAge is the maximum age in days of rotated files.
	MaxAge int `yaml:"max_age"`
	// Compress controls gzip compression of rotated files.
	Compress bool `yaml:"compress"`
}
