package version

// Version is the current release, overridden at build time via
// -ldflags "-X github.com/livp123/loglens/internal/version.Version=v1.2.3".
var Version = "dev"
