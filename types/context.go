package types

import "go.uber.org/zap"

// DefaultVersion is the fallback version when AppContext is nil
const DefaultVersion = "dev"

// AppContext holds application-wide context information passed to commands
type AppContext struct {
	Version string
	RunID   string
	Logger  *zap.Logger
}

// VersionOrDefault returns the version, tolerating a nil context
func (c *AppContext) VersionOrDefault() string {
	if c == nil || c.Version == "" {
		return DefaultVersion
	}
	return c.Version
}

// LoggerOrNop returns the logger, tolerating a nil context
func (c *AppContext) LoggerOrNop() *zap.Logger {
	if c == nil || c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
