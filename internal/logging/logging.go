// Package logging builds the process-wide zap logger.
package logging

import "go.uber.org/zap"

// New returns a console logger at the given level. Unknown level strings
// fall back to info.
func New(level string) (*zap.Logger, error) {
	conf := zap.NewDevelopmentConfig()
	conf.DisableStacktrace = true

	switch level {
	case "debug":
		conf.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		conf.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		conf.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		conf.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		conf.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	return conf.Build()
}
