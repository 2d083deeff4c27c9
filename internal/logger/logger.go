package logger

import (
	"go.uber.org/zap"
)

var log = zap.NewNop().Sugar()

// Init configures the global logger. "prod" selects JSON output at info level;
// anything else gets the development config at debug level.
func Init(env string) error {
	var cfg zap.Config
	if env == "prod" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}

	log = l.Sugar()
	return nil
}

// L returns the global sugared logger. Safe to call before Init (no-op logger).
func L() *zap.SugaredLogger {
	return log
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	_ = log.Sync()
}
