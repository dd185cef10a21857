package logger

import (
	"go.uber.org/zap"
)

// NewNamed creates a named zap logger. Production environments get JSON
// output at info level; anything else gets the human-readable development
// console at debug level.
func NewNamed(appEnv, name string) (*zap.Logger, error) {
	var cfg zap.Config
	if appEnv == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Named(name), nil
}
