package logging

import (
	"go.uber.org/zap"
)

// Logger is the global logger instance
var Logger *zap.Logger

// Setup builds the process logger. Debug mode switches to the human-readable
// development encoder at debug level.
func Setup(debug bool, appName, appVersion string) (*zap.Logger, error) {
	var err error
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	// Add default fields
	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	Logger, err = cfg.Build()
	if err != nil {
		Logger = zap.NewNop()
		return Logger, err
	}

	zap.ReplaceGlobals(Logger)
	return Logger, nil
}
