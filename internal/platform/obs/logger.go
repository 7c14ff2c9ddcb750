package obs

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds the process logger and installs it as zap's global logger.
// The returned func restores the previous global and flushes buffered entries.
func NewLogger(debug bool) (*zap.Logger, func(), error) {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("new logger: %w", err)
	}

	restore := zap.ReplaceGlobals(logger)
	return logger, func() {
		_ = logger.Sync()
		restore()
	}, nil
}
