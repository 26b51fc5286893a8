// Package logging builds the zap logger shared by the desktop app and the
// CLI, and adapts it to the provider interfaces the services log through.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production logger, at debug level when verbose is set.
func New(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Provider logs service diagnostics and events without a frontend.
type Provider struct {
	log *zap.SugaredLogger
}

// NewProvider wraps logger. A nil logger discards everything.
func NewProvider(logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{log: logger.Sugar()}
}

func (p *Provider) LogInfof(format string, args ...interface{}) {
	p.log.Infof(format, args...)
}

func (p *Provider) LogErrorf(format string, args ...interface{}) {
	p.log.Errorf(format, args...)
}

// EventsEmit records the event at debug level. Payloads are summarised by
// size only.
func (p *Provider) EventsEmit(eventName string, args ...interface{}) {
	p.log.Debugw("event", "name", eventName, "args", len(args))
}
