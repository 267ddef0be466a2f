// Package logging builds the zap loggers used by the CLI and the HTTP server.
package logging

import (
	"fmt"
	"strings"

	"github.com/ilsalary/net-salary-calculator/internal/calculation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config configures the zap logger.
type Config struct {
	Service string
	Level   string
	Debug   bool
	// OutputPaths defaults to stderr so that command output on stdout stays clean.
	OutputPaths []string
}

// New builds a structured logger: JSON in production, a console encoder when Debug is set.
func New(cfg Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Debug {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.TimeKey = "ts"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	level := strings.TrimSpace(cfg.Level)
	if level == "" {
		level = "info"
	}
	if cfg.Debug {
		level = "debug"
	}
	if err := zapCfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zapCfg.OutputPaths = []string{"stderr"}
	if len(cfg.OutputPaths) > 0 {
		zapCfg.OutputPaths = cfg.OutputPaths
	}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	service := strings.TrimSpace(cfg.Service)
	if service == "" {
		service = "netsalary"
	}
	return logger.With(zap.String("service", service)), nil
}

// calculationLogger adapts zap to the engine's printf-style Logger.
type calculationLogger struct {
	sugar *zap.SugaredLogger
}

// NewCalculationLogger wraps a zap logger for use by calculation.Engine. A nil logger yields a no-op.
func NewCalculationLogger(l *zap.Logger) calculation.Logger {
	if l == nil {
		return calculation.NopLogger{}
	}
	return calculationLogger{sugar: l.Named("engine").Sugar()}
}

func (c calculationLogger) Debugf(format string, args ...any) { c.sugar.Debugf(format, args...) }
func (c calculationLogger) Infof(format string, args ...any)  { c.sugar.Infof(format, args...) }
func (c calculationLogger) Warnf(format string, args ...any)  { c.sugar.Warnf(format, args...) }
func (c calculationLogger) Errorf(format string, args ...any) { c.sugar.Errorf(format, args...) }
