package log

import (
	"context"
	"log/slog"
	"sync"
)

// slogLogger adapts the process-wide slog logger to the Logger interface.
// The minimum level is shared with the provider that created it, so
// LoggerProvider.SetLevel affects loggers that were handed out earlier.
type slogLogger struct {
	logger *slog.Logger
	min    *slog.LevelVar
}

func (s *slogLogger) Debug(msg string, fields ...any) {
	if s.min.Level() <= slog.LevelDebug {
		s.logger.Debug(msg, fields...)
	}
}

func (s *slogLogger) Info(msg string, fields ...any) {
	if s.min.Level() <= slog.LevelInfo {
		s.logger.Info(msg, fields...)
	}
}

func (s *slogLogger) Warn(msg string, fields ...any) {
	if s.min.Level() <= slog.LevelWarn {
		s.logger.Warn(msg, fields...)
	}
}

func (s *slogLogger) Error(msg string, fields ...any) {
	if s.min.Level() > slog.LevelError {
		return
	}
	// A leading bare error is promoted to the standard error attribute so the
	// stacktrace handler can pick it up.
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			args := make([]any, 0, len(fields))
			args = append(args, ErrAttr(err))
			args = append(args, fields[1:]...)
			s.logger.Error(msg, args...)
			return
		}
	}
	s.logger.Error(msg, fields...)
}

func (s *slogLogger) With(fields ...any) Logger {
	return &slogLogger{logger: s.logger.With(fields...), min: s.min}
}

func (s *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.min.Level() <= slog.Level(level) && s.logger.Enabled(ctx, slog.Level(level))
}

// slogProvider is the default LoggerProvider backed by slog.Default().
// SetupLogger configures the handler slog.Default() resolves to.
type slogProvider struct {
	min *slog.LevelVar
}

func newSlogProvider() *slogProvider {
	return &slogProvider{min: &slog.LevelVar{}}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *slogProvider) GetLogger() Logger {
	return &slogLogger{logger: slog.Default(), min: p.min}
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *slogProvider) GetLoggerWithName(name string) Logger {
	return p.GetLogger().With(ComponentKey, name)
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *slogProvider) SetLevel(level Level) {
	p.min.Set(slog.Level(level))
}

var (
	providerMu      sync.RWMutex
	currentProvider LoggerProvider = newSlogProvider()
)

// SetLoggerProvider replaces the package-level provider. Passing nil restores
// the default slog-backed provider.
func SetLoggerProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	if p == nil {
		currentProvider = newSlogProvider()
		return
	}
	currentProvider = p
}

// GetLogger returns the default logger from the current provider.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return currentProvider.GetLogger()
}

// GetLoggerWithName returns a logger tagged with a component name, e.g.
// "model_selection.permutation".
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return currentProvider.GetLoggerWithName(name)
}

// SetLevel sets the minimum level on the current provider.
func SetLevel(level Level) {
	providerMu.RLock()
	defer providerMu.RUnlock()
	currentProvider.SetLevel(level)
}
