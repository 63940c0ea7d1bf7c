package search

import "log/slog"

// Option configures a search component.
type Option func(*settings)

type settings struct {
	logger *slog.Logger
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// applySettings resolves options against a component default logger.
func applySettings(opts []Option, fallback *slog.Logger) *slog.Logger {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger != nil {
		return s.logger
	}
	return fallback
}
