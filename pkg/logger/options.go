package logger

import (
	"io"
	"log/slog"
)

type options struct {
	format   string
	writer   io.Writer
	level    string
	source   bool
	levelVar *slog.LevelVar
}

// Option configures a logger built by New or Init.
type Option func(*options)

// WithFormat selects "text" or "json" output.
func WithFormat(format string) Option {
	return func(o *options) { o.format = format }
}

// WithWriter sets the output destination.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

// WithLevel sets the initial level.
func WithLevel(level string) Option {
	return func(o *options) { o.level = level }
}

// WithSource toggles the source file:line field.
func WithSource(enabled bool) Option {
	return func(o *options) { o.source = enabled }
}

func withLevelVar(lv *slog.LevelVar) Option {
	return func(o *options) { o.levelVar = lv }
}
