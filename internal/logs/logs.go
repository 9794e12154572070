// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package logs builds the structured loggers used by the CLI.
package logs

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Options configures New.
type Options struct {
	// Level filters records written to Writer.
	Level slog.Leveler
	// Writer receives human-readable records, usually stderr.
	Writer io.Writer
	// TraceWriter, if set, receives every record including debug ones as
	// JSON lines.
	TraceWriter io.Writer
}

// New returns a logger fanning records out to the configured writers.
func New(opts Options) *slog.Logger {
	var handlers []slog.Handler
	if opts.Writer != nil {
		handlers = append(handlers, slog.NewTextHandler(opts.Writer, &slog.HandlerOptions{
			Level: opts.Level,
		}))
	}
	if opts.TraceWriter != nil {
		handlers = append(handlers, slog.NewJSONHandler(opts.TraceWriter, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	if len(handlers) == 0 {
		return Discard()
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel parses debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
