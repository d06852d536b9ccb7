// Package zerologger adapts the resolver and evaluator log hooks to zerolog.
package zerologger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	globalstyles "github.com/goliatone/go-global-styles"
)

// Config captures options for building a base logger.
type Config struct {
	Level   string    // optional log level ("debug", "info", etc.)
	Output  io.Writer // optional writer (defaults to os.Stderr)
	Service string    // optional service name attached to every entry
}

// New builds a zerolog logger from cfg. Unknown levels fall back to info.
func New(cfg Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
			level = parsed
		}
	} else if env := os.Getenv("LOG_LEVEL"); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			level = parsed
		}
	}
	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}
	service := cfg.Service
	if service == "" {
		service = "global-styles"
	}
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(writer).Level(level).With().
		Timestamp().
		Str("service", service).
		Logger()
}

// Logger implements globalstyles.Logger and globalstyles.EvaluatorLogger.
// Successful resolutions log at debug, failures at warn.
type Logger struct {
	log zerolog.Logger
}

var (
	_ globalstyles.Logger          = Logger{}
	_ globalstyles.EvaluatorLogger = Logger{}
)

// NewLogger wraps logger, tagging entries with the component name.
func NewLogger(logger zerolog.Logger) Logger {
	return Logger{log: logger.With().Str("component", "globalstyles").Logger()}
}

// LogResolve records one resolver operation.
func (l Logger) LogResolve(event globalstyles.ResolverLogEvent) {
	entry := l.log.Debug()
	if event.Err != nil {
		entry = l.log.Warn().Err(event.Err)
	}
	entry = entry.
		Str("event", "globalstyles."+event.Op).
		Str("source", event.Source).
		Dur("duration", event.Duration)
	if event.Theme != "" {
		entry = entry.Str("theme", event.Theme)
	}
	if event.Path != "" {
		entry = entry.Str("path", event.Path)
	}
	if event.Block != "" {
		entry = entry.Str("block", event.Block)
	}
	if event.Revision > 0 {
		entry = entry.Uint64("revision", event.Revision)
	}
	entry.Msg("resolve")
}

// LogEvaluation records one rule evaluation.
func (l Logger) LogEvaluation(event globalstyles.EvaluatorLogEvent) {
	entry := l.log.Debug()
	if event.Err != nil {
		entry = l.log.Warn().Err(event.Err)
	}
	entry.
		Str("event", "globalstyles.evaluate").
		Str("engine", event.Engine).
		Str("phase", event.Phase).
		Str("expr", event.Expr).
		Str("target", event.Target).
		Dur("duration", event.Duration).
		Msg("evaluate")
}
