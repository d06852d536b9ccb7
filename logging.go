package globalstyles

import (
	"errors"
	"time"
)

// ResolverLogEvent describes a read or write handled by an Editor.
type ResolverLogEvent struct {
	Op       string
	Theme    string
	Path     string
	Block    string
	Source   string
	Revision uint64
	Duration time.Duration
	Err      error
}

// EvaluatorLogEvent describes one rule evaluation. Phase is set from the
// EvaluationError of a failed rule and is empty on success.
type EvaluatorLogEvent struct {
	Engine   string
	Phase    string
	Expr     string
	Target   string
	Duration time.Duration
	Err      error
}

// Logger records resolver events.
type Logger interface {
	LogResolve(ResolverLogEvent)
}

// EvaluatorLogger records evaluator events.
type EvaluatorLogger interface {
	LogEvaluation(EvaluatorLogEvent)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(ResolverLogEvent)

func (f LoggerFunc) LogResolve(event ResolverLogEvent) {
	if f != nil {
		f(event)
	}
}

// EvaluatorLoggerFunc adapts a function to EvaluatorLogger.
type EvaluatorLoggerFunc func(EvaluatorLogEvent)

func (f EvaluatorLoggerFunc) LogEvaluation(event EvaluatorLogEvent) {
	if f != nil {
		f(event)
	}
}

type discardLogger struct{}

func (discardLogger) LogResolve(ResolverLogEvent)     {}
func (discardLogger) LogEvaluation(EvaluatorLogEvent) {}

// WithLogger attaches a resolver logger. A value that also implements
// EvaluatorLogger receives evaluation events unless WithEvaluatorLogger
// overrides it.
func WithLogger(logger Logger) Option {
	return func(cfg *config) {
		if logger == nil {
			cfg.logger = discardLogger{}
			return
		}
		cfg.logger = logger
		if evalLogger, ok := logger.(EvaluatorLogger); ok && cfg.evalLogger == nil {
			cfg.evalLogger = evalLogger
		}
	}
}

// WithEvaluatorLogger attaches an evaluator logger. Nil discards events.
func WithEvaluatorLogger(logger EvaluatorLogger) Option {
	return func(cfg *config) {
		if logger == nil {
			cfg.evalLogger = discardLogger{}
			return
		}
		cfg.evalLogger = logger
	}
}

func evaluationPhase(err error) string {
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		return evalErr.Phase
	}
	return ""
}
