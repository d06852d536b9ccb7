package globalstyles

import (
	"errors"
	"fmt"
)

// ErrEmptyExpression is returned for a rule without an expression.
var ErrEmptyExpression = errors.New("globalstyles: expression must not be empty")

// Evaluation phases reported by EvaluationError.
const (
	PhaseCompile = "compile"
	PhaseRun     = "run"
)

// EvaluationError reports a rule that failed to compile or run, with the
// engine and the block or element it was evaluated for.
type EvaluationError struct {
	Engine string
	Phase  string
	Expr   string
	Target string
	Err    error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	expr := "<empty>"
	if e.Expr != "" {
		expr = fmt.Sprintf("%q", e.Expr)
	}
	target := e.Target
	if target == "" {
		target = "-"
	}
	phase := e.Phase
	if phase == "" {
		phase = "evaluate"
	}
	return fmt.Sprintf("globalstyles: %s %s of %s for %s: %v", e.Engine, phase, expr, target, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func errEmptyExpression(engine string) error {
	return &EvaluationError{Engine: engine, Phase: PhaseCompile, Err: ErrEmptyExpression}
}

// wrapEvaluationError attaches rule metadata to err. Fields already set on
// an EvaluationError in the chain are kept.
func wrapEvaluationError(engine, phase, expr, target string, err error) error {
	if err == nil {
		return nil
	}
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		if evalErr.Engine == "" {
			evalErr.Engine = engine
		}
		if evalErr.Phase == "" {
			evalErr.Phase = phase
		}
		if evalErr.Expr == "" {
			evalErr.Expr = expr
		}
		if evalErr.Target == "" {
			evalErr.Target = target
		}
		return evalErr
	}
	return &EvaluationError{
		Engine: engine,
		Phase:  phase,
		Expr:   expr,
		Target: target,
		Err:    err,
	}
}
