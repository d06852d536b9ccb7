package globalstyles

import "time"

// WithEvaluator configures the evaluator used by EvaluateRule. Without it the
// editor builds an expr-lang evaluator on first use.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *config) {
		cfg.evaluator = e
	}
}

// EvaluateRule runs expression against the supports declared by block and
// the merged settings resolved for it. An empty block targets the root.
func (e *Editor) EvaluateRule(block, element, expression string) (any, error) {
	if expression == "" {
		return nil, ErrEmptyExpression
	}
	settings, err := e.Settings(block, SourceAll)
	if err != nil {
		return nil, err
	}
	var supports map[string]any
	if bt, ok := e.BlockType(block); ok {
		supports = bt.Supports
	}
	return e.EvaluateWith(RuleContext{
		Block:    block,
		Element:  element,
		Supports: supports,
		Settings: settings,
	}, expression)
}

// EvaluateWith runs expression against a caller-built context.
func (e *Editor) EvaluateWith(ctx RuleContext, expression string) (any, error) {
	if expression == "" {
		return nil, ErrEmptyExpression
	}
	evaluator, err := e.resolveEvaluator()
	if err != nil {
		return nil, err
	}
	ctx = ctx.withDefaults()
	engine := evaluatorEngineName(evaluator)
	start := time.Now()
	value, evalErr := evaluator.Evaluate(ctx, expression)
	duration := time.Since(start)
	evalErr = wrapEvaluationError(engine, "", expression, ctx.label(), evalErr)
	e.cfg.evalLogger.LogEvaluation(EvaluatorLogEvent{
		Engine:   engine,
		Phase:    evaluationPhase(evalErr),
		Expr:     expression,
		Target:   ctx.label(),
		Duration: duration,
		Err:      evalErr,
	})
	if evalErr != nil {
		return nil, evalErr
	}
	return value, nil
}

func (e *Editor) resolveEvaluator() (Evaluator, error) {
	e.mu.RLock()
	evaluator := e.cfg.evaluator
	e.mu.RUnlock()
	if evaluator != nil {
		return evaluator, nil
	}

	functions := e.cfg.functions
	if functions == nil {
		functions = StyleFunctions()
	}
	opts := []EvaluatorOption{EvaluatorWithFunctions(functions)}
	if cache := e.cfg.programCache; cache != nil {
		opts = append(opts, EvaluatorWithProgramCache(cache))
	}
	defaultEvaluator := NewExprEvaluator(opts...)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cfg.evaluator == nil {
		e.cfg.evaluator = defaultEvaluator
	}
	return e.cfg.evaluator, nil
}

func evaluatorEngineName(e Evaluator) string {
	switch typed := e.(type) {
	case nil:
		return "unknown"
	case interface{ Engine() string }:
		return typed.Engine()
	default:
		return "custom"
	}
}
