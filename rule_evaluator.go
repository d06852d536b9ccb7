package globalstyles

import "fmt"

// ruleEngine is the language specific half of an evaluator: it turns an
// expression into a program P and runs P against a context.
type ruleEngine[P any] interface {
	name() string
	compile(expression string) (P, error)
	run(program P, ctx RuleContext) (any, error)
}

// ruleEvaluator adds program caching and error wrapping to a ruleEngine.
type ruleEvaluator[P any] struct {
	engine ruleEngine[P]
	cache  ProgramCache
}

func newRuleEvaluator[P any](engine ruleEngine[P], cfg evaluatorConfig) *ruleEvaluator[P] {
	return &ruleEvaluator[P]{engine: engine, cache: cfg.cache}
}

// Engine names the expression language.
func (e *ruleEvaluator[P]) Engine() string {
	return e.engine.name()
}

func (e *ruleEvaluator[P]) Evaluate(ctx RuleContext, expression string) (any, error) {
	if expression == "" {
		return nil, errEmptyExpression(e.engine.name())
	}
	ctx = ctx.withDefaults()
	program, err := e.program(expression)
	if err != nil {
		return nil, wrapEvaluationError(e.engine.name(), PhaseCompile, expression, ctx.label(), err)
	}
	return e.run(program, expression, ctx)
}

func (e *ruleEvaluator[P]) Compile(expression string, _ ...CompileOption) (CompiledRule, error) {
	if expression == "" {
		return nil, errEmptyExpression(e.engine.name())
	}
	program, err := e.program(expression)
	if err != nil {
		return nil, wrapEvaluationError(e.engine.name(), PhaseCompile, expression, "", err)
	}
	return &compiledRule[P]{evaluator: e, program: program, expression: expression}, nil
}

func (e *ruleEvaluator[P]) program(expression string) (P, error) {
	key := e.engine.name() + ":" + expression
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			if program, ok := cached.(P); ok {
				return program, nil
			}
		}
	}
	program, err := e.engine.compile(expression)
	if err != nil {
		var zero P
		return zero, err
	}
	if e.cache != nil {
		e.cache.Set(key, program)
	}
	return program, nil
}

func (e *ruleEvaluator[P]) run(program P, expression string, ctx RuleContext) (any, error) {
	result, err := e.engine.run(program, ctx)
	if err != nil {
		return nil, wrapEvaluationError(e.engine.name(), PhaseRun, expression, ctx.label(), err)
	}
	return result, nil
}

type compiledRule[P any] struct {
	evaluator  *ruleEvaluator[P]
	program    P
	expression string
}

func (r *compiledRule[P]) Evaluate(ctx RuleContext) (any, error) {
	if r.evaluator == nil {
		return nil, fmt.Errorf("globalstyles: compiled rule missing evaluator")
	}
	return r.evaluator.run(r.program, r.expression, ctx.withDefaults())
}
