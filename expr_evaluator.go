package globalstyles

import (
	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// NewExprEvaluator returns an Evaluator for expr-lang expressions. Missing
// keys read as nil, and the optional chaining operator works on settings
// that may be absent, e.g. settings.border?.color == true.
func NewExprEvaluator(opts ...EvaluatorOption) Evaluator {
	cfg := applyEvaluatorOptions(opts)
	return newRuleEvaluator[*exprvm.Program](exprEngine{functions: cfg.functions}, cfg)
}

type exprEngine struct {
	functions *FunctionRegistry
}

func (exprEngine) name() string { return "expr" }

func (e exprEngine) compile(expression string) (*exprvm.Program, error) {
	options := []exprlang.Option{
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	}
	for _, name := range e.functions.Names() {
		options = append(options, exprlang.Function(name, e.functions.bound(name)))
	}
	return exprlang.Compile(expression, options...)
}

func (e exprEngine) run(program *exprvm.Program, ctx RuleContext) (any, error) {
	env := ctx.bindings()
	if e.functions != nil {
		env["call"] = e.functions.Call
	}
	return exprlang.Run(program, env)
}
