//go:build js_eval

package globalstyles

import (
	"fmt"

	"github.com/dop251/goja"
)

// NewJSEvaluator returns an Evaluator for JavaScript expressions run by
// goja. Every evaluation gets a fresh runtime.
func NewJSEvaluator(opts ...EvaluatorOption) Evaluator {
	cfg := applyEvaluatorOptions(opts)
	return newRuleEvaluator[*goja.Program](jsEngine{functions: cfg.functions}, cfg)
}

type jsEngine struct {
	functions *FunctionRegistry
}

func (jsEngine) name() string { return "js" }

func (jsEngine) compile(expression string) (*goja.Program, error) {
	return goja.Compile("", fmt.Sprintf("(function(){ return (%s); })()", expression), false)
}

func (e jsEngine) run(program *goja.Program, ctx RuleContext) (any, error) {
	vm := goja.New()
	for key, value := range ctx.bindings() {
		if err := vm.Set(key, value); err != nil {
			return nil, err
		}
	}
	if e.functions != nil {
		if err := vm.Set("call", e.functions.Call); err != nil {
			return nil, err
		}
		for _, name := range e.functions.Names() {
			if err := vm.Set(name, e.functions.bound(name)); err != nil {
				return nil, err
			}
		}
	}
	value, err := vm.RunProgram(program)
	if err != nil {
		return nil, err
	}
	return value.Export(), nil
}
