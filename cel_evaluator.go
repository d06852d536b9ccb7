package globalstyles

import (
	"reflect"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// NewCELEvaluator returns an Evaluator for CEL expressions. Registered
// functions are reachable as call(name) and call(name, [args]).
func NewCELEvaluator(opts ...EvaluatorOption) Evaluator {
	cfg := applyEvaluatorOptions(opts)
	return newRuleEvaluator[celgo.Program](celEngine{functions: cfg.functions}, cfg)
}

type celEngine struct {
	functions *FunctionRegistry
}

func (celEngine) name() string { return "cel" }

func (e celEngine) compile(expression string) (celgo.Program, error) {
	env, err := e.env()
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	return env.Program(ast)
}

func (e celEngine) run(program celgo.Program, ctx RuleContext) (any, error) {
	out, _, err := program.Eval(ctx.bindings())
	if err != nil {
		return nil, err
	}
	return nativeValue(out), nil
}

// env declares the rule bindings. Supports and settings are dynamic maps so
// rules can probe keys with has() or the in operator.
func (e celEngine) env() (*celgo.Env, error) {
	opts := []celgo.EnvOption{
		celgo.Variable("block", celgo.StringType),
		celgo.Variable("element", celgo.StringType),
		celgo.Variable("supports", celgo.MapType(celgo.StringType, celgo.DynType)),
		celgo.Variable("settings", celgo.MapType(celgo.StringType, celgo.DynType)),
		celgo.Variable("now", celgo.TimestampType),
		celgo.Variable("args", celgo.DynType),
		celgo.Variable("metadata", celgo.DynType),
	}
	if e.functions != nil {
		opts = append(opts, celgo.Function("call",
			celgo.Overload("call_string",
				[]*celgo.Type{celgo.StringType},
				celgo.DynType,
				celgo.UnaryBinding(func(name ref.Val) ref.Val {
					return e.call(name, nil)
				}),
			),
			celgo.Overload("call_string_list",
				[]*celgo.Type{celgo.StringType, celgo.ListType(celgo.DynType)},
				celgo.DynType,
				celgo.BinaryBinding(e.call),
			),
		))
	}
	return celgo.NewEnv(opts...)
}

var (
	nativeListType = reflect.TypeOf([]any{})
	nativeMapType  = reflect.TypeOf(map[string]any{})
)

func (e celEngine) call(nameVal, argsVal ref.Val) ref.Val {
	name, ok := nameVal.Value().(string)
	if !ok {
		return types.NewErr("globalstyles: call name must be string")
	}
	var args []any
	if argsVal != nil {
		native, err := argsVal.ConvertToNative(nativeListType)
		if err != nil {
			return types.NewErr("globalstyles: call arguments: %v", err)
		}
		args, _ = native.([]any)
		for i, arg := range args {
			if val, isVal := arg.(ref.Val); isVal {
				args[i] = nativeValue(val)
			}
		}
	}
	result, err := e.functions.Call(name, args...)
	if err != nil {
		return types.NewErr("%s", err.Error())
	}
	if result == nil {
		return types.NullValue
	}
	return types.DefaultTypeAdapter.NativeToValue(result)
}

// nativeValue unwraps CEL scalars and converts lists and maps into their
// JSON-like Go form so callers can type-switch on plain values.
func nativeValue(value ref.Val) any {
	if value == nil {
		return nil
	}
	if _, isNull := value.(types.Null); isNull {
		return nil
	}
	switch typed := value.Value().(type) {
	case bool, string, int64, uint64, float64:
		return typed
	}
	if native, err := value.ConvertToNative(nativeListType); err == nil {
		return native
	}
	if native, err := value.ConvertToNative(nativeMapType); err == nil {
		return native
	}
	return value.Value()
}
