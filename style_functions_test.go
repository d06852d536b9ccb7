package globalstyles

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestStyleFunctions(t *testing.T) {
	functions := StyleFunctions()
	cases := []struct {
		name string
		args []any
		want any
	}{
		{name: "ispreset", args: []any{"var:preset|color|primary"}, want: true},
		{name: "ispreset", args: []any{"var(--wp--preset--color--primary)"}, want: true},
		{name: "ispreset", args: []any{"var:custom|spacing|outer"}, want: false},
		{name: "ispreset", args: []any{42.0}, want: false},
		{name: "presetslug", args: []any{"var:preset|font-size|large"}, want: "large"},
		{name: "presetslug", args: []any{"#fff"}, want: ""},
		{name: "presetvar", args: []any{"color", "primary"}, want: "var(--wp--preset--color--primary)"},
		{name: "lookup", args: []any{map[string]any{"border": map[string]any{"color": true}}, "border.color"}, want: true},
		{name: "lookup", args: []any{map[string]any{}, "border.color"}, want: nil},
		{name: "lookup", args: []any{"not a map", "a"}, want: nil},
		{name: "isdark", args: []any{"#111111"}, want: true},
		{name: "IsDark", args: []any{"#f9f9f9"}, want: false},
	}
	for _, tc := range cases {
		got, err := functions.Call(tc.name, tc.args...)
		if err != nil {
			t.Fatalf("%s%v: %v", tc.name, tc.args, err)
		}
		if got != tc.want {
			t.Fatalf("%s%v: expected %v, got %v", tc.name, tc.args, tc.want, got)
		}
	}

	black, _ := functions.Call("lightness", "#000")
	white, _ := functions.Call("lightness", "#ffffff")
	if math.Abs(black.(float64)) > 1e-6 || math.Abs(white.(float64)-1) > 1e-3 {
		t.Fatalf("unexpected lightness range %v..%v", black, white)
	}
	same, _ := functions.Call("colordistance", "#336699", "#336699")
	far, _ := functions.Call("colordistance", "#000000", "#ffffff")
	if same.(float64) > 1e-6 || far.(float64) < 0.5 {
		t.Fatalf("unexpected distances %v %v", same, far)
	}
}

func TestStyleFunctionErrors(t *testing.T) {
	functions := StyleFunctions()
	if _, err := functions.Call("isdark"); err == nil || !strings.Contains(err.Error(), "expects 1 argument(s), got 0") {
		t.Fatalf("expected arity error, got %v", err)
	}
	if _, err := functions.Call("isdark", "not-a-color"); err == nil {
		t.Fatalf("expected color parse error")
	}
	if _, err := functions.Call("presetvar", "color", 1.0); err == nil {
		t.Fatalf("expected type error")
	}
	if _, err := functions.Call("missing"); err == nil {
		t.Fatalf("expected unknown function error")
	}
	if err := functions.Define("ISDARK", 1, func(...any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected case-insensitive duplicate to fail")
	}
	if err := functions.Register(" ", func(...any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected empty name to fail")
	}
}

func TestStyleFunctionsAcrossEvaluators(t *testing.T) {
	ctx := RuleContext{
		Block: "core/group",
		Settings: map[string]any{
			"color": map[string]any{"background": "#111111"},
		},
	}
	for _, factory := range evaluatorFactories {
		factory := factory
		t.Run(factory.name, func(t *testing.T) {
			evaluator := buildEvaluator(t, factory.name, EvaluatorWithFunctions(StyleFunctions()))
			got, err := evaluator.Evaluate(ctx, factory.call("isdark", "settings.color.background"))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != true {
				t.Fatalf("expected dark background, got %v", got)
			}
			got, err = evaluator.Evaluate(ctx, factory.call("presetvar", `"color"`, `"primary"`))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != "var(--wp--preset--color--primary)" {
				t.Fatalf("unexpected preset var %v", got)
			}
		})
	}
}

func TestEditorDefaultEvaluatorFunctions(t *testing.T) {
	ed := newTestEditor(t)
	got, err := ed.EvaluateRule("", "", `ispreset("var:preset|color|primary") && !isdark("#ffffff")`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != true {
		t.Fatalf("expected built-ins on the default evaluator, got %v", got)
	}

	overridden := newTestEditor(t, WithCustomFunction("isdark", func(...any) (any, error) {
		return "custom", nil
	}))
	got, err = overridden.EvaluateRule("", "", `isdark("#ffffff")`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "custom" {
		t.Fatalf("expected custom function to replace the built-in, got %v", got)
	}

	bare := newTestEditor(t, WithFunctionRegistry(NewFunctionRegistry()))
	_, err = bare.EvaluateRule("", "", `isdark("#ffffff")`)
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) || evalErr.Engine != "expr" {
		t.Fatalf("expected evaluation error without built-ins, got %v", err)
	}
}
