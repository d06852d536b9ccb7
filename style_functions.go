package globalstyles

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/goliatone/go-global-styles/layering"
	"github.com/goliatone/go-global-styles/presets"
)

// StyleFunctions returns a registry holding the built-in rule helpers:
//
//	ispreset(value)           true for var:preset|… and var(--wp--preset--…)
//	presetslug(value)         the slug of a preset reference, or ""
//	presetvar(family, slug)   the CSS custom property of a preset
//	lookup(object, path)      the value at a dotted path, or nil
//	lightness(color)          CIE L* of a hex color, from 0 to 1
//	isdark(color)             lightness below 0.5
//	colordistance(a, b)       CIEDE2000 distance between two hex colors
//
// The default expr evaluator of an Editor uses these unless replaced.
func StyleFunctions() *FunctionRegistry {
	r := NewFunctionRegistry()
	for _, def := range []struct {
		name  string
		arity int
		fn    Function
	}{
		{"ispreset", 1, isPresetFunc},
		{"presetslug", 1, presetSlugFunc},
		{"presetvar", 2, presetVarFunc},
		{"lookup", 2, lookupFunc},
		{"lightness", 1, lightnessFunc},
		{"isdark", 1, isDarkFunc},
		{"colordistance", 2, colorDistanceFunc},
	} {
		_ = r.Define(def.name, def.arity, def.fn)
	}
	return r
}

func isPresetFunc(args ...any) (any, error) {
	value, _ := args[0].(string)
	ref, ok := presets.ParseReference(value)
	return ok && ref.Kind == "preset", nil
}

func presetSlugFunc(args ...any) (any, error) {
	value, _ := args[0].(string)
	ref, _ := presets.ParseReference(value)
	return ref.Slug(), nil
}

func presetVarFunc(args ...any) (any, error) {
	family, err := stringArg("presetvar", args[0])
	if err != nil {
		return nil, err
	}
	slug, err := stringArg("presetvar", args[1])
	if err != nil {
		return nil, err
	}
	return presets.Reference{Kind: "preset", Path: []string{family, slug}}.CSSVar(), nil
}

func lookupFunc(args ...any) (any, error) {
	object, ok := args[0].(map[string]any)
	if !ok {
		return nil, nil
	}
	path, err := stringArg("lookup", args[1])
	if err != nil {
		return nil, err
	}
	value, _ := layering.Get(object, strings.Split(path, "."))
	return value, nil
}

func lightnessFunc(args ...any) (any, error) {
	color, err := colorArg("lightness", args[0])
	if err != nil {
		return nil, err
	}
	l, _, _ := color.Lab()
	return l, nil
}

func isDarkFunc(args ...any) (any, error) {
	color, err := colorArg("isdark", args[0])
	if err != nil {
		return nil, err
	}
	l, _, _ := color.Lab()
	return l < 0.5, nil
}

func colorDistanceFunc(args ...any) (any, error) {
	a, err := colorArg("colordistance", args[0])
	if err != nil {
		return nil, err
	}
	b, err := colorArg("colordistance", args[1])
	if err != nil {
		return nil, err
	}
	return a.DistanceCIEDE2000(b), nil
}

func stringArg(fn string, arg any) (string, error) {
	value, ok := arg.(string)
	if !ok {
		return "", fmt.Errorf("globalstyles: %s expects a string, got %T", fn, arg)
	}
	return value, nil
}

func colorArg(fn string, arg any) (colorful.Color, error) {
	value, err := stringArg(fn, arg)
	if err != nil {
		return colorful.Color{}, err
	}
	color, err := colorful.Hex(strings.TrimSpace(value))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("globalstyles: %s: %w", fn, err)
	}
	return color, nil
}
