package panels

import (
	"fmt"
	"sort"

	globalstyles "github.com/goliatone/go-global-styles"
)

// Panel groups shown as editing screens.
const (
	GroupColor      = "color"
	GroupBorder     = "border"
	GroupShadow     = "shadow"
	GroupTypography = "typography"
	GroupDimensions = "dimensions"
)

// DefaultRules returns the expr-lang rules deciding whether a panel group is
// shown. Rules see the supported panels as args.panels next to the block's
// supports and merged settings.
func DefaultRules() map[string]string {
	return map[string]string{
		GroupColor: `any(["color", "backgroundColor", "background", "linkColor"], # in args.panels)`,
		GroupBorder: `("borderColor" in args.panels && settings.border?.color == true) ||
			("borderRadius" in args.panels && settings.border?.radius == true) ||
			("borderStyle" in args.panels && settings.border?.style == true) ||
			("borderWidth" in args.panels && settings.border?.width == true)`,
		GroupShadow:     `"shadow" in args.panels`,
		GroupTypography: `any(["fontFamily", "fontSize", "fontStyle", "fontWeight", "letterSpacing", "lineHeight", "textDecoration", "textTransform"], # in args.panels)`,
		GroupDimensions: `any(["contentSize", "wideSize", "padding", "margin", "blockGap", "minHeight"], # in args.panels)`,
	}
}

// Option configures a Visibility.
type Option func(*Visibility)

// WithEvaluator replaces the evaluator. Rules must be written for it.
func WithEvaluator(evaluator globalstyles.Evaluator) Option {
	return func(v *Visibility) {
		v.evaluator = evaluator
	}
}

// WithRule adds or replaces the rule of group.
func WithRule(group, expression string) Option {
	return func(v *Visibility) {
		v.rules[group] = expression
	}
}

// Visibility evaluates panel group rules.
type Visibility struct {
	evaluator globalstyles.Evaluator
	rules     map[string]string
}

// NewVisibility builds a Visibility with DefaultRules and a cached expr
// evaluator carrying the style functions unless configured otherwise.
func NewVisibility(opts ...Option) *Visibility {
	v := &Visibility{rules: DefaultRules()}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	if v.evaluator == nil {
		v.evaluator = globalstyles.NewExprEvaluator(
			globalstyles.EvaluatorWithProgramCache(globalstyles.NewProgramCache()),
			globalstyles.EvaluatorWithFunctions(globalstyles.StyleFunctions()),
		)
	}
	return v
}

var defaultVisibility = NewVisibility()

// Visible reports whether group is shown for block and element with the
// default rules.
func Visible(ed *globalstyles.Editor, block, element, group string) (bool, error) {
	return defaultVisibility.Visible(ed, block, element, group)
}

// Visible reports whether group is shown for block and element.
func (v *Visibility) Visible(ed *globalstyles.Editor, block, element, group string) (bool, error) {
	rule, ok := v.rules[group]
	if !ok {
		return false, fmt.Errorf("panels: unknown panel group %q", group)
	}
	ctx, err := ruleContext(ed, block, element)
	if err != nil {
		return false, err
	}
	return v.evaluate(ctx, rule)
}

// Groups returns the sorted panel groups shown for block and element.
func (v *Visibility) Groups(ed *globalstyles.Editor, block, element string) ([]string, error) {
	ctx, err := ruleContext(ed, block, element)
	if err != nil {
		return nil, err
	}
	groups := make([]string, 0, len(v.rules))
	for group, rule := range v.rules {
		shown, err := v.evaluate(ctx, rule)
		if err != nil {
			return nil, err
		}
		if shown {
			groups = append(groups, group)
		}
	}
	sort.Strings(groups)
	return groups, nil
}

func (v *Visibility) evaluate(ctx globalstyles.RuleContext, rule string) (bool, error) {
	result, err := v.evaluator.Evaluate(ctx, rule)
	if err != nil {
		return false, err
	}
	shown, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("panels: rule %q returned %T, want bool", rule, result)
	}
	return shown, nil
}

func ruleContext(ed *globalstyles.Editor, block, element string) (globalstyles.RuleContext, error) {
	settings, err := ed.Settings(block, globalstyles.SourceAll)
	if err != nil {
		return globalstyles.RuleContext{}, err
	}
	var supports map[string]any
	if bt, ok := ed.BlockType(block); ok {
		supports = bt.Supports
	}
	panels := ed.SupportedPanels(block, element)
	listed := make([]any, len(panels))
	for i, panel := range panels {
		listed[i] = panel
	}
	return globalstyles.RuleContext{
		Block:    block,
		Element:  element,
		Supports: supports,
		Settings: settings,
		Args:     map[string]any{"panels": listed},
	}, nil
}
