package globalstyles

import (
	"time"

	"github.com/goliatone/go-global-styles/blocks"
	"github.com/goliatone/go-global-styles/pkg/activity"
	"github.com/goliatone/go-global-styles/presets"
)

// RuleContext carries inputs needed when evaluating a rule expression. Rules
// see the block's declared supports and the resolved settings for the block.
type RuleContext struct {
	Block    string
	Element  string
	Supports map[string]any
	Settings map[string]any
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
}

func (ctx RuleContext) withDefaultNow() RuleContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx RuleContext) withDefaultMaps() RuleContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	if ctx.Supports == nil {
		ctx.Supports = map[string]any{}
	}
	if ctx.Settings == nil {
		ctx.Settings = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) withDefaults() RuleContext {
	return ctx.withDefaultNow().withDefaultMaps()
}

// label identifies the rule target in logs and errors.
func (ctx RuleContext) label() string {
	target := ctx.Block
	if target == "" {
		target = "root"
	}
	if ctx.Element != "" {
		target += "/" + ctx.Element
	}
	return target
}

// bindings returns the variables every evaluator exposes to expressions.
func (ctx RuleContext) bindings() map[string]any {
	return map[string]any{
		"block":    ctx.Block,
		"element":  ctx.Element,
		"supports": ctx.Supports,
		"settings": ctx.Settings,
		"now":      ctx.timestamp(),
		"args":     ctx.Args,
		"metadata": ctx.Metadata,
	}
}

// Evaluator executes expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// Option configures a Resolver or an Editor.
type Option func(*config)

type config struct {
	settingKeys  []string
	codec        presets.Codec
	strictPaths  bool
	registry     blocks.Registry
	panelFilters []blocks.FilterOption
	cache        SettingsCache
	evaluator    Evaluator
	programCache ProgramCache
	functions    *FunctionRegistry
	logger       Logger
	evalLogger   EvaluatorLogger
	hooks        activity.Hooks
	activity     activity.Config
	actor        string
	theme        string
}

func applyOptions(opts []Option) config {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.settingKeys == nil {
		cfg.settingKeys = DefaultSettingKeys()
	}
	if cfg.codec == nil {
		cfg.codec = presets.Default()
	}
	if cfg.logger == nil {
		cfg.logger = discardLogger{}
	}
	if cfg.evalLogger == nil {
		cfg.evalLogger = discardLogger{}
	}
	return cfg
}

// WithSettingKeys replaces the setting keys gathered by aggregate reads and
// checked by strict paths.
func WithSettingKeys(keys []string) Option {
	return func(cfg *config) {
		cfg.settingKeys = append([]string{}, keys...)
	}
}

// WithPresetCodec replaces the codec used to encode style writes and decode
// style reads.
func WithPresetCodec(codec presets.Codec) Option {
	return func(cfg *config) {
		cfg.codec = codec
	}
}

// WithStrictPaths rejects setting paths unrelated to the configured keys.
func WithStrictPaths(strict bool) Option {
	return func(cfg *config) {
		cfg.strictPaths = strict
	}
}

// WithBlockRegistry supplies block type metadata for panel filtering and
// rule evaluation.
func WithBlockRegistry(registry blocks.Registry) Option {
	return func(cfg *config) {
		cfg.registry = registry
	}
}

// WithPanelFilter forwards options to blocks.SupportedPanels.
func WithPanelFilter(opts ...blocks.FilterOption) Option {
	return func(cfg *config) {
		cfg.panelFilters = append(cfg.panelFilters, opts...)
	}
}

// WithActor sets the actor ID attached to activity events.
func WithActor(actorID string) Option {
	return func(cfg *config) {
		cfg.actor = actorID
	}
}

// WithTheme names the edited document in activity events and logs.
func WithTheme(theme string) Option {
	return func(cfg *config) {
		cfg.theme = theme
	}
}

// WithActivityChannel overrides the channel stamped on activity events.
func WithActivityChannel(channel string) Option {
	return func(cfg *config) {
		cfg.activity.Channel = channel
	}
}

// WithActivityVerbs limits the emitted events to verbs.
func WithActivityVerbs(verbs ...string) Option {
	return func(cfg *config) {
		cfg.activity.Verbs = append([]string(nil), verbs...)
	}
}
