package globalstyles

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-global-styles/blocks"
	"github.com/goliatone/go-global-styles/layering"
	"github.com/goliatone/go-global-styles/pkg/activity"
)

// Editor owns the current Tiers of an editing session. Reads are served from
// an immutable snapshot; writes replace it copy-on-write, bump the revision,
// emit activity events and notify subscribers.
type Editor struct {
	mu          sync.RWMutex
	tiers       Tiers
	revision    uint64
	cfg         config
	cacheKeys   string
	resolver    *Resolver
	emitter     *activity.Emitter
	subscribers map[uint64]func(Tiers)
	nextSubID   uint64
}

// NewEditor validates base and user and builds an Editor around them. A nil
// user tier is allowed and reports CanReset false.
func NewEditor(base, user Document, opts ...Option) (*Editor, error) {
	for tier, doc := range map[string]Document{"base": base, "user": user} {
		if err := ValidateDocument(doc); err != nil {
			return nil, fmt.Errorf("globalstyles: %s tier: %w", tier, err)
		}
	}
	cfg := applyOptions(opts)
	if cfg.cache == nil {
		cfg.cache = NewMemoryCache()
	}
	return &Editor{
		tiers:       NewTiers(base, user),
		revision:    1,
		cfg:         cfg,
		cacheKeys:   "settings:" + uuid.NewString() + "|",
		resolver:    newResolver(cfg),
		emitter:     activity.NewEmitter(cfg.activity, cfg.hooks...),
		subscribers: make(map[uint64]func(Tiers)),
	}, nil
}

// Tiers returns the current snapshot. Callers must treat it as read-only.
func (e *Editor) Tiers() Tiers {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tiers
}

// Revision increases by one on every write.
func (e *Editor) Revision() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.revision
}

// Resolver returns the resolver configured for this editor.
func (e *Editor) Resolver() *Resolver {
	return e.resolver
}

// GetSetting resolves a setting. The zero path returns the memoised
// aggregate for block.
func (e *Editor) GetSetting(path Path, block string, source Source) (any, error) {
	if path.IsZero() {
		return e.Settings(block, source)
	}
	start := time.Now()
	tiers, revision := e.snapshot()
	value, err := e.resolver.Setting(tiers, path, block, source)
	e.logResolve("get_setting", path, block, source.String(), revision, start, err)
	return value, err
}

// Settings returns the aggregate of every configured setting key for block.
// Repeated calls with unchanged tiers return the same map, which callers
// must not modify.
func (e *Editor) Settings(block string, source Source) (map[string]any, error) {
	tiers, revision := e.snapshot()
	key := fmt.Sprintf("%s%d|%s|%s", e.cacheKeys, revision, block, source)
	if cached, ok := e.cfg.cache.Get(key); ok {
		if settings, ok := cached.(map[string]any); ok {
			return settings, nil
		}
	}
	start := time.Now()
	settings, err := e.resolver.Settings(tiers, block, source)
	e.logResolve("settings", nil, block, source.String(), revision, start, err)
	if err != nil {
		return nil, err
	}
	e.cfg.cache.Set(key, settings)
	return settings, nil
}

// TraceSetting resolves a setting and reports the candidates consulted.
func (e *Editor) TraceSetting(path Path, block string, source Source) (any, Trace, error) {
	tiers, _ := e.snapshot()
	return e.resolver.TraceSetting(tiers, path, block, source)
}

// GetStyle resolves a style with preset references decoded, or stored as-is
// with RawStyle.
func (e *Editor) GetStyle(path Path, block string, source Source, opts ...StyleOption) (any, error) {
	start := time.Now()
	tiers, revision := e.snapshot()
	value, err := e.resolver.Style(tiers, path, block, source, opts...)
	e.logResolve("get_style", path, block, source.String(), revision, start, err)
	return value, err
}

// SetSetting stores value at path in the user tier.
func (e *Editor) SetSetting(ctx context.Context, path Path, block string, value any) error {
	if err := contextErr(ctx); err != nil {
		return resolveError("set_setting", path, block, SourceUser, err)
	}
	if err := e.resolver.checkPath(path); err != nil {
		return resolveError("set_setting", path, block, SourceUser, err)
	}
	start := time.Now()
	var old any
	next, revision := e.commit(func(current Tiers) Tiers {
		old, _ = layering.Get(current.User, settingPath(block, path))
		return e.resolver.WithSetting(current, path, block, value)
	})
	e.logResolve("set_setting", path, block, SourceUser.String(), revision, start, nil)
	e.emit(ctx, settingUpdatedEvent(path, block, old, value, revision))
	e.publish(next)
	return nil
}

// SetStyle stores value at path in the user tier, encoding literals that
// match a preset into preset references unless RawStyle is given.
func (e *Editor) SetStyle(ctx context.Context, path Path, block string, value any, opts ...StyleOption) error {
	if err := contextErr(ctx); err != nil {
		return resolveError("set_style", path, block, SourceUser, err)
	}
	start := time.Now()
	var old, stored any
	next, revision := e.commit(func(current Tiers) Tiers {
		old, _ = layering.Get(current.User, stylePath(block, path))
		updated := e.resolver.WithStyle(current, path, block, value, opts...)
		stored, _ = layering.Get(updated.User, stylePath(block, path))
		return updated
	})
	e.logResolve("set_style", path, block, SourceUser.String(), revision, start, nil)
	e.emit(ctx, styleUpdatedEvent(path, block, old, stored, revision))
	e.publish(next)
	return nil
}

// CanReset reports whether the user tier differs from the empty document.
func (e *Editor) CanReset() bool {
	tiers, _ := e.snapshot()
	return tiers.CanReset()
}

// Reset replaces the user tier with an empty document.
func (e *Editor) Reset(ctx context.Context) error {
	if err := contextErr(ctx); err != nil {
		return resolveError("reset", nil, "", SourceUser, err)
	}
	start := time.Now()
	next, revision := e.commit(Tiers.Reset)
	e.logResolve("reset", nil, "", SourceUser.String(), revision, start, nil)
	e.emit(ctx, resetEvent(revision))
	e.publish(next)
	return nil
}

// SetBase replaces the base tier, typically after the theme file changed on
// disk, and recomputes the merged view.
func (e *Editor) SetBase(ctx context.Context, base Document) error {
	if err := ValidateDocument(base); err != nil {
		return resolveError("set_base", nil, "", SourceBase, err)
	}
	if err := contextErr(ctx); err != nil {
		return resolveError("set_base", nil, "", SourceBase, err)
	}
	start := time.Now()
	cloned := layering.Clone(base)
	next, revision := e.commit(func(current Tiers) Tiers {
		return current.withBase(cloned)
	})
	e.logResolve("set_base", nil, "", SourceBase.String(), revision, start, nil)
	e.emit(ctx, baseReplacedEvent(revision))
	e.publish(next)
	return nil
}

// SupportedPanels lists the style panels applicable to block and element
// using the configured block registry.
func (e *Editor) SupportedPanels(block, element string) []string {
	return blocks.SupportedPanels(e.cfg.registry, block, element, e.cfg.panelFilters...)
}

// BlockType looks up block in the configured registry.
func (e *Editor) BlockType(block string) (blocks.BlockType, bool) {
	if e.cfg.registry == nil || block == "" {
		return blocks.BlockType{}, false
	}
	return e.cfg.registry.BlockType(block)
}

// Subscribe registers fn to receive the tiers produced by every write. The
// returned function removes the subscription.
func (e *Editor) Subscribe(fn func(Tiers)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	e.mu.Lock()
	e.nextSubID++
	id := e.nextSubID
	e.subscribers[id] = fn
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.subscribers, id)
			e.mu.Unlock()
		})
	}
}

func (e *Editor) snapshot() (Tiers, uint64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tiers, e.revision
}

func (e *Editor) commit(update func(Tiers) Tiers) (Tiers, uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tiers = update(e.tiers)
	e.revision++
	e.cfg.cache.DeletePrefix(e.cacheKeys)
	return e.tiers, e.revision
}

func (e *Editor) publish(tiers Tiers) {
	e.mu.RLock()
	subscribers := make([]func(Tiers), 0, len(e.subscribers))
	for _, fn := range e.subscribers {
		subscribers = append(subscribers, fn)
	}
	e.mu.RUnlock()
	for _, fn := range subscribers {
		fn(tiers)
	}
}

func (e *Editor) logResolve(op string, path Path, block, source string, revision uint64, start time.Time, err error) {
	e.cfg.logger.LogResolve(ResolverLogEvent{
		Op:       op,
		Theme:    e.cfg.theme,
		Path:     path.String(),
		Block:    block,
		Source:   source,
		Revision: revision,
		Duration: time.Since(start),
		Err:      err,
	})
}

func contextErr(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}
