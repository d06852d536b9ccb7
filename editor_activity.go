package globalstyles

import (
	"context"

	"github.com/goliatone/go-global-styles/pkg/activity"
)

// WithActivityHooks attaches hooks notified after every write. Nil hooks
// are dropped.
func WithActivityHooks(hooks ...activity.Hook) Option {
	compact := activity.Hooks(hooks).Compact()
	return func(cfg *config) {
		cfg.hooks = append(cfg.hooks, compact...)
	}
}

// ActivityHooks returns a copy of the attached hooks.
func (e *Editor) ActivityHooks() activity.Hooks {
	if e == nil {
		return nil
	}
	return e.emitter.Hooks()
}

// emit forwards event to the hooks. Hook failures are logged and never undo
// the write that produced the event.
func (e *Editor) emit(ctx context.Context, event activity.Event) {
	if !e.emitter.Enabled() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	event.Theme = e.cfg.theme
	event.ActorID = e.cfg.actor
	if err := e.emitter.Emit(ctx, event); err != nil {
		e.cfg.logger.LogResolve(ResolverLogEvent{
			Op:       "activity",
			Theme:    e.cfg.theme,
			Path:     event.Path,
			Block:    event.Block,
			Source:   event.Tier,
			Revision: event.Revision,
			Err:      err,
		})
	}
}

func writeEvent(verb string, path Path, block string, old, value any, revision uint64) activity.Event {
	return activity.Event{
		Verb:     verb,
		Tier:     SourceUser.String(),
		Path:     path.String(),
		Block:    block,
		OldValue: old,
		NewValue: value,
		Revision: revision,
	}
}

func settingUpdatedEvent(path Path, block string, old, value any, revision uint64) activity.Event {
	return writeEvent(activity.VerbSettingUpdated, path, block, old, value, revision)
}

func styleUpdatedEvent(path Path, block string, old, value any, revision uint64) activity.Event {
	return writeEvent(activity.VerbStyleUpdated, path, block, old, value, revision)
}

func resetEvent(revision uint64) activity.Event {
	return activity.Event{Verb: activity.VerbReset, Tier: SourceUser.String(), Revision: revision}
}

func baseReplacedEvent(revision uint64) activity.Event {
	return activity.Event{Verb: activity.VerbBaseReplaced, Tier: SourceBase.String(), Revision: revision}
}
