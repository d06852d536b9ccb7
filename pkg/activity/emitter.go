package activity

import (
	"context"
	"strings"
)

// DefaultChannel is stamped on events emitted without a channel.
const DefaultChannel = "global-styles"

// Config controls what an Emitter forwards.
type Config struct {
	Channel string
	// Verbs limits emission to the listed verbs. Empty means all.
	Verbs []string
}

// Emitter stamps defaults on events and forwards them to hooks.
type Emitter struct {
	hooks   Hooks
	channel string
	verbs   map[string]struct{}
}

// NewEmitter builds an Emitter. Nil hooks are dropped.
func NewEmitter(cfg Config, hooks ...Hook) *Emitter {
	channel := strings.TrimSpace(cfg.Channel)
	if channel == "" {
		channel = DefaultChannel
	}
	var verbs map[string]struct{}
	if len(cfg.Verbs) > 0 {
		verbs = make(map[string]struct{}, len(cfg.Verbs))
		for _, verb := range cfg.Verbs {
			verbs[strings.TrimSpace(verb)] = struct{}{}
		}
	}
	return &Emitter{
		hooks:   Hooks(hooks).Compact(),
		channel: channel,
		verbs:   verbs,
	}
}

// Enabled reports whether any hook is attached.
func (e *Emitter) Enabled() bool {
	return e != nil && len(e.hooks) > 0
}

// Hooks returns a copy of the attached hooks.
func (e *Emitter) Hooks() Hooks {
	if e == nil {
		return nil
	}
	return append(Hooks(nil), e.hooks...)
}

// Emit forwards event unless its verb is filtered out.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() {
		return nil
	}
	if e.verbs != nil {
		if _, ok := e.verbs[strings.TrimSpace(event.Verb)]; !ok {
			return nil
		}
	}
	if strings.TrimSpace(event.Channel) == "" {
		event.Channel = e.channel
	}
	return e.hooks.Notify(ctx, event)
}
