// Package activity reports changes made to global styles documents to
// pluggable hooks such as audit logs.
package activity

import (
	"strings"
	"time"
)

// Verbs emitted for global styles changes.
const (
	VerbSettingUpdated = "global_styles.setting.updated"
	VerbStyleUpdated   = "global_styles.style.updated"
	VerbReset          = "global_styles.reset"
	VerbBaseReplaced   = "global_styles.base.replaced"
)

// Object types attached to events.
const (
	ObjectTypeSetting  = "global_styles.setting"
	ObjectTypeStyle    = "global_styles.style"
	ObjectTypeDocument = "global_styles"
)

var objectTypes = map[string]string{
	VerbSettingUpdated: ObjectTypeSetting,
	VerbStyleUpdated:   ObjectTypeStyle,
	VerbReset:          ObjectTypeDocument,
	VerbBaseReplaced:   ObjectTypeDocument,
}

// Event describes one change to a theme's tiers. Identity fields are plain
// strings so callers are not tied to a UUID type.
type Event struct {
	Verb string
	// ObjectType defaults from Verb for the verbs declared here.
	ObjectType string
	Theme      string
	Tier       string
	Block      string
	Path       string
	OldValue   any
	NewValue   any
	Revision   uint64

	ActorID  string
	UserID   string
	TenantID string
	Channel  string
	// Extra is merged into Data below the typed fields.
	Extra      map[string]any
	OccurredAt time.Time
}

// ObjectID is the theme, or the path for events without one, or the object
// type as a last resort.
func (e Event) ObjectID() string {
	switch {
	case e.Theme != "":
		return e.Theme
	case e.Path != "":
		return e.Path
	default:
		return e.ObjectType
	}
}

// Valid reports whether the event carries enough to be recorded.
func (e Event) Valid() bool {
	return e.Verb != "" && e.ObjectType != ""
}

// Data flattens the typed fields and Extra into one map. It returns nil when
// there is nothing to report.
func (e Event) Data() map[string]any {
	data := make(map[string]any, len(e.Extra)+7)
	for key, value := range e.Extra {
		data[key] = value
	}
	for key, value := range map[string]string{
		"theme": e.Theme,
		"tier":  e.Tier,
		"block": e.Block,
		"path":  e.Path,
	} {
		if value != "" {
			data[key] = value
		}
	}
	if e.Revision > 0 {
		data["revision"] = e.Revision
	}
	if e.OldValue != nil {
		data["old_value"] = e.OldValue
	}
	if e.NewValue != nil {
		data["new_value"] = e.NewValue
	}
	if len(data) == 0 {
		return nil
	}
	return data
}

// Normalize trims identifiers, defaults ObjectType and OccurredAt, and
// copies Extra so hooks can keep the event.
func Normalize(event Event) Event {
	out := event
	out.Verb = strings.TrimSpace(event.Verb)
	out.ObjectType = strings.TrimSpace(event.ObjectType)
	if out.ObjectType == "" {
		out.ObjectType = objectTypes[out.Verb]
	}
	out.Theme = strings.TrimSpace(event.Theme)
	out.ActorID = strings.TrimSpace(event.ActorID)
	out.UserID = strings.TrimSpace(event.UserID)
	out.TenantID = strings.TrimSpace(event.TenantID)
	out.Channel = strings.TrimSpace(event.Channel)
	if len(event.Extra) > 0 {
		out.Extra = make(map[string]any, len(event.Extra))
		for key, value := range event.Extra {
			out.Extra[key] = value
		}
	} else {
		out.Extra = nil
	}
	if out.OccurredAt.IsZero() {
		out.OccurredAt = time.Now()
	}
	return out
}
