// Package usersink records global styles activity in a go-users activity
// sink.
package usersink

import (
	"context"
	"strings"

	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"

	"github.com/goliatone/go-global-styles/pkg/activity"
)

// Hook adapts activity events to a go-users ActivitySink.
type Hook struct {
	Sink usertypes.ActivitySink
	// UserID is used for events that carry no user of their own.
	UserID string
}

var _ activity.Hook = Hook{}

// Notify maps event to an ActivityRecord. Identifiers that are not UUIDs
// are recorded as uuid.Nil and kept in the record data.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil {
		return nil
	}
	event = activity.Normalize(event)
	if !event.Valid() {
		return nil
	}
	if event.UserID == "" {
		event.UserID = strings.TrimSpace(h.UserID)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return h.Sink.Log(ctx, Record(event))
}

// Record converts a normalized event into an ActivityRecord.
func Record(event activity.Event) usertypes.ActivityRecord {
	data := event.Data()
	parse := func(key, raw string) uuid.UUID {
		if raw == "" {
			return uuid.Nil
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			if data == nil {
				data = map[string]any{}
			}
			data[key] = raw
			return uuid.Nil
		}
		return id
	}
	record := usertypes.ActivityRecord{
		ActorID:    parse("actor_id", event.ActorID),
		UserID:     parse("user_id", event.UserID),
		TenantID:   parse("tenant_id", event.TenantID),
		Verb:       event.Verb,
		ObjectType: event.ObjectType,
		ObjectID:   event.ObjectID(),
		Channel:    event.Channel,
		OccurredAt: event.OccurredAt,
	}
	record.Data = data
	return record
}
