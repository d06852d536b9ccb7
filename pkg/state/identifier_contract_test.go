package state_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-global-styles/pkg/state"
)

type refFixture struct {
	Name   string `json:"name"`
	Theme  string `json:"theme"`
	Tier   string `json:"tier"`
	UserID string `json:"user_id"`
	Key    string `json:"key"`
	Error  string `json:"error"`
}

func (f refFixture) ref() state.Ref {
	return state.Ref{Theme: f.Theme, Tier: state.Tier(f.Tier), UserID: f.UserID}
}

func readRefFixtures(t *testing.T) []refFixture {
	t.Helper()
	path := filepath.Join("..", "..", "testdata", "state_identifier.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var doc struct {
		Refs []refFixture `json:"refs"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	if len(doc.Refs) == 0 {
		t.Fatalf("%s holds no refs", path)
	}
	return doc.Refs
}

func TestRefIdentifier(t *testing.T) {
	for _, fx := range readRefFixtures(t) {
		fx := fx
		t.Run(fx.Name, func(t *testing.T) {
			key, err := fx.ref().Identifier()
			if fx.Error != "" {
				if err == nil || err.Error() != fx.Error {
					t.Fatalf("expected error %q, got %v", fx.Error, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if key != fx.Key {
				t.Fatalf("expected key %q, got %q", fx.Key, key)
			}
		})
	}
}

func TestMemoryStoreKeysFollowIdentifier(t *testing.T) {
	ctx := context.Background()
	store := state.NewMemoryStore()
	saved := map[string]string{}
	for _, fx := range readRefFixtures(t) {
		if fx.Error != "" {
			if _, err := store.Save(ctx, fx.ref(), map[string]any{}, state.Meta{}); err == nil {
				t.Fatalf("%s: expected save to fail", fx.Name)
			}
			continue
		}
		meta, err := store.Save(ctx, fx.ref(), map[string]any{"version": 3, "title": fx.Name}, state.Meta{})
		if err != nil {
			t.Fatalf("%s: save: %v", fx.Name, err)
		}
		saved[fx.Key] = meta.ETag
	}

	// Refs sharing a key overwrite each other, so the last save wins.
	for _, fx := range readRefFixtures(t) {
		if fx.Error != "" {
			continue
		}
		_, meta, ok, err := store.Load(ctx, fx.ref())
		if err != nil || !ok {
			t.Fatalf("%s: load: ok=%v err=%v", fx.Name, ok, err)
		}
		if meta.ETag != saved[fx.Key] {
			t.Fatalf("%s: expected etag of last save to %s", fx.Name, fx.Key)
		}
	}
}
