package state_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	globalstyles "github.com/goliatone/go-global-styles"
	"github.com/goliatone/go-global-styles/pkg/state"
)

func seededStore(t *testing.T) *state.MemoryStore {
	t.Helper()
	store := state.NewMemoryStore()
	base := globalstyles.Document{
		"settings": map[string]any{
			"color": map[string]any{
				"palette": map[string]any{
					"theme": []any{map[string]any{"slug": "primary", "color": "#0000ff"}},
				},
			},
		},
		"styles": map[string]any{"css": ".theme{}"},
	}
	if _, err := store.Save(context.Background(), state.Ref{Theme: "twentytwentyfour", Tier: state.TierBase}, base, state.Meta{}); err != nil {
		t.Fatalf("seed base: %v", err)
	}
	return store
}

func TestMemoryStoreClonesDocuments(t *testing.T) {
	store := state.NewMemoryStore()
	ref := state.Ref{Theme: "twentytwentyfour", Tier: state.TierUser}
	doc := globalstyles.Document{"styles": map[string]any{"css": ".a{}"}}

	meta, err := store.Save(context.Background(), ref, doc, state.Meta{Extra: map[string]string{"source": "test"}})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if meta.ETag == "" || meta.SnapshotID != meta.ETag || meta.UpdatedAt.IsZero() {
		t.Fatalf("expected store-issued meta, got %+v", meta)
	}
	doc["styles"].(map[string]any)["css"] = "mutated"

	loaded, loadedMeta, ok, err := store.Load(context.Background(), ref)
	if err != nil || !ok {
		t.Fatalf("load: ok=%t err=%v", ok, err)
	}
	if diff := cmp.Diff(globalstyles.Document{"styles": map[string]any{"css": ".a{}"}}, loaded); diff != "" {
		t.Fatalf("loaded document mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(meta, loadedMeta); diff != "" {
		t.Fatalf("loaded meta mismatch (-want +got):\n%s", diff)
	}

	next, err := store.Save(context.Background(), ref, loaded, loadedMeta)
	if err != nil {
		t.Fatalf("resave: %v", err)
	}
	if next.ETag == meta.ETag {
		t.Fatalf("expected a fresh etag on every save")
	}
}

func TestMemoryStoreRejectsInvalidRefs(t *testing.T) {
	store := state.NewMemoryStore()
	if _, err := store.Save(context.Background(), state.Ref{Tier: state.TierUser}, nil, state.Meta{}); err == nil {
		t.Fatalf("expected error for missing theme")
	}
	if _, _, _, err := store.Load(context.Background(), state.Ref{Theme: "x", Tier: "merged"}); err == nil {
		t.Fatalf("expected error for unsupported tier")
	}
}

func TestResolverRoundTripThroughEditor(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	resolver := state.Resolver{Store: store}

	ed, meta, err := resolver.Editor(ctx, "twentytwentyfour")
	if err != nil {
		t.Fatalf("editor: %v", err)
	}
	if ed.CanReset() {
		t.Fatalf("missing user tier must resolve to the empty document")
	}
	if meta.ETag != "" {
		t.Fatalf("expected empty meta for missing user tier, got %+v", meta)
	}

	if err := ed.SetStyle(ctx, globalstyles.ParsePath("color.text"), "", "#0000ff"); err != nil {
		t.Fatalf("set style: %v", err)
	}
	saved, err := resolver.Commit(ctx, "twentytwentyfour", ed.Tiers(), meta)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	tiers, loadedMeta, err := resolver.Resolve(ctx, "twentytwentyfour")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if loadedMeta.ETag != saved.ETag {
		t.Fatalf("expected resolved etag %q, got %q", saved.ETag, loadedMeta.ETag)
	}
	got, err := tiers.Style(globalstyles.ParsePath("color.text"), "", globalstyles.SourceUser)
	if err != nil {
		t.Fatalf("style: %v", err)
	}
	if got != "#0000ff" {
		t.Fatalf("expected decoded preset, got %v", got)
	}
	if !tiers.CanReset() {
		t.Fatalf("expected persisted user overrides")
	}

	if _, err := resolver.Commit(ctx, "twentytwentyfour", tiers.Reset(), meta); err != nil {
		t.Fatalf("commit without etag must succeed: %v", err)
	}
	if _, err := resolver.Commit(ctx, "twentytwentyfour", tiers.Reset(), saved); !errors.Is(err, state.ErrETagMismatch) {
		t.Fatalf("expected stale etag to be rejected, got %v", err)
	}
}
