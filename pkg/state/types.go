package state

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	globalstyles "github.com/goliatone/go-global-styles"
	"github.com/goliatone/go-global-styles/layering"
)

var ErrETagMismatch = errors.New("state: etag mismatch")

// ErrBaseNotFound indicates a theme without a stored base tier.
var ErrBaseNotFound = errors.New("state: base tier not found")

// Tier names a persisted tier. The merged tier is derived and has no Tier.
type Tier string

const (
	TierBase Tier = "base"
	TierUser Tier = "user"
)

// Ref identifies one persisted document for one theme.
type Ref struct {
	Theme string
	Tier  Tier
	// UserID optionally scopes the user tier to one account.
	UserID string
}

// Meta is storage-owned metadata used for audit and concurrency control.
type Meta struct {
	SnapshotID string            `json:"snapshot_id,omitempty"`
	ETag       string            `json:"etag,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Store loads/saves one document for a single reference.
type Store interface {
	Load(ctx context.Context, ref Ref) (doc globalstyles.Document, meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, doc globalstyles.Document, meta Meta) (Meta, error)
}

// Resolver loads the stored tiers of a theme.
type Resolver struct {
	Store Store
	// UserID scopes user tier reads and writes.
	UserID string
}

// Mutator rewrites tiers. Only the user tier of the result is persisted.
type Mutator func(globalstyles.Tiers) (globalstyles.Tiers, error)

func (r Ref) Identifier() (string, error) {
	theme := strings.TrimSpace(r.Theme)
	if theme == "" {
		return "", fmt.Errorf("state: theme is required")
	}
	switch r.Tier {
	case TierBase:
		return fmt.Sprintf("base/%s", theme), nil
	case TierUser:
		if id := strings.TrimSpace(r.UserID); id != "" {
			return fmt.Sprintf("user/%s/%s", id, theme), nil
		}
		return fmt.Sprintf("user/%s", theme), nil
	default:
		return "", fmt.Errorf("state: unsupported tier %q", r.Tier)
	}
}

func (r Resolver) ref(theme string, tier Tier) Ref {
	ref := Ref{Theme: theme, Tier: tier}
	if tier == TierUser {
		ref.UserID = r.UserID
	}
	return ref
}

// Resolve loads the base and user tiers of theme. A missing user tier yields
// the empty document; a missing base tier is an error. The returned Meta
// belongs to the user tier and feeds Commit.
func (r Resolver) Resolve(ctx context.Context, theme string) (globalstyles.Tiers, Meta, error) {
	if r.Store == nil {
		return globalstyles.Tiers{}, Meta{}, fmt.Errorf("state: store is required")
	}
	if theme == "" {
		return globalstyles.Tiers{}, Meta{}, fmt.Errorf("state: theme is required")
	}

	base, _, ok, err := r.Store.Load(ctx, r.ref(theme, TierBase))
	if err != nil {
		return globalstyles.Tiers{}, Meta{}, fmt.Errorf("state: load %q base tier: %w", theme, err)
	}
	if !ok {
		return globalstyles.Tiers{}, Meta{}, fmt.Errorf("%w: %q", ErrBaseNotFound, theme)
	}
	if err := globalstyles.ValidateDocument(base); err != nil {
		return globalstyles.Tiers{}, Meta{}, fmt.Errorf("state: %q base tier: %w", theme, err)
	}

	user, meta, ok, err := r.Store.Load(ctx, r.ref(theme, TierUser))
	if err != nil {
		return globalstyles.Tiers{}, Meta{}, fmt.Errorf("state: load %q user tier: %w", theme, err)
	}
	if !ok || user == nil {
		user = globalstyles.EmptyDocument()
		meta = Meta{}
	}
	if err := globalstyles.ValidateDocument(user); err != nil {
		return globalstyles.Tiers{}, Meta{}, fmt.Errorf("state: %q user tier: %w", theme, err)
	}
	return globalstyles.NewTiers(base, user), meta, nil
}

// Editor resolves theme and wraps the tiers in an Editor.
func (r Resolver) Editor(ctx context.Context, theme string, opts ...globalstyles.Option) (*globalstyles.Editor, Meta, error) {
	tiers, meta, err := r.Resolve(ctx, theme)
	if err != nil {
		return nil, Meta{}, err
	}
	opts = append([]globalstyles.Option{globalstyles.WithTheme(theme)}, opts...)
	ed, err := globalstyles.NewEditor(tiers.Base, tiers.User, opts...)
	if err != nil {
		return nil, Meta{}, err
	}
	return ed, meta, nil
}

// Commit saves the user tier of tiers. A non-empty meta.ETag must match the
// stored ETag.
func (r Resolver) Commit(ctx context.Context, theme string, tiers globalstyles.Tiers, meta Meta) (Meta, error) {
	if r.Store == nil {
		return Meta{}, fmt.Errorf("state: store is required")
	}
	if theme == "" {
		return Meta{}, fmt.Errorf("state: theme is required")
	}
	ref := r.ref(theme, TierUser)
	_, loadedMeta, _, err := r.Store.Load(ctx, ref)
	if err != nil {
		return Meta{}, fmt.Errorf("state: load %q user tier: %w", theme, err)
	}
	if meta.ETag != "" && loadedMeta.ETag != "" && meta.ETag != loadedMeta.ETag {
		return loadedMeta, fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, meta.ETag, loadedMeta.ETag)
	}
	return r.save(ctx, ref, tiers.User, mergeMeta(loadedMeta, meta))
}

// Mutate loads the tiers of theme, applies fn, validates the new user tier,
// then saves it.
func (r Resolver) Mutate(ctx context.Context, theme string, meta Meta, fn Mutator) (globalstyles.Tiers, Meta, error) {
	if fn == nil {
		return globalstyles.Tiers{}, Meta{}, fmt.Errorf("state: mutator is required")
	}
	tiers, loadedMeta, err := r.Resolve(ctx, theme)
	if err != nil {
		return globalstyles.Tiers{}, Meta{}, err
	}
	if meta.ETag != "" && loadedMeta.ETag != "" && meta.ETag != loadedMeta.ETag {
		return globalstyles.Tiers{}, loadedMeta, fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, meta.ETag, loadedMeta.ETag)
	}

	next, err := fn(tiers)
	if err != nil {
		return globalstyles.Tiers{}, loadedMeta, err
	}
	if err := globalstyles.ValidateDocument(next.User); err != nil {
		return globalstyles.Tiers{}, loadedMeta, err
	}

	savedMeta, err := r.save(ctx, r.ref(theme, TierUser), next.User, mergeMeta(loadedMeta, meta))
	if err != nil {
		return globalstyles.Tiers{}, loadedMeta, err
	}
	return globalstyles.NewTiers(tiers.Base, next.User), savedMeta, nil
}

func (r Resolver) save(ctx context.Context, ref Ref, user globalstyles.Document, meta Meta) (Meta, error) {
	if err := globalstyles.ValidateDocument(user); err != nil {
		return Meta{}, err
	}
	if user == nil {
		user = globalstyles.EmptyDocument()
	}
	saved, err := r.Store.Save(ctx, ref, layering.Clone(user), meta)
	if err != nil {
		return Meta{}, fmt.Errorf("state: save %q user tier: %w", ref.Theme, err)
	}
	return saved, nil
}

func mergeMeta(base, override Meta) Meta {
	out := base
	if override.SnapshotID != "" {
		out.SnapshotID = override.SnapshotID
	}
	if override.ETag != "" {
		out.ETag = override.ETag
	}
	if !override.UpdatedAt.IsZero() {
		out.UpdatedAt = override.UpdatedAt
	}
	if override.Extra != nil {
		out.Extra = override.Extra
	}
	return out
}
