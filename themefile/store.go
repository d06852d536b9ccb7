package themefile

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	globalstyles "github.com/goliatone/go-global-styles"
	"github.com/goliatone/go-global-styles/pkg/state"
)

// Store is a state.Store backed by one file per tier. ETags are content
// hashes, so external edits are detected as conflicts too.
type Store struct {
	mu    sync.Mutex
	paths map[state.Tier]string
}

// NewStore maps the base and user tiers to files. An empty user path makes
// the user tier read as missing and rejects saves.
func NewStore(basePath, userPath string) *Store {
	paths := map[state.Tier]string{state.TierBase: basePath}
	if userPath != "" {
		paths[state.TierUser] = userPath
	}
	return &Store{paths: paths}
}

// Load implements state.Store. Refs are matched by tier only.
func (s *Store) Load(ctx context.Context, ref state.Ref) (globalstyles.Document, state.Meta, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, state.Meta{}, false, err
	}
	path, ok := s.paths[ref.Tier]
	if !ok {
		if _, err := ref.Identifier(); err != nil {
			return nil, state.Meta{}, false, err
		}
		return nil, state.Meta{}, false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	data, info, err := readFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, state.Meta{}, false, nil
	}
	if err != nil {
		return nil, state.Meta{}, false, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, state.Meta{}, false, err
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, state.Meta{}, false, fmt.Errorf("%s: %w", path, err)
	}
	return doc, metaFor(data, info), true, nil
}

// Save implements state.Store.
func (s *Store) Save(ctx context.Context, ref state.Ref, doc globalstyles.Document, meta state.Meta) (state.Meta, error) {
	if err := ctx.Err(); err != nil {
		return state.Meta{}, err
	}
	path, ok := s.paths[ref.Tier]
	if !ok {
		return state.Meta{}, fmt.Errorf("themefile: no file configured for %s tier", ref.Tier)
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return state.Meta{}, err
	}
	data, err := Encode(doc, format)
	if err != nil {
		return state.Meta{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := writeFile(path, data); err != nil {
		return state.Meta{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return state.Meta{}, fmt.Errorf("themefile: stat %s: %w", path, err)
	}
	saved := metaFor(data, info)
	saved.Extra = meta.Extra
	return saved, nil
}

func readFile(path string) ([]byte, fs.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("themefile: read %s: %w", path, err)
	}
	return data, info, nil
}

func metaFor(data []byte, info fs.FileInfo) state.Meta {
	sum := sha256.Sum256(data)
	etag := hex.EncodeToString(sum[:])
	meta := state.Meta{SnapshotID: etag[:12], ETag: etag}
	if info != nil {
		meta.UpdatedAt = info.ModTime().UTC()
	}
	return meta
}
