package themefile

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	globalstyles "github.com/goliatone/go-global-styles"
)

type recordingTarget struct {
	mu    sync.Mutex
	bases []globalstyles.Document
}

func (r *recordingTarget) SetBase(_ context.Context, base globalstyles.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bases = append(r.bases, base)
	return nil
}

func TestNewWatcherValidation(t *testing.T) {
	if _, err := NewWatcher("", &recordingTarget{}); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := NewWatcher("theme.json", nil); err == nil {
		t.Fatalf("expected error for nil target")
	}
	if _, err := NewWatcher("theme.ini", &recordingTarget{}); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestWatcherReloadsEditorBase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.json")
	if err := os.WriteFile(path, []byte(`{"styles": {"css": ".v1{}"}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	base, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ed, err := globalstyles.NewEditor(base, nil)
	if err != nil {
		t.Fatalf("editor: %v", err)
	}

	reloaded := make(chan error, 4)
	watcher, err := NewWatcher(path, ed,
		WithDebounce(20*time.Millisecond),
		WithReloadHook(func(_ globalstyles.Document, err error) {
			select {
			case reloaded <- err:
			default:
			}
		}),
	)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := watcher.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}
	if err := Save(path, globalstyles.Document{"styles": map[string]any{"css": ".v2{}"}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	select {
	case err := <-reloaded:
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for reload")
	}

	got, err := ed.GetStyle(globalstyles.ParsePath("css"), "", globalstyles.SourceBase)
	if err != nil {
		t.Fatalf("style: %v", err)
	}
	if got != ".v2{}" {
		t.Fatalf("expected reloaded base css, got %v", got)
	}

	cancel()
	select {
	case <-watcher.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("watch loop did not exit")
	}
}

func TestWatcherReloadReportsErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.json")
	if err := os.WriteFile(path, []byte(`{"styles": 1}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	target := &recordingTarget{}
	watcher, err := NewWatcher(path, target)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	if err := watcher.Reload(context.Background()); err == nil {
		t.Fatalf("expected invalid document error")
	}
	if len(target.bases) != 0 {
		t.Fatalf("invalid documents must not reach the target")
	}
}

func TestWatcherDoneBeforeStart(t *testing.T) {
	watcher, err := NewWatcher(filepath.Join(t.TempDir(), "theme.json"), &recordingTarget{})
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	done := watcher.Done()
	if done == nil {
		t.Fatalf("expected a channel before Start")
	}
	select {
	case <-done:
		t.Fatalf("done closed before Stop")
	default:
	}

	watcher.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("stopping an unstarted watcher must close Done")
	}
	watcher.Stop()
	if err := watcher.Start(context.Background()); err == nil {
		t.Fatalf("expected start after stop to fail")
	}
}
