package globalstyles

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedSource indicates a Source outside all, user and base.
	ErrUnsupportedSource = errors.New("globalstyles: unsupported source")
	// ErrUnknownSetting indicates a setting path outside the allow-list when
	// strict paths are enabled.
	ErrUnknownSetting = errors.New("globalstyles: unknown setting")
)

// ResolveError records the operation and address of a failed read or write.
type ResolveError struct {
	Op     string
	Path   Path
	Block  string
	Source Source
	Err    error
}

func (e *ResolveError) Error() string {
	if e == nil {
		return "<nil>"
	}
	block := e.Block
	if block == "" {
		block = "<root>"
	}
	return fmt.Sprintf("globalstyles: %s path=%q block=%s source=%s: %v", e.Op, e.Path.String(), block, e.Source, e.Err)
}

func (e *ResolveError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func resolveError(op string, path Path, block string, source Source, err error) error {
	if err == nil {
		return nil
	}
	var existing *ResolveError
	if errors.As(err, &existing) {
		return err
	}
	return &ResolveError{Op: op, Path: path, Block: block, Source: source, Err: err}
}
